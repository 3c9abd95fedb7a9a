package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.orgdiff.io/orgdiff/pkg/models"
)

const accountLayoutXML = `<?xml version="1.0" encoding="UTF-8"?>
<Layout xmlns="http://soap.sforce.com/2006/04/metadata">
    <layoutSections>
        <label>Account Information</label>
        <layoutColumns>
            <layoutItems>
                <field>Name</field>
            </layoutItems>
            <layoutItems>
                <field>Phone</field>
            </layoutItems>
        </layoutColumns>
        <layoutColumns>
            <layoutItems>
                <field>Industry</field>
            </layoutItems>
        </layoutColumns>
    </layoutSections>
    <layoutSections>
        <label>Address Information</label>
        <layoutColumns>
            <layoutItems>
                <field>BillingAddress</field>
            </layoutItems>
        </layoutColumns>
    </layoutSections>
    <relatedLists>
        <relatedList>RelatedContactList</relatedList>
    </relatedLists>
    <relatedLists>
        <relatedList>RelatedOpportunityList</relatedList>
    </relatedLists>
</Layout>`

func TestParse(t *testing.T) {
	parsed, err := Parse(accountLayoutXML)
	require.NoError(t, err)

	require.Len(t, parsed.Sections, 2)
	assert.Equal(t, "Account Information", parsed.Sections[0].Label)
	assert.Equal(t, []string{"Name", "Phone", "Industry"}, parsed.Sections[0].Fields)
	assert.Equal(t, "Address Information", parsed.Sections[1].Label)
	assert.Equal(t, []string{"BillingAddress"}, parsed.Sections[1].Fields)

	assert.Equal(t, map[string]struct{}{
		"Name": {}, "Phone": {}, "Industry": {}, "BillingAddress": {},
	}, parsed.AllFields)
	assert.Equal(t, map[string]struct{}{
		"RelatedContactList": {}, "RelatedOpportunityList": {},
	}, parsed.RelatedLists)
}

func TestParseSkipsSpacerItems(t *testing.T) {
	xmlText := `<Layout>
		<layoutSections>
			<label>Info</label>
			<layoutColumns>
				<layoutItems></layoutItems>
				<layoutItems><field>Name</field></layoutItems>
				<layoutItems><field>   </field></layoutItems>
			</layoutColumns>
		</layoutSections>
	</Layout>`

	parsed, err := Parse(xmlText)
	require.NoError(t, err)

	require.Len(t, parsed.Sections, 1)
	assert.Equal(t, []string{"Name"}, parsed.Sections[0].Fields)
	assert.Equal(t, map[string]struct{}{"Name": {}}, parsed.AllFields)
}

func TestParseSectionLabels(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    string
	}{
		{
			name:    "missing label element gets the sentinel",
			section: `<layoutSections><layoutColumns/></layoutSections>`,
			want:    UnnamedSection,
		},
		{
			name:    "present but empty label stays empty",
			section: `<layoutSections><label>  </label><layoutColumns/></layoutSections>`,
			want:    "",
		},
		{
			name:    "label text is trimmed",
			section: `<layoutSections><label> Details </label></layoutSections>`,
			want:    "Details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse("<Layout>" + tt.section + "</Layout>")
			require.NoError(t, err)
			require.Len(t, parsed.Sections, 1)
			assert.Equal(t, tt.want, parsed.Sections[0].Label)
		})
	}
}

func TestParseDuplicateSectionLabels(t *testing.T) {
	xmlText := `<Layout>
		<layoutSections>
			<label>Info</label>
			<layoutColumns><layoutItems><field>A</field></layoutItems></layoutColumns>
		</layoutSections>
		<layoutSections>
			<label>Info</label>
			<layoutColumns><layoutItems><field>B</field></layoutItems></layoutColumns>
		</layoutSections>
	</Layout>`

	parsed, err := Parse(xmlText)
	require.NoError(t, err)

	// duplicates stay as independent ordered entries
	require.Len(t, parsed.Sections, 2)
	assert.Equal(t, []string{"A"}, parsed.Sections[0].Fields)
	assert.Equal(t, []string{"B"}, parsed.Sections[1].Fields)
	assert.Len(t, parsed.SectionLabels(), 1)
}

func TestParseSkipsEmptyRelatedLists(t *testing.T) {
	xmlText := `<Layout>
		<relatedLists><relatedList>Cases</relatedList></relatedLists>
		<relatedLists><relatedList>  </relatedList></relatedLists>
		<relatedLists></relatedLists>
	</Layout>`

	parsed, err := Parse(xmlText)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"Cases": {}}, parsed.RelatedLists)
}

func TestParseMalformedXML(t *testing.T) {
	_, err := Parse("<Layout><layoutSections>")
	require.Error(t, err)
	assert.Equal(t, models.ErrLayoutParse, models.ErrorKind(err))
}

func TestParseIsIdempotent(t *testing.T) {
	first, err := Parse(accountLayoutXML)
	require.NoError(t, err)
	second, err := Parse(accountLayoutXML)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseAllFieldsIsUnionOfSections(t *testing.T) {
	parsed, err := Parse(accountLayoutXML)
	require.NoError(t, err)

	union := map[string]struct{}{}
	for _, sec := range parsed.Sections {
		for _, f := range sec.Fields {
			union[f] = struct{}{}
		}
	}
	assert.Equal(t, union, parsed.AllFields)
}
