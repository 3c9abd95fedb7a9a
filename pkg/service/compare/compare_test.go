package compare

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.orgdiff.io/orgdiff/config"
	"go.orgdiff.io/orgdiff/pkg/models"
	"go.uber.org/zap/zaptest"
)

// MockOrgResolver implements the OrgResolver interface for testing
type MockOrgResolver struct {
	mock.Mock
}

func (m *MockOrgResolver) Resolve(ctx context.Context, orgID string) (models.OrgAuth, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(models.OrgAuth), args.Error(1)
}

// MockMetadataClient implements the MetadataClient interface for testing
type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) Retrieve(ctx context.Context, auth models.OrgAuth, layoutNames []string) (map[string]string, error) {
	args := m.Called(ctx, auth, layoutNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func layoutXML(fields ...string) string {
	xml := `<Layout><layoutSections><label>Info</label><layoutColumns>`
	for _, f := range fields {
		xml += `<layoutItems><field>` + f + `</field></layoutItems>`
	}
	return xml + `</layoutColumns></layoutSections></Layout>`
}

var (
	prodAuth = models.OrgAuth{InstanceURL: "https://prod.example.com", AccessToken: "tok-prod", APIVersion: "59.0"}
	uatAuth  = models.OrgAuth{InstanceURL: "https://uat.example.com", AccessToken: "tok-uat", APIVersion: "59.0"}
)

func newComparer(t *testing.T, orgs *MockOrgResolver, client *MockMetadataClient) *Compare {
	return New(zaptest.NewLogger(t), config.New(), orgs, client)
}

func reportPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "report.csv")
}

func TestCompareSameOrgSingleRetrieve(t *testing.T) {
	orgs := &MockOrgResolver{}
	client := &MockMetadataClient{}
	orgs.On("Resolve", mock.Anything, "").Return(prodAuth, nil).Twice()
	client.On("Retrieve", mock.Anything, prodAuth, []string{"Account-Account Layout"}).
		Return(map[string]string{"Account-Account Layout": layoutXML("Name", "Phone")}, nil).Once()

	summary, err := newComparer(t, orgs, client).Compare(context.Background(), models.CompareRequest{
		LayoutNames: []string{"Account-Account Layout"},
		Output:      reportPath(t),
	})
	require.NoError(t, err)

	// exactly one retrieve for both sides
	client.AssertNumberOfCalls(t, "Retrieve", 1)
	assert.True(t, summary.SameOrg)
	assert.Equal(t, 1, summary.Compared)
	assert.Equal(t, 0, summary.NotFound)
	assert.Equal(t, 0, summary.Errors)

	require.Len(t, summary.Summary, 1)
	ls := summary.Summary[0]
	assert.Equal(t, models.SummaryCompared, ls.Status)
	assert.Zero(t, ls.FieldsMissing)
	assert.Zero(t, ls.FieldsExtra)
	assert.Zero(t, ls.SectionsMissing)
	assert.Zero(t, ls.SectionsExtra)
}

func TestCompareDistinctOrgsRetrieveTwice(t *testing.T) {
	orgs := &MockOrgResolver{}
	client := &MockMetadataClient{}
	orgs.On("Resolve", mock.Anything, "prod").Return(prodAuth, nil).Once()
	orgs.On("Resolve", mock.Anything, "uat").Return(uatAuth, nil).Once()
	client.On("Retrieve", mock.Anything, prodAuth, mock.Anything).
		Return(map[string]string{"Account-Account Layout": layoutXML("Name", "Phone")}, nil).Once()
	client.On("Retrieve", mock.Anything, uatAuth, mock.Anything).
		Return(map[string]string{"Account-Account Layout": layoutXML("Name")}, nil).Once()

	summary, err := newComparer(t, orgs, client).Compare(context.Background(), models.CompareRequest{
		LayoutNames: []string{"Account-Account Layout"},
		SourceOrg:   "prod",
		TargetOrg:   "uat",
		Output:      reportPath(t),
	})
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "Retrieve", 2)
	assert.False(t, summary.SameOrg)
	require.Len(t, summary.Summary, 1)
	assert.Equal(t, 1, summary.Summary[0].FieldsMissing) // Phone
	assert.Equal(t, 0, summary.Summary[0].FieldsExtra)
}

func TestCompareClassification(t *testing.T) {
	src := map[string]string{
		"Both-OK":     layoutXML("Name"),
		"OnlySource":  layoutXML("Name"),
		"Both-BadTgt": layoutXML("Name"),
	}
	tgt := map[string]string{
		"Both-OK":     layoutXML("Name"),
		"OnlyTarget":  layoutXML("Name"),
		"Both-BadTgt": "<Layout><layoutSections>",
	}

	orgs := &MockOrgResolver{}
	client := &MockMetadataClient{}
	orgs.On("Resolve", mock.Anything, "prod").Return(prodAuth, nil).Once()
	orgs.On("Resolve", mock.Anything, "uat").Return(uatAuth, nil).Once()
	client.On("Retrieve", mock.Anything, prodAuth, mock.Anything).Return(src, nil).Once()
	client.On("Retrieve", mock.Anything, uatAuth, mock.Anything).Return(tgt, nil).Once()

	names := []string{"Both-OK", "OnlySource", "OnlyTarget", "Neither", "Both-BadTgt"}
	summary, err := newComparer(t, orgs, client).Compare(context.Background(), models.CompareRequest{
		LayoutNames: names,
		SourceOrg:   "prod",
		TargetOrg:   "uat",
		Output:      reportPath(t),
	})
	require.NoError(t, err)

	require.Len(t, summary.Summary, 5)
	// rows keep the caller's order regardless of retrieval order
	for i, name := range names {
		assert.Equal(t, name, summary.Summary[i].Layout)
	}
	assert.Equal(t, models.SummaryCompared, summary.Summary[0].Status)
	assert.Equal(t, models.SummaryTargetNotFound, summary.Summary[1].Status)
	assert.Equal(t, models.SummarySourceNotFound, summary.Summary[2].Status)
	assert.Equal(t, models.SummaryNotFoundBoth, summary.Summary[3].Status)
	assert.Equal(t, models.SummaryParseError, summary.Summary[4].Status)
	assert.NotEmpty(t, summary.Summary[4].Error)

	assert.Equal(t, 1, summary.Compared)
	assert.Equal(t, 3, summary.NotFound)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 5, summary.TotalLayouts)
}

func TestCompareEmptyLayoutNames(t *testing.T) {
	orgs := &MockOrgResolver{}
	client := &MockMetadataClient{}

	_, err := newComparer(t, orgs, client).Compare(context.Background(), models.CompareRequest{
		LayoutNames: []string{"  ", ""},
	})
	require.Error(t, err)
	assert.Equal(t, models.ErrInvalidInput, models.ErrorKind(err))
	// rejected before any resolution or network activity
	orgs.AssertNotCalled(t, "Resolve")
	client.AssertNotCalled(t, "Retrieve")
}

func TestCompareCredentialErrorAborts(t *testing.T) {
	orgs := &MockOrgResolver{}
	client := &MockMetadataClient{}
	credErr := models.NewAppError(models.ErrCredential, errors.New("no session for prod"))
	orgs.On("Resolve", mock.Anything, "prod").Return(models.OrgAuth{}, credErr).Once()

	_, err := newComparer(t, orgs, client).Compare(context.Background(), models.CompareRequest{
		LayoutNames: []string{"Account-Account Layout"},
		SourceOrg:   "prod",
	})
	require.Error(t, err)
	assert.Equal(t, models.ErrCredential, models.ErrorKind(err))
	client.AssertNotCalled(t, "Retrieve")
}

func TestCompareRetrieveFailureWritesNoReport(t *testing.T) {
	orgs := &MockOrgResolver{}
	client := &MockMetadataClient{}
	orgs.On("Resolve", mock.Anything, "").Return(prodAuth, nil).Twice()
	client.On("Retrieve", mock.Anything, prodAuth, mock.Anything).
		Return(nil, models.NewAppError(models.ErrRetrieveTimeout, errors.New("deadline exceeded"))).Once()

	out := reportPath(t)
	_, err := newComparer(t, orgs, client).Compare(context.Background(), models.CompareRequest{
		LayoutNames: []string{"Account-Account Layout"},
		Output:      out,
	})
	require.Error(t, err)
	assert.Equal(t, models.ErrRetrieveTimeout, models.ErrorKind(err))

	// whole-operation abort: no partial report implying success
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
