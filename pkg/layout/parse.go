// Package layout holds the pure structural model logic for page layouts:
// parsing raw metadata xml into models.Layout and computing membership
// diffs between two parsed layouts. No I/O happens here.
package layout

import (
	"encoding/xml"
	"strings"

	"go.orgdiff.io/orgdiff/pkg/models"
)

// UnnamedSection is the label assigned to a layoutSections element that
// carries no label child at all.
const UnnamedSection = "Unnamed Section"

// Unmarshal targets for the metadata layout document. Tags match local
// element names so the parser tolerates the namespace prefixing variations
// the api produces. Label is a pointer: an absent element and a present but
// empty one classify differently.
type layoutDoc struct {
	Sections     []layoutSection `xml:"layoutSections"`
	RelatedLists []relatedList   `xml:"relatedLists"`
}

type layoutSection struct {
	Label   *string        `xml:"label"`
	Columns []layoutColumn `xml:"layoutColumns"`
}

type layoutColumn struct {
	Items []layoutItem `xml:"layoutItems"`
}

type layoutItem struct {
	Field string `xml:"field"`
}

type relatedList struct {
	RelatedList string `xml:"relatedList"`
}

// Parse builds the structural model of one layout from its raw xml.
// Spacer items (layoutItems with no field reference) are skipped and never
// surface in the model. Malformed xml returns an ErrLayoutParse carrying
// the underlying decoder diagnostic.
func Parse(xmlText string) (*models.Layout, error) {
	var doc layoutDoc
	if err := xml.Unmarshal([]byte(xmlText), &doc); err != nil {
		return nil, models.NewAppError(models.ErrLayoutParse, err)
	}

	parsed := &models.Layout{
		Sections:     make([]models.Section, 0, len(doc.Sections)),
		AllFields:    make(map[string]struct{}),
		RelatedLists: make(map[string]struct{}),
	}

	for _, sec := range doc.Sections {
		label := UnnamedSection
		if sec.Label != nil {
			label = strings.TrimSpace(*sec.Label)
		}

		var fields []string
		for _, col := range sec.Columns {
			for _, item := range col.Items {
				name := strings.TrimSpace(item.Field)
				if name == "" {
					continue
				}
				fields = append(fields, name)
				parsed.AllFields[name] = struct{}{}
			}
		}

		parsed.Sections = append(parsed.Sections, models.Section{Label: label, Fields: fields})
	}

	for _, rl := range doc.RelatedLists {
		name := strings.TrimSpace(rl.RelatedList)
		if name == "" {
			continue
		}
		parsed.RelatedLists[name] = struct{}{}
	}

	return parsed, nil
}
