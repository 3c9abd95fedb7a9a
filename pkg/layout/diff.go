package layout

import (
	"sort"

	"go.orgdiff.io/orgdiff/pkg/models"
)

// Diff computes the membership difference between two parsed layouts.
// Comparison is purely by name: a field that moved between sections is not
// a difference. Output slices are sorted so repeated runs over the same
// orgs produce identical reports.
func Diff(source, target *models.Layout) models.LayoutDiff {
	srcSections := source.SectionLabels()
	tgtSections := target.SectionLabels()

	return models.LayoutDiff{
		FieldsMissingInTarget:       sortedMinus(source.AllFields, target.AllFields),
		FieldsExtraInTarget:         sortedMinus(target.AllFields, source.AllFields),
		SectionsMissingInTarget:     sortedMinus(srcSections, tgtSections),
		SectionsExtraInTarget:       sortedMinus(tgtSections, srcSections),
		RelatedListsMissingInTarget: sortedMinus(source.RelatedLists, target.RelatedLists),
		RelatedListsExtraInTarget:   sortedMinus(target.RelatedLists, source.RelatedLists),

		SourceFieldCount:       len(source.AllFields),
		TargetFieldCount:       len(target.AllFields),
		SourceSectionCount:     len(srcSections),
		TargetSectionCount:     len(tgtSections),
		SourceRelatedListCount: len(source.RelatedLists),
		TargetRelatedListCount: len(target.RelatedLists),
	}
}

// sortedMinus returns a-b as a lexicographically sorted slice. The result
// is non-nil so callers can range and join without nil checks.
func sortedMinus(a, b map[string]struct{}) []string {
	out := make([]string, 0, len(a))
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
