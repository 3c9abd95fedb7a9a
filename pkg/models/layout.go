package models

// Section is one layoutSections block: its label and the field api names it
// contains, in document order. Labels are not unique within a layout, so
// sections live in a slice rather than a map.
type Section struct {
	Label  string
	Fields []string
}

// Layout is the parsed structural model of one page layout.
type Layout struct {
	Sections     []Section
	AllFields    map[string]struct{}
	RelatedLists map[string]struct{}
}

// SectionLabels returns the set of section labels present on the layout.
func (l *Layout) SectionLabels() map[string]struct{} {
	labels := make(map[string]struct{}, len(l.Sections))
	for _, s := range l.Sections {
		labels[s.Label] = struct{}{}
	}
	return labels
}

// LayoutDiff is the membership difference between a source and a target
// layout. All slices are sorted lexicographically so repeated runs over the
// same input produce byte-identical reports.
type LayoutDiff struct {
	FieldsMissingInTarget       []string `json:"fieldsMissingInTarget"`
	FieldsExtraInTarget         []string `json:"fieldsExtraInTarget"`
	SectionsMissingInTarget     []string `json:"sectionsMissingInTarget"`
	SectionsExtraInTarget       []string `json:"sectionsExtraInTarget"`
	RelatedListsMissingInTarget []string `json:"relatedListsMissingInTarget"`
	RelatedListsExtraInTarget   []string `json:"relatedListsExtraInTarget"`

	SourceFieldCount       int `json:"sourceFieldCount"`
	TargetFieldCount       int `json:"targetFieldCount"`
	SourceSectionCount     int `json:"sourceSectionCount"`
	TargetSectionCount     int `json:"targetSectionCount"`
	SourceRelatedListCount int `json:"sourceRelatedListCount"`
	TargetRelatedListCount int `json:"targetRelatedListCount"`
}
