package models

// CompareRequest is the input to one comparison run. LayoutNames keeps the
// caller's order; report rows are emitted in exactly this order.
type CompareRequest struct {
	LayoutNames []string `json:"layoutNames"`
	SourceOrg   string   `json:"sourceOrg,omitempty"` // org id; empty means the active org
	TargetOrg   string   `json:"targetOrg,omitempty"`
	Output      string   `json:"output,omitempty"` // csv filename, defaulted when empty
}

// RowStatus is the terminal classification of one requested layout.
type RowStatus string

const (
	StatusCompared       RowStatus = "Compared"
	StatusSourceNotFound RowStatus = "Source Not Found"
	StatusTargetNotFound RowStatus = "Target Not Found"
	StatusNotFoundInTwo  RowStatus = "Not Found in Either Org"
	StatusParseErrPrefix RowStatus = "Parse Error"
)

// ParseErrorStatus renders the row status for a layout whose xml failed to
// parse on either side, preserving the parser diagnostic.
func ParseErrorStatus(msg string) RowStatus {
	return StatusParseErrPrefix + RowStatus(": "+msg)
}

// CompareRow is one report row. Diff is nil for every status except
// StatusCompared. Rows are created once and never mutated.
type CompareRow struct {
	SourceLayoutName string
	TargetLayoutName string
	Status           RowStatus
	Diff             *LayoutDiff
}

// LayoutSummary mirrors one report row in the lighter-weight form returned
// to the caller alongside the csv path.
type LayoutSummary struct {
	Layout              string `json:"layout"`
	Status              string `json:"status"`
	Error               string `json:"error,omitempty"`
	FieldsMissing       int    `json:"fieldsMissing,omitempty"`
	FieldsExtra         int    `json:"fieldsExtra,omitempty"`
	SectionsMissing     int    `json:"sectionsMissing,omitempty"`
	SectionsExtra       int    `json:"sectionsExtra,omitempty"`
	RelatedListsMissing int    `json:"relatedListsMissing,omitempty"`
	RelatedListsExtra   int    `json:"relatedListsExtra,omitempty"`
}

// Machine-readable summary status tokens, kept distinct from the human row
// statuses written to the csv.
const (
	SummaryCompared       = "compared"
	SummarySourceNotFound = "source_not_found"
	SummaryTargetNotFound = "target_not_found"
	SummaryNotFoundBoth   = "not_found_both"
	SummaryParseError     = "parse_error"
)

// RunSummary is the response envelope for one comparison run.
type RunSummary struct {
	RunID        string          `json:"runId"`
	Message      string          `json:"message"`
	CSVFile      string          `json:"csvFile"`
	TotalLayouts int             `json:"totalLayouts"`
	Compared     int             `json:"compared"`
	NotFound     int             `json:"notFound"`
	Errors       int             `json:"errors"`
	SameOrg      bool            `json:"sameOrg"`
	SourceOrg    string          `json:"sourceOrg"`
	TargetOrg    string          `json:"targetOrg"`
	APIVersion   string          `json:"apiVersion"`
	Summary      []LayoutSummary `json:"summary"`
}
