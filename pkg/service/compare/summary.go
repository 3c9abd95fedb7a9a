package compare

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"go.orgdiff.io/orgdiff/pkg/models"
)

// printSummary renders the per-layout outcome table after a run. This is
// terminal furniture only; the csv and the returned RunSummary are the
// real outputs.
func (c *Compare) printSummary(summary *models.RunSummary) {
	fmt.Printf("\n  Layouts: %d   %s   %s   %s\n\n",
		summary.TotalLayouts,
		models.HighlightPassingString("compared: ", summary.Compared),
		models.HighlightWarningString("not found: ", summary.NotFound),
		models.HighlightFailingString("errors: ", summary.Errors))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Layout", "Status", "Fields ±", "Sections ±", "Related Lists ±"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, ls := range summary.Summary {
		table.Append([]string{
			ls.Layout,
			colorStatus(ls),
			plusMinus(ls.FieldsMissing, ls.FieldsExtra, ls.Status),
			plusMinus(ls.SectionsMissing, ls.SectionsExtra, ls.Status),
			plusMinus(ls.RelatedListsMissing, ls.RelatedListsExtra, ls.Status),
		})
	}
	table.Render()

	fmt.Printf("\n  Report: %s\n", summary.CSVFile)
	if summary.SameOrg {
		fmt.Println("  Source and target are the same org; diffs are expected to be zero.")
	}
	fmt.Println()
}

func colorStatus(ls models.LayoutSummary) string {
	switch ls.Status {
	case models.SummaryCompared:
		return models.HighlightPassingString(ls.Status)
	case models.SummaryParseError:
		msg := ls.Status
		if ls.Error != "" {
			msg += ": " + ls.Error
		}
		return models.HighlightFailingString(msg)
	default:
		return models.HighlightWarningString(strings.ReplaceAll(ls.Status, "_", " "))
	}
}

func plusMinus(missing, extra int, status string) string {
	if status != models.SummaryCompared {
		return ""
	}
	return "-" + strconv.Itoa(missing) + " / +" + strconv.Itoa(extra)
}
