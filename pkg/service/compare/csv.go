package compare

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.orgdiff.io/orgdiff/pkg/models"
)

// reportDir is where reports land when the caller gives a bare filename,
// created under the working directory on demand.
const reportDir = "Documents"

// cellDelimiter joins multi-valued cells.
const cellDelimiter = "; "

// csvColumns is the fixed report schema, in this exact order.
var csvColumns = []string{
	"Source Layout Name",
	"Target Layout Name",
	"Status",
	"Fields Missing in Target",
	"Fields Extra in Target",
	"Fields Missing Count",
	"Fields Extra Count",
	"Sections Missing in Target",
	"Sections Extra in Target",
	"Sections Missing Count",
	"Sections Extra Count",
	"Related Lists Missing in Target",
	"Related Lists Extra in Target",
	"Related Lists Missing Count",
	"Related Lists Extra Count",
	"Source Field Count",
	"Target Field Count",
	"Source Section Count",
	"Target Section Count",
	"Source Related List Count",
	"Target Related List Count",
}

// writeReport resolves the output path and writes all rows. The file opens
// with a utf-8 BOM so spreadsheet tools import non-latin labels cleanly.
func (c *Compare) writeReport(rows []models.CompareRow, output string) (string, error) {
	path, err := resolveReportPath(output)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(encodeRow(row)); err != nil {
			return "", fmt.Errorf("failed to write report row for %s: %w", row.SourceLayoutName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report file %s: %w", path, err)
	}
	return path, nil
}

// encodeRow serializes one row in csvColumns order. Non-compared rows keep
// every diff cell empty.
func encodeRow(row models.CompareRow) []string {
	record := make([]string, len(csvColumns))
	record[0] = row.SourceLayoutName
	record[1] = row.TargetLayoutName
	record[2] = string(row.Status)
	if row.Diff == nil {
		return record
	}

	d := row.Diff
	record[3] = strings.Join(d.FieldsMissingInTarget, cellDelimiter)
	record[4] = strings.Join(d.FieldsExtraInTarget, cellDelimiter)
	record[5] = strconv.Itoa(len(d.FieldsMissingInTarget))
	record[6] = strconv.Itoa(len(d.FieldsExtraInTarget))
	record[7] = strings.Join(d.SectionsMissingInTarget, cellDelimiter)
	record[8] = strings.Join(d.SectionsExtraInTarget, cellDelimiter)
	record[9] = strconv.Itoa(len(d.SectionsMissingInTarget))
	record[10] = strconv.Itoa(len(d.SectionsExtraInTarget))
	record[11] = strings.Join(d.RelatedListsMissingInTarget, cellDelimiter)
	record[12] = strings.Join(d.RelatedListsExtraInTarget, cellDelimiter)
	record[13] = strconv.Itoa(len(d.RelatedListsMissingInTarget))
	record[14] = strconv.Itoa(len(d.RelatedListsExtraInTarget))
	record[15] = strconv.Itoa(d.SourceFieldCount)
	record[16] = strconv.Itoa(d.TargetFieldCount)
	record[17] = strconv.Itoa(d.SourceSectionCount)
	record[18] = strconv.Itoa(d.TargetSectionCount)
	record[19] = strconv.Itoa(d.SourceRelatedListCount)
	record[20] = strconv.Itoa(d.TargetRelatedListCount)
	return record
}

// resolveReportPath applies the output filename rules: default to a
// timestamped name, append .csv when missing, honor an explicit path as
// given, and otherwise place the file under Documents/.
func resolveReportPath(output string) (string, error) {
	if output == "" {
		output = fmt.Sprintf("page_layout_comparison_%s.csv", time.Now().Format("20060102_150405"))
	} else if !strings.HasSuffix(strings.ToLower(output), ".csv") {
		output += ".csv"
	}

	if filepath.Dir(output) != "." {
		return filepath.Abs(output)
	}

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", reportDir, err)
	}
	return filepath.Join(reportDir, output), nil
}
