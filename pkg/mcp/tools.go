package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.orgdiff.io/orgdiff/pkg/models"
	"go.uber.org/zap"
)

// CompareLayoutsInput defines the input parameters for the layout
// comparison tool. The contract mirrors the CLI: comma-separated layout
// names, optional org ids, optional output filename.
type CompareLayoutsInput struct {
	// LayoutNames is the comma-separated list of layout api names in "Object-Layout Name" form.
	LayoutNames string `json:"layoutNames" jsonschema:"Comma-separated layout api names in 'Object-Layout Name' form, e.g. 'Account-Account Layout,Contact-Contact Layout'. Names are case-sensitive."`
	// SourceOrgUserID selects the source org; empty uses the active org.
	SourceOrgUserID string `json:"sourceOrgUserId,omitempty" jsonschema:"Org id of the source org. Leave blank to use the currently active org."`
	// TargetOrgUserID selects the target org; empty uses the active org.
	TargetOrgUserID string `json:"targetOrgUserId,omitempty" jsonschema:"Org id of the target org. Leave blank to use the currently active org. If both are blank or identical the layout is compared against itself and all diffs will be zero."`
	// OutputFilename is the optional csv filename.
	OutputFilename string `json:"outputFilename,omitempty" jsonschema:"Optional CSV filename. Defaults to page_layout_comparison_<timestamp>.csv under Documents/."`
}

// CompareLayoutsOutput defines the output of the layout comparison tool.
type CompareLayoutsOutput struct {
	// Success indicates whether the comparison ran to completion.
	Success bool `json:"success"`
	// Message is a human-readable status message.
	Message string `json:"message"`
	// CSVFile is the path of the written report.
	CSVFile string `json:"csvFile,omitempty"`
	// TotalLayouts is the number of layouts requested.
	TotalLayouts int `json:"totalLayouts,omitempty"`
	// Compared, NotFound and Errors count the per-layout outcomes.
	Compared int `json:"compared"`
	NotFound int `json:"notFound"`
	Errors   int `json:"errors"`
	// SameOrg reports whether source and target resolved to the same org.
	SameOrg bool `json:"sameOrg"`
	// SourceOrg and TargetOrg are the resolved instance urls.
	SourceOrg  string `json:"sourceOrg,omitempty"`
	TargetOrg  string `json:"targetOrg,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`
	// Summary mirrors the csv rows in lighter-weight form.
	Summary []models.LayoutSummary `json:"summary,omitempty"`
}

// handleCompareLayouts handles the compare_page_layouts tool invocation.
func (s *Server) handleCompareLayouts(ctx context.Context, _ *sdkmcp.CallToolRequest, in CompareLayoutsInput) (*sdkmcp.CallToolResult, CompareLayoutsOutput, error) {
	s.logger.Info("Compare layouts tool invoked",
		zap.String("layouts", in.LayoutNames),
		zap.String("source_org", in.SourceOrgUserID),
		zap.String("target_org", in.TargetOrgUserID))

	var names []string
	for _, n := range strings.Split(in.LayoutNames, ",") {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}

	summary, err := s.comparer.Compare(ctx, models.CompareRequest{
		LayoutNames: names,
		SourceOrg:   in.SourceOrgUserID,
		TargetOrg:   in.TargetOrgUserID,
		Output:      in.OutputFilename,
	})
	if err != nil {
		s.logger.Error("Layout comparison failed", zap.Error(err))
		return nil, CompareLayoutsOutput{
			Success: false,
			Message: fmt.Sprintf("Layout comparison failed: %s", err.Error()),
		}, nil
	}

	return nil, CompareLayoutsOutput{
		Success:      true,
		Message:      summary.Message,
		CSVFile:      summary.CSVFile,
		TotalLayouts: summary.TotalLayouts,
		Compared:     summary.Compared,
		NotFound:     summary.NotFound,
		Errors:       summary.Errors,
		SameOrg:      summary.SameOrg,
		SourceOrg:    summary.SourceOrg,
		TargetOrg:    summary.TargetOrg,
		APIVersion:   summary.APIVersion,
		Summary:      summary.Summary,
	}, nil
}
