// Package compare orchestrates one layout comparison run: resolve both
// orgs, retrieve layouts (once per org, batched), classify every requested
// layout, and emit the csv report plus a run summary.
package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.orgdiff.io/orgdiff/config"
	"go.orgdiff.io/orgdiff/pkg/layout"
	"go.orgdiff.io/orgdiff/pkg/models"
	"go.orgdiff.io/orgdiff/utils"
	"go.uber.org/zap"
)

type Compare struct {
	logger   *zap.Logger
	config   *config.Config
	orgs     OrgResolver
	metadata MetadataClient
}

func New(logger *zap.Logger, cfg *config.Config, orgs OrgResolver, metadata MetadataClient) *Compare {
	return &Compare{
		logger:   logger,
		config:   cfg,
		orgs:     orgs,
		metadata: metadata,
	}
}

// Compare runs the full pipeline. Org-level failures (credentials,
// protocol, retrieve failure, timeout) abort the whole run with no csv
// written; per-layout parse failures downgrade that one row and the batch
// continues.
func (c *Compare) Compare(ctx context.Context, req models.CompareRequest) (*models.RunSummary, error) {
	names := make([]string, 0, len(req.LayoutNames))
	for _, n := range req.LayoutNames {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return nil, models.NewAppError(models.ErrInvalidInput, fmt.Errorf("layout names must not be empty"))
	}

	srcAuth, err := c.orgs.Resolve(ctx, req.SourceOrg)
	if err != nil {
		utils.LogError(c.logger, err, "failed to resolve source org", zap.String("org_id", req.SourceOrg))
		return nil, err
	}
	tgtAuth, err := c.orgs.Resolve(ctx, req.TargetOrg)
	if err != nil {
		utils.LogError(c.logger, err, "failed to resolve target org", zap.String("org_id", req.TargetOrg))
		return nil, err
	}

	sameOrg := srcAuth.SameOrg(tgtAuth)

	srcLayouts, err := c.metadata.Retrieve(ctx, srcAuth, names)
	if err != nil {
		utils.LogError(c.logger, err, "failed to retrieve source layouts", zap.String("instance_url", srcAuth.InstanceURL))
		return nil, err
	}

	var tgtLayouts map[string]string
	if sameOrg {
		// Same session on both sides: reuse the source result instead of a
		// second round trip. Guarantees all-zero diffs for identical input.
		c.logger.Debug("source and target resolve to the same org, skipping second retrieve")
		tgtLayouts = srcLayouts
	} else {
		tgtLayouts, err = c.metadata.Retrieve(ctx, tgtAuth, names)
		if err != nil {
			utils.LogError(c.logger, err, "failed to retrieve target layouts", zap.String("instance_url", tgtAuth.InstanceURL))
			return nil, err
		}
	}

	rows := make([]models.CompareRow, 0, len(names))
	summaries := make([]models.LayoutSummary, 0, len(names))
	for _, name := range names {
		row, ls := c.classify(name, srcLayouts, tgtLayouts)
		rows = append(rows, row)
		summaries = append(summaries, ls)
	}

	csvPath, err := c.writeReport(rows, req.Output)
	if err != nil {
		utils.LogError(c.logger, err, "failed to write csv report")
		return nil, err
	}

	summary := &models.RunSummary{
		RunID:        uuid.NewString(),
		Message:      fmt.Sprintf("Compared %d layout(s). CSV report saved.", len(names)),
		CSVFile:      csvPath,
		TotalLayouts: len(names),
		SameOrg:      sameOrg,
		SourceOrg:    srcAuth.InstanceURL,
		TargetOrg:    tgtAuth.InstanceURL,
		APIVersion:   srcAuth.APIVersion,
		Summary:      summaries,
	}
	for _, ls := range summaries {
		switch ls.Status {
		case models.SummaryCompared:
			summary.Compared++
		case models.SummaryParseError:
			summary.Errors++
		default:
			summary.NotFound++
		}
	}

	c.printSummary(summary)

	c.logger.Info("layout comparison completed",
		zap.String("run_id", summary.RunID),
		zap.Int("total", summary.TotalLayouts),
		zap.Int("compared", summary.Compared),
		zap.Int("not_found", summary.NotFound),
		zap.Int("errors", summary.Errors),
		zap.String("csv", csvPath))

	return summary, nil
}

// classify maps one requested layout name onto its terminal row status.
// This is a pure classification over the two retrieved maps; any retry
// logic belongs to the transport, never here.
func (c *Compare) classify(name string, srcLayouts, tgtLayouts map[string]string) (models.CompareRow, models.LayoutSummary) {
	srcXML, srcOK := srcLayouts[name]
	tgtXML, tgtOK := tgtLayouts[name]

	switch {
	case !srcOK && !tgtOK:
		return models.CompareRow{SourceLayoutName: name, TargetLayoutName: name, Status: models.StatusNotFoundInTwo},
			models.LayoutSummary{Layout: name, Status: models.SummaryNotFoundBoth}
	case !srcOK:
		return models.CompareRow{SourceLayoutName: name, TargetLayoutName: name, Status: models.StatusSourceNotFound},
			models.LayoutSummary{Layout: name, Status: models.SummarySourceNotFound}
	case !tgtOK:
		return models.CompareRow{SourceLayoutName: name, TargetLayoutName: name, Status: models.StatusTargetNotFound},
			models.LayoutSummary{Layout: name, Status: models.SummaryTargetNotFound}
	}

	srcModel, err := layout.Parse(srcXML)
	if err == nil {
		var tgtModel *models.Layout
		tgtModel, err = layout.Parse(tgtXML)
		if err == nil {
			diff := layout.Diff(srcModel, tgtModel)
			return models.CompareRow{SourceLayoutName: name, TargetLayoutName: name, Status: models.StatusCompared, Diff: &diff},
				models.LayoutSummary{
					Layout:              name,
					Status:              models.SummaryCompared,
					FieldsMissing:       len(diff.FieldsMissingInTarget),
					FieldsExtra:         len(diff.FieldsExtraInTarget),
					SectionsMissing:     len(diff.SectionsMissingInTarget),
					SectionsExtra:       len(diff.SectionsExtraInTarget),
					RelatedListsMissing: len(diff.RelatedListsMissingInTarget),
					RelatedListsExtra:   len(diff.RelatedListsExtraInTarget),
				}
		}
	}

	c.logger.Warn("layout xml failed to parse", zap.String("layout", name), zap.Error(err))
	return models.CompareRow{SourceLayoutName: name, TargetLayoutName: name, Status: models.ParseErrorStatus(err.Error())},
		models.LayoutSummary{Layout: name, Status: models.SummaryParseError, Error: err.Error()}
}
