package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.orgdiff.io/orgdiff/config"
	"go.orgdiff.io/orgdiff/pkg/models"
	compareSvc "go.orgdiff.io/orgdiff/pkg/service/compare"
	"go.orgdiff.io/orgdiff/utils"
	"go.uber.org/zap"
)

func init() {
	Register("compare", Compare)
}

func Compare(ctx context.Context, logger *zap.Logger, conf *config.Config, serviceFactory ServiceFactory) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "compare",
		Short:   "compare page layouts between a source and a target org and write a csv diff report",
		Example: `orgdiff compare -l "Account-Account Layout,Contact-Contact Layout" --source-org prod --target-org uat`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := serviceFactory.GetService(ctx, cmd.Name())
			if err != nil {
				utils.LogError(logger, err, "failed to get service", zap.String("command", cmd.Name()))
				return nil
			}
			comparer, ok := svc.(compareSvc.Service)
			if !ok {
				utils.LogError(logger, nil, "service doesn't satisfy compare service interface")
				return nil
			}

			req := models.CompareRequest{
				LayoutNames: splitLayoutNames(conf.Compare.Layouts),
				SourceOrg:   conf.Compare.SourceOrg,
				TargetOrg:   conf.Compare.TargetOrg,
				Output:      conf.Compare.Output,
			}
			if _, err := comparer.Compare(ctx, req); err != nil {
				utils.LogError(logger, err, "failed to compare layouts")
				return nil
			}
			return nil
		},
	}

	cmd.Flags().StringP("layouts", "l", conf.Compare.Layouts, `Comma-separated layout api names in "Object-Layout Name" form`)
	cmd.Flags().String("source-org", conf.Compare.SourceOrg, "Org id of the source org (empty uses the active org)")
	cmd.Flags().String("target-org", conf.Compare.TargetOrg, "Org id of the target org (empty uses the active org)")
	cmd.Flags().StringP("output", "o", conf.Compare.Output, "CSV report filename (defaults to a timestamped name under Documents/)")
	cmd.Flags().String("api-version", conf.Compare.APIVersion, "Metadata api version used when an org's session does not name one")
	cmd.Flags().String("auth-file", conf.Compare.AuthFile, "Path to the org auth file")
	cmd.Flags().Duration("poll-interval", conf.Compare.PollInterval, "Interval between retrieve status polls")
	cmd.Flags().Duration("retrieve-timeout", conf.Compare.RetrieveTimeout, "Wall-clock deadline for one org's retrieve")

	for flag, key := range map[string]string{
		"layouts":          "compare.layouts",
		"source-org":       "compare.sourceOrg",
		"target-org":       "compare.targetOrg",
		"output":           "compare.output",
		"api-version":      "compare.apiVersion",
		"auth-file":        "compare.authFile",
		"poll-interval":    "compare.pollInterval",
		"retrieve-timeout": "compare.retrieveTimeout",
	} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			utils.LogError(logger, err, "failed to bind compare flag", zap.String("flag", flag))
			return nil
		}
	}

	return cmd
}

// splitLayoutNames splits the comma-separated layout list, preserving the
// caller's order and dropping empty segments.
func splitLayoutNames(layouts string) []string {
	var names []string
	for _, n := range strings.Split(layouts, ",") {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
