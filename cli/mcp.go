package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.orgdiff.io/orgdiff/config"
	mcpSvc "go.orgdiff.io/orgdiff/pkg/mcp"
	compareSvc "go.orgdiff.io/orgdiff/pkg/service/compare"
	"go.orgdiff.io/orgdiff/utils"
	"go.uber.org/zap"
)

func init() {
	Register("mcp", MCP)
}

func MCP(ctx context.Context, logger *zap.Logger, _ *config.Config, serviceFactory ServiceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "serve the layout comparison as an MCP tool on stdio",
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

			server := mcpSvc.NewServer(&mcpSvc.ServerOptions{
				Logger:   logger,
				Comparer: comparer,
			})
			if err := server.Run(ctx); err != nil && ctx.Err() == nil {
				utils.LogError(logger, err, "mcp server exited with error")
			}
			return nil
		},
	}
}
