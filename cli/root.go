package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.orgdiff.io/orgdiff/config"
	"go.orgdiff.io/orgdiff/pkg/models"
	"go.orgdiff.io/orgdiff/utils"
	"go.orgdiff.io/orgdiff/utils/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootExamples = `
  Compare layouts between two connected orgs:
	orgdiff compare -l "Account-Account Layout,Contact-Contact Layout" --source-org prod --target-org uat

  Compare against the active org, custom report name:
	orgdiff compare -l "Case-Case Layout" --target-org uat -o layout_audit_q1.csv

  Serve the comparison as an MCP tool on stdio:
	orgdiff mcp
`

func Root(ctx context.Context, logger *zap.Logger, conf *config.Config) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:     "orgdiff",
		Short:   "orgdiff compares Salesforce page layouts between orgs",
		Example: rootExamples,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfgPath := viper.GetString("configPath"); cfgPath != "" {
				viper.SetConfigFile(cfgPath)
				if err := viper.ReadInConfig(); err != nil {
					utils.LogError(logger, err, "failed to read the config file", zap.String("config_path", cfgPath))
					return err
				}
			}
			if err := viper.Unmarshal(conf); err != nil {
				utils.LogError(logger, err, "failed to unmarshal the config")
				return err
			}
			if conf.Debug {
				l, err := log.ChangeLogLevel(zapcore.DebugLevel)
				if err != nil {
					utils.LogError(logger, err, "failed to change log level")
					return err
				}
				*logger = *l
			}
			models.IsAnsiDisabled = conf.DisableANSI
			return nil
		},
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := setRootFlags(logger, rootCmd, conf); err != nil {
		return nil
	}

	serviceFactory := NewServiceProvider(logger, conf)
	for _, hook := range Registered {
		if c := hook(ctx, logger, conf, serviceFactory); c != nil {
			rootCmd.AddCommand(c)
		}
	}
	return rootCmd
}

func setRootFlags(logger *zap.Logger, cmd *cobra.Command, conf *config.Config) error {
	cmd.PersistentFlags().Bool("debug", conf.Debug, "Run in debug mode")
	cmd.PersistentFlags().Bool("disableANSI", conf.DisableANSI, "Disable colored terminal output")
	cmd.PersistentFlags().String("configPath", conf.ConfigPath, "Path to the orgdiff configuration file")

	err := viper.BindPFlags(cmd.PersistentFlags())
	if err != nil {
		logger.Error("failed to bind flags to config", zap.Error(err))
		return err
	}
	return nil
}
