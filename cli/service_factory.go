package cli

import (
	"context"
	"errors"

	"go.orgdiff.io/orgdiff/config"
	"go.orgdiff.io/orgdiff/pkg/platform/metadata"
	"go.orgdiff.io/orgdiff/pkg/platform/orgstore"
	"go.orgdiff.io/orgdiff/pkg/service/compare"
	"go.uber.org/zap"
)

type serviceProvider struct {
	logger *zap.Logger
	config *config.Config
}

func NewServiceProvider(logger *zap.Logger, conf *config.Config) *serviceProvider {
	return &serviceProvider{
		logger: logger,
		config: conf,
	}
}

func (n *serviceProvider) GetService(_ context.Context, cmd string) (interface{}, error) {
	switch cmd {
	case "compare", "mcp":
		orgs := orgstore.New(n.logger, n.config.Compare.AuthFile, n.config.Compare.APIVersion)
		client := metadata.NewClient(n.logger, metadata.WithPollPolicy(metadata.PollPolicy{
			Interval: n.config.Compare.PollInterval,
			Deadline: n.config.Compare.RetrieveTimeout,
		}))
		return compare.New(n.logger, n.config, orgs, client), nil
	default:
		return nil, errors.New("invalid command")
	}
}
