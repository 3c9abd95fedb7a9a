package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.orgdiff.io/orgdiff/config"
	"go.uber.org/zap"
)

type HookFunc func(context.Context, *zap.Logger, *config.Config, ServiceFactory) *cobra.Command

// Registered holds the registered command hooks
var Registered map[string]HookFunc

func Register(name string, f HookFunc) {
	if Registered == nil {
		Registered = make(map[string]HookFunc)
	}
	Registered[name] = f
}

// ServiceFactory constructs the service a command runs against.
type ServiceFactory interface {
	GetService(ctx context.Context, cmd string) (interface{}, error)
}
