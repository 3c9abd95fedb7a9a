package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"go.orgdiff.io/orgdiff/cli"
	"go.orgdiff.io/orgdiff/config"
	"go.orgdiff.io/orgdiff/utils"
	"go.orgdiff.io/orgdiff/utils/log"
)

// version is injected during build by ldflags.
var version string
var dsn string

func main() {
	if version == "" {
		version = "dev"
	}
	utils.Version = version

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		fmt.Println("could not initialize sentry:", err)
	}

	logger, err := log.New()
	if err != nil {
		fmt.Println("failed to start the logger for the cli:", err)
		os.Exit(1)
	}
	defer utils.HandlePanic(logger)
	defer sentry.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf := config.New()
	rootCmd := cli.Root(ctx, logger, conf)
	if rootCmd == nil {
		os.Exit(1)
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
