package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sentry "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.wireline.io/wireline/cli"
	"go.wireline.io/wireline/config"
	"go.wireline.io/wireline/utils"
	wlog "go.wireline.io/wireline/utils/log"
)

// version is injected during build by ldflags, see the release scripts.
var version string

// dsn enables crash reporting when injected at build time; development
// builds leave it empty.
var dsn string

func main() {
	if version == "" {
		version = "0-dev"
	}
	utils.Version = version

	logger, err := wlog.New()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logger.Debug("could not initialize sentry", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf := config.New()
	rootCmd := cli.Root(ctx, logger, conf)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
