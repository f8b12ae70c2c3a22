package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.wireline.io/wireline/config"
)

// HookFunc constructs a registered subcommand.
type HookFunc func(ctx context.Context, logger *zap.Logger, conf *config.Config) *cobra.Command

// Registered holds the registered command hooks.
var Registered map[string]HookFunc

func Register(name string, f HookFunc) {
	if Registered == nil {
		Registered = make(map[string]HookFunc)
	}
	Registered[name] = f
}
