package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.wireline.io/wireline/config"
	"go.wireline.io/wireline/utils"
	wlog "go.wireline.io/wireline/utils/log"
)

// Root builds the wireline root command and attaches every registered
// subcommand.
func Root(ctx context.Context, logger *zap.Logger, conf *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "wireline",
		Short:   "wireline - local IPC plumbing for agent/daemon processes",
		Version: utils.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd, logger, conf)
		},
	}
	rootCmd.SetVersionTemplate("wireline {{.Version}}\n")

	rootCmd.PersistentFlags().Bool("debug", conf.Debug, "Run in debug mode")
	rootCmd.PersistentFlags().Bool("disable-ansi", conf.DisableANSI, "Disable colored output")
	rootCmd.PersistentFlags().String("config-path", conf.ConfigPath, "Path to the directory holding wireline.yml")
	rootCmd.PersistentFlags().Bool("trace-sysio", conf.Trace.SysIO, "Trace every platform-layer call")

	for _, hook := range Registered {
		if cmd := hook(ctx, logger, conf); cmd != nil {
			rootCmd.AddCommand(cmd)
		}
	}
	return rootCmd
}

func bindFlags(cmd *cobra.Command, logger *zap.Logger, conf *config.Config) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		utils.LogError(logger, err, "failed to bind flags to viper")
		return err
	}

	configPath := viper.GetString("config-path")
	viper.SetConfigName("wireline")
	viper.SetConfigType("yml")
	viper.AddConfigPath(configPath)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			utils.LogError(logger, err, "failed to read config file",
				zap.String("path", filepath.Join(configPath, "wireline.yml")))
			return err
		}
	}
	if err := viper.Unmarshal(conf); err != nil {
		utils.LogError(logger, err, "failed to unmarshal config")
		return err
	}

	// Explicit flags win over file values.
	if f := cmd.Flags().Lookup("debug"); f != nil && f.Changed {
		conf.Debug = viper.GetBool("debug")
	}
	if f := cmd.Flags().Lookup("disable-ansi"); f != nil && f.Changed {
		conf.DisableANSI = viper.GetBool("disable-ansi")
	}
	if f := cmd.Flags().Lookup("trace-sysio"); f != nil && f.Changed {
		conf.Trace.SysIO = viper.GetBool("trace-sysio")
	}
	conf.ConfigPath = configPath

	if conf.DisableANSI {
		color.NoColor = true
	}
	if conf.Debug || conf.Trace.SysIO {
		rebuilt, err := wlog.ChangeLogLevel(zapcore.DebugLevel)
		if err != nil {
			utils.LogError(logger, err, "failed to switch to debug logging")
			return err
		}
		*logger = *rebuilt
	}
	_ = os.Setenv("WIRELINE_CONFIG_PATH", configPath)
	return nil
}
