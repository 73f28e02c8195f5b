package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/systmms/devkit/cmd/devkit/commands"
	"github.com/systmms/devkit/internal/config"
	dserrors "github.com/systmms/devkit/internal/errors"
	"github.com/systmms/devkit/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	memguard.CatchInterrupt()
	commands.UserAgent = "devkit-cli/" + version

	err := run(os.Args[1:], os.Stdout)
	memguard.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg := &config.Config{Stdout: stdout}
	rootCmd := newRootCommand(cfg)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DEVKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("profile", config.DefaultProfile)
	v.SetDefault("output", config.OutputText)

	rootCmd := &cobra.Command{
		Use:   "devkit",
		Short: "Command-line client for the devkit secrets and configuration service",
		Long: `devkit talks to a devkit service over its REST API. Credentials are kept
per profile in ~/.devkit/config.json; run 'devkit login' first.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ProfileName = v.GetString("profile")
			cfg.Output = v.GetString("output")
			cfg.ConfigDir = v.GetString("config-dir")
			cfg.Debug = v.GetBool("debug")
			cfg.NoColor = v.GetBool("no-color")
			cfg.Logger = logging.New(cfg.Debug, cfg.NoColor)

			if strings.TrimSpace(cfg.ProfileName) == "" {
				cfg.ProfileName = config.DefaultProfile
			}
			return cfg.ValidateOutput()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("profile", "p", config.DefaultProfile, "Profile to use (env DEVKIT_PROFILE)")
	flags.String("output", config.OutputText, "Output format: text, json, yaml (env DEVKIT_OUTPUT)")
	flags.String("config-dir", "", "Directory holding config.json instead of ~/.devkit (env DEVKIT_CONFIG_DIR)")
	flags.Bool("debug", false, "Enable debug logging (env DEVKIT_DEBUG)")
	flags.Bool("no-color", false, "Disable colored output")
	_ = v.BindPFlags(flags)

	rootCmd.AddCommand(
		commands.NewLoginCommand(cfg),
		commands.NewConfigCommand(cfg),
		commands.NewAppsCommand(cfg),
		commands.NewSecretsCommand(cfg),
	)

	return rootCmd
}
