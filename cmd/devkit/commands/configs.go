package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/systmms/devkit/internal/apiclient"
	"github.com/systmms/devkit/internal/config"
	"github.com/systmms/devkit/pkg/api"
)

const defaultConfigType = "STRING"

// NewConfigCommand creates the parent 'config' command for environment
// configuration entries.
func NewConfigCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage environment configuration values",
		Long: `Read and write key/value configuration entries of an environment.

Examples:
  devkit config list -e env-prod
  devkit config get -e env-prod DB_HOST
  devkit config set -e env-prod DB_HOST db.internal
  devkit config update cfg-42 db2.internal --description "failover host"
  devkit config delete cfg-42`,
	}

	cmd.AddCommand(
		newConfigListCommand(cfg),
		newConfigGetCommand(cfg),
		newConfigSetCommand(cfg),
		newConfigUpdateCommand(cfg),
		newConfigDeleteCommand(cfg),
	)

	return cmd
}

func newConfigListCommand(cfg *config.Config) *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configuration entries of an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				entries, err := apiclient.Get[[]api.Configuration](ctx, c, api.EnvironmentConfigurationsPath(env))
				if err != nil {
					return err
				}
				return render(cfg, entries, func(w io.Writer) error {
					for _, e := range entries {
						if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Key, e.Value); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().StringVarP(&env, "environment", "e", "", "Environment ID")
	_ = cmd.MarkFlagRequired("environment")

	return cmd
}

func newConfigGetCommand(cfg *config.Config) *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of one configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				entry, err := apiclient.Get[api.Configuration](ctx, c, api.EnvironmentConfigurationKeyPath(env, args[0]))
				if err != nil {
					return err
				}
				return render(cfg, entry, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, entry.Value)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&env, "environment", "e", "", "Environment ID")
	_ = cmd.MarkFlagRequired("environment")

	return cmd
}

func newConfigSetCommand(cfg *config.Config) *cobra.Command {
	var (
		env        string
		configType string
		secret     bool
	)

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Create a configuration entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := api.CreateConfigurationRequest{
				Key:           args[0],
				Value:         args[1],
				Type:          configType,
				IsSecret:      secret,
				EnvironmentID: env,
			}
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Post[api.Opaque](ctx, c, api.ConfigurationsPath(), body)
				if err != nil {
					return err
				}
				return renderMessage(cfg, result, "Configuration saved")
			})
		},
	}

	cmd.Flags().StringVarP(&env, "environment", "e", "", "Environment ID")
	cmd.Flags().StringVar(&configType, "config-type", defaultConfigType, "Value type")
	cmd.Flags().BoolVar(&secret, "secret", false, "Mark the value as secret")
	_ = cmd.MarkFlagRequired("environment")

	return cmd
}

func newConfigUpdateCommand(cfg *config.Config) *cobra.Command {
	var (
		configType  string
		description string
		secret      bool
	)

	cmd := &cobra.Command{
		Use:   "update ID VALUE",
		Short: "Update a configuration entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := api.UpdateConfigurationRequest{
				Value:       args[1],
				Type:        configType,
				Description: optionalString(cmd.Flags(), "description", description),
				IsSecret:    secret,
			}
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Put[api.Opaque](ctx, c, api.ConfigurationPath(args[0]), body)
				if err != nil {
					return err
				}
				return renderMessage(cfg, result, "Configuration updated")
			})
		},
	}

	cmd.Flags().StringVar(&configType, "config-type", defaultConfigType, "Value type")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().BoolVar(&secret, "secret", false, "Mark the value as secret")

	return cmd
}

func newConfigDeleteCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a configuration entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				if err := c.Delete(ctx, api.ConfigurationPath(args[0])); err != nil {
					return err
				}
				return renderMessage(cfg, map[string]any{"id": args[0], "deleted": true}, "Configuration deleted")
			})
		},
	}
}
