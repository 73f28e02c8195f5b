package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/systmms/devkit/internal/apiclient"
	"github.com/systmms/devkit/internal/config"
	"github.com/systmms/devkit/internal/secure"
	"github.com/systmms/devkit/pkg/api"
)

const defaultRotationPolicy = "MANUAL"

// NewSecretsCommand creates the parent 'secrets' command
func NewSecretsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage secrets and their rotation",
		Long: `Manage application secrets stored by the service.

Values are encrypted and rotated server-side; devkit only forwards requests.

Examples:
  devkit secrets list app-123 -e env-prod
  devkit secrets get sec-9
  devkit secrets create DB_PASSWORD <encrypted> -a app-123 -r MONTHLY
  devkit secrets rotate sec-9 <new-encrypted> alice
  devkit secrets stats -a app-123`,
	}

	cmd.AddCommand(
		newSecretsListCommand(cfg),
		newSecretsGetCommand(cfg),
		newSecretsCreateCommand(cfg),
		newSecretsRotateCommand(cfg),
		newSecretsDeactivateCommand(cfg),
		newSecretsDeleteCommand(cfg),
	)
	cmd.AddCommand(newRotationCommands(cfg)...)

	return cmd
}

func newSecretsListCommand(cfg *config.Config) *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "list APP",
		Short: "List secrets of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := api.ApplicationSecretsPath(args[0], optionalString(cmd.Flags(), "environment", env))
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				secrets, err := apiclient.Get[[]api.Secret](ctx, c, path)
				if err != nil {
					return err
				}
				return render(cfg, secrets, func(w io.Writer) error {
					for _, s := range secrets {
						if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Key, deref(s.Description)); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().StringVarP(&env, "environment", "e", "", "Only secrets of this environment")

	return cmd
}

func newSecretsGetCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Print the decrypted value of a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				secret, err := apiclient.Get[api.SecretWithDecrypted](ctx, c, api.DecryptSecretPath(args[0]))
				if err != nil {
					return err
				}
				cfg.Log().Protect(secret.DecryptedValue)

				value, err := secure.NewSecureString(secret.DecryptedValue)
				if err != nil {
					return fmt.Errorf("failed to protect secret value: %w", err)
				}
				defer value.Destroy()

				return render(cfg, secret, func(w io.Writer) error {
					if _, err := value.WriteTo(w); err != nil {
						return err
					}
					_, err := fmt.Fprintln(w)
					return err
				})
			})
		},
	}
}

func newSecretsCreateCommand(cfg *config.Config) *cobra.Command {
	var (
		description string
		application string
		environment string
		policy      string
	)

	cmd := &cobra.Command{
		Use:   "create KEY ENCRYPTED_VALUE",
		Short: "Create a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := api.CreateSecretRequest{
				Key:            args[0],
				EncryptedValue: args[1],
				Description:    optionalString(cmd.Flags(), "description", description),
				ApplicationID:  application,
				EnvironmentID:  optionalString(cmd.Flags(), "environment", environment),
				RotationPolicy: policy,
			}
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Post[api.Opaque](ctx, c, api.SecretsPath(), body)
				if err != nil {
					return err
				}
				return renderMessage(cfg, result, "Secret created")
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Secret description")
	cmd.Flags().StringVarP(&application, "application", "a", "", "Application ID")
	cmd.Flags().StringVarP(&environment, "environment", "e", "", "Environment ID")
	cmd.Flags().StringVarP(&policy, "rotation-policy", "r", defaultRotationPolicy, "Rotation policy")
	_ = cmd.MarkFlagRequired("application")

	return cmd
}

func newSecretsRotateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rotate ID NEW_VALUE ROTATED_BY",
		Short: "Replace a secret's value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := api.RotateSecretRequest{NewEncryptedValue: args[1], RotatedBy: args[2]}
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Post[api.Opaque](ctx, c, api.RotateSecretPath(args[0]), body)
				if err != nil {
					return err
				}
				return renderMessage(cfg, result, "Secret rotated")
			})
		},
	}
}

func newSecretsDeactivateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Post[api.Opaque](ctx, c, api.DeactivateSecretPath(args[0]), api.EmptyRequest{})
				if err != nil {
					return err
				}
				return renderMessage(cfg, result, "Secret deactivated")
			})
		},
	}
}

func newSecretsDeleteCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				if err := c.Delete(ctx, api.SecretPath(args[0])); err != nil {
					return err
				}
				return renderMessage(cfg, map[string]any{"id": args[0], "deleted": true}, "Secret deleted")
			})
		},
	}
}
