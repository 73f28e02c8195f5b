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

// NewAppsCommand creates the parent 'apps' command
func NewAppsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage applications",
		Long: `List, create, show and update applications registered with the service.

Examples:
  devkit apps list
  devkit apps create billing --owner-email team@example.com -d "Billing API"
  devkit apps show app-123
  devkit apps update app-123 --name billing-v2`,
	}

	cmd.AddCommand(
		newAppsListCommand(cfg),
		newAppsCreateCommand(cfg),
		newAppsShowCommand(cfg),
		newAppsUpdateCommand(cfg),
	)

	return cmd
}

func newAppsListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				apps, err := apiclient.Get[[]api.Application](ctx, c, api.ApplicationsPath())
				if err != nil {
					return err
				}
				return render(cfg, apps, func(w io.Writer) error {
					for _, app := range apps {
						if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", app.ID, app.Name, deref(app.Description)); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
}

func newAppsCreateCommand(cfg *config.Config) *cobra.Command {
	var (
		description string
		ownerEmail  string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := api.CreateApplicationRequest{
				Name:        args[0],
				Description: optionalString(cmd.Flags(), "description", description),
				OwnerEmail:  ownerEmail,
			}
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Post[api.Opaque](ctx, c, api.ApplicationsPath(), body)
				if err != nil {
					return err
				}
				return renderMessage(cfg, result, "Application created")
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Application description")
	cmd.Flags().StringVarP(&ownerEmail, "owner-email", "o", "", "Owner email address")
	_ = cmd.MarkFlagRequired("owner-email")

	return cmd
}

func newAppsShowCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				app, err := apiclient.Get[api.Application](ctx, c, api.ApplicationPath(args[0]))
				if err != nil {
					return err
				}
				return render(cfg, app, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", app.ID, app.Name, app.OwnerEmail, app.IsActive)
					return err
				})
			})
		},
	}
}

func newAppsUpdateCommand(cfg *config.Config) *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an application's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := api.UpdateApplicationRequest{
				Name:        optionalString(cmd.Flags(), "name", name),
				Description: optionalString(cmd.Flags(), "description", description),
			}
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Put[api.Opaque](ctx, c, api.ApplicationPath(args[0]), body)
				if err != nil {
					return err
				}
				return renderMessage(cfg, result, "Application updated")
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")

	return cmd
}
