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

const defaultRecentDays = 7

// newRotationCommands returns the rotation history and reporting commands
// mounted under 'secrets'.
func newRotationCommands(cfg *config.Config) []*cobra.Command {
	return []*cobra.Command{
		newRotationHistoryCommand(cfg, "rotations SECRET_ID", "Show the rotation history of a secret", api.SecretRotationsPath),
		newRotationHistoryCommand(cfg, "app-rotations APP", "Show rotations of all secrets of an application", api.ApplicationRotationsPath),
		newRecentRotationsCommand(cfg),
		newValidateCommand(cfg),
		newStatsCommand(cfg),
		newRotateDueCommand(cfg),
	}
}

func newRotationHistoryCommand(cfg *config.Config, use, short string, path func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRotations(cmd, cfg, path(args[0]))
		},
	}
}

func newRecentRotationsCommand(cfg *config.Config) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show rotations of the last N days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRotations(cmd, cfg, api.RecentRotationsPath(days))
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", defaultRecentDays, "Look-back window in days")

	return cmd
}

func listRotations(cmd *cobra.Command, cfg *config.Config, path string) error {
	return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
		rotations, err := apiclient.Get[[]api.SecretRotation](ctx, c, path)
		if err != nil {
			return err
		}
		return render(cfg, rotations, func(w io.Writer) error {
			for _, r := range rotations {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.SecretKey, r.Status, r.RotationDate); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func newValidateCommand(cfg *config.Config) *cobra.Command {
	var application string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report secrets that need rotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := api.ValidateSecretsPath(optionalString(cmd.Flags(), "application", application))
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Get[api.ValidationResult](ctx, c, path)
				if err != nil {
					return err
				}
				return render(cfg, result, func(w io.Writer) error {
					details, err := compactJSON(result.Details)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(w, "needsRotation: %d\nexpiringSoon: %d\ndetails: %s\n",
						len(result.NeedsRotation), len(result.ExpiringSoon), details)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&application, "application", "a", "", "Only this application")

	return cmd
}

func newStatsCommand(cfg *config.Config) *cobra.Command {
	var application string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rotation statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := api.RotationStatsPath(optionalString(cmd.Flags(), "application", application))
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				stats, err := apiclient.Get[api.RotationStats](ctx, c, path)
				if err != nil {
					return err
				}
				return render(cfg, stats, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "total=%d success=%d failed=%d manual=%d auto=%d rate=%.2f\n",
						stats.TotalRotations, stats.SuccessfulRotations, stats.FailedRotations,
						stats.ManualRotations, stats.AutomaticRotations, stats.SuccessRate)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&application, "application", "a", "", "Only this application")

	return cmd
}

func newRotateDueCommand(cfg *config.Config) *cobra.Command {
	var application string

	cmd := &cobra.Command{
		Use:   "rotate-due",
		Short: "Ask the service to rotate every secret that is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := api.RotateDuePath(optionalString(cmd.Flags(), "application", application))
			return withClient(cmd, cfg, func(ctx context.Context, c *apiclient.Client) error {
				result, err := apiclient.Post[api.Opaque](ctx, c, path, api.EmptyRequest{})
				if err != nil {
					return err
				}
				return render(cfg, result, func(w io.Writer) error {
					line, err := compactJSON(result)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(w, line)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&application, "application", "a", "", "Only this application")

	return cmd
}
