package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/systmms/devkit/internal/apiclient"
	"github.com/systmms/devkit/internal/config"
	dserrors "github.com/systmms/devkit/internal/errors"
	"github.com/systmms/devkit/internal/permissions"
	"github.com/systmms/devkit/internal/profiles"
)

// UserAgent is sent with every API request. main sets the version suffix.
var UserAgent = "devkit-cli"

// resolveProfile loads the profile store and looks up the active profile.
func resolveProfile(cfg *config.Config) (profiles.Profile, error) {
	path, err := cfg.ProfilePath()
	if err != nil {
		return profiles.Profile{}, err
	}

	store, err := profiles.Load(path)
	if err != nil {
		return profiles.Profile{}, err
	}
	permissions.NewChecker(cfg.Log()).WarnIfShared(path)

	name := profileName(cfg)
	profile, ok := store.Get(name)
	if !ok {
		return profiles.Profile{}, dserrors.ConfigError{
			Field:      "profile",
			Value:      name,
			Message:    fmt.Sprintf("Profile '%s' not found", name),
			Suggestion: fmt.Sprintf("Run 'devkit login --profile %s --url <URL> --api-key <KEY>'", name),
		}
	}
	cfg.Log().Debug("Using profile '%s' (%s) from %s", profile.Name, profile.BaseURL, path)
	return profile, nil
}

// withClient builds an API client for the active profile and runs fn with
// it. No client is built, and nothing is sent, if the profile is missing.
func withClient(cmd *cobra.Command, cfg *config.Config, fn func(ctx context.Context, c *apiclient.Client) error) error {
	profile, err := resolveProfile(cfg)
	if err != nil {
		return err
	}

	opts := []apiclient.Option{
		apiclient.WithLogger(cfg.Log()),
		apiclient.WithUserAgent(UserAgent),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := apiclient.New(profile.BaseURL, profile.APIKey, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	err = fn(ctx, client)
	logRequestSummary(cfg, client)
	return err
}

func logRequestSummary(cfg *config.Config, client *apiclient.Client) {
	logger := cfg.Log()
	if !logger.DebugEnabled() {
		return
	}

	summary, err := client.Metrics().Summary()
	if err != nil {
		logger.Debug("Request metrics unavailable: %v", err)
		return
	}

	parts := make([]string, 0, len(summary))
	for _, s := range summary {
		parts = append(parts, fmt.Sprintf("%s %s x%d %.3fs", s.Method, s.Code, s.Count, s.Seconds))
	}
	if len(parts) == 0 {
		parts = append(parts, "no responses")
	}
	logger.Debug("Requests: %s", strings.Join(parts, ", "))
}

func profileName(cfg *config.Config) string {
	if cfg.ProfileName == "" {
		return config.DefaultProfile
	}
	return cfg.ProfileName
}

// optionalString returns a pointer to value when the flag was set, so an
// explicitly empty value stays distinct from an absent one.
func optionalString(flags *pflag.FlagSet, flag, value string) *string {
	if !flags.Changed(flag) {
		return nil
	}
	return &value
}
