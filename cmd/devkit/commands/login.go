package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/systmms/devkit/internal/config"
	dserrors "github.com/systmms/devkit/internal/errors"
	"github.com/systmms/devkit/internal/keychain"
	"github.com/systmms/devkit/internal/profiles"
	"github.com/systmms/devkit/internal/validation"
)

// NewLoginCommand creates the 'login' command. It only touches the local
// profile file; no request is made to the service.
func NewLoginCommand(cfg *config.Config) *cobra.Command {
	var (
		baseURL     string
		apiKey      string
		keychainRef string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save service credentials under a profile",
		Long: `Save the service URL and API key for a profile in ~/.devkit/config.json.

An existing profile with the same name is replaced. Trailing slashes are
removed from the URL.

Examples:
  devkit login --url https://api.example.com --api-key $DEVKIT_KEY
  devkit login -p staging -u https://staging.example.com -a $KEY
  devkit login --url https://api.example.com --api-key-from-keychain devkit/default`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := apiKey
			if keychainRef != "" {
				var err error
				key, err = keychain.Lookup(keychain.OSReader{}, keychainRef)
				if err != nil {
					return err
				}
			}
			if key == "" {
				return dserrors.UserError{
					Message:    "API key cannot be empty",
					Suggestion: "Pass --api-key or --api-key-from-keychain",
				}
			}

			path, err := cfg.ProfilePath()
			if err != nil {
				return err
			}
			store, err := profiles.Load(path)
			if err != nil {
				return err
			}

			profile := profiles.Profile{
				Name:    profileName(cfg),
				BaseURL: strings.TrimRight(baseURL, "/"),
				APIKey:  key,
			}
			cfg.Log().Protect(key)
			for _, warning := range validation.CheckLogin(profile.BaseURL, key).Warnings {
				cfg.Log().Warn("%s", warning)
			}
			store.Upsert(profile)

			if err := profiles.Save(path, store); err != nil {
				return err
			}
			cfg.Log().Debug("Wrote %d profile(s) to %s", len(store.Profiles), path)

			result := map[string]string{"profile": profile.Name, "base_url": profile.BaseURL}
			return render(cfg, result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Saved profile '%s'\n", profile.Name)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&baseURL, "url", "u", "", "Service base URL")
	cmd.Flags().StringVarP(&apiKey, "api-key", "a", "", "API key")
	cmd.Flags().StringVar(&keychainRef, "api-key-from-keychain", "", "Read the API key from the OS keychain (service/account)")
	_ = cmd.MarkFlagRequired("url")
	cmd.MarkFlagsOneRequired("api-key", "api-key-from-keychain")
	cmd.MarkFlagsMutuallyExclusive("api-key", "api-key-from-keychain")

	return cmd
}
