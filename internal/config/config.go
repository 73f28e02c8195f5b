package config

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/systmms/devkit/internal/logging"
	"github.com/systmms/devkit/internal/profiles"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultProfile is used when --profile is not given.
const DefaultProfile = "default"

// Config holds the runtime configuration shared by all commands. It is
// filled in by the root command before any subcommand runs.
type Config struct {
	Logger      *logging.Logger
	ProfileName string
	ConfigDir   string // overrides ~/.devkit when set
	Output      string
	Debug       bool
	NoColor     bool

	// Stdout receives command results. Diagnostics go through Logger.
	Stdout io.Writer

	// HTTPClient is used for API requests; nil means a default client.
	HTTPClient *http.Client
}

// ProfilePath returns the location of the profile file.
func (c *Config) ProfilePath() (string, error) {
	return profiles.Path(c.ConfigDir)
}

// Out returns the result writer, defaulting to os.Stdout.
func (c *Config) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// Log returns the logger, creating a quiet one if none was configured.
func (c *Config) Log() *logging.Logger {
	if c.Logger == nil {
		c.Logger = logging.New(c.Debug, c.NoColor)
	}
	return c.Logger
}

// ValidateOutput normalizes and checks the output format.
func (c *Config) ValidateOutput() error {
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.Output == "" {
		c.Output = OutputText
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use text, json or yaml)", c.Output)
}
