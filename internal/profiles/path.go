package profiles

import (
	"os"
	"path/filepath"

	dserrors "github.com/systmms/devkit/internal/errors"
)

const (
	// DirName is the per-user directory holding the profile file.
	DirName = ".devkit"
	// FileName is the profile file inside DirName.
	FileName = "config.json"
)

// Path returns the profile file location. A non-empty dir overrides the
// default of ~/.devkit. An unresolvable home directory is a ConfigError;
// there is no fallback location.
func Path(dir string) (string, error) {
	if dir != "" {
		return filepath.Join(dir, FileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", dserrors.ConfigError{
			Field:      "HOME",
			Message:    "cannot resolve home directory for the profile file",
			Suggestion: "Set HOME, or pass --config-dir / DEVKIT_CONFIG_DIR",
			Err:        err,
		}
	}
	return filepath.Join(home, DirName, FileName), nil
}

// DefaultPath returns ~/.devkit/config.json.
func DefaultPath() (string, error) {
	return Path("")
}
