// Package permissions checks that credential files on disk are private to
// the current user.
package permissions

import (
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/systmms/devkit/internal/logging"
)

// FileResult is the outcome of a file permission check.
type FileResult struct {
	Allowed bool        `json:"allowed"`
	Reason  string      `json:"reason"`
	Mode    fs.FileMode `json:"mode"`
}

// Checker inspects credential file modes.
type Checker struct {
	logger *logging.Logger
}

// NewChecker creates a checker that reports findings through logger.
func NewChecker(logger *logging.Logger) *Checker {
	return &Checker{logger: logger}
}

// CheckPrivateFile reports whether path is readable or writable by group
// or others. A missing file is allowed. Mode bits are not checked on
// Windows.
func (c *Checker) CheckPrivateFile(path string) (*FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileResult{Allowed: true, Reason: "File does not exist"}, nil
		}
		return nil, err
	}

	mode := info.Mode().Perm()
	if runtime.GOOS == "windows" {
		return &FileResult{Allowed: true, Reason: "Mode bits not enforced on windows", Mode: mode}, nil
	}
	if mode&0o077 != 0 {
		return &FileResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is accessible by other users (mode %04o)", path, mode),
			Mode:    mode,
		}, nil
	}
	return &FileResult{Allowed: true, Reason: "Private to owner", Mode: mode}, nil
}

// WarnIfShared logs a warning when path is not private. Stat failures are
// logged at debug level only; the caller's own read reports them.
func (c *Checker) WarnIfShared(path string) {
	result, err := c.CheckPrivateFile(path)
	if err != nil {
		c.logger.Debug("Permission check on %s failed: %v", path, err)
		return
	}
	if !result.Allowed {
		c.logger.Warn("%s. Run: chmod 600 %s", result.Reason, path)
	}
}
