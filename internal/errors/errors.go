package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError is a local configuration failure: unresolvable home directory,
// malformed profile file, or a reference to a profile that does not exist.
// It never involves the network.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
	Err        error
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

func (e ConfigError) Unwrap() error {
	return e.Err
}

// StorageError is a read or write failure on the local profile file.
type StorageError struct {
	Op   string // "read", "write", "mkdir", "rename"
	Path string
	Err  error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("profile store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e StorageError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce ConfigError
	return errors.As(err, &ce)
}

// IsStorageError reports whether err is, or wraps, a StorageError.
func IsStorageError(err error) bool {
	var se StorageError
	return errors.As(err, &se)
}

// NetworkSuggestion returns a hint for common transport failures, or "".
func NetworkSuggestion(err error) string {
	if err == nil {
		return ""
	}
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "no such host"):
		return "Check the profile URL with 'devkit login --url <url>'"
	case strings.Contains(errStr, "connection refused"):
		return "Unable to connect. Check that the service is running and reachable"
	case strings.Contains(errStr, "certificate"), strings.Contains(errStr, "tls"):
		return "TLS handshake failed. Verify the service certificate and URL scheme"
	case strings.Contains(errStr, "timeout"):
		return "The operation timed out. Check your network connection and try again"
	}
	return ""
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	if _, ok := err.(UserError); ok {
		return err
	}
	if _, ok := err.(ConfigError); ok {
		return err
	}
	if _, ok := err.(StorageError); ok {
		return err
	}

	// Only local filesystem permission failures; a remote rejection that
	// mentions permissions in its body is left as is.
	if errors.Is(err, fs.ErrPermission) {
		return UserError{
			Message:    "Permission denied",
			Details:    err.Error(),
			Suggestion: "Check permissions on ~/.devkit and its contents",
			Err:        err,
		}
	}

	// Return original error if we can't simplify it
	return err
}
