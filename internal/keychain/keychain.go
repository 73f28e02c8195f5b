// Package keychain reads login credentials from the OS keychain (macOS
// Keychain, Secret Service on Linux, Windows Credential Manager).
package keychain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	dserrors "github.com/systmms/devkit/internal/errors"
)

// ErrItemNotFound is returned when no item matches the reference.
var ErrItemNotFound = errors.New("keychain item not found")

// Reader abstracts keychain lookups so commands can be tested without an OS
// keychain.
type Reader interface {
	Query(service, account string) (string, error)
}

// Reference names a keychain item.
type Reference struct {
	Service string
	Account string
}

func (r Reference) String() string {
	return r.Service + "/" + r.Account
}

// ParseReference parses "service/account". The account may itself contain
// slashes; the service may not.
func ParseReference(s string) (Reference, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Reference{}, fmt.Errorf("keychain reference must be service/account format, got: %s", s)
	}

	service := strings.TrimSpace(parts[0])
	account := strings.TrimSpace(parts[1])
	if service == "" {
		return Reference{}, fmt.Errorf("keychain reference service cannot be empty")
	}
	if account == "" {
		return Reference{}, fmt.Errorf("keychain reference account cannot be empty")
	}
	return Reference{Service: service, Account: account}, nil
}

// OSReader queries the platform keychain through go-keyring.
type OSReader struct{}

// Query returns the stored secret for service/account.
func (OSReader) Query(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrItemNotFound
		}
		return "", err
	}
	return secret, nil
}

// Lookup resolves ref through r and wraps failures as user errors.
func Lookup(r Reader, ref string) (string, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return "", dserrors.UserError{
			Message:    "Invalid keychain reference",
			Details:    err.Error(),
			Suggestion: "Use --api-key-from-keychain <service>/<account>",
			Err:        err,
		}
	}

	secret, err := r.Query(parsed.Service, parsed.Account)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return "", dserrors.UserError{
				Message:    fmt.Sprintf("No keychain item for %s", parsed),
				Suggestion: "Store the API key in the keychain first, or pass --api-key",
				Err:        err,
			}
		}
		return "", dserrors.UserError{
			Message:    "Failed to read from the OS keychain",
			Details:    err.Error(),
			Suggestion: "Unlock the keychain, or pass --api-key",
			Err:        err,
		}
	}
	if strings.TrimSpace(secret) == "" {
		return "", dserrors.UserError{
			Message:    fmt.Sprintf("Keychain item %s is empty", parsed),
			Suggestion: "Store a non-empty API key in the keychain",
		}
	}
	return secret, nil
}
