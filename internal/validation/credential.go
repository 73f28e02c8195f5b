// Package validation performs advisory checks on credentials before they are
// saved. Checks never reject input; they return warnings for the caller to
// log.
package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// Result holds the findings of a check. Valid is false only when a finding
// makes the credential unusable as given.
type Result struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Result) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// CheckLogin inspects a service URL and API key about to be stored.
func CheckLogin(baseURL, apiKey string) *Result {
	result := &Result{Valid: true}

	u, err := url.Parse(baseURL)
	switch {
	case err != nil:
		result.Valid = false
		result.warn("URL '%s' cannot be parsed: %v", baseURL, err)
	case u.Scheme != "http" && u.Scheme != "https":
		result.Valid = false
		result.warn("URL '%s' has no http:// or https:// scheme", baseURL)
	case u.Host == "":
		result.Valid = false
		result.warn("URL '%s' has no host", baseURL)
	case u.Scheme == "http" && !isLoopback(u.Hostname()):
		result.warn("URL '%s' uses plain http; the API key will be sent unencrypted", baseURL)
	}
	if err == nil && (u.RawQuery != "" || u.Fragment != "") {
		result.warn("URL '%s' has a query or fragment; request paths are appended after it", baseURL)
	}

	if strings.IndexFunc(apiKey, unicode.IsSpace) >= 0 {
		result.warn("API key '%s' contains whitespace", maskValue(apiKey))
	}

	return result
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// maskValue masks a credential value for safe logging
func maskValue(value string) string {
	if len(value) <= 8 {
		return "***"
	}

	// Show first 3 and last 3 characters
	return value[:3] + "***" + value[len(value)-3:]
}
