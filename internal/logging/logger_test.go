package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSecretRedaction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "secret is redacted",
			input:    "my-secret-password",
			expected: "[REDACTED]",
		},
		{
			name:     "empty secret is still redacted",
			input:    "",
			expected: "[REDACTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Secret(tt.input).String()
			if result != tt.expected {
				t.Errorf("Secret(%q).String() = %q, want %q", tt.input, result, tt.expected)
			}
			if got := Secret(tt.input).GoString(); got != tt.expected {
				t.Errorf("Secret(%q).GoString() = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoggerDebugMode(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, true)

	logger.Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug output written with debug disabled: %q", buf.String())
	}
	if logger.DebugEnabled() {
		t.Error("DebugEnabled() = true, want false")
	}

	debugLogger := NewWithWriter(&buf, true, true)
	debugLogger.Debug("shown %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") {
		t.Errorf("debug output = %q", buf.String())
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true, true)

	logger.Info("formatted %s message", "info")
	logger.Warn("formatted %s message", "warn")
	logger.Error("formatted %s message", "error")

	out := buf.String()
	for _, want := range []string{"✓ formatted info message", "⚠ formatted warn message", "✗ formatted error message"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("noColor logger emitted ANSI escapes: %q", out)
	}
}

func TestLoggerColor(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, false, false).Error("boom")
	if !strings.Contains(buf.String(), "\033[31m") {
		t.Errorf("expected colored output, got %q", buf.String())
	}
}

func TestLoggerProtect(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true, true)
	logger.Protect("k1-very-secret")

	logger.Debug("Authorization: Bearer %s", "k1-very-secret")

	if strings.Contains(buf.String(), "k1-very-secret") {
		t.Errorf("protected value leaked: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Bearer [REDACTED]") {
		t.Errorf("expected redaction marker, got %q", buf.String())
	}
}

// TestRedactFunction tests the Redact utility function
func TestRedactFunction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		secrets  []string
		expected string
	}{
		{
			name:     "single secret redacted",
			input:    "The password is secret123",
			secrets:  []string{"secret123"},
			expected: "The password is [REDACTED]",
		},
		{
			name:     "multiple secrets redacted",
			input:    "User admin with password secret123 and API key abc123",
			secrets:  []string{"admin", "secret123", "abc123"},
			expected: "User [REDACTED] with password [REDACTED] and API key [REDACTED]",
		},
		{
			name:     "empty secret ignored",
			input:    "This has no secrets",
			secrets:  []string{""},
			expected: "This has no secrets",
		},
		{
			name:     "short secret ignored",
			input:    "Short secret: ab",
			secrets:  []string{"ab"},
			expected: "Short secret: ab", // Too short to redact
		},
		{
			name:     "three character secret left in place",
			input:    "pin abc in abcdef",
			secrets:  []string{"abc"},
			expected: "pin abc in abcdef",
		},
		{
			name:     "four character secret redacted",
			input:    "pin abcd in abcdef",
			secrets:  []string{"abcd"},
			expected: "pin [REDACTED] in [REDACTED]ef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Redact(tt.input, tt.secrets)
			if result != tt.expected {
				t.Errorf("Redact() = %q, want %q", result, tt.expected)
			}
		})
	}
}
