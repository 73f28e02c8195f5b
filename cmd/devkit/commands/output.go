package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/systmms/devkit/internal/config"
)

// render writes v in the configured structured format, or calls text for
// the default tab-separated form.
func render(cfg *config.Config, v any, text func(w io.Writer) error) error {
	out := cfg.Out()

	switch cfg.Output {
	case config.OutputJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case config.OutputYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return text(out)
	}
}

// renderMessage prints msg in text mode and result otherwise.
func renderMessage(cfg *config.Config, result any, msg string) error {
	return render(cfg, result, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, msg)
		return err
	})
}

// compactJSON renders an opaque payload on a single line.
func compactJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return string(data), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
