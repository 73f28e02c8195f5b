package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilePath(t *testing.T) {
	t.Run("override directory", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &Config{ConfigDir: dir}

		path, err := cfg.ProfilePath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.json"), path)
	})

	t.Run("home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		cfg := &Config{}

		path, err := cfg.ProfilePath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".devkit", "config.json"), path)
	})
}

func TestValidateOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: OutputText},
		{in: "text", want: OutputText},
		{in: "JSON", want: OutputJSON},
		{in: " yaml ", want: OutputYAML},
		{in: "table", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{Output: tt.in}
			err := cfg.ValidateOutput()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Output)
		})
	}
}

func TestOutAndLogDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Equal(t, os.Stdout, cfg.Out())
	assert.NotNil(t, cfg.Log())
	assert.Same(t, cfg.Log(), cfg.Log())

	var buf bytes.Buffer
	cfg.Stdout = &buf
	assert.Same(t, &buf, cfg.Out())
}
