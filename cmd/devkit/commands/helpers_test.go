package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/systmms/devkit/internal/config"
	"github.com/systmms/devkit/internal/logging"
	"github.com/systmms/devkit/internal/profiles"
)

type response struct {
	status int
	body   string
}

type request struct {
	Method string
	URI    string
	Auth   string
	Body   string
}

// fakeAPI serves canned responses keyed by "METHOD /request/uri" and
// records every request it receives.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]response
	requests []request
}

func newFakeAPI(t *testing.T, routes map[string]response) *fakeAPI {
	t.Helper()

	f := &fakeAPI{routes: routes}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		uri := r.URL.RequestURI()

		f.mu.Lock()
		f.requests = append(f.requests, request{
			Method: r.Method,
			URI:    uri,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		resp, ok := f.routes[r.Method+" "+uri]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, "no route for "+r.Method+" "+uri)
			return
		}
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *fakeAPI) Requests() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request(nil), f.requests...)
}

// newTestConfig returns a config whose profile file lives in a temp dir and
// whose output is captured.
func newTestConfig(t *testing.T) (*config.Config, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	cfg := &config.Config{
		Logger:      logging.NewWithWriter(io.Discard, false, true),
		ProfileName: config.DefaultProfile,
		ConfigDir:   t.TempDir(),
		Output:      config.OutputText,
		Stdout:      out,
	}
	return cfg, out
}

// seedProfile stores a profile pointing at baseURL with key k1.
func seedProfile(t *testing.T, cfg *config.Config, name, baseURL string) string {
	t.Helper()

	path, err := cfg.ProfilePath()
	require.NoError(t, err)
	store := &profiles.Store{}
	store.Upsert(profiles.Profile{Name: name, BaseURL: baseURL, APIKey: "k1"})
	require.NoError(t, profiles.Save(path, store))
	return path
}

func execute(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}
