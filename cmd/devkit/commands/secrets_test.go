package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/devkit/internal/logging"
)

func TestNewSecretsCommand(t *testing.T) {
	t.Parallel()

	cfg, _ := newTestConfig(t)
	cmd := NewSecretsCommand(cfg)

	assert.Equal(t, "secrets", cmd.Use)
	assert.NotEmpty(t, cmd.Long)

	expected := []string{
		"list", "get", "create", "rotate", "deactivate", "delete",
		"rotations", "app-rotations", "validate", "stats", "recent", "rotate-due",
	}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "subcommand %s should exist", name)
	}
}

func TestSecretsGet_PrintsBareValue(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, map[string]response{
		"GET /api/v1/secrets/s1/decrypt": {200, `{"id":"s1","key":"DB_PASSWORD","decryptedValue":"p@ss","applicationId":"a1","environmentId":null}`},
	})
	cfg, out := newTestConfig(t)
	seedProfile(t, cfg, "default", api.URL)

	require.NoError(t, execute(NewSecretsCommand(cfg), "get", "s1"))
	assert.Equal(t, "p@ss\n", out.String())

	reqs := api.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "GET", reqs[0].Method)
	assert.Equal(t, "/api/v1/secrets/s1/decrypt", reqs[0].URI)
	assert.Equal(t, "Bearer k1", reqs[0].Auth)
}

func TestSecretsGet_ValueNotLogged(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, map[string]response{
		"GET /api/v1/secrets/s1/decrypt": {200, `{"id":"s1","key":"K","decryptedValue":"hunter2-secret","applicationId":"a1"}`},
	})
	cfg, out := newTestConfig(t)
	var logs bytes.Buffer
	cfg.Logger = logging.NewWithWriter(&logs, true, true)
	seedProfile(t, cfg, "default", api.URL)

	require.NoError(t, execute(NewSecretsCommand(cfg), "get", "s1"))
	assert.Equal(t, "hunter2-secret\n", out.String())
	assert.Contains(t, logs.String(), "Requests: GET 200 x1")
	assert.NotContains(t, logs.String(), "hunter2-secret")
}

func TestSecretsCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		route    string
		response response
		wantBody string
		wantOut  string
	}{
		{
			name:  "list",
			args:  []string{"list", "a1"},
			route: "GET /api/v1/secrets/application/a1",
			response: response{200, `[
				{"id":"s1","key":"DB_PASSWORD","description":"primary","applicationId":"a1","rotationPolicy":"MANUAL","isActive":true},
				{"id":"s2","key":"API_TOKEN","applicationId":"a1","environmentId":"prod","rotationPolicy":"MONTHLY","isActive":false}
			]`},
			wantOut: "s1\tDB_PASSWORD\tprimary\ns2\tAPI_TOKEN\t\n",
		},
		{
			name:     "list by environment",
			args:     []string{"list", "a1", "-e", "prod"},
			route:    "GET /api/v1/secrets/application/a1/environment/prod",
			response: response{200, `[]`},
			wantOut:  "",
		},
		{
			name:     "list with long environment flag",
			args:     []string{"list", "a1", "--environment", "prod"},
			route:    "GET /api/v1/secrets/application/a1/environment/prod",
			response: response{200, `[]`},
			wantOut:  "",
		},
		{
			name:     "create",
			args:     []string{"create", "DB_PASSWORD", "enc:abc", "-a", "a1"},
			route:    "POST /api/v1/secrets",
			response: response{201, `{"id":"s3"}`},
			wantBody: `{"key":"DB_PASSWORD","encryptedValue":"enc:abc","description":null,"applicationId":"a1","environmentId":null,"rotationPolicy":"MANUAL"}`,
			wantOut:  "Secret created\n",
		},
		{
			name:     "create with all flags",
			args:     []string{"create", "K", "v", "-d", "desc", "--application", "a1", "-e", "prod", "-r", "MONTHLY"},
			route:    "POST /api/v1/secrets",
			response: response{201, `{"id":"s4"}`},
			wantBody: `{"key":"K","encryptedValue":"v","description":"desc","applicationId":"a1","environmentId":"prod","rotationPolicy":"MONTHLY"}`,
			wantOut:  "Secret created\n",
		},
		{
			name:     "rotate",
			args:     []string{"rotate", "s1", "enc:new", "alice"},
			route:    "POST /api/v1/secrets/s1/rotate",
			response: response{200, `{"id":"s1"}`},
			wantBody: `{"newEncryptedValue":"enc:new","rotatedBy":"alice"}`,
			wantOut:  "Secret rotated\n",
		},
		{
			name:     "deactivate",
			args:     []string{"deactivate", "s1"},
			route:    "POST /api/v1/secrets/s1/deactivate",
			response: response{200, ``},
			wantBody: `{}`,
			wantOut:  "Secret deactivated\n",
		},
		{
			name:     "delete",
			args:     []string{"delete", "s1"},
			route:    "DELETE /api/v1/secrets/s1",
			response: response{200, `{"deleted":true}`},
			wantOut:  "Secret deleted\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t, map[string]response{tt.route: tt.response})
			cfg, out := newTestConfig(t)
			seedProfile(t, cfg, "default", api.URL)

			require.NoError(t, execute(NewSecretsCommand(cfg), tt.args...))
			assert.Equal(t, tt.wantOut, out.String())

			reqs := api.Requests()
			require.Len(t, reqs, 1)
			assert.Equal(t, tt.route, reqs[0].Method+" "+reqs[0].URI)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, reqs[0].Body)
			}
		})
	}
}

func TestSecretsCreate_RequiresApplication(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, nil)
	cfg, _ := newTestConfig(t)
	seedProfile(t, cfg, "default", api.URL)

	require.Error(t, execute(NewSecretsCommand(cfg), "create", "K", "v"))
	assert.Empty(t, api.Requests())
}

func TestSecretsRotate_ArgCount(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, nil)
	cfg, _ := newTestConfig(t)
	seedProfile(t, cfg, "default", api.URL)

	require.Error(t, execute(NewSecretsCommand(cfg), "rotate", "s1", "enc:new"))
	assert.Empty(t, api.Requests())
}
