package keychain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	dserrors "github.com/systmms/devkit/internal/errors"
)

func TestParseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Reference
		wantErr string
	}{
		{name: "simple", in: "devkit/default", want: Reference{Service: "devkit", Account: "default"}},
		{name: "dotted service", in: "com.example.devkit/ops", want: Reference{Service: "com.example.devkit", Account: "ops"}},
		{name: "slash in account", in: "devkit/team/prod", want: Reference{Service: "devkit", Account: "team/prod"}},
		{name: "trimmed", in: " devkit / ops ", want: Reference{Service: "devkit", Account: "ops"}},
		{name: "no separator", in: "devkit", wantErr: "service/account"},
		{name: "empty service", in: "/ops", wantErr: "service cannot be empty"},
		{name: "empty account", in: "devkit/ ", wantErr: "account cannot be empty"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseReference(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Service+"/"+tt.want.Account, got.String())
		})
	}
}

type fakeReader struct {
	items map[string]string
	err   error
}

func (f fakeReader) Query(service, account string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.items[service+"/"+account]
	if !ok {
		return "", ErrItemNotFound
	}
	return v, nil
}

func TestLookup(t *testing.T) {
	t.Parallel()

	reader := fakeReader{items: map[string]string{"devkit/default": "k1", "devkit/blank": "  "}}

	got, err := Lookup(reader, "devkit/default")
	require.NoError(t, err)
	assert.Equal(t, "k1", got)

	tests := []struct {
		name   string
		reader Reader
		ref    string
		msg    string
	}{
		{name: "bad reference", reader: reader, ref: "nope", msg: "Invalid keychain reference"},
		{name: "missing item", reader: reader, ref: "devkit/other", msg: "No keychain item for devkit/other"},
		{name: "empty item", reader: reader, ref: "devkit/blank", msg: "is empty"},
		{name: "backend failure", reader: fakeReader{err: errors.New("locked")}, ref: "devkit/default", msg: "Failed to read"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Lookup(tt.reader, tt.ref)
			var userErr dserrors.UserError
			require.ErrorAs(t, err, &userErr)
			assert.Contains(t, userErr.Message, tt.msg)
		})
	}
}

// The go-keyring mock provider is process-global, so these subtests run
// sequentially.
func TestOSReader(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, keyring.Set("devkit", "ops", "k-from-keychain"))

	got, err := OSReader{}.Query("devkit", "ops")
	require.NoError(t, err)
	assert.Equal(t, "k-from-keychain", got)

	_, err = OSReader{}.Query("devkit", "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)

	keyring.MockInitWithError(errors.New("dbus unavailable"))
	_, err = OSReader{}.Query("devkit", "ops")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrItemNotFound)
	assert.Contains(t, err.Error(), "dbus unavailable")

	keyring.MockInit()
}
