package secure

import (
	"io"
	"sync"

	"github.com/awnumar/memguard"
)

// SecureBuffer holds a credential or decrypted secret sealed in a memguard
// enclave. The plaintext only exists inside a locked buffer for the duration
// of Open, WithString or WriteTo.
type SecureBuffer struct {
	mu        sync.RWMutex
	enclave   *memguard.Enclave
	destroyed bool
}

// NewSecureBuffer seals data into an enclave. memguard wipes data in the
// process, so callers must not reuse the slice.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	// NewEnclave returns nil for empty input; Open treats that as empty.
	return &SecureBuffer{enclave: memguard.NewEnclave(data)}, nil
}

// NewSecureString seals a copy of s.
func NewSecureString(s string) (*SecureBuffer, error) {
	return NewSecureBuffer([]byte(s))
}

// Open decrypts the enclave into a locked buffer. The caller must Destroy it.
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed || s.enclave == nil {
		return memguard.NewBufferFromBytes([]byte{}), nil
	}
	return s.enclave.Open()
}

// WithString opens the buffer, passes the plaintext to fn and wipes the
// locked copy afterwards.
func (s *SecureBuffer) WithString(fn func(string) error) error {
	locked, err := s.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()
	return fn(string(locked.Bytes()))
}

// WriteTo writes the plaintext to w without materialising a Go string.
func (s *SecureBuffer) WriteTo(w io.Writer) (int64, error) {
	locked, err := s.Open()
	if err != nil {
		return 0, err
	}
	defer locked.Destroy()

	n, err := w.Write(locked.Bytes())
	return int64(n), err
}

// Destroy drops the enclave. It is idempotent; Open returns an empty buffer
// afterwards.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	s.enclave = nil
	s.destroyed = true
}
