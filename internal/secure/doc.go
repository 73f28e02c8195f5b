// Package secure keeps credentials and decrypted secret values out of
// ordinary Go memory while the CLI runs.
//
// It wraps memguard: values are encrypted at rest in memory
// (XSalsa20Poly1305), and plaintext only lives in mlocked buffers that are
// wiped on Destroy.
//
//	buf, _ := secure.NewSecureString(apiKey)
//	defer buf.Destroy()
//
//	_ = buf.WithString(func(key string) error {
//	    req.Header.Set("Authorization", "Bearer "+key)
//	    return nil
//	})
//
// Call memguard.Purge before process exit to wipe every remaining buffer.
//
// This does not protect against an attacker with root access to the running
// process, or against hardware-level attacks.
package secure
