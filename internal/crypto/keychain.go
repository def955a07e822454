// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrCipherBlobTooShort is returned by [PayloadCipher.Open] when a blob is
// shorter than the GCM nonce and cannot possibly contain a ciphertext.
var ErrCipherBlobTooShort = errors.New("cipher blob is too short")

// argonParams are the Argon2id tuning parameters. Stored in a struct so they
// can be adjusted per deployment target (e.g. mobile vs. desktop).
type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// defaultArgonParams follows the OWASP (2024) recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func defaultArgonParams() argonParams {
	return argonParams{
		time:    1,
		memory:  64 * 1024, // 64 MiB
		threads: 4,
		keyLen:  32, // 256 bits
	}
}

// passwordHasher is the private implementation of [PasswordHasher]. Hashes
// are encoded in the PHC string format so the parameters travel with the
// hash.
type passwordHasher struct {
	params argonParams
}

// NewPasswordHasher constructs a [PasswordHasher] using Argon2id with
// [defaultArgonParams].
func NewPasswordHasher() PasswordHasher {
	return &passwordHasher{params: defaultArgonParams()}
}

// HashPassword implements [PasswordHasher]. A fresh 16-byte salt is read
// from the OS CSPRNG for every call.
func (h *passwordHasher) HashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, h.params.time, h.params.memory, h.params.threads, h.params.keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory, h.params.time, h.params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword implements [PasswordHasher]. The comparison is constant
// time over the derived keys.
func (h *passwordHasher) VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errors.New("malformed encoded hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("malformed encoded hash version: %w", err)
	}

	var params argonParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return false, fmt.Errorf("malformed encoded hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("malformed encoded hash salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("malformed encoded hash key: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// payloadCipher is the private implementation of [PayloadCipher]. The AES key
// is derived once from the passphrase with Argon2id and a fixed salt, so the
// same passphrase opens blobs across process restarts.
type payloadCipher struct {
	aead cipher.AEAD
}

// cacheKeySalt domain-separates the cache encryption key from any other
// derivation of the same passphrase.
const cacheKeySalt = "skids-sync/cache-key/v1"

// NewPayloadCipher constructs a [PayloadCipher] keyed by passphrase.
func NewPayloadCipher(passphrase string) (PayloadCipher, error) {
	if passphrase == "" {
		return nil, errors.New("empty cache passphrase")
	}

	p := defaultArgonParams()
	key := argon2.IDKey([]byte(passphrase), []byte(cacheKeySalt), p.time, p.memory, p.threads, p.keyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &payloadCipher{aead: aead}, nil
}

// Seal implements [PayloadCipher]. A random 12-byte nonce is prepended to
// the ciphertext so that the decryption side can locate it:
// blob = nonce ‖ ciphertext.
func (c *payloadCipher) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open implements [PayloadCipher]. It splits the nonce off the blob produced
// by [payloadCipher.Seal] and authenticates the remainder.
func (c *payloadCipher) Open(blob []byte) ([]byte, error) {
	if len(blob) < c.aead.NonceSize() {
		return nil, ErrCipherBlobTooShort
	}

	nonce, ciphertext := blob[:c.aead.NonceSize()], blob[c.aead.NonceSize():]
	return c.aead.Open(nil, nonce, ciphertext, nil)
}
