package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher derives and verifies password hashes for stored credentials.
// Implementations must be safe for concurrent use.
type PasswordHasher interface {
	// HashPassword derives a self-describing encoded hash from the plaintext
	// password. The encoding embeds the salt and tuning parameters so the
	// hash can be verified later without external state.
	HashPassword(password string) (string, error)

	// VerifyPassword reports whether password matches the encoded hash.
	// A malformed encoded hash is an error, a mismatch is (false, nil).
	VerifyPassword(password, encoded string) (bool, error)
}

// PayloadCipher seals and opens sensitive cached payloads at rest.
type PayloadCipher interface {
	// Seal encrypts plaintext and returns a blob that embeds everything
	// needed to decrypt it with the same passphrase-derived key.
	Seal(plaintext []byte) ([]byte, error)

	// Open decrypts a blob produced by Seal. Returns an error if the blob
	// is malformed or was sealed with a different key.
	Open(blob []byte) ([]byte, error)
}
