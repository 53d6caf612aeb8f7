// Package domain defines the core types, constants and errors for deriving
// field-encryption keys from passphrases.
package domain

// Algorithm names the symmetric cipher a derived key is meant for.
type Algorithm string

const (
	// AES is the Advanced Encryption Standard block cipher in its default
	// transformation: ECB mode with PKCS#5 padding.
	AES Algorithm = "AES"
)

// KDFAlgorithm names a password-based key derivation function.
type KDFAlgorithm string

const (
	// PBKDF2WithHmacSHA1 is PBKDF2 (RFC 8018) keyed with HMAC-SHA1.
	// It is the default so that keys match those derived by earlier deployments.
	PBKDF2WithHmacSHA1 KDFAlgorithm = "PBKDF2WithHmacSHA1"

	// PBKDF2WithHmacSHA256 is PBKDF2 keyed with HMAC-SHA256.
	PBKDF2WithHmacSHA256 KDFAlgorithm = "PBKDF2WithHmacSHA256"

	// PBKDF2WithHmacSHA512 is PBKDF2 keyed with HMAC-SHA512.
	PBKDF2WithHmacSHA512 KDFAlgorithm = "PBKDF2WithHmacSHA512"
)

const (
	// KeySize is the derived key length in bytes (128 bits).
	KeySize = 16

	// DefaultIterations is the PBKDF2 iteration count.
	DefaultIterations = 10000

	// DefaultSaltSize is the number of random salt bytes generated when the
	// caller does not supply a salt.
	DefaultSaltSize = 8

	// SecretSaltSize is the salt size used when a salt doubles as a record
	// secret, giving 512 bits of entropy.
	SecretSaltSize = 64

	// PassphraseBits is the size of the random integer behind a generated passphrase.
	PassphraseBits = 512

	// MaxEncodedLength bounds the persisted secret and ciphertext columns.
	MaxEncodedLength = 1000

	// MaxPlaintextBytes is the longest plaintext whose padded, base64 encoded
	// ciphertext fits MaxEncodedLength: 735 bytes pad to 736 and encode to 984.
	MaxPlaintextBytes = 735
)
