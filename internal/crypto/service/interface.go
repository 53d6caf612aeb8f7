// Package service provides the field-encryption core: passphrase sources,
// PBKDF2 key derivation and the symmetric Encrypter built from derived keys.
package service

import (
	"context"
)

// PassphraseSource produces the passphrase that key derivation starts from.
type PassphraseSource interface {
	// Passphrase returns a passphrase. Whether repeated calls return the same
	// value depends on the implementation.
	Passphrase() (string, error)
}

// KMSKeeper is the subset of a gocloud.dev secrets.Keeper used for sealing
// the shared passphrase with an external key management service.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for KMS key URIs.
type KMSService interface {
	// OpenKeeper opens a keeper for the given key URI.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
