package service

import (
	"github.com/allisson/go-pwdhash"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
	apperrors "github.com/allisson/fieldvault/internal/errors"
)

// PassphraseVerifier checks a passphrase against an Argon2id hash.
//
// A wrong passphrase derives wrong keys and makes every stored value
// undecryptable, so the server verifies its passphrase at startup when a hash
// is configured.
type PassphraseVerifier struct {
	hasher *pwdhash.PasswordHasher
}

// NewPassphraseVerifier creates a verifier using the interactive Argon2id policy.
func NewPassphraseVerifier() (*PassphraseVerifier, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create passphrase hasher")
	}
	return &PassphraseVerifier{hasher: hasher}, nil
}

// Hash returns the PHC-encoded Argon2id hash of passphrase.
func (v *PassphraseVerifier) Hash(passphrase string) (string, error) {
	hashed, err := v.hasher.Hash([]byte(passphrase))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash passphrase")
	}
	return hashed, nil
}

// Verify checks the passphrase produced by source against hash.
// Returns ErrPassphraseMismatch when they differ.
func (v *PassphraseVerifier) Verify(source PassphraseSource, hash string) error {
	passphrase, err := source.Passphrase()
	if err != nil {
		return err
	}

	ok, err := v.hasher.Verify([]byte(passphrase), hash)
	if err != nil {
		return apperrors.Wrap(err, "failed to verify passphrase")
	}
	if !ok {
		return cryptoDomain.ErrPassphraseMismatch
	}
	return nil
}
