// Package keyring stores the shared passphrase in the operating system keyring.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"

	apperrors "github.com/allisson/fieldvault/internal/errors"
)

const serviceName = "fieldvault"

// ErrPassphraseNotFound indicates no passphrase is stored for the account.
var ErrPassphraseNotFound = apperrors.Wrap(apperrors.ErrNotFound, "passphrase not found in keyring")

// SavePassphrase stores a passphrase in the OS keyring
func SavePassphrase(account, passphrase string) error {
	if err := keyring.Set(serviceName, account, passphrase); err != nil {
		return apperrors.Wrap(err, "failed to save passphrase to keyring")
	}
	return nil
}

// GetPassphrase retrieves a passphrase from the OS keyring
func GetPassphrase(account string) (string, error) {
	passphrase, err := keyring.Get(serviceName, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrPassphraseNotFound
		}
		return "", apperrors.Wrap(err, "failed to read passphrase from keyring")
	}
	return passphrase, nil
}

// DeletePassphrase removes a passphrase from the OS keyring
func DeletePassphrase(account string) error {
	if err := keyring.Delete(serviceName, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrPassphraseNotFound
		}
		return apperrors.Wrap(err, "failed to delete passphrase from keyring")
	}
	return nil
}

// HasPassphrase checks if a passphrase is stored in the keyring
func HasPassphrase(account string) bool {
	_, err := keyring.Get(serviceName, account)
	return err == nil
}

// Store exposes the keyring functions as a value for the CLI.
type Store struct{}

// Has reports whether account holds a passphrase.
func (Store) Has(account string) bool { return HasPassphrase(account) }

// Save stores passphrase under account.
func (Store) Save(account, passphrase string) error { return SavePassphrase(account, passphrase) }

// Delete removes the passphrase stored under account.
func (Store) Delete(account string) error { return DeletePassphrase(account) }
