package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/fieldvault/internal/crypto/service"
)

// PassphraseHasher hashes a passphrase for PASSPHRASE_HASH.
type PassphraseHasher interface {
	Hash(passphrase string) (string, error)
}

// PassphraseStore keeps one passphrase per account.
type PassphraseStore interface {
	Has(account string) bool
	Save(account, passphrase string) error
	Delete(account string) error
}

// RunGeneratePassphrase writes a new random passphrase as a PASSPHRASE line.
func RunGeneratePassphrase(source cryptoService.PassphraseSource, writer io.Writer) error {
	passphrase, err := source.Passphrase()
	if err != nil {
		return fmt.Errorf("failed to generate passphrase: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
	_, _ = fmt.Fprintf(writer, "PASSPHRASE=\"%s\"\n", passphrase)
	return nil
}

// RunHashPassphrase writes the Argon2id hash of the passphrase as a PASSPHRASE_HASH line.
// The passphrase is read from the reader when not given.
func RunHashPassphrase(hasher PassphraseHasher, ioTuple IOTuple, passphrase string) error {
	passphrase, err := readPassphrase(passphrase, ioTuple.Reader)
	if err != nil {
		return err
	}
	if err := validatePassphrase(passphrase); err != nil {
		return err
	}

	hash, err := hasher.Hash(passphrase)
	if err != nil {
		return fmt.Errorf("failed to hash passphrase: %w", err)
	}

	_, _ = fmt.Fprintf(ioTuple.Writer, "PASSPHRASE_HASH='%s'\n", hash)
	return nil
}

// RunSealPassphrase encrypts the passphrase with the KMS key and writes the
// settings of the kms passphrase provider.
func RunSealPassphrase(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	ioTuple IOTuple,
	kmsKeyURI string,
	passphrase string,
) error {
	if kmsKeyURI == "" {
		return fmt.Errorf(
			"--kms-key-uri is required\n\nFor local development, use:\n  --kms-key-uri=\"base64key://<32-byte-base64-key>\"",
		)
	}

	passphrase, err := readPassphrase(passphrase, ioTuple.Reader)
	if err != nil {
		return err
	}
	if err := validatePassphrase(passphrase); err != nil {
		return err
	}

	logger.Info("sealing passphrase with kms")

	sealed, err := cryptoService.SealPassphrase(ctx, kmsService, kmsKeyURI, passphrase)
	if err != nil {
		return fmt.Errorf("failed to seal passphrase: %w", err)
	}

	_, _ = fmt.Fprintln(ioTuple.Writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(ioTuple.Writer, "PASSPHRASE_PROVIDER=\"kms\"")
	_, _ = fmt.Fprintf(ioTuple.Writer, "PASSPHRASE_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(ioTuple.Writer, "PASSPHRASE_KMS_CIPHERTEXT=\"%s\"\n", sealed)
	return nil
}

// RunStorePassphrase saves the passphrase in the OS keyring for the keyring provider.
// An existing passphrase is only replaced when overwrite is set.
func RunStorePassphrase(
	store PassphraseStore,
	logger *slog.Logger,
	ioTuple IOTuple,
	account, passphrase string,
	overwrite bool,
) error {
	if account == "" {
		return fmt.Errorf("--account is required")
	}
	if !overwrite && store.Has(account) {
		return fmt.Errorf("a passphrase is already stored for account %q, use --overwrite to replace it", account)
	}

	passphrase, err := readPassphrase(passphrase, ioTuple.Reader)
	if err != nil {
		return err
	}
	if err := validatePassphrase(passphrase); err != nil {
		return err
	}

	if err := store.Save(account, passphrase); err != nil {
		return fmt.Errorf("failed to store passphrase: %w", err)
	}

	logger.Info("passphrase stored in keyring", slog.String("account", account))
	_, _ = fmt.Fprintln(ioTuple.Writer, "PASSPHRASE_PROVIDER=\"keyring\"")
	_, _ = fmt.Fprintf(ioTuple.Writer, "KEYRING_ACCOUNT=\"%s\"\n", account)
	return nil
}

// RunDeletePassphrase removes the passphrase stored for account.
// Values sealed under it can no longer be opened.
func RunDeletePassphrase(store PassphraseStore, logger *slog.Logger, account string) error {
	if account == "" {
		return fmt.Errorf("--account is required")
	}
	if err := store.Delete(account); err != nil {
		return fmt.Errorf("failed to delete passphrase: %w", err)
	}

	logger.Warn("passphrase deleted from keyring", slog.String("account", account))
	return nil
}
