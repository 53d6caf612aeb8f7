package service

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
	"github.com/allisson/fieldvault/internal/keyring"
)

// passphraseLimit is 2^512; random passphrases are drawn from [0, passphraseLimit).
var passphraseLimit = new(big.Int).Lsh(big.NewInt(1), cryptoDomain.PassphraseBits)

// RandomPassphraseSource returns a new random passphrase on every call.
//
// A passphrase is the lowercase hexadecimal text of a uniformly random 512-bit
// integer, so leading zero digits are not rendered.
type RandomPassphraseSource struct {
	rand io.Reader
}

// NewRandomPassphraseSource creates a source backed by crypto/rand.
func NewRandomPassphraseSource() *RandomPassphraseSource {
	return &RandomPassphraseSource{rand: rand.Reader}
}

// Passphrase generates a fresh passphrase.
func (s *RandomPassphraseSource) Passphrase() (string, error) {
	n, err := rand.Int(s.rand, passphraseLimit)
	if err != nil {
		return "", cryptoDomain.NewCryptoError("generate passphrase", cryptoDomain.ErrCryptoFailure, err)
	}
	return n.Text(16), nil
}

// FixedPassphraseSource memoizes the first passphrase produced by another source.
//
// Every caller, concurrent first callers included, observes the same value for
// the lifetime of the instance. After initialization a call costs one atomic
// load. A failed first generation is not cached, so the next call retries.
type FixedPassphraseSource struct {
	source     PassphraseSource
	mu         sync.Mutex
	passphrase atomic.Pointer[string]
}

// NewFixedPassphraseSource wraps source with a one-time cache.
func NewFixedPassphraseSource(source PassphraseSource) *FixedPassphraseSource {
	return &FixedPassphraseSource{source: source}
}

// Passphrase returns the cached passphrase, generating it on first use.
func (s *FixedPassphraseSource) Passphrase() (string, error) {
	if p := s.passphrase.Load(); p != nil {
		return *p, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.passphrase.Load(); p != nil {
		return *p, nil
	}

	p, err := s.source.Passphrase()
	if err != nil {
		return "", err
	}
	s.passphrase.Store(&p)

	return p, nil
}

// StaticPassphraseSource returns a configured passphrase.
type StaticPassphraseSource struct {
	passphrase string
}

// NewStaticPassphraseSource creates a source for a passphrase read from configuration.
func NewStaticPassphraseSource(passphrase string) *StaticPassphraseSource {
	return &StaticPassphraseSource{passphrase: passphrase}
}

// Passphrase returns the configured passphrase, or ErrInvalidArgument if it is empty.
func (s *StaticPassphraseSource) Passphrase() (string, error) {
	if s.passphrase == "" {
		return "", cryptoDomain.NewCryptoError(
			"static passphrase",
			cryptoDomain.ErrInvalidArgument,
			errors.New("passphrase is empty"),
		)
	}
	return s.passphrase, nil
}

// KeyringPassphraseSource reads the passphrase stored in the OS keyring.
type KeyringPassphraseSource struct {
	account string
	get     func(account string) (string, error)
}

// NewKeyringPassphraseSource creates a source for the keyring account.
func NewKeyringPassphraseSource(account string) *KeyringPassphraseSource {
	return &KeyringPassphraseSource{account: account, get: keyring.GetPassphrase}
}

// Passphrase reads the passphrase from the keyring.
func (s *KeyringPassphraseSource) Passphrase() (string, error) {
	p, err := s.get(s.account)
	if err != nil {
		return "", err
	}
	if p == "" {
		return "", cryptoDomain.NewCryptoError(
			"keyring passphrase",
			cryptoDomain.ErrInvalidArgument,
			errors.New("passphrase is empty"),
		)
	}
	return p, nil
}

// KMSPassphraseSource unseals a passphrase that was encrypted with a KMS key.
//
// Each call contacts the KMS; wrap it in a FixedPassphraseSource to unseal once
// per process.
type KMSPassphraseSource struct {
	kmsService KMSService
	keyURI     string
	ciphertext string
	timeout    time.Duration
}

// NewKMSPassphraseSource creates a source for a base64 KMS ciphertext.
func NewKMSPassphraseSource(
	kmsService KMSService,
	keyURI string,
	ciphertext string,
	timeout time.Duration,
) *KMSPassphraseSource {
	return &KMSPassphraseSource{
		kmsService: kmsService,
		keyURI:     keyURI,
		ciphertext: ciphertext,
		timeout:    timeout,
	}
}

// Passphrase decrypts the sealed passphrase with the KMS keeper.
func (s *KMSPassphraseSource) Passphrase() (string, error) {
	if s.keyURI == "" || s.ciphertext == "" {
		return "", cryptoDomain.NewCryptoError(
			"kms passphrase",
			cryptoDomain.ErrInvalidArgument,
			errors.New("kms key uri and ciphertext are required"),
		)
	}

	plaintext, err := unsealWithKMS(context.Background(), s.kmsService, s.keyURI, s.ciphertext, s.timeout)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(plaintext)

	return string(plaintext), nil
}

// SealPassphrase encrypts a passphrase with the KMS keeper and returns base64
// ciphertext suitable for PASSPHRASE_KMS_CIPHERTEXT.
func SealPassphrase(ctx context.Context, kmsService KMSService, keyURI, passphrase string) (string, error) {
	return sealWithKMS(ctx, kmsService, keyURI, []byte(passphrase), DefaultKMSTimeout)
}
