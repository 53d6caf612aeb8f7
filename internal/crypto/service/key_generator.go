package service

import (
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // PBKDF2-HMAC-SHA1 is kept for compatibility with existing keys
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
	"github.com/allisson/fieldvault/internal/tuple"
)

// kdfHashes maps derivation algorithm names to the HMAC hash they use.
var kdfHashes = map[cryptoDomain.KDFAlgorithm]func() hash.Hash{
	cryptoDomain.PBKDF2WithHmacSHA1:   sha1.New,
	cryptoDomain.PBKDF2WithHmacSHA256: sha256.New,
	cryptoDomain.PBKDF2WithHmacSHA512: sha512.New,
}

// deriveFunc turns a passphrase and salt into key material.
type deriveFunc func(passphrase, salt []byte) []byte

// KeyGenerator derives AES keys from passphrases with PBKDF2.
//
// The derivation function and the salt random source are built on first use
// and shared by every later call on the same generator. Building them is safe
// under concurrent first use. A KeyGenerator is safe for concurrent use.
type KeyGenerator struct {
	algorithm  cryptoDomain.KDFAlgorithm
	iterations int
	saltSize   int
	rand       io.Reader

	derive func() (deriveFunc, error)
	random func() io.Reader
}

// KeyGeneratorOption configures a KeyGenerator.
type KeyGeneratorOption func(*KeyGenerator)

// WithAlgorithm selects the derivation algorithm by name.
// An unknown name is reported as ErrAlgorithmUnavailable when a key is generated.
func WithAlgorithm(name cryptoDomain.KDFAlgorithm) KeyGeneratorOption {
	return func(g *KeyGenerator) {
		g.algorithm = name
	}
}

// WithIterations overrides the PBKDF2 iteration count.
func WithIterations(iterations int) KeyGeneratorOption {
	return func(g *KeyGenerator) {
		g.iterations = iterations
	}
}

// WithSaltSize overrides the number of random bytes in generated salts.
func WithSaltSize(size int) KeyGeneratorOption {
	return func(g *KeyGenerator) {
		g.saltSize = size
	}
}

// WithRandom overrides the random source used for salts.
func WithRandom(r io.Reader) KeyGeneratorOption {
	return func(g *KeyGenerator) {
		g.rand = r
	}
}

// NewKeyGenerator creates a generator using PBKDF2WithHmacSHA1, 10,000
// iterations and 8-byte salts unless overridden.
func NewKeyGenerator(opts ...KeyGeneratorOption) *KeyGenerator {
	g := &KeyGenerator{
		algorithm:  cryptoDomain.PBKDF2WithHmacSHA1,
		iterations: cryptoDomain.DefaultIterations,
		saltSize:   cryptoDomain.DefaultSaltSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.saltSize < 1 {
		g.saltSize = cryptoDomain.DefaultSaltSize
	}

	g.derive = sync.OnceValues(g.newDeriveFunc)
	g.random = sync.OnceValue(func() io.Reader {
		if g.rand != nil {
			return g.rand
		}
		return rand.Reader
	})

	return g
}

// GenerateKey derives a key from passphrase and a freshly generated random salt.
// It returns the key paired with the base64-encoded salt so the caller can
// persist the salt and derive the same key later.
func (g *KeyGenerator) GenerateKey(passphrase *string) (tuple.Pair[cryptoDomain.Key, string], error) {
	if passphrase == nil {
		return tuple.Pair[cryptoDomain.Key, string]{}, errNilArgument("passphrase")
	}

	salt := make([]byte, g.saltSize)
	if _, err := io.ReadFull(g.random(), salt); err != nil {
		return tuple.Pair[cryptoDomain.Key, string]{}, cryptoDomain.NewCryptoError(
			"generate salt",
			cryptoDomain.ErrCryptoFailure,
			err,
		)
	}

	encoded := base64.StdEncoding.EncodeToString(salt)
	return g.GenerateKeyWithSalt(passphrase, &encoded)
}

// GenerateKeyWithSalt derives a key from passphrase and a base64-encoded salt.
// The same passphrase and salt always produce the same key. The salt is
// returned unchanged alongside the key.
func (g *KeyGenerator) GenerateKeyWithSalt(
	passphrase *string,
	salt *string,
) (tuple.Pair[cryptoDomain.Key, string], error) {
	var empty tuple.Pair[cryptoDomain.Key, string]

	if passphrase == nil {
		return empty, errNilArgument("passphrase")
	}
	if salt == nil {
		return empty, errNilArgument("salt")
	}

	derive, err := g.derive()
	if err != nil {
		return empty, err
	}

	saltBytes, err := base64.StdEncoding.DecodeString(*salt)
	if err != nil {
		return empty, cryptoDomain.NewCryptoError(
			"generate key",
			cryptoDomain.ErrInvalidArgument,
			fmt.Errorf("salt is not valid base64: %w", err),
		)
	}
	if len(saltBytes) == 0 {
		return empty, cryptoDomain.NewCryptoError(
			"generate key",
			cryptoDomain.ErrInvalidArgument,
			errors.New("salt must not be empty"),
		)
	}

	material := derive([]byte(*passphrase), saltBytes)
	defer cryptoDomain.Zero(material)

	key, err := cryptoDomain.NewKey(cryptoDomain.AES, material)
	if err != nil {
		return empty, cryptoDomain.NewCryptoError("generate key", cryptoDomain.ErrCryptoFailure, err)
	}

	return tuple.Of(key, *salt), nil
}

// newDeriveFunc looks up the configured algorithm by name.
func (g *KeyGenerator) newDeriveFunc() (deriveFunc, error) {
	h, ok := kdfHashes[g.algorithm]
	if !ok {
		return nil, cryptoDomain.NewCryptoError(
			"generate key",
			cryptoDomain.ErrAlgorithmUnavailable,
			fmt.Errorf("unknown key derivation algorithm %q", g.algorithm),
		)
	}
	if g.iterations < 1 {
		return nil, cryptoDomain.NewCryptoError(
			"generate key",
			cryptoDomain.ErrAlgorithmUnavailable,
			fmt.Errorf("iteration count must be positive, got %d", g.iterations),
		)
	}

	iterations := g.iterations
	return func(passphrase, salt []byte) []byte {
		return pbkdf2.Key(passphrase, salt, iterations, cryptoDomain.KeySize, h)
	}, nil
}

func errNilArgument(name string) error {
	return cryptoDomain.NewCryptoError(
		"generate key",
		cryptoDomain.ErrInvalidArgument,
		fmt.Errorf("argument [%s] must not be nil", name),
	)
}
