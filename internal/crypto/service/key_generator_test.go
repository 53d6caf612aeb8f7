package service

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
)

func strPtr(s string) *string {
	return &s
}

// zeroReader yields an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

func TestKeyGenerator_GenerateKeyWithSalt(t *testing.T) {
	g := NewKeyGenerator()

	t.Run("KnownAnswer_SHA1", func(t *testing.T) {
		pair, err := g.GenerateKeyWithSalt(strPtr("correct-horse-battery-staple"), strPtr("AAAAAAAAAAA="))
		require.NoError(t, err)

		key := pair.Item1()
		assert.Equal(t, cryptoDomain.AES, key.Algorithm)
		assert.Equal(t, "b2c5e6be615f2d5b7b4e4cea44603c49", hex.EncodeToString(key.Bytes()))
		assert.Equal(t, "AAAAAAAAAAA=", pair.Item2())
	})

	t.Run("KnownAnswer_SHA256", func(t *testing.T) {
		g256 := NewKeyGenerator(WithAlgorithm(cryptoDomain.PBKDF2WithHmacSHA256))

		pair, err := g256.GenerateKeyWithSalt(strPtr("correct-horse-battery-staple"), strPtr("AAAAAAAAAAA="))
		require.NoError(t, err)
		assert.Equal(t, "5c95b141bd932ace6401e01f30b2a688", hex.EncodeToString(pair.Item1().Bytes()))
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("c2FsdHNhbHQ="))
		require.NoError(t, err)
		second, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("c2FsdHNhbHQ="))
		require.NoError(t, err)

		assert.Equal(t, first.Item1(), second.Item1())
		assert.True(t, first.Equal(second))
	})

	t.Run("DifferentSaltDifferentKey", func(t *testing.T) {
		first, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("AAAAAAAAAAA="))
		require.NoError(t, err)
		second, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("AQEBAQEBAQE="))
		require.NoError(t, err)

		assert.NotEqual(t, first.Item1().Bytes(), second.Item1().Bytes())
	})

	t.Run("EmptyPassphraseIsValid", func(t *testing.T) {
		pair, err := g.GenerateKeyWithSalt(strPtr(""), strPtr("AAAAAAAAAAA="))
		require.NoError(t, err)
		assert.Len(t, pair.Item1().Bytes(), cryptoDomain.KeySize)
	})

	t.Run("Error_NilPassphrase", func(t *testing.T) {
		_, err := g.GenerateKeyWithSalt(nil, strPtr("AAAAAAAAAAA="))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "argument [passphrase] must not be nil")
	})

	t.Run("Error_NilSalt", func(t *testing.T) {
		_, err := g.GenerateKeyWithSalt(strPtr("passphrase"), nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "argument [salt] must not be nil")
	})

	t.Run("Error_SaltNotBase64", func(t *testing.T) {
		_, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("not base64!"))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})

	t.Run("Error_EmptySalt", func(t *testing.T) {
		_, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr(""))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})

	t.Run("Error_UnknownAlgorithm", func(t *testing.T) {
		unknown := NewKeyGenerator(WithAlgorithm("PBKDF2WithHmacMD4"))

		_, err := unknown.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("AAAAAAAAAAA="))
		assert.ErrorIs(t, err, cryptoDomain.ErrAlgorithmUnavailable)

		// The failed lookup is remembered for the generator's lifetime.
		_, err = unknown.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("AAAAAAAAAAA="))
		assert.ErrorIs(t, err, cryptoDomain.ErrAlgorithmUnavailable)
	})

	t.Run("Error_NonPositiveIterations", func(t *testing.T) {
		broken := NewKeyGenerator(WithIterations(0))

		_, err := broken.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("AAAAAAAAAAA="))
		assert.ErrorIs(t, err, cryptoDomain.ErrAlgorithmUnavailable)
	})
}

func TestKeyGenerator_GenerateKey(t *testing.T) {
	t.Run("SaltIsEightBytes", func(t *testing.T) {
		pair, err := NewKeyGenerator().GenerateKey(strPtr("passphrase"))
		require.NoError(t, err)

		salt, err := base64.StdEncoding.DecodeString(pair.Item2())
		require.NoError(t, err)
		assert.Len(t, salt, cryptoDomain.DefaultSaltSize)
	})

	t.Run("SecretSaltSize", func(t *testing.T) {
		pair, err := NewKeyGenerator(WithSaltSize(cryptoDomain.SecretSaltSize)).GenerateKey(strPtr("passphrase"))
		require.NoError(t, err)

		salt, err := base64.StdEncoding.DecodeString(pair.Item2())
		require.NoError(t, err)
		assert.Len(t, salt, cryptoDomain.SecretSaltSize)
	})

	t.Run("InvalidSaltSizeFallsBackToDefault", func(t *testing.T) {
		pair, err := NewKeyGenerator(WithSaltSize(-1)).GenerateKey(strPtr("passphrase"))
		require.NoError(t, err)

		salt, err := base64.StdEncoding.DecodeString(pair.Item2())
		require.NoError(t, err)
		assert.Len(t, salt, cryptoDomain.DefaultSaltSize)
	})

	t.Run("MatchesExplicitSalt", func(t *testing.T) {
		g := NewKeyGenerator(WithRandom(zeroReader{}))

		generated, err := g.GenerateKey(strPtr("correct-horse-battery-staple"))
		require.NoError(t, err)
		assert.Equal(t, "AAAAAAAAAAA=", generated.Item2())

		explicit, err := g.GenerateKeyWithSalt(strPtr("correct-horse-battery-staple"), strPtr(generated.Item2()))
		require.NoError(t, err)
		assert.Equal(t, generated.Item1(), explicit.Item1())
	})

	t.Run("RoundTripWithReturnedSalt", func(t *testing.T) {
		g := NewKeyGenerator()

		generated, err := g.GenerateKey(strPtr("passphrase"))
		require.NoError(t, err)

		derived, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr(generated.Item2()))
		require.NoError(t, err)
		assert.Equal(t, generated.Item1().Bytes(), derived.Item1().Bytes())
	})

	t.Run("FreshSaltEveryCall", func(t *testing.T) {
		g := NewKeyGenerator()

		first, err := g.GenerateKey(strPtr("passphrase"))
		require.NoError(t, err)
		second, err := g.GenerateKey(strPtr("passphrase"))
		require.NoError(t, err)

		assert.NotEqual(t, first.Item2(), second.Item2())
		assert.False(t, bytes.Equal(first.Item1().Bytes(), second.Item1().Bytes()))
	})

	t.Run("Error_NilPassphrase", func(t *testing.T) {
		_, err := NewKeyGenerator().GenerateKey(nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})

	t.Run("Error_RandomFailure", func(t *testing.T) {
		_, err := NewKeyGenerator(WithRandom(failingReader{})).GenerateKey(strPtr("passphrase"))
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoFailure)
	})
}

func TestKeyGenerator_ConcurrentFirstUse(t *testing.T) {
	g := NewKeyGenerator()

	const workers = 16
	keys := make([][]byte, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pair, err := g.GenerateKeyWithSalt(strPtr("passphrase"), strPtr("AAAAAAAAAAA="))
			assert.NoError(t, err)
			keys[i] = pair.Item1().Bytes()
		}()
	}
	wg.Wait()

	for _, k := range keys {
		assert.Equal(t, keys[0], k)
	}
}
