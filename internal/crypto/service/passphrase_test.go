package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
	appkeyring "github.com/allisson/fieldvault/internal/keyring"
)

// countingSource returns "passphrase-N" for the N-th call, failing the first
// failures calls.
type countingSource struct {
	calls    atomic.Int64
	failures int64
}

func (s *countingSource) Passphrase() (string, error) {
	n := s.calls.Add(1)
	if n <= s.failures {
		return "", errors.New("source unavailable")
	}
	return "passphrase-" + string(rune('0'+n)), nil
}

var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

func TestRandomPassphraseSource(t *testing.T) {
	source := NewRandomPassphraseSource()

	t.Run("HexText", func(t *testing.T) {
		p, err := source.Passphrase()
		require.NoError(t, err)
		assert.Regexp(t, hexPattern, p)
		assert.LessOrEqual(t, len(p), cryptoDomain.PassphraseBits/4)
	})

	t.Run("DifferentEveryCall", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			p, err := source.Passphrase()
			require.NoError(t, err)
			_, dup := seen[p]
			require.False(t, dup, "duplicate passphrase generated")
			seen[p] = struct{}{}
		}
	})

	t.Run("Error_RandomFailure", func(t *testing.T) {
		broken := &RandomPassphraseSource{rand: failingReader{}}
		_, err := broken.Passphrase()
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoFailure)
	})
}

func TestFixedPassphraseSource(t *testing.T) {
	t.Run("SameValueSequential", func(t *testing.T) {
		source := NewFixedPassphraseSource(NewRandomPassphraseSource())

		first, err := source.Passphrase()
		require.NoError(t, err)
		require.NotEmpty(t, first)

		for i := 0; i < 100; i++ {
			p, err := source.Passphrase()
			require.NoError(t, err)
			assert.Equal(t, first, p)
		}
	})

	t.Run("SameValueConcurrent", func(t *testing.T) {
		inner := &countingSource{}
		source := NewFixedPassphraseSource(inner)

		const workers = 64
		results := make([]string, workers)
		start := make(chan struct{})

		var g errgroup.Group
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				<-start
				p, err := source.Passphrase()
				results[i] = p
				return err
			})
		}
		close(start)
		require.NoError(t, g.Wait())

		for _, p := range results {
			assert.Equal(t, results[0], p)
		}
		assert.Equal(t, int64(1), inner.calls.Load(), "inner source must be called exactly once")
	})

	t.Run("FailureIsNotCached", func(t *testing.T) {
		inner := &countingSource{failures: 1}
		source := NewFixedPassphraseSource(inner)

		_, err := source.Passphrase()
		require.Error(t, err)

		p, err := source.Passphrase()
		require.NoError(t, err)
		assert.Equal(t, "passphrase-2", p)

		again, err := source.Passphrase()
		require.NoError(t, err)
		assert.Equal(t, p, again)
	})
}

func TestStaticPassphraseSource(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		p, err := NewStaticPassphraseSource("correct-horse-battery-staple").Passphrase()
		require.NoError(t, err)
		assert.Equal(t, "correct-horse-battery-staple", p)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		_, err := NewStaticPassphraseSource("").Passphrase()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})
}

func TestKeyringPassphraseSource(t *testing.T) {
	keyring.MockInit()

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, appkeyring.SavePassphrase("service-test", "from-keyring"))

		p, err := NewKeyringPassphraseSource("service-test").Passphrase()
		require.NoError(t, err)
		assert.Equal(t, "from-keyring", p)
	})

	t.Run("Error_Missing", func(t *testing.T) {
		_, err := NewKeyringPassphraseSource("absent").Passphrase()
		assert.ErrorIs(t, err, appkeyring.ErrPassphraseNotFound)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		source := &KeyringPassphraseSource{
			account: "empty",
			get:     func(string) (string, error) { return "", nil },
		}
		_, err := source.Passphrase()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})
}

func TestKMSPassphraseSource(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()
	keyURI := generateLocalSecretsURI(t)

	sealed, err := SealPassphrase(ctx, kmsService, keyURI, "correct-horse-battery-staple")
	require.NoError(t, err)
	require.NotEmpty(t, sealed)

	t.Run("Success", func(t *testing.T) {
		source := NewKMSPassphraseSource(kmsService, keyURI, sealed, 5*time.Second)

		p, err := source.Passphrase()
		require.NoError(t, err)
		assert.Equal(t, "correct-horse-battery-staple", p)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		source := NewKMSPassphraseSource(kmsService, generateLocalSecretsURI(t), sealed, 5*time.Second)

		_, err := source.Passphrase()
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoFailure)
	})

	t.Run("Error_NotBase64", func(t *testing.T) {
		source := NewKMSPassphraseSource(kmsService, keyURI, "%%%", 5*time.Second)

		_, err := source.Passphrase()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})

	t.Run("Error_MissingConfiguration", func(t *testing.T) {
		source := NewKMSPassphraseSource(kmsService, "", "", 5*time.Second)

		_, err := source.Passphrase()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		source := NewKMSPassphraseSource(kmsService, "invalid://uri", sealed, 5*time.Second)

		_, err := source.Passphrase()
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})

	t.Run("MemoizedUnsealsOnce", func(t *testing.T) {
		source := NewFixedPassphraseSource(NewKMSPassphraseSource(kmsService, keyURI, sealed, 5*time.Second))

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p, err := source.Passphrase()
				assert.NoError(t, err)
				assert.Equal(t, "correct-horse-battery-staple", p)
			}()
		}
		wg.Wait()
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}
