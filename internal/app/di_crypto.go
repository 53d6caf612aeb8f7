package app

import (
	"context"
	"fmt"

	"github.com/allisson/fieldvault/internal/config"
	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldvault/internal/crypto/service"
)

// KMSService returns the KMS service used to unseal the passphrase.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// PassphraseSource returns the configured passphrase source.
// Every provider is wrapped so the passphrase is resolved once per process.
func (c *Container) PassphraseSource() (cryptoService.PassphraseSource, error) {
	err := c.initOnce(&c.passphraseSourceInit, "passphraseSource", func() error {
		var err error
		c.passphraseSource, err = c.initPassphraseSource()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.passphraseSource, nil
}

// KeyGenerator returns the generator that derives per-field keys.
func (c *Container) KeyGenerator() *cryptoService.KeyGenerator {
	c.keyGeneratorInit.Do(func() {
		c.keyGenerator = cryptoService.NewKeyGenerator(c.keyGeneratorOptions()...)
	})
	return c.keyGenerator
}

// SecretGenerator returns the generator whose salts become per-record secrets.
func (c *Container) SecretGenerator() *cryptoService.KeyGenerator {
	c.secretGeneratorInit.Do(func() {
		opts := append(c.keyGeneratorOptions(), cryptoService.WithSaltSize(cryptoDomain.SecretSaltSize))
		c.secretGenerator = cryptoService.NewKeyGenerator(opts...)
	})
	return c.secretGenerator
}

// FieldCipher returns the cipher that seals and opens record fields.
func (c *Container) FieldCipher() (*cryptoService.FieldCipher, error) {
	err := c.initOnce(&c.fieldCipherInit, "fieldCipher", func() error {
		source, err := c.PassphraseSource()
		if err != nil {
			return fmt.Errorf("failed to get passphrase source for field cipher: %w", err)
		}
		c.fieldCipher = cryptoService.NewFieldCipher(source, c.KeyGenerator(), c.SecretGenerator())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.fieldCipher, nil
}

// VerifyPassphrase checks the configured passphrase against PASSPHRASE_HASH.
// It is a no-op when no hash is configured.
func (c *Container) VerifyPassphrase() error {
	if c.config.PassphraseHash == "" {
		return nil
	}

	source, err := c.PassphraseSource()
	if err != nil {
		return err
	}

	verifier, err := cryptoService.NewPassphraseVerifier()
	if err != nil {
		return err
	}

	if err := verifier.Verify(source, c.config.PassphraseHash); err != nil {
		return fmt.Errorf("passphrase verification failed: %w", err)
	}
	return nil
}

func (c *Container) keyGeneratorOptions() []cryptoService.KeyGeneratorOption {
	opts := []cryptoService.KeyGeneratorOption{
		cryptoService.WithAlgorithm(cryptoDomain.KDFAlgorithm(c.config.KDFAlgorithm)),
	}
	if c.config.KDFIterations > 0 {
		opts = append(opts, cryptoService.WithIterations(c.config.KDFIterations))
	}
	return opts
}

func (c *Container) initPassphraseSource() (cryptoService.PassphraseSource, error) {
	var source cryptoService.PassphraseSource

	switch c.config.PassphraseProvider {
	case config.PassphraseProviderFixed, "":
		c.Logger().Warn("using a random per-process passphrase, stored values will not survive a restart")
		source = cryptoService.NewRandomPassphraseSource()
	case config.PassphraseProviderStatic:
		source = cryptoService.NewStaticPassphraseSource(c.config.Passphrase)
	case config.PassphraseProviderKMS:
		source = cryptoService.NewKMSPassphraseSource(
			c.KMSService(),
			c.config.PassphraseKMSKeyURI,
			c.config.PassphraseKMSCiphertext,
			c.config.PassphraseKMSTimeout,
		)
	case config.PassphraseProviderKeyring:
		source = cryptoService.NewKeyringPassphraseSource(c.config.KeyringAccount)
	default:
		return nil, fmt.Errorf("unsupported passphrase provider: %s", c.config.PassphraseProvider)
	}

	return cryptoService.NewFixedPassphraseSource(source), nil
}

// SealPassphrase encrypts passphrase with the KMS key at keyURI.
func (c *Container) SealPassphrase(ctx context.Context, keyURI, passphrase string) (string, error) {
	return cryptoService.SealPassphrase(ctx, c.KMSService(), keyURI, passphrase)
}
