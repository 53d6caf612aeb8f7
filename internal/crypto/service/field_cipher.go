package service

// FieldCipher encrypts a record field with a key that is re-derived on every
// use from the shared passphrase and the record's own secret.
//
// A record secret is the base64 salt returned by a passphrase-only derivation.
// Persisting the secret with the ciphertext is enough to decrypt later; the key
// itself is never stored. Once a secret has sealed a value it must not change.
type FieldCipher struct {
	passphrases PassphraseSource
	keys        *KeyGenerator
	secrets     *KeyGenerator
}

// NewFieldCipher creates a FieldCipher.
//
// keys derives the per-record encryption keys; secrets produces new record
// secrets and should generate salts of at least domain.SecretSaltSize bytes.
func NewFieldCipher(passphrases PassphraseSource, keys, secrets *KeyGenerator) *FieldCipher {
	return &FieldCipher{
		passphrases: passphrases,
		keys:        keys,
		secrets:     secrets,
	}
}

// NewSecret creates a high-entropy record secret.
func (f *FieldCipher) NewSecret() (string, error) {
	passphrase, err := f.passphrases.Passphrase()
	if err != nil {
		return "", err
	}

	pair, err := f.secrets.GenerateKey(&passphrase)
	if err != nil {
		return "", err
	}
	key := pair.Item1()
	key.Destroy()

	return pair.Item2(), nil
}

// Encrypter re-derives the key for secret and returns a fresh Encrypter for it.
func (f *FieldCipher) Encrypter(secret string) (*Encrypter, error) {
	passphrase, err := f.passphrases.Passphrase()
	if err != nil {
		return nil, err
	}

	pair, err := f.keys.GenerateKeyWithSalt(&passphrase, &secret)
	if err != nil {
		return nil, err
	}

	return NewEncrypter(pair.Item1()), nil
}

// Seal encrypts value under the key derived for secret. A nil value stays nil.
func (f *FieldCipher) Seal(secret string, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	encrypter, err := f.Encrypter(secret)
	if err != nil {
		return nil, err
	}
	defer encrypter.key.Destroy()

	return encrypter.Encrypt(value)
}

// Open decrypts ciphertext under the key derived for secret. A nil ciphertext stays nil.
func (f *FieldCipher) Open(secret string, ciphertext *string) (*string, error) {
	if ciphertext == nil {
		return nil, nil
	}

	encrypter, err := f.Encrypter(secret)
	if err != nil {
		return nil, err
	}
	defer encrypter.key.Destroy()

	return encrypter.Decrypt(ciphertext)
}
