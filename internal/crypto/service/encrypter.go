package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
)

// Encrypter encrypts and decrypts text with a derived key.
//
// The cipher is the key algorithm's default transformation. For AES that is ECB
// mode with PKCS#5 padding, which keeps ciphertext compatible with values written
// by earlier deployments. It is deterministic and unauthenticated: equal
// plaintexts under one key give equal ciphertexts.
//
// Thread safety: the cipher handle is built once per Encrypter and its mode is
// reset before every operation. Operations on one instance are serialized, so
// an Encrypter may be shared between goroutines.
type Encrypter struct {
	key cryptoDomain.Key

	mu     sync.Mutex
	cipher *blockCipher
}

// NewEncrypter creates an Encrypter for key.
func NewEncrypter(key cryptoDomain.Key) *Encrypter {
	return &Encrypter{key: key}
}

// Encrypt encrypts the UTF-8 bytes of text and returns base64 ciphertext.
// A nil text is returned unchanged. Text that is not valid UTF-8 is rejected,
// since Decrypt only returns valid UTF-8.
func (e *Encrypter) Encrypt(text *string) (*string, error) {
	if text == nil {
		return nil, nil
	}
	if !utf8.ValidString(*text) {
		return nil, cryptoDomain.NewCryptoError(
			"encrypt",
			cryptoDomain.ErrInvalidArgument,
			errors.New("text is not valid UTF-8"),
		)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.getCipher()
	if err != nil {
		return nil, err
	}

	c.init(modeEncrypt)
	out, err := c.doFinal([]byte(*text))
	if err != nil {
		return nil, cryptoDomain.NewCryptoError("encrypt", cryptoDomain.ErrCryptoFailure, err)
	}

	encoded := base64.StdEncoding.EncodeToString(out)
	return &encoded, nil
}

// Decrypt decodes base64 ciphertext and returns the original text.
// A nil ciphertext is returned unchanged.
func (e *Encrypter) Decrypt(ciphertext *string) (*string, error) {
	if ciphertext == nil {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(*ciphertext)
	if err != nil {
		return nil, cryptoDomain.NewCryptoError("decrypt", cryptoDomain.ErrCryptoFailure, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.getCipher()
	if err != nil {
		return nil, err
	}

	c.init(modeDecrypt)
	out, err := c.doFinal(raw)
	if err != nil {
		return nil, cryptoDomain.NewCryptoError("decrypt", cryptoDomain.ErrCryptoFailure, err)
	}
	if !utf8.Valid(out) {
		return nil, cryptoDomain.NewCryptoError(
			"decrypt",
			cryptoDomain.ErrCryptoFailure,
			errors.New("plaintext is not valid UTF-8"),
		)
	}

	text := string(out)
	return &text, nil
}

// EncryptString is Encrypt for a value that is always present.
func (e *Encrypter) EncryptString(text string) (string, error) {
	out, err := e.Encrypt(&text)
	if err != nil {
		return "", err
	}
	return *out, nil
}

// DecryptString is Decrypt for a value that is always present.
func (e *Encrypter) DecryptString(ciphertext string) (string, error) {
	out, err := e.Decrypt(&ciphertext)
	if err != nil {
		return "", err
	}
	return *out, nil
}

// getCipher builds the cipher handle on first use. Callers hold e.mu.
func (e *Encrypter) getCipher() (*blockCipher, error) {
	if e.cipher != nil {
		return e.cipher, nil
	}

	if e.key.Algorithm != cryptoDomain.AES {
		return nil, cryptoDomain.NewCryptoError(
			"create cipher",
			cryptoDomain.ErrAlgorithmUnavailable,
			fmt.Errorf("unsupported cipher algorithm %q", e.key.Algorithm),
		)
	}

	block, err := aes.NewCipher(e.key.Material[:])
	if err != nil {
		return nil, cryptoDomain.NewCryptoError("create cipher", cryptoDomain.ErrCryptoFailure, err)
	}

	e.cipher = &blockCipher{block: block}
	return e.cipher, nil
}

type cipherMode int

const (
	modeUnset cipherMode = iota
	modeEncrypt
	modeDecrypt
)

// blockCipher runs a block cipher in ECB mode with PKCS#5 padding.
type blockCipher struct {
	block cipher.Block
	mode  cipherMode
}

func (c *blockCipher) init(mode cipherMode) {
	c.mode = mode
}

func (c *blockCipher) doFinal(in []byte) ([]byte, error) {
	switch c.mode {
	case modeEncrypt:
		return c.encrypt(in), nil
	case modeDecrypt:
		return c.decrypt(in)
	default:
		return nil, errors.New("cipher not initialized")
	}
}

func (c *blockCipher) encrypt(plaintext []byte) []byte {
	size := c.block.BlockSize()
	padded := pad(plaintext, size)

	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += size {
		c.block.Encrypt(out[i:i+size], padded[i:i+size])
	}
	return out
}

func (c *blockCipher) decrypt(ciphertext []byte) ([]byte, error) {
	size := c.block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%size != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(ciphertext))
	}

	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += size {
		c.block.Decrypt(out[i:i+size], ciphertext[i:i+size])
	}
	return unpad(out, size)
}

// pad appends PKCS#5 padding; a full block is added when the input is aligned.
func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, errors.New("bad padding")
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, errors.New("bad padding")
		}
	}
	return b[:len(b)-n], nil
}
