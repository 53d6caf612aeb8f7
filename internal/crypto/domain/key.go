package domain

import "fmt"

// Key is derived symmetric key material. It is a comparable value so it can
// travel inside a tuple.Pair, and it is never persisted.
type Key struct {
	Algorithm Algorithm
	Material  [KeySize]byte
}

// NewKey copies material into a Key for the given algorithm.
// Returns ErrInvalidArgument when material is not exactly KeySize bytes.
func NewKey(alg Algorithm, material []byte) (Key, error) {
	if len(material) != KeySize {
		return Key{}, NewCryptoError(
			"new key",
			ErrInvalidArgument,
			fmt.Errorf("key material must be %d bytes, got %d", KeySize, len(material)),
		)
	}

	k := Key{Algorithm: alg}
	copy(k.Material[:], material)
	return k, nil
}

// Bytes returns a copy of the key material. Callers should Zero it after use.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, k.Material[:])
	return b
}

// Destroy clears the key material held by k.
func (k *Key) Destroy() {
	Zero(k.Material[:])
}

// String hides the key material.
func (k Key) String() string {
	return fmt.Sprintf("Key(%s, %d bits)", k.Algorithm, KeySize*8)
}

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
