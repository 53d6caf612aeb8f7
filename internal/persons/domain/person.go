// Package domain defines the person record and how its sensitive field is sealed.
//
// A person stores its social benefits number only as ciphertext. The key is
// derived from the shared passphrase and the person's own secret every time the
// value is read or written, and is never persisted.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
)

// Column limits. The social benefits number is bounded in runes and in UTF-8
// bytes so its sealed form fits the ciphertext column.
const (
	MaxNameLength                 = 50
	MaxSocialBenefitsNumberLength = 255
	MaxSocialBenefitsNumberBytes  = cryptoDomain.MaxPlaintextBytes
)

// FieldSealer seals and opens record fields with a per-record secret.
type FieldSealer interface {
	NewSecret() (string, error)
	Seal(secret string, value *string) (*string, error)
	Open(secret string, ciphertext *string) (*string, error)
}

// Person is a stored person record.
type Person struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	// Secret is the base64 salt the field key is derived from. Set once.
	Secret string
	// SealedSocialBenefitsNumber is the base64 ciphertext of the social benefits number.
	SealedSocialBenefitsNumber *string
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// NewPerson creates a person without a secret or sealed fields.
func NewPerson(firstName, lastName string) *Person {
	now := time.Now().UTC()
	return &Person{
		ID:        uuid.Must(uuid.NewV7()),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetSocialBenefitsNumber seals value under the person's secret, creating the
// secret on first use. A nil value clears the sealed field and keeps the secret.
func (p *Person) SetSocialBenefitsNumber(sealer FieldSealer, value *string) error {
	if p.Secret == "" {
		secret, err := sealer.NewSecret()
		if err != nil {
			return err
		}
		p.Secret = secret
	}

	sealed, err := sealer.Seal(p.Secret, value)
	if err != nil {
		return err
	}
	if sealed != nil && len(*sealed) > cryptoDomain.MaxEncodedLength {
		return cryptoDomain.NewCryptoError(
			"seal social benefits number",
			cryptoDomain.ErrInvalidArgument,
			fmt.Errorf("sealed value is %d characters, limit is %d", len(*sealed), cryptoDomain.MaxEncodedLength),
		)
	}

	p.SealedSocialBenefitsNumber = sealed
	return nil
}

// SocialBenefitsNumber opens the sealed social benefits number.
// Returns nil when nothing was sealed.
func (p *Person) SocialBenefitsNumber(sealer FieldSealer) (*string, error) {
	if p.SealedSocialBenefitsNumber == nil {
		return nil, nil
	}
	return sealer.Open(p.Secret, p.SealedSocialBenefitsNumber)
}

// PersonView is a person with its sensitive field opened. It never carries the secret.
type PersonView struct {
	ID                   uuid.UUID
	FirstName            string
	LastName             string
	SocialBenefitsNumber *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// View opens the person's sealed fields.
func (p *Person) View(sealer FieldSealer) (*PersonView, error) {
	sbn, err := p.SocialBenefitsNumber(sealer)
	if err != nil {
		return nil, err
	}

	return &PersonView{
		ID:                   p.ID,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		SocialBenefitsNumber: sbn,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}, nil
}

// PersonInput carries the writable fields of a person.
// Tags name the fields in validation errors.
type PersonInput struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	SocialBenefitsNumber string `json:"social_benefits_number"`
}
