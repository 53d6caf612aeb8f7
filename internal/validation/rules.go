// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/fieldvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PassphraseStrength validates operator-supplied passphrases before they are
// stored or sealed. Generated passphrases always pass.
type PassphraseStrength struct {
	MinLength     int
	MinDistinct   int
	RequireLetter bool
	RequireNumber bool
}

// DefaultPassphraseStrength is applied by the passphrase commands.
var DefaultPassphraseStrength = PassphraseStrength{
	MinLength:   16,
	MinDistinct: 8,
}

// Validate checks if the passphrase meets the configured requirements
func (p PassphraseStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_passphrase_strength", "passphrase must be a string")
	}

	if utf8.RuneCountInString(s) < p.MinLength {
		return validation.NewError(
			"validation_passphrase_min_length",
			fmt.Sprintf("passphrase must be at least %d characters", p.MinLength),
		)
	}

	if distinctRunes(s) < p.MinDistinct {
		return validation.NewError(
			"validation_passphrase_distinct",
			fmt.Sprintf("passphrase must contain at least %d distinct characters", p.MinDistinct),
		)
	}

	if p.RequireLetter && !hasLetter(s) {
		return validation.NewError("validation_passphrase_letter", "passphrase must contain at least one letter")
	}

	if p.RequireNumber && !hasNumber(s) {
		return validation.NewError("validation_passphrase_number", "passphrase must contain at least one number")
	}

	return nil
}

func distinctRunes(s string) int {
	seen := make(map[rune]struct{})
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// hasLetter checks if string contains letters
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// hasNumber checks if string contains numbers
func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Base64 validates padded standard base64 text with zero padding bits, the
// encoding of secrets, ciphertexts and sealed passphrases.
var Base64 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := base64.StdEncoding.Strict().DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_base64", "must be valid base64-encoded data"),
)
