package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fieldvault/internal/validation"
)

// Validate checks required fields and column limits.
func (i *PersonInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.FirstName,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&i.LastName,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&i.SocialBenefitsNumber,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, MaxSocialBenefitsNumberLength),
			validation.Length(1, MaxSocialBenefitsNumberBytes),
		),
	)
	return customValidation.WrapValidationError(err)
}
