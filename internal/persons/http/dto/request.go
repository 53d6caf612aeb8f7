// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// PersonRequest contains the writable fields of a person for create and update.
type PersonRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	SocialBenefitsNumber string `json:"social_benefits_number"`
}

// ToInput converts the request into the use case input.
func (r *PersonRequest) ToInput() *personsDomain.PersonInput {
	return &personsDomain.PersonInput{
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		SocialBenefitsNumber: r.SocialBenefitsNumber,
	}
}

// Validate checks if the person request is valid.
func (r *PersonRequest) Validate() error {
	return r.ToInput().Validate()
}
