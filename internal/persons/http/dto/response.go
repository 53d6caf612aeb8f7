package dto

import (
	"time"

	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// PersonResponse represents a person in API responses.
// SocialBenefitsNumber is plaintext and must only travel over HTTPS in production.
type PersonResponse struct {
	ID                   string    `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	SocialBenefitsNumber *string   `json:"social_benefits_number"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ListPersonsResponse represents a paginated list of persons in API responses.
type ListPersonsResponse struct {
	Data []PersonResponse `json:"data"`
}

// MapPersonToResponse converts a person view to an API response.
func MapPersonToResponse(view *personsDomain.PersonView) PersonResponse {
	return PersonResponse{
		ID:                   view.ID.String(),
		FirstName:            view.FirstName,
		LastName:             view.LastName,
		SocialBenefitsNumber: view.SocialBenefitsNumber,
		CreatedAt:            view.CreatedAt,
		UpdatedAt:            view.UpdatedAt,
	}
}

// MapPersonsToListResponse converts person views to a list response.
func MapPersonsToListResponse(views []*personsDomain.PersonView) ListPersonsResponse {
	data := make([]PersonResponse, 0, len(views))
	for _, view := range views {
		data = append(data, MapPersonToResponse(view))
	}

	return ListPersonsResponse{
		Data: data,
	}
}
