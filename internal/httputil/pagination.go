package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/fieldvault/internal/errors"
	customValidation "github.com/allisson/fieldvault/internal/validation"
)

// Page size bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page is a window over an ordered listing.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Validate checks the window bounds.
func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Limit,
			validation.Required.Error("must be no less than 1"),
			validation.Min(1),
			validation.Max(MaxLimit),
		),
	)
}

// ParsePagination reads the offset and limit query parameters.
// Missing parameters default to offset 0 and limit DefaultLimit.
// Errors wrap ErrInvalidInput and zero values are returned with them.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	page := Page{Limit: DefaultLimit}

	if page.Offset, err = queryInt(c, "offset", page.Offset); err != nil {
		return 0, 0, err
	}
	if page.Limit, err = queryInt(c, "limit", page.Limit); err != nil {
		return 0, 0, err
	}

	if err := page.Validate(); err != nil {
		return 0, 0, customValidation.WrapValidationError(err)
	}

	return page.Offset, page.Limit, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, name+": must be an integer")
	}
	return value, nil
}
