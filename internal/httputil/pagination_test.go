package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/fieldvault/internal/errors"
	"github.com/allisson/fieldvault/internal/httputil"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		expectedOffset int
		expectedLimit  int
		errorContains  string
	}{
		{name: "default values", url: "/", expectedLimit: httputil.DefaultLimit},
		{name: "valid custom values", url: "/?offset=10&limit=20", expectedOffset: 10, expectedLimit: 20},
		{name: "max limit", url: "/?limit=100", expectedLimit: httputil.MaxLimit},
		{name: "offset only", url: "/?offset=3", expectedOffset: 3, expectedLimit: httputil.DefaultLimit},
		{name: "offset negative", url: "/?offset=-1", errorContains: "offset: must be no less than 0"},
		{name: "offset not an integer", url: "/?offset=abc", errorContains: "offset: must be an integer"},
		{name: "limit zero", url: "/?limit=0", errorContains: "limit: must be no less than 1"},
		{name: "limit exceeds max", url: "/?limit=101", errorContains: "limit: must be no greater than 100"},
		{name: "limit not an integer", url: "/?limit=xyz", errorContains: "limit: must be an integer"},
		{name: "empty limit", url: "/?limit=", errorContains: "limit: must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)

			offset, limit, err := httputil.ParsePagination(c)

			if tt.errorContains != "" {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Equal(t, 0, offset)
				assert.Equal(t, 0, limit)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestPageValidate(t *testing.T) {
	assert.NoError(t, httputil.Page{Offset: 0, Limit: 1}.Validate())
	assert.Error(t, httputil.Page{Offset: -5, Limit: 10}.Validate())
	assert.Error(t, httputil.Page{Offset: 0, Limit: httputil.MaxLimit + 1}.Validate())
}
