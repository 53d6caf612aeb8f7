// Package http provides HTTP handlers for person management operations.
// Responses carry the opened social benefits number; the record secret never leaves the server.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/fieldvault/internal/httputil"
	"github.com/allisson/fieldvault/internal/persons/http/dto"
	personsUseCase "github.com/allisson/fieldvault/internal/persons/usecase"
)

// PersonHandler handles HTTP requests for person management operations.
type PersonHandler struct {
	personUseCase personsUseCase.PersonUseCase
	logger        *slog.Logger
}

// NewPersonHandler creates a new person handler with required dependencies.
func NewPersonHandler(personUseCase personsUseCase.PersonUseCase, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{
		personUseCase: personUseCase,
		logger:        logger,
	}
}

// RegisterRoutes mounts the person endpoints on the given router group.
func (h *PersonHandler) RegisterRoutes(group *gin.RouterGroup) {
	persons := group.Group("/persons")
	{
		persons.POST("", h.CreateHandler)
		persons.GET("", h.ListHandler)
		persons.GET("/:id", h.GetHandler)
		persons.PUT("/:id", h.UpdateHandler)
		persons.DELETE("/:id", h.DeleteHandler)
	}
}

// CreateHandler creates a person.
// POST /v1/persons - Returns 201 Created with the person.
func (h *PersonHandler) CreateHandler(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	view, err := h.personUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPersonToResponse(view))
}

// GetHandler retrieves a person by ID.
// GET /v1/persons/:id - Returns 200 OK with the person.
func (h *PersonHandler) GetHandler(c *gin.Context) {
	personID, ok := h.parsePersonID(c)
	if !ok {
		return
	}

	view, err := h.personUseCase.Get(c.Request.Context(), personID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPersonToResponse(view))
}

// UpdateHandler replaces a person's fields.
// PUT /v1/persons/:id - Returns 200 OK with the updated person.
func (h *PersonHandler) UpdateHandler(c *gin.Context) {
	personID, ok := h.parsePersonID(c)
	if !ok {
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	view, err := h.personUseCase.Update(c.Request.Context(), personID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPersonToResponse(view))
}

// DeleteHandler removes a person.
// DELETE /v1/persons/:id - Returns 204 No Content.
func (h *PersonHandler) DeleteHandler(c *gin.Context) {
	personID, ok := h.parsePersonID(c)
	if !ok {
		return
	}

	if err := h.personUseCase.Delete(c.Request.Context(), personID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves persons ordered by name.
// GET /v1/persons?offset=0&limit=50 - Returns 200 OK with a page of persons.
func (h *PersonHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	views, err := h.personUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPersonsToListResponse(views))
}

func (h *PersonHandler) parsePersonID(c *gin.Context) (uuid.UUID, bool) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid person ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return personID, true
}

func (h *PersonHandler) bindRequest(c *gin.Context) (*dto.PersonRequest, bool) {
	var req dto.PersonRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return nil, false
	}

	return &req, true
}
