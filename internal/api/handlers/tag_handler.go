package handlers

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/response"
	"github.com/welldanyogia/recipe-api-backend/internal/api/serializers"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	repo repository.TagRepository
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(repo repository.TagRepository) *TagHandler {
	return &TagHandler{repo: repo}
}

// List handles GET /api/tags
func (h *TagHandler) List(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	assignedOnly, err := serializers.ParseFlag("assigned_only", c.QueryParam("assigned_only"))
	if err != nil {
		return response.Error(c, err)
	}

	tags, err := h.repo.ListForUser(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return response.InternalError(c, "failed to list tags")
	}

	return response.Success(c, serializers.NewTagList(tags))
}

// Create handles POST /api/tags
func (h *TagHandler) Create(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req serializers.TagRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	tag := &models.Tag{
		Name:   strings.TrimSpace(req.Name),
		UserID: userID,
	}
	if err := h.repo.Create(c.Request().Context(), tag); err != nil {
		return response.InternalError(c, "failed to create tag")
	}

	return response.Created(c, serializers.NewTagResponse(tag))
}

// Update handles PUT and PATCH /api/tags/:id
func (h *TagHandler) Update(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := serializers.ParseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid tag ID")
	}

	var req serializers.TagRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	tag, err := h.repo.GetForUser(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "tag not found")
		}
		return response.InternalError(c, "failed to get tag")
	}

	tag.Name = strings.TrimSpace(req.Name)
	if err := h.repo.Update(c.Request().Context(), tag); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "tag not found")
		}
		return response.InternalError(c, "failed to update tag")
	}

	return response.Success(c, serializers.NewTagResponse(tag))
}

// Delete handles DELETE /api/tags/:id
func (h *TagHandler) Delete(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := serializers.ParseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid tag ID")
	}

	if err := h.repo.DeleteForUser(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "tag not found")
		}
		return response.InternalError(c, "failed to delete tag")
	}

	return response.NoContent(c)
}
