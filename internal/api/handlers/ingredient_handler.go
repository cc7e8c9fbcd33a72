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

// IngredientHandler handles ingredient-related HTTP requests
type IngredientHandler struct {
	repo repository.IngredientRepository
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(repo repository.IngredientRepository) *IngredientHandler {
	return &IngredientHandler{repo: repo}
}

// List handles GET /api/ingredients
func (h *IngredientHandler) List(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	assignedOnly, err := serializers.ParseFlag("assigned_only", c.QueryParam("assigned_only"))
	if err != nil {
		return response.Error(c, err)
	}

	ingredients, err := h.repo.ListForUser(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return response.InternalError(c, "failed to list ingredients")
	}

	return response.Success(c, serializers.NewIngredientList(ingredients))
}

// Create handles POST /api/ingredients
func (h *IngredientHandler) Create(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req serializers.IngredientRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	ingredient := &models.Ingredient{
		Name:   strings.TrimSpace(req.Name),
		UserID: userID,
	}
	if err := h.repo.Create(c.Request().Context(), ingredient); err != nil {
		return response.InternalError(c, "failed to create ingredient")
	}

	return response.Created(c, serializers.NewIngredientResponse(ingredient))
}

// Update handles PUT and PATCH /api/ingredients/:id
func (h *IngredientHandler) Update(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := serializers.ParseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid ingredient ID")
	}

	var req serializers.IngredientRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	ingredient, err := h.repo.GetForUser(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "ingredient not found")
		}
		return response.InternalError(c, "failed to get ingredient")
	}

	ingredient.Name = strings.TrimSpace(req.Name)
	if err := h.repo.Update(c.Request().Context(), ingredient); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "ingredient not found")
		}
		return response.InternalError(c, "failed to update ingredient")
	}

	return response.Success(c, serializers.NewIngredientResponse(ingredient))
}

// Delete handles DELETE /api/ingredients/:id
func (h *IngredientHandler) Delete(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := serializers.ParseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid ingredient ID")
	}

	if err := h.repo.DeleteForUser(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "ingredient not found")
		}
		return response.InternalError(c, "failed to delete ingredient")
	}

	return response.NoContent(c)
}
