package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/response"
	"github.com/welldanyogia/recipe-api-backend/internal/api/serializers"
	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
	"github.com/welldanyogia/recipe-api-backend/internal/logger"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
	"github.com/welldanyogia/recipe-api-backend/internal/storage"
	"github.com/welldanyogia/recipe-api-backend/internal/validator"
)

// imageField is the multipart form field carrying a recipe image
const imageField = "image"

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	recipes     repository.RecipeRepository
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
	fileStorage storage.FileStorage
	idGen       storage.IDGenerator
	mediaURL    string
	secLogger   *logger.SecurityLogger
}

// NewRecipeHandler creates a new RecipeHandler without image support
func NewRecipeHandler(
	recipes repository.RecipeRepository,
	tags repository.TagRepository,
	ingredients repository.IngredientRepository,
	mediaURL string,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		mediaURL:    mediaURL,
	}
}

// NewRecipeHandlerWithStorage creates a new RecipeHandler that can store recipe images.
// A nil idGen falls back to random UUIDs.
func NewRecipeHandlerWithStorage(
	recipes repository.RecipeRepository,
	tags repository.TagRepository,
	ingredients repository.IngredientRepository,
	fileStorage storage.FileStorage,
	idGen storage.IDGenerator,
	mediaURL string,
	secLogger *logger.SecurityLogger,
) *RecipeHandler {
	if idGen == nil {
		idGen = storage.UUIDGenerator{}
	}
	h := NewRecipeHandler(recipes, tags, ingredients, mediaURL)
	h.fileStorage = fileStorage
	h.idGen = idGen
	h.secLogger = secLogger
	return h
}

// List handles GET /api/recipes
// Optional query params: tags=1,2 and ingredients=3
func (h *RecipeHandler) List(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	var filter models.RecipeFilter
	var err error
	if filter.TagIDs, err = serializers.ParseIDList("tags", c.QueryParam("tags")); err != nil {
		return response.Error(c, err)
	}
	if filter.IngredientIDs, err = serializers.ParseIDList("ingredients", c.QueryParam("ingredients")); err != nil {
		return response.Error(c, err)
	}

	recipes, err := h.recipes.ListForUser(c.Request().Context(), userID, filter)
	if err != nil {
		return response.InternalError(c, "failed to list recipes")
	}

	return response.Success(c, serializers.NewRecipeList(recipes))
}

// Get handles GET /api/recipes/:id
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	recipe, err := h.loadRecipe(c, userID)
	if err != nil || recipe == nil {
		return err
	}

	return response.Success(c, serializers.NewRecipeDetailResponse(recipe, h.mediaURL))
}

// Create handles POST /api/recipes
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req serializers.RecipeRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	ctx := c.Request().Context()
	tags, err := h.resolveTags(ctx, userID, req.Tags)
	if err != nil {
		return response.Error(c, err)
	}
	ingredients, err := h.resolveIngredients(ctx, userID, req.Ingredients)
	if err != nil {
		return response.Error(c, err)
	}

	recipe := &models.Recipe{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := h.recipes.Create(ctx, recipe); err != nil {
		return response.InternalError(c, "failed to create recipe")
	}

	return response.Created(c, serializers.NewRecipeDetailResponse(recipe, h.mediaURL))
}

// Replace handles PUT /api/recipes/:id
// Omitted tags or ingredients clear the recipe's links.
func (h *RecipeHandler) Replace(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req serializers.RecipeRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	recipe, err := h.loadRecipe(c, userID)
	if err != nil || recipe == nil {
		return err
	}

	ctx := c.Request().Context()
	if recipe.Tags, err = h.resolveTags(ctx, userID, req.Tags); err != nil {
		return response.Error(c, err)
	}
	if recipe.Ingredients, err = h.resolveIngredients(ctx, userID, req.Ingredients); err != nil {
		return response.Error(c, err)
	}
	recipe.Title = strings.TrimSpace(req.Title)
	recipe.TimeMinutes = *req.TimeMinutes
	recipe.Price = *req.Price
	recipe.Link = req.Link

	return h.save(c, recipe, true, true)
}

// Patch handles PATCH /api/recipes/:id
// Only the fields present in the body are changed.
func (h *RecipeHandler) Patch(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req serializers.RecipePatchRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	recipe, err := h.loadRecipe(c, userID)
	if err != nil || recipe == nil {
		return err
	}

	ctx := c.Request().Context()
	if req.Tags != nil {
		if recipe.Tags, err = h.resolveTags(ctx, userID, *req.Tags); err != nil {
			return response.Error(c, err)
		}
	}
	if req.Ingredients != nil {
		if recipe.Ingredients, err = h.resolveIngredients(ctx, userID, *req.Ingredients); err != nil {
			return response.Error(c, err)
		}
	}
	if req.Title != nil {
		recipe.Title = strings.TrimSpace(*req.Title)
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	return h.save(c, recipe, req.Tags != nil, req.Ingredients != nil)
}

// Delete handles DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := serializers.ParseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid recipe ID")
	}

	if err := h.recipes.DeleteForUser(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "recipe not found")
		}
		return response.InternalError(c, "failed to delete recipe")
	}

	return response.NoContent(c)
}

// UploadImage handles POST /api/recipes/:id/image (multipart field "image")
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	if h.fileStorage == nil {
		return response.InternalError(c, "image storage not configured")
	}

	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	recipe, err := h.loadRecipe(c, userID)
	if err != nil || recipe == nil {
		return err
	}

	file, err := c.FormFile(imageField)
	if err != nil {
		return response.ValidationFailed(c, apperrors.NewValidationError(imageField, "image file is required"))
	}

	filename := validator.SanitizeFilename(file.Filename)
	if err := storage.ValidateImage(filename, file.Size); err != nil {
		return h.rejectImage(c, filename, err)
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalError(c, "failed to read uploaded file")
	}
	defer src.Close()

	content, err := storage.SniffImage(src)
	if err != nil {
		if errors.Is(err, storage.ErrNotAnImage) {
			return h.rejectImage(c, filename, err)
		}
		return response.InternalError(c, "failed to read uploaded file")
	}

	imagePath := storage.RecipeImageFilePath(h.idGen, filename)
	if err := h.fileStorage.Save(imagePath, content); err != nil {
		return response.InternalError(c, "failed to store image")
	}

	ctx := c.Request().Context()
	if err := h.recipes.UpdateImage(ctx, userID, recipe.ID, imagePath); err != nil {
		h.removeImage(imagePath)
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "recipe not found")
		}
		return response.InternalError(c, "failed to update recipe image")
	}

	if recipe.Image != "" && recipe.Image != imagePath {
		h.removeImage(recipe.Image)
	}

	return response.Success(c, serializers.RecipeImageResponse{
		ID:    recipe.ID,
		Image: serializers.MediaURL(h.mediaURL, imagePath),
	})
}

// DownloadImage handles GET /api/recipes/:id/image
func (h *RecipeHandler) DownloadImage(c echo.Context) error {
	if h.fileStorage == nil {
		return response.InternalError(c, "image storage not configured")
	}

	userID, ok := callerID(c)
	if !ok {
		return unauthenticated(c)
	}

	recipe, err := h.loadRecipe(c, userID)
	if err != nil || recipe == nil {
		return err
	}
	if recipe.Image == "" {
		return response.NotFound(c, "recipe has no image")
	}

	file, err := h.fileStorage.Get(recipe.Image)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return response.NotFound(c, "image not found")
		}
		return response.InternalError(c, "failed to retrieve image")
	}
	defer file.Close()

	return c.Stream(http.StatusOK, imageContentType(recipe.Image), file)
}

// loadRecipe resolves the :id path param to one of the caller's recipes.
// On failure it writes the response and returns a nil recipe.
func (h *RecipeHandler) loadRecipe(c echo.Context, userID uint) (*models.Recipe, error) {
	id, err := serializers.ParseID(c.Param("id"))
	if err != nil {
		return nil, response.BadRequest(c, "invalid recipe ID")
	}

	recipe, err := h.recipes.GetDetail(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NotFound(c, "recipe not found")
		}
		return nil, response.InternalError(c, "failed to get recipe")
	}
	return recipe, nil
}

func (h *RecipeHandler) save(c echo.Context, recipe *models.Recipe, replaceTags, replaceIngredients bool) error {
	if err := h.recipes.Update(c.Request().Context(), recipe, replaceTags, replaceIngredients); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "recipe not found")
		}
		return response.InternalError(c, "failed to update recipe")
	}
	return response.Success(c, serializers.NewRecipeDetailResponse(recipe, h.mediaURL))
}

// resolveTags loads the caller's tags for ids; any unknown or foreign ID is a validation error
func (h *RecipeHandler) resolveTags(ctx context.Context, userID uint, ids []uint) ([]models.Tag, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := h.tags.FindByIDsForUser(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, apperrors.NewValidationError("tags", "tags contains an unknown tag ID")
	}
	return tags, nil
}

// resolveIngredients loads the caller's ingredients for ids; any unknown or foreign ID is a validation error
func (h *RecipeHandler) resolveIngredients(ctx context.Context, userID uint, ids []uint) ([]models.Ingredient, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	ingredients, err := h.ingredients.FindByIDsForUser(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, apperrors.NewValidationError("ingredients", "ingredients contains an unknown ingredient ID")
	}
	return ingredients, nil
}

func (h *RecipeHandler) rejectImage(c echo.Context, filename string, reason error) error {
	if h.secLogger != nil {
		h.secLogger.RejectedImageUpload(c.RealIP(), filename, reason.Error())
	}
	return response.ValidationFailed(c, apperrors.NewValidationError(imageField, reason.Error()))
}

func (h *RecipeHandler) removeImage(path string) {
	if err := h.fileStorage.Delete(path); err != nil && h.secLogger != nil {
		h.secLogger.Error("failed to remove recipe image", "path", path, "error", err)
	}
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// imageContentType maps a stored image path to its content type
func imageContentType(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return echo.MIMEOctetStream
}
