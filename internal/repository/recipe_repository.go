package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"gorm.io/gorm"
)

// RecipeRepository defines the interface for recipe data access
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetDetail(ctx context.Context, userID, id uint) (*models.Recipe, error)
	ListForUser(ctx context.Context, userID uint, filter models.RecipeFilter) ([]models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe, replaceTags, replaceIngredients bool) error
	UpdateImage(ctx context.Context, userID, id uint, imagePath string) error
	DeleteForUser(ctx context.Context, userID, id uint) error
}

// recipeRepository implements RecipeRepository using GORM
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository instance
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create creates a new recipe together with its tag and ingredient links.
// The linked tags and ingredients must already exist.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	result := r.db.WithContext(ctx).
		Omit("User", "Tags.*", "Ingredients.*").
		Create(recipe)
	if result.Error != nil {
		return fmt.Errorf("failed to create recipe: %w", result.Error)
	}
	return nil
}

// GetDetail retrieves a recipe with its tags and ingredients if it belongs to the user
func (r *recipeRepository) GetDetail(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	result := r.db.WithContext(ctx).
		Preload("Tags", orderByID).
		Preload("Ingredients", orderByID).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", result.Error)
	}
	return &recipe, nil
}

// ListForUser retrieves the user's recipes ordered by ID.
// A non-empty filter keeps recipes linked to any of the given tags or ingredients.
func (r *recipeRepository) ListForUser(ctx context.Context, userID uint, filter models.RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe
	db := r.db.WithContext(ctx)
	query := db.Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		tagged := db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if len(filter.IngredientIDs) > 0 {
		using := db.Table("recipe_ingredients").
			Select("recipe_ingredients.recipe_id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
		query = query.Where("recipes.id IN (?)", using)
	}

	result := query.
		Preload("Tags", orderByID).
		Preload("Ingredients", orderByID).
		Order("recipes.id ASC").
		Find(&recipes)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", result.Error)
	}
	return recipes, nil
}

// Update saves the scalar fields of a recipe owned by recipe.UserID and,
// when requested, replaces its tag and ingredient links with recipe.Tags / recipe.Ingredients.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, replaceTags, replaceIngredients bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Recipe{}).
			Where("id = ? AND user_id = ?", recipe.ID, recipe.UserID).
			Updates(map[string]interface{}{
				"title":        recipe.Title,
				"time_minutes": recipe.TimeMinutes,
				"price":        recipe.Price,
				"link":         recipe.Link,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if replaceTags {
			if err := replaceAssociation(tx.Model(recipe).Association("Tags"), recipe.Tags, len(recipe.Tags)); err != nil {
				return fmt.Errorf("failed to replace recipe tags: %w", err)
			}
		}
		if replaceIngredients {
			if err := replaceAssociation(tx.Model(recipe).Association("Ingredients"), recipe.Ingredients, len(recipe.Ingredients)); err != nil {
				return fmt.Errorf("failed to replace recipe ingredients: %w", err)
			}
		}
		return nil
	})
}

func replaceAssociation(assoc *gorm.Association, values interface{}, n int) error {
	if assoc.Error != nil {
		return assoc.Error
	}
	if n == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

// UpdateImage stores the relative image path of a recipe owned by the user
func (r *recipeRepository) UpdateImage(ctx context.Context, userID, id uint, imagePath string) error {
	result := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("image", imagePath)
	if result.Error != nil {
		return fmt.Errorf("failed to update recipe image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteForUser deletes a recipe owned by the user along with its tag and ingredient links
func (r *recipeRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get recipe: %w", err)
		}
		if err := tx.Select("Tags", "Ingredients").Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}
