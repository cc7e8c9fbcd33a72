package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"gorm.io/gorm"
)

// IngredientRepository defines the interface for ingredient data access.
// Every read and delete is scoped to the owning user.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	GetForUser(ctx context.Context, userID, id uint) (*models.Ingredient, error)
	ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error)
	FindByIDsForUser(ctx context.Context, userID uint, ids []uint) ([]models.Ingredient, error)
	Update(ctx context.Context, ingredient *models.Ingredient) error
	DeleteForUser(ctx context.Context, userID, id uint) error
}

// ingredientRepository implements IngredientRepository using GORM
type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new IngredientRepository instance
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// Create creates a new ingredient
func (r *ingredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// GetForUser retrieves an ingredient by ID if it belongs to the user
func (r *ingredientRepository) GetForUser(ctx context.Context, userID, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&ingredient)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", result.Error)
	}
	return &ingredient, nil
}

// ListForUser retrieves the user's ingredients ordered by name descending.
// With assignedOnly, only ingredients attached to at least one of the user's recipes are returned, once each.
func (r *ingredientRepository) ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	db := r.db.WithContext(ctx)
	query := db.Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		assigned := db.Table("recipe_ingredients").
			Select("recipe_ingredients.ingredient_id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID)
		query = query.Where("ingredients.id IN (?)", assigned)
	}

	if err := query.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// FindByIDsForUser retrieves the user's ingredients with the given IDs; unknown or foreign IDs are skipped
func (r *ingredientRepository) FindByIDsForUser(ctx context.Context, userID uint, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id ASC").
		Find(&ingredients)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find ingredients: %w", result.Error)
	}
	return ingredients, nil
}

// Update renames an existing ingredient
func (r *ingredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	result := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id = ? AND user_id = ?", ingredient.ID, ingredient.UserID).
		Update("name", ingredient.Name)
	if result.Error != nil {
		return fmt.Errorf("failed to update ingredient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteForUser deletes an ingredient and detaches it from every recipe
func (r *ingredientRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Ingredient{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to get ingredient: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to detach ingredient from recipes: %w", err)
		}
		if err := tx.Delete(&models.Ingredient{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete ingredient: %w", err)
		}
		return nil
	})
}
