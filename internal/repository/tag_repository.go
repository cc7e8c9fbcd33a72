package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data access.
// Every read and delete is scoped to the owning user.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetForUser(ctx context.Context, userID, id uint) (*models.Tag, error)
	ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error)
	FindByIDsForUser(ctx context.Context, userID uint, ids []uint) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	DeleteForUser(ctx context.Context, userID, id uint) error
}

// tagRepository implements TagRepository using GORM
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create creates a new tag
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// GetForUser retrieves a tag by ID if it belongs to the user
func (r *tagRepository) GetForUser(ctx context.Context, userID, id uint) (*models.Tag, error) {
	var tag models.Tag
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", result.Error)
	}
	return &tag, nil
}

// ListForUser retrieves the user's tags ordered by name descending.
// With assignedOnly, only tags attached to at least one of the user's recipes are returned, once each.
func (r *tagRepository) ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error) {
	var tags []models.Tag
	db := r.db.WithContext(ctx)
	query := db.Where("tags.user_id = ?", userID)

	if assignedOnly {
		assigned := db.Table("recipe_tags").
			Select("recipe_tags.tag_id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", userID)
		query = query.Where("tags.id IN (?)", assigned)
	}

	if err := query.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// FindByIDsForUser retrieves the user's tags with the given IDs; unknown or foreign IDs are skipped
func (r *tagRepository) FindByIDsForUser(ctx context.Context, userID uint, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id ASC").
		Find(&tags)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find tags: %w", result.Error)
	}
	return tags, nil
}

// Update renames an existing tag
func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	result := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("id = ? AND user_id = ?", tag.ID, tag.UserID).
		Update("name", tag.Name)
	if result.Error != nil {
		return fmt.Errorf("failed to update tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteForUser deletes a tag and detaches it from every recipe
func (r *tagRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tag{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to get tag: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to detach tag from recipes: %w", err)
		}
		if err := tx.Delete(&models.Tag{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}
