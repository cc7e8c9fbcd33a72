package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
)

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID retrieves a user by its ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// List retrieves all users
func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockTagRepository implements repository.TagRepository
type MockTagRepository struct {
	mock.Mock
}

// Create creates a new tag
func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// GetForUser retrieves a tag owned by the user
func (m *MockTagRepository) GetForUser(ctx context.Context, userID, id uint) (*models.Tag, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

// ListForUser retrieves the user's tags
func (m *MockTagRepository) ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

// FindByIDsForUser retrieves the user's tags with the given IDs
func (m *MockTagRepository) FindByIDsForUser(ctx context.Context, userID uint, ids []uint) ([]models.Tag, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

// Update renames a tag
func (m *MockTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// DeleteForUser deletes a tag owned by the user
func (m *MockTagRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockIngredientRepository implements repository.IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

// Create creates a new ingredient
func (m *MockIngredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

// GetForUser retrieves an ingredient owned by the user
func (m *MockIngredientRepository) GetForUser(ctx context.Context, userID, id uint) (*models.Ingredient, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

// ListForUser retrieves the user's ingredients
func (m *MockIngredientRepository) ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

// FindByIDsForUser retrieves the user's ingredients with the given IDs
func (m *MockIngredientRepository) FindByIDsForUser(ctx context.Context, userID uint, ids []uint) ([]models.Ingredient, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

// Update renames an ingredient
func (m *MockIngredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

// DeleteForUser deletes an ingredient owned by the user
func (m *MockIngredientRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockRecipeRepository implements repository.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// Create creates a new recipe
func (m *MockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// GetDetail retrieves a recipe owned by the user with its associations
func (m *MockRecipeRepository) GetDetail(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// ListForUser retrieves the user's recipes
func (m *MockRecipeRepository) ListForUser(ctx context.Context, userID uint, filter models.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// Update updates a recipe and optionally replaces its associations
func (m *MockRecipeRepository) Update(ctx context.Context, recipe *models.Recipe, replaceTags, replaceIngredients bool) error {
	args := m.Called(ctx, recipe, replaceTags, replaceIngredients)
	return args.Error(0)
}

// UpdateImage stores a recipe image path
func (m *MockRecipeRepository) UpdateImage(ctx context.Context, userID, id uint, imagePath string) error {
	args := m.Called(ctx, userID, id, imagePath)
	return args.Error(0)
}

// DeleteForUser deletes a recipe owned by the user
func (m *MockRecipeRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
