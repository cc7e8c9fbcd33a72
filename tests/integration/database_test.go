//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/welldanyogia/recipe-api-backend/internal/database"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
	"github.com/welldanyogia/recipe-api-backend/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DatabaseIntegrationTestSuite tests the repositories against a real PostgreSQL
type DatabaseIntegrationTestSuite struct {
	suite.Suite
	container      testcontainers.Container
	db             *gorm.DB
	users          services.UserService
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeRepository
}

// SetupSuite starts PostgreSQL container and initializes database
func (s *DatabaseIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "recipe_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	// Get connection details
	host, err := container.Host(ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(s.T(), err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=recipe_test sslmode=disable",
		host, port.Port())

	db, err := database.Connect(dsn)
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.Migrate(db))
	s.db = db

	// Initialize repositories
	s.users = services.NewUserService(repository.NewUserRepository(db), services.UserServiceConfig{
		BcryptCost: bcrypt.MinCost,
	})
	s.tagRepo = repository.NewTagRepository(db)
	s.ingredientRepo = repository.NewIngredientRepository(db)
	s.recipeRepo = repository.NewRecipeRepository(db)
}

// TearDownSuite stops the PostgreSQL container
func (s *DatabaseIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		_ = database.Close(s.db)
	}
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

// SetupTest cleans up data before each test
func (s *DatabaseIntegrationTestSuite) SetupTest() {
	s.db.Exec("TRUNCATE TABLE recipe_tags, recipe_ingredients, recipes, tags, ingredients, users RESTART IDENTITY CASCADE")
}

// TestDatabaseIntegrationTestSuite runs the test suite
func TestDatabaseIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(DatabaseIntegrationTestSuite))
}

func (s *DatabaseIntegrationTestSuite) createUser(email string) *models.User {
	user, err := s.users.CreateUser(context.Background(), email, "testpass123", "")
	require.NoError(s.T(), err)
	return user
}

// ==================== User Tests ====================

func (s *DatabaseIntegrationTestSuite) TestUser_UniqueEmail() {
	ctx := context.Background()

	_, err := s.users.CreateUser(ctx, "Test@Example.com", "testpass123", "")
	require.NoError(s.T(), err)

	_, err = s.users.CreateUser(ctx, "test@example.com", "testpass123", "")
	assert.ErrorIs(s.T(), err, repository.ErrDuplicateEntry)
}

func (s *DatabaseIntegrationTestSuite) TestUser_Authenticate() {
	ctx := context.Background()
	created := s.createUser("auth@example.com")

	user, err := s.users.Authenticate(ctx, "AUTH@example.com", "testpass123")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, user.ID)

	_, err = s.users.Authenticate(ctx, "auth@example.com", "wrong")
	assert.Error(s.T(), err)
}

// ==================== Tag / Ingredient Tests ====================

func (s *DatabaseIntegrationTestSuite) TestTag_ListOrderedAndScoped() {
	ctx := context.Background()
	user := s.createUser("user@example.com")
	other := s.createUser("other@example.com")

	for _, tag := range []*models.Tag{
		{UserID: user.ID, Name: "Comfort Food"},
		{UserID: user.ID, Name: "Vegan"},
		{UserID: other.ID, Name: "Fruity"},
	} {
		require.NoError(s.T(), s.tagRepo.Create(ctx, tag))
	}

	tags, err := s.tagRepo.ListForUser(ctx, user.ID, false)
	require.NoError(s.T(), err)
	require.Len(s.T(), tags, 2)
	assert.Equal(s.T(), "Vegan", tags[0].Name)
	assert.Equal(s.T(), "Comfort Food", tags[1].Name)
}

func (s *DatabaseIntegrationTestSuite) TestIngredient_AssignedOnlyDistinct() {
	ctx := context.Background()
	user := s.createUser("user@example.com")

	eggs := &models.Ingredient{UserID: user.ID, Name: "Eggs"}
	lentils := &models.Ingredient{UserID: user.ID, Name: "Lentils"}
	require.NoError(s.T(), s.ingredientRepo.Create(ctx, eggs))
	require.NoError(s.T(), s.ingredientRepo.Create(ctx, lentils))

	for _, title := range []string{"Eggs benedict", "Herb eggs"} {
		recipe := &models.Recipe{
			UserID:      user.ID,
			Title:       title,
			TimeMinutes: 60,
			Price:       decimal.RequireFromString("7.00"),
			Ingredients: []models.Ingredient{*eggs},
		}
		require.NoError(s.T(), s.recipeRepo.Create(ctx, recipe))
	}

	ingredients, err := s.ingredientRepo.ListForUser(ctx, user.ID, true)
	require.NoError(s.T(), err)
	require.Len(s.T(), ingredients, 1)
	assert.Equal(s.T(), eggs.ID, ingredients[0].ID)
}

// ==================== Recipe Tests ====================

func (s *DatabaseIntegrationTestSuite) TestRecipe_CRUD() {
	ctx := context.Background()
	user := s.createUser("user@example.com")

	tag := &models.Tag{UserID: user.ID, Name: "Dinner"}
	require.NoError(s.T(), s.tagRepo.Create(ctx, tag))

	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       "Prawn curry",
		TimeMinutes: 30,
		Price:       decimal.RequireFromString("12.50"),
		Tags:        []models.Tag{*tag},
	}
	require.NoError(s.T(), s.recipeRepo.Create(ctx, recipe))

	detail, err := s.recipeRepo.GetDetail(ctx, user.ID, recipe.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "12.50", detail.Price.StringFixed(2))
	assert.Equal(s.T(), []uint{tag.ID}, detail.TagIDs())

	detail.Title = "Prawn masala"
	detail.Tags = nil
	require.NoError(s.T(), s.recipeRepo.Update(ctx, detail, true, false))

	updated, err := s.recipeRepo.GetDetail(ctx, user.ID, recipe.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Prawn masala", updated.Title)
	assert.Empty(s.T(), updated.Tags)

	require.NoError(s.T(), s.recipeRepo.DeleteForUser(ctx, user.ID, recipe.ID))
	_, err = s.recipeRepo.GetDetail(ctx, user.ID, recipe.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestRecipe_FilterDistinct() {
	ctx := context.Background()
	user := s.createUser("user@example.com")

	vegan := &models.Tag{UserID: user.ID, Name: "Vegan"}
	quick := &models.Tag{UserID: user.ID, Name: "Quick"}
	require.NoError(s.T(), s.tagRepo.Create(ctx, vegan))
	require.NoError(s.T(), s.tagRepo.Create(ctx, quick))

	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       "Salad",
		TimeMinutes: 5,
		Price:       decimal.RequireFromString("3.00"),
		Tags:        []models.Tag{*vegan, *quick},
	}
	require.NoError(s.T(), s.recipeRepo.Create(ctx, recipe))

	recipes, err := s.recipeRepo.ListForUser(ctx, user.ID, models.RecipeFilter{
		TagIDs: []uint{vegan.ID, quick.ID},
	})
	require.NoError(s.T(), err)
	require.Len(s.T(), recipes, 1)
	assert.Equal(s.T(), recipe.ID, recipes[0].ID)
}

func (s *DatabaseIntegrationTestSuite) TestRecipe_OwnerCascade() {
	ctx := context.Background()
	user := s.createUser("user@example.com")

	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       "Orphan",
		TimeMinutes: 5,
		Price:       decimal.RequireFromString("1.00"),
	}
	require.NoError(s.T(), s.recipeRepo.Create(ctx, recipe))

	require.NoError(s.T(), s.db.Delete(&models.User{}, user.ID).Error)

	var count int64
	s.db.Model(&models.Recipe{}).Count(&count)
	assert.Zero(s.T(), count)
}
