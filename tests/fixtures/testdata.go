package fixtures

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
)

// UserBuilder creates test User instances with fluent API
type UserBuilder struct {
	user models.User
}

// NewUserBuilder creates a new UserBuilder with sensible defaults
func NewUserBuilder() *UserBuilder {
	now := time.Now()
	return &UserBuilder{
		user: models.User{
			ID:        1,
			Email:     "user@example.com",
			Name:      "Test User",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the user ID
func (b *UserBuilder) WithID(id uint) *UserBuilder {
	b.user.ID = id
	return b
}

// WithEmail sets the user email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithName sets the user name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithPasswordHash sets the stored password hash
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.user.Password = hash
	return b
}

// WithActive sets the active flag
func (b *UserBuilder) WithActive(active bool) *UserBuilder {
	b.user.IsActive = active
	return b
}

// WithStaff sets the staff flag
func (b *UserBuilder) WithStaff(staff bool) *UserBuilder {
	b.user.IsStaff = staff
	return b
}

// Build returns a pointer to the built User
func (b *UserBuilder) Build() *models.User {
	u := b.user
	return &u
}

// TagBuilder creates test Tag instances with fluent API
type TagBuilder struct {
	tag models.Tag
}

// NewTagBuilder creates a new TagBuilder with sensible defaults
func NewTagBuilder() *TagBuilder {
	return &TagBuilder{
		tag: models.Tag{
			ID:     1,
			Name:   "Dessert",
			UserID: 1,
		},
	}
}

// WithID sets the tag ID
func (b *TagBuilder) WithID(id uint) *TagBuilder {
	b.tag.ID = id
	return b
}

// WithName sets the tag name
func (b *TagBuilder) WithName(name string) *TagBuilder {
	b.tag.Name = name
	return b
}

// WithUserID sets the owner
func (b *TagBuilder) WithUserID(userID uint) *TagBuilder {
	b.tag.UserID = userID
	return b
}

// Build returns a pointer to the built Tag
func (b *TagBuilder) Build() *models.Tag {
	t := b.tag
	return &t
}

// BuildValue returns the built Tag as a value
func (b *TagBuilder) BuildValue() models.Tag {
	return b.tag
}

// IngredientBuilder creates test Ingredient instances with fluent API
type IngredientBuilder struct {
	ingredient models.Ingredient
}

// NewIngredientBuilder creates a new IngredientBuilder with sensible defaults
func NewIngredientBuilder() *IngredientBuilder {
	return &IngredientBuilder{
		ingredient: models.Ingredient{
			ID:     1,
			Name:   "Cucumber",
			UserID: 1,
		},
	}
}

// WithID sets the ingredient ID
func (b *IngredientBuilder) WithID(id uint) *IngredientBuilder {
	b.ingredient.ID = id
	return b
}

// WithName sets the ingredient name
func (b *IngredientBuilder) WithName(name string) *IngredientBuilder {
	b.ingredient.Name = name
	return b
}

// WithUserID sets the owner
func (b *IngredientBuilder) WithUserID(userID uint) *IngredientBuilder {
	b.ingredient.UserID = userID
	return b
}

// Build returns a pointer to the built Ingredient
func (b *IngredientBuilder) Build() *models.Ingredient {
	i := b.ingredient
	return &i
}

// BuildValue returns the built Ingredient as a value
func (b *IngredientBuilder) BuildValue() models.Ingredient {
	return b.ingredient
}

// RecipeBuilder creates test Recipe instances with fluent API
type RecipeBuilder struct {
	recipe models.Recipe
}

// NewRecipeBuilder creates a new RecipeBuilder with sensible defaults
func NewRecipeBuilder() *RecipeBuilder {
	now := time.Now()
	return &RecipeBuilder{
		recipe: models.Recipe{
			ID:          1,
			UserID:      1,
			Title:       "Sample recipe",
			TimeMinutes: 10,
			Price:       decimal.RequireFromString("5.00"),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// WithID sets the recipe ID
func (b *RecipeBuilder) WithID(id uint) *RecipeBuilder {
	b.recipe.ID = id
	return b
}

// WithUserID sets the owner
func (b *RecipeBuilder) WithUserID(userID uint) *RecipeBuilder {
	b.recipe.UserID = userID
	return b
}

// WithTitle sets the recipe title
func (b *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	b.recipe.Title = title
	return b
}

// WithTimeMinutes sets the preparation time
func (b *RecipeBuilder) WithTimeMinutes(minutes int) *RecipeBuilder {
	b.recipe.TimeMinutes = minutes
	return b
}

// WithPrice sets the price from a decimal string
func (b *RecipeBuilder) WithPrice(price string) *RecipeBuilder {
	b.recipe.Price = decimal.RequireFromString(price)
	return b
}

// WithLink sets the recipe link
func (b *RecipeBuilder) WithLink(link string) *RecipeBuilder {
	b.recipe.Link = link
	return b
}

// WithImage sets the stored image path
func (b *RecipeBuilder) WithImage(path string) *RecipeBuilder {
	b.recipe.Image = path
	return b
}

// WithTags attaches tags
func (b *RecipeBuilder) WithTags(tags ...models.Tag) *RecipeBuilder {
	b.recipe.Tags = tags
	return b
}

// WithIngredients attaches ingredients
func (b *RecipeBuilder) WithIngredients(ingredients ...models.Ingredient) *RecipeBuilder {
	b.recipe.Ingredients = ingredients
	return b
}

// Build returns a pointer to the built Recipe
func (b *RecipeBuilder) Build() *models.Recipe {
	r := b.recipe
	return &r
}

// BuildValue returns the built Recipe as a value
func (b *RecipeBuilder) BuildValue() models.Recipe {
	return b.recipe
}
