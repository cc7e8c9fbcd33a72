// Package serializers converts models to their wire representation and
// describes the request payloads accepted by the API.
package serializers

import (
	"time"

	"github.com/welldanyogia/recipe-api-backend/internal/models"
)

// UserResponse is the public view of an account
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AdminUserResponse is the staff view of an account
type AdminUserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TagResponse is the wire form of a tag
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse is the wire form of an ingredient
type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the list form of a recipe; tags and ingredients are IDs
type RecipeResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Link        string `json:"link"`
	Tags        []uint `json:"tags"`
	Ingredients []uint `json:"ingredients"`
}

// RecipeDetailResponse is the detail form of a recipe with nested tags and ingredients
type RecipeDetailResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       string               `json:"price"`
	Link        string               `json:"link"`
	Image       *string              `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// RecipeImageResponse is returned after an image upload
type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// NewUserResponse converts a user
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// NewAdminUserResponse converts a user for staff listings
func NewAdminUserResponse(u *models.User) AdminUserResponse {
	return AdminUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// NewAdminUserList converts a slice of users
func NewAdminUserList(users []models.User) []AdminUserResponse {
	out := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewAdminUserResponse(&users[i]))
	}
	return out
}

// NewTagResponse converts a tag
func NewTagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

// NewTagList converts a slice of tags, keeping order
func NewTagList(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, NewTagResponse(&tags[i]))
	}
	return out
}

// NewIngredientResponse converts an ingredient
func NewIngredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name}
}

// NewIngredientList converts a slice of ingredients, keeping order
func NewIngredientList(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, NewIngredientResponse(&ingredients[i]))
	}
	return out
}

// NewRecipeResponse converts a recipe to its list form
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        r.TagIDs(),
		Ingredients: r.IngredientIDs(),
	}
}

// NewRecipeList converts a slice of recipes, keeping order
func NewRecipeList(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}

// NewRecipeDetailResponse converts a recipe to its detail form.
// mediaURL prefixes the stored image path; a recipe without an image has a null image.
func NewRecipeDetailResponse(r *models.Recipe, mediaURL string) RecipeDetailResponse {
	var image *string
	if r.Image != "" {
		url := MediaURL(mediaURL, r.Image)
		image = &url
	}
	return RecipeDetailResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Image:       image,
		Tags:        NewTagList(r.Tags),
		Ingredients: NewIngredientList(r.Ingredients),
	}
}

// MediaURL joins the public media prefix and a stored relative path
func MediaURL(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	return prefix + path
}
