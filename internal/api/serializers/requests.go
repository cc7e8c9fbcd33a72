package serializers

import (
	"github.com/shopspring/decimal"
	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
	"github.com/welldanyogia/recipe-api-backend/internal/validator"
)

// Recipe price bounds, matching the decimal(5,2) column
var (
	maxPrice      = decimal.RequireFromString("999.99")
	priceDecimals = int32(2)
)

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=254"`
	Password string `json:"password" form:"password" validate:"required,min=5,max=72"`
	Name     string `json:"name" form:"name" validate:"max=255"`
}

// TokenRequest is the payload for obtaining a token
type TokenRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UpdateMeRequest is the partial update of the caller's own account
type UpdateMeRequest struct {
	Name     *string `json:"name" form:"name" validate:"omitnil,max=255"`
	Password *string `json:"password" form:"password" validate:"omitnil,min=5,max=72"`
}

// TagRequest is the payload for creating or renaming a tag
type TagRequest struct {
	Name string `json:"name" form:"name" validate:"required,notblank,max=255"`
}

// IngredientRequest is the payload for creating or renaming an ingredient
type IngredientRequest struct {
	Name string `json:"name" form:"name" validate:"required,notblank,max=255"`
}

// RecipeRequest is the full recipe payload used by create and PUT.
// Price accepts a JSON string or number. Form bodies repeat tags and ingredients once per ID.
type RecipeRequest struct {
	Title       string           `json:"title" form:"title" validate:"required,notblank,max=255"`
	TimeMinutes *int             `json:"time_minutes" form:"time_minutes" validate:"required,gte=0"`
	Price       *decimal.Decimal `json:"price" form:"price" validate:"required"`
	Link        string           `json:"link" form:"link" validate:"omitempty,url,max=255"`
	Tags        []uint           `json:"tags" form:"tags"`
	Ingredients []uint           `json:"ingredients" form:"ingredients"`
}

// Check validates what struct tags cannot express
func (r *RecipeRequest) Check() error {
	return checkPrice(r.Price)
}

// RecipePatchRequest is the partial recipe payload used by PATCH.
// Nil fields are left unchanged; a present but empty tags or ingredients list clears it.
type RecipePatchRequest struct {
	Title       *string          `json:"title" form:"title" validate:"omitnil,notblank,max=255"`
	TimeMinutes *int             `json:"time_minutes" form:"time_minutes" validate:"omitnil,gte=0"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Link        *string          `json:"link" form:"link" validate:"omitnil,max=255"`
	Tags        *[]uint          `json:"tags" form:"tags"`
	Ingredients *[]uint          `json:"ingredients" form:"ingredients"`
}

// Check validates what struct tags cannot express.
// An empty link clears it.
func (r *RecipePatchRequest) Check() error {
	if r.Link != nil && *r.Link != "" {
		if err := validator.ValidateURL(*r.Link); err != nil {
			return apperrors.NewValidationError("link", "link must be a valid URL")
		}
	}
	return checkPrice(r.Price)
}

func checkPrice(price *decimal.Decimal) error {
	if price == nil {
		return nil
	}
	switch {
	case price.IsNegative():
		return apperrors.NewValidationError("price", "price must be greater than or equal to 0")
	case price.GreaterThan(maxPrice):
		return apperrors.NewValidationError("price", "price must be at most 999.99")
	case !price.Equal(price.Truncate(priceDecimals)):
		return apperrors.NewValidationError("price", "price must have at most 2 decimal places")
	}
	return nil
}
