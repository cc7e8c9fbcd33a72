package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe represents a recipe owned by a single user
type Recipe struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"-"`
	Title       string          `gorm:"not null;size:255" json:"title"`
	TimeMinutes int             `gorm:"not null" json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string          `gorm:"size:255" json:"link,omitempty"`
	Image       string          `gorm:"size:500" json:"image,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}

// TableName returns the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

func (r Recipe) String() string {
	return r.Title
}

// TagIDs returns the ids of the attached tags in their loaded order
func (r *Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the ids of the attached ingredients in their loaded order
func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

// RecipeFilter narrows a recipe listing to recipes carrying any of the given tags or ingredients
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// AllModels lists every model that takes part in auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
	}
}
