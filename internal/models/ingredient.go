package models

// Ingredient is a user-owned ingredient that can be used in recipes
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null;size:255" json:"name"`
	UserID uint   `gorm:"not null;index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

func (i Ingredient) String() string {
	return i.Name
}
