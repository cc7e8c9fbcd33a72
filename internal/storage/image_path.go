package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RecipeImageDir is the storage directory for recipe images
const RecipeImageDir = "uploads/recipe"

// IDGenerator produces a fresh unique identifier on every call
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUIDs
type UUIDGenerator struct{}

// NewID returns a new random UUID string
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// IDGeneratorFunc adapts a function to IDGenerator
type IDGeneratorFunc func() string

// NewID calls f
func (f IDGeneratorFunc) NewID() string {
	return f()
}

// RecipeImageFilePath builds the storage path for an uploaded recipe image.
// Only the extension of filename is kept; the base name comes from gen.
func RecipeImageFilePath(gen IDGenerator, filename string) string {
	ext := filename
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}
	return fmt.Sprintf("%s/%s.%s", RecipeImageDir, gen.NewID(), ext)
}
