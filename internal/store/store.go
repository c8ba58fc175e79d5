// Package store defines the persistence interface for the RecipeBox server.
package store

import (
	"context"

	"github.com/recipebox/recipebox-server/internal/domain"
)

// RecipeFilter narrows recipe listings. ID sets are OR'd within a
// dimension and AND'd across dimensions; empty sets match everything.
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// AttributeFilter narrows tag and ingredient listings.
type AttributeFilter struct {
	// AssignedOnly restricts results to attributes linked to at least one recipe.
	AssignedOnly bool
}

// RecipeUpdate carries a partial recipe update. Nil fields are left unchanged.
// TagNames and IngredientNames, when non-nil, replace the full association set.
type RecipeUpdate struct {
	Title           *string
	TimeMinutes     *int
	Price           *string
	Link            *string
	Description     *string
	TagNames        *[]string
	IngredientNames *[]string
}

// Store is the persistence interface used by the service layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error

	// Auth tokens
	GetOrCreateToken(ctx context.Context, userID, token string) (*domain.Token, error)
	GetUserByToken(ctx context.Context, token string) (*domain.User, error)
	DeleteTokenForUser(ctx context.Context, userID string) error

	// Tags
	ListTags(ctx context.Context, ownerID string, filter AttributeFilter) ([]*domain.Tag, error)
	GetTag(ctx context.Context, ownerID string, tagID int64) (*domain.Tag, error)
	FindOrCreateTag(ctx context.Context, ownerID, name string) (*domain.Tag, bool, error)
	RenameTag(ctx context.Context, ownerID string, tagID int64, name string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, ownerID string, tagID int64) error

	// Ingredients
	ListIngredients(ctx context.Context, ownerID string, filter AttributeFilter) ([]*domain.Ingredient, error)
	GetIngredient(ctx context.Context, ownerID string, ingredientID int64) (*domain.Ingredient, error)
	FindOrCreateIngredient(ctx context.Context, ownerID, name string) (*domain.Ingredient, bool, error)
	RenameIngredient(ctx context.Context, ownerID string, ingredientID int64, name string) (*domain.Ingredient, error)
	DeleteIngredient(ctx context.Context, ownerID string, ingredientID int64) error

	// Recipes
	CreateRecipe(ctx context.Context, r *domain.Recipe, tagNames, ingredientNames []string) error
	ListRecipes(ctx context.Context, ownerID string, filter RecipeFilter) ([]*domain.Recipe, error)
	GetRecipe(ctx context.Context, ownerID string, recipeID int64) (*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, ownerID string, recipeID int64, update RecipeUpdate) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, ownerID string, recipeID int64) error
	SetRecipeImage(ctx context.Context, ownerID string, recipeID int64, imageID, blurHash string) (*domain.Recipe, error)

	Close() error
}
