package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/errors"
	"github.com/recipebox/recipebox-server/internal/store"
)

// IngredientService manages a user's recipe ingredients.
type IngredientService struct {
	store  store.Store
	logger *slog.Logger
}

// NewIngredientService creates an ingredient service.
func NewIngredientService(st store.Store, logger *slog.Logger) *IngredientService {
	return &IngredientService{
		store:  st,
		logger: logger.With("service", "ingredient"),
	}
}

// List returns the user's ingredients, name descending. With assignedOnly
// set, only ingredients linked to at least one recipe are returned.
func (s *IngredientService) List(ctx context.Context, ownerID string, assignedOnly bool) ([]*domain.Ingredient, error) {
	ingredients, err := s.store.ListIngredients(ctx, ownerID, store.AttributeFilter{AssignedOnly: assignedOnly})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "list ingredients")
	}
	return ingredients, nil
}

// Get returns one of the user's ingredients by ID.
func (s *IngredientService) Get(ctx context.Context, ownerID string, ingredientID int64) (*domain.Ingredient, error) {
	ing, err := s.store.GetIngredient(ctx, ownerID, ingredientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("ingredient not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "get ingredient")
	}
	return ing, nil
}

// Rename changes an ingredient's name. Names are unique per user.
func (s *IngredientService) Rename(ctx context.Context, ownerID string, ingredientID int64, name string) (*domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("name must not be empty")
	}

	ing, err := s.store.RenameIngredient(ctx, ownerID, ingredientID, name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, errors.NotFound("ingredient not found")
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, errors.AlreadyExists("an ingredient with this name already exists")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "rename ingredient")
	}
	return ing, nil
}

// Delete removes an ingredient and unlinks it from the user's recipes.
func (s *IngredientService) Delete(ctx context.Context, ownerID string, ingredientID int64) error {
	if err := s.store.DeleteIngredient(ctx, ownerID, ingredientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFound("ingredient not found")
		}
		return errors.Wrap(err, errors.CodeInternal, "delete ingredient")
	}
	s.logger.Debug("ingredient deleted", "ingredient_id", ingredientID)
	return nil
}
