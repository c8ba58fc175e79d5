package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipebox/recipebox-server/internal/domain"
)

// IngredientsOutput wraps an ingredient list.
type IngredientsOutput struct {
	Body []*domain.Ingredient
}

// IngredientOutput wraps a single ingredient.
type IngredientOutput struct {
	Body *domain.Ingredient
}

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-ingredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns the caller's ingredients in reverse name order.",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *ListAttributesInput) (*IngredientsOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		ingredients, err := s.services.Ingredient.List(ctx, u.ID, input.AssignedOnly == 1)
		if err != nil {
			return nil, err
		}
		return &IngredientsOutput{Body: ingredients}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-ingredient",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Get an ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *AttributeByIDInput) (*IngredientOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		ing, err := s.services.Ingredient.Get(ctx, u.ID, input.ID)
		if err != nil {
			return nil, err
		}
		return &IngredientOutput{Body: ing}, nil
	})

	renameIngredient := func(ctx context.Context, input *RenameAttributeInput) (*IngredientOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		ing, err := s.services.Ingredient.Rename(ctx, u.ID, input.ID, input.Body.Name)
		if err != nil {
			return nil, err
		}
		return &IngredientOutput{Body: ing}, nil
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "update-ingredient",
		Method:      http.MethodPut,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Update an ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, renameIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "patch-ingredient",
		Method:      http.MethodPatch,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Partially update an ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, renameIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-ingredient",
		Method:        http.MethodDelete,
		Path:          "/api/v1/ingredients/{id}",
		Summary:       "Delete an ingredient",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *AttributeByIDInput) (*struct{}, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		if err := s.services.Ingredient.Delete(ctx, u.ID, input.ID); err != nil {
			return nil, err
		}
		return nil, nil
	})
}
