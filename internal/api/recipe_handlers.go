package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/errors"
	"github.com/recipebox/recipebox-server/internal/service"
)

// ListRecipesInput carries the catalog filters. Both filters take a
// comma-separated list of IDs; IDs within one filter widen the match,
// while the two filters narrow it jointly.
type ListRecipesInput struct {
	Authorization string `header:"Authorization"`
	Tags          string `query:"tags" doc:"Comma-separated tag IDs" example:"1,3"`
	Ingredients   string `query:"ingredients" doc:"Comma-separated ingredient IDs" example:"2"`
}

// RecipeSummary is the list representation of a recipe. The long
// description is only carried by the detail endpoint.
type RecipeSummary struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	TimeMinutes   int                  `json:"time_minutes"`
	Price         decimal.Decimal      `json:"price"`
	Link          string               `json:"link,omitempty"`
	Image         string               `json:"image,omitempty"`
	ImageBlurHash string               `json:"image_blur_hash,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Tags          []*domain.Tag        `json:"tags"`
	Ingredients   []*domain.Ingredient `json:"ingredients"`
}

func summarizeRecipe(r *domain.Recipe) *RecipeSummary {
	return &RecipeSummary{
		ID:            r.ID,
		Title:         r.Title,
		TimeMinutes:   r.TimeMinutes,
		Price:         r.Price,
		Link:          r.Link,
		Image:         r.Image,
		ImageBlurHash: r.ImageBlurHash,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Tags:          r.Tags,
		Ingredients:   r.Ingredients,
	}
}

// RecipesOutput wraps a recipe list.
type RecipesOutput struct {
	Body []*RecipeSummary
}

// RecipeOutput wraps a single recipe.
type RecipeOutput struct {
	Body *domain.Recipe
}

// RecipeByIDInput addresses one recipe.
type RecipeByIDInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id"`
}

// CreateRecipeInput is the recipe creation request.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateRecipeInput
}

// UpdateRecipeInput is a partial recipe update.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id"`
	Body          service.UpdateRecipeInput
}

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-recipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns the caller's recipes, newest first, optionally filtered by tag and ingredient IDs.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *ListRecipesInput) (*RecipesOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		tagIDs, err := parseIDList("tags", input.Tags)
		if err != nil {
			return nil, err
		}
		ingredientIDs, err := parseIDList("ingredients", input.Ingredients)
		if err != nil {
			return nil, err
		}

		recipes, err := s.services.Recipe.List(ctx, u.ID, service.ListFilter{
			TagIDs:        tagIDs,
			IngredientIDs: ingredientIDs,
		})
		if err != nil {
			return nil, err
		}

		summaries := make([]*RecipeSummary, len(recipes))
		for i, r := range recipes {
			summaries[i] = summarizeRecipe(r)
		}
		return &RecipesOutput{Body: summaries}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-recipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get a recipe",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *RecipeByIDInput) (*RecipeOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		r, err := s.services.Recipe.Get(ctx, u.ID, input.ID)
		if err != nil {
			return nil, err
		}
		return &RecipeOutput{Body: r}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-recipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create a recipe",
		Description:   "Stores a recipe and resolves tag and ingredient names, creating missing ones. Nothing is persisted if any part fails.",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		r, err := s.services.Recipe.Create(ctx, u.ID, input.Body)
		if err != nil {
			return nil, err
		}
		return &RecipeOutput{Body: r}, nil
	})

	updateRecipe := func(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		r, err := s.services.Recipe.Update(ctx, u.ID, input.ID, input.Body)
		if err != nil {
			return nil, err
		}
		return &RecipeOutput{Body: r}, nil
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "update-recipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update a recipe",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, updateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "patch-recipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Partially update a recipe",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, updateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-recipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}",
		Summary:       "Delete a recipe",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *RecipeByIDInput) (*struct{}, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		if err := s.services.Recipe.Delete(ctx, u.ID, input.ID); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

// parseIDList parses a comma-separated ID list query parameter.
func parseIDList(param, raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.Validationf("%s must be a comma-separated list of IDs", param)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
