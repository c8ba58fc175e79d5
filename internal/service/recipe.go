package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/errors"
	"github.com/recipebox/recipebox-server/internal/media/images"
	"github.com/recipebox/recipebox-server/internal/store"
)

// RecipeService manages a user's recipe catalog.
type RecipeService struct {
	store  store.Store
	images *images.Storage
	logger *slog.Logger
}

// NewRecipeService creates a recipe service.
func NewRecipeService(st store.Store, imgs *images.Storage, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:  st,
		images: imgs,
		logger: logger.With("service", "recipe"),
	}
}

// imageURLPrefix is where attached recipe images are served from.
const imageURLPrefix = "/media/recipes/"

// withImageURL fills in the public URL of the recipe's stored image.
func withImageURL(r *domain.Recipe) *domain.Recipe {
	if r.HasImage() {
		r.Image = imageURLPrefix + r.ImageID + ".jpg"
	}
	return r
}

// ListFilter narrows recipe listings by attribute IDs. IDs within a
// dimension widen the match; the two dimensions both have to hold.
type ListFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, ownerID string, filter ListFilter) ([]*domain.Recipe, error) {
	recipes, err := s.store.ListRecipes(ctx, ownerID, store.RecipeFilter{
		TagIDs:        filter.TagIDs,
		IngredientIDs: filter.IngredientIDs,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "list recipes")
	}
	for _, r := range recipes {
		withImageURL(r)
	}
	return recipes, nil
}

// Get returns one of the user's recipes with its tags and ingredients.
func (s *RecipeService) Get(ctx context.Context, ownerID string, recipeID int64) (*domain.Recipe, error) {
	r, err := s.store.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("recipe not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "get recipe")
	}
	return withImageURL(r), nil
}

// CreateRecipeInput carries a new recipe. Tag and ingredient names resolve
// to the user's existing attributes or create them.
type CreateRecipeInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	TimeMinutes int      `json:"time_minutes" validate:"gte=0"`
	Price       string   `json:"price" validate:"required"`
	Link        string   `json:"link,omitempty" validate:"max=255"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// Create stores a recipe together with its associations. Nothing is
// persisted on failure.
func (s *RecipeService) Create(ctx context.Context, ownerID string, input CreateRecipeInput) (*domain.Recipe, error) {
	if err := validate.Struct(input); err != nil {
		return nil, formatValidationError(err)
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	tagNames, err := cleanNames(input.Tags)
	if err != nil {
		return nil, err
	}
	ingredientNames, err := cleanNames(input.Ingredients)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &domain.Recipe{
		UserID:      ownerID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       price,
		Link:        input.Link,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateRecipe(ctx, r, tagNames, ingredientNames); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create recipe")
	}

	s.logger.Info("recipe created", "recipe_id", r.ID, "user_id", ownerID)
	return r, nil
}

// UpdateRecipeInput carries a partial recipe update. Nil fields are left
// unchanged; non-nil Tags or Ingredients replace the full set.
type UpdateRecipeInput struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=255"`
	TimeMinutes *int      `json:"time_minutes,omitempty" validate:"omitempty,gte=0"`
	Price       *string   `json:"price,omitempty"`
	Link        *string   `json:"link,omitempty" validate:"omitempty,max=255"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
}

// Update applies a partial update to one of the user's recipes.
func (s *RecipeService) Update(ctx context.Context, ownerID string, recipeID int64, input UpdateRecipeInput) (*domain.Recipe, error) {
	if err := validate.Struct(input); err != nil {
		return nil, formatValidationError(err)
	}

	update := store.RecipeUpdate{
		TimeMinutes: input.TimeMinutes,
		Link:        input.Link,
		Description: input.Description,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.Validation("title must not be empty")
		}
		update.Title = &title
	}
	if input.Price != nil {
		price, err := parsePrice(*input.Price)
		if err != nil {
			return nil, err
		}
		normalized := price.String()
		update.Price = &normalized
	}
	if input.Tags != nil {
		names, err := cleanNames(*input.Tags)
		if err != nil {
			return nil, err
		}
		update.TagNames = &names
	}
	if input.Ingredients != nil {
		names, err := cleanNames(*input.Ingredients)
		if err != nil {
			return nil, err
		}
		update.IngredientNames = &names
	}

	r, err := s.store.UpdateRecipe(ctx, ownerID, recipeID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("recipe not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "update recipe")
	}
	return withImageURL(r), nil
}

// Delete removes one of the user's recipes along with its stored image.
func (s *RecipeService) Delete(ctx context.Context, ownerID string, recipeID int64) error {
	r, err := s.store.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFound("recipe not found")
		}
		return errors.Wrap(err, errors.CodeInternal, "get recipe")
	}

	if err := s.store.DeleteRecipe(ctx, ownerID, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFound("recipe not found")
		}
		return errors.Wrap(err, errors.CodeInternal, "delete recipe")
	}

	if r.HasImage() {
		if err := s.images.Delete(r.ImageID); err != nil {
			s.logger.Warn("orphaned recipe image", "image_id", r.ImageID, "error", err)
		}
	}

	s.logger.Info("recipe deleted", "recipe_id", recipeID, "user_id", ownerID)
	return nil
}

// AttachImage processes an uploaded image and attaches it to one of the
// user's recipes, replacing any previous image. Undecodable payloads
// return a validation error.
func (s *RecipeService) AttachImage(ctx context.Context, ownerID string, recipeID int64, upload io.Reader) (*domain.Recipe, error) {
	r, err := s.store.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("recipe not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "get recipe")
	}

	data, blurHash, err := images.Process(upload)
	if err != nil {
		return nil, errors.Validation("could not decode image")
	}

	imageID := uuid.NewString()
	if err := s.images.Save(imageID, data); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "store image")
	}

	updated, err := s.store.SetRecipeImage(ctx, ownerID, recipeID, imageID, blurHash)
	if err != nil {
		s.images.Delete(imageID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("recipe not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "attach image")
	}

	if r.HasImage() {
		if err := s.images.Delete(r.ImageID); err != nil {
			s.logger.Warn("orphaned recipe image", "image_id", r.ImageID, "error", err)
		}
	}

	s.logger.Info("recipe image attached", "recipe_id", recipeID, "image_id", imageID)
	return withImageURL(updated), nil
}

// ImagePath returns the on-disk path of a recipe image by file ID.
func (s *RecipeService) ImagePath(imageID string) (string, error) {
	if !s.images.Exists(imageID) {
		return "", errors.NotFound("image not found")
	}
	return s.images.Path(imageID), nil
}

// parsePrice parses a decimal money string and rejects negative values.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, errors.Validation("price must be a decimal number")
	}
	if price.IsNegative() {
		return decimal.Zero, errors.Validation("price must not be negative")
	}
	return price, nil
}

// cleanNames trims attribute names and drops duplicates while keeping
// order. Empty names are rejected.
func cleanNames(names []string) ([]string, error) {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.Validation("names must not be empty")
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return cleaned, nil
}
