package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/store"
)

const recipeColumns = `id, user_id, title, time_minutes, price, link, description, image_id, image_blur_hash, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		price     string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.TimeMinutes,
		&price,
		&r.Link,
		&r.Description,
		&r.ImageID,
		&r.ImageBlurHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a recipe together with its tag and ingredient
// associations in one transaction. Attribute names are resolved to the
// owner's existing rows or created on the fly. On any failure nothing is
// persisted.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe, tagNames, ingredientNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (user_id, title, time_minutes, price, link, description, image_id, image_blur_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID,
		r.Title,
		r.TimeMinutes,
		r.Price.String(),
		r.Link,
		r.Description,
		r.ImageID,
		r.ImageBlurHash,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}

	r.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("recipe id: %w", err)
	}

	r.Tags, err = s.setRecipeTagsTx(ctx, tx, r.UserID, r.ID, tagNames)
	if err != nil {
		return err
	}
	r.Ingredients, err = s.setRecipeIngredientsTx(ctx, tx, r.UserID, r.ID, ingredientNames)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// setRecipeTagsTx replaces the recipe's tag set with the named tags,
// creating missing ones for the owner. Returns the linked tags ordered by
// name descending.
func (s *Store) setRecipeTagsTx(ctx context.Context, tx *sql.Tx, ownerID string, recipeID int64, names []string) ([]*domain.Tag, error) {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return nil, fmt.Errorf("clear recipe tags: %w", err)
	}

	for _, name := range names {
		t, _, err := s.findOrCreateTagTx(ctx, tx, ownerID, name)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)
			ON CONFLICT(recipe_id, tag_id) DO NOTHING`,
			recipeID, t.ID); err != nil {
			return nil, fmt.Errorf("link tag %q: %w", name, err)
		}
	}

	return s.getTagsForRecipe(ctx, tx, recipeID)
}

// setRecipeIngredientsTx replaces the recipe's ingredient set with the named
// ingredients, creating missing ones for the owner.
func (s *Store) setRecipeIngredientsTx(ctx context.Context, tx *sql.Tx, ownerID string, recipeID int64, names []string) ([]*domain.Ingredient, error) {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return nil, fmt.Errorf("clear recipe ingredients: %w", err)
	}

	for _, name := range names {
		ing, _, err := s.findOrCreateIngredientTx(ctx, tx, ownerID, name)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES (?, ?)
			ON CONFLICT(recipe_id, ingredient_id) DO NOTHING`,
			recipeID, ing.ID); err != nil {
			return nil, fmt.Errorf("link ingredient %q: %w", name, err)
		}
	}

	return s.getIngredientsForRecipe(ctx, tx, recipeID)
}

// ListRecipes returns the owner's recipes, newest first. Filter ID sets
// are OR'd within a dimension and AND'd across dimensions.
func (s *Store) ListRecipes(ctx context.Context, ownerID string, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = ?`
	args := []any{ownerID}

	if len(filter.TagIDs) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = recipes.id AND rt.tag_id IN (` + placeholders(len(filter.TagIDs)) + `))`
		for _, id := range filter.TagIDs {
			args = append(args, id)
		}
	}
	if len(filter.IngredientIDs) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = recipes.id AND ri.ingredient_id IN (` + placeholders(len(filter.IngredientIDs)) + `))`
		for _, id := range filter.IngredientIDs {
			args = append(args, id)
		}
	}

	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range recipes {
		if r.Tags, err = s.getTagsForRecipe(ctx, s.db, r.ID); err != nil {
			return nil, err
		}
		if r.Ingredients, err = s.getIngredientsForRecipe(ctx, s.db, r.ID); err != nil {
			return nil, err
		}
	}

	if recipes == nil {
		recipes = []*domain.Recipe{}
	}

	return recipes, nil
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// GetRecipe retrieves a recipe with its associations, scoped to its owner.
// Another user's recipe is indistinguishable from a missing one: both
// return store.ErrNotFound.
func (s *Store) GetRecipe(ctx context.Context, ownerID string, recipeID int64) (*domain.Recipe, error) {
	return s.getRecipe(ctx, s.db, ownerID, recipeID)
}

func (s *Store) getRecipe(ctx context.Context, q execer, ownerID string, recipeID int64) (*domain.Recipe, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`, recipeID, ownerID)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.Tags, err = s.getTagsForRecipe(ctx, q, r.ID); err != nil {
		return nil, err
	}
	if r.Ingredients, err = s.getIngredientsForRecipe(ctx, q, r.ID); err != nil {
		return nil, err
	}

	return r, nil
}

// UpdateRecipe applies a partial update, scoped to the owner. Non-nil
// scalar fields overwrite; non-nil name slices replace the full association
// set. Everything happens in one transaction and the updated recipe is
// returned.
func (s *Store) UpdateRecipe(ctx context.Context, ownerID string, recipeID int64, update store.RecipeUpdate) (*domain.Recipe, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now().UTC())}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.TimeMinutes != nil {
		sets = append(sets, "time_minutes = ?")
		args = append(args, *update.TimeMinutes)
	}
	if update.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *update.Price)
	}
	if update.Link != nil {
		sets = append(sets, "link = ?")
		args = append(args, *update.Link)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}

	args = append(args, recipeID, ownerID)
	res, err := tx.ExecContext(ctx,
		`UPDATE recipes SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	if update.TagNames != nil {
		if _, err := s.setRecipeTagsTx(ctx, tx, ownerID, recipeID, *update.TagNames); err != nil {
			return nil, err
		}
	}
	if update.IngredientNames != nil {
		if _, err := s.setRecipeIngredientsTx(ctx, tx, ownerID, recipeID, *update.IngredientNames); err != nil {
			return nil, err
		}
	}

	r, err := s.getRecipe(ctx, tx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return r, nil
}

// DeleteRecipe removes a recipe and its association rows, scoped to its
// owner.
func (s *Store) DeleteRecipe(ctx context.Context, ownerID string, recipeID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, recipeID, ownerID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetRecipeImage records the stored image and its blur hash on a recipe,
// scoped to its owner.
func (s *Store) SetRecipeImage(ctx context.Context, ownerID string, recipeID int64, imageID, blurHash string) (*domain.Recipe, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recipes SET image_id = ?, image_blur_hash = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		imageID, blurHash, formatTime(time.Now().UTC()), recipeID, ownerID,
	)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetRecipe(ctx, ownerID, recipeID)
}
