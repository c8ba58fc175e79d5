package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/store"
)

const ingredientColumns = `id, user_id, name, created_at, updated_at`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&ing.ID,
		&ing.UserID,
		&ing.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ing.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ing.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ing, nil
}

// ListIngredients returns the owner's ingredients ordered by name descending.
// With AssignedOnly set, only ingredients linked to at least one recipe are
// returned.
func (s *Store) ListIngredients(ctx context.Context, ownerID string, filter store.AttributeFilter) ([]*domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE user_id = ?`
	if filter.AssignedOnly {
		query += ` AND EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.ingredient_id = ingredients.id)`
	}
	query += ` ORDER BY name DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ingredients == nil {
		ingredients = []*domain.Ingredient{}
	}

	return ingredients, nil
}

// GetIngredient retrieves an ingredient by ID, scoped to its owner.
func (s *Store) GetIngredient(ctx context.Context, ownerID string, ingredientID int64) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ? AND user_id = ?`, ingredientID, ownerID)

	ing, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// FindOrCreateIngredient finds the owner's ingredient by name or creates it.
// Returns (ingredient, created, error) where created is true if a new row
// was inserted.
func (s *Store) FindOrCreateIngredient(ctx context.Context, ownerID, name string) (*domain.Ingredient, bool, error) {
	return s.findOrCreateIngredientTx(ctx, s.db, ownerID, name)
}

func (s *Store) findOrCreateIngredientTx(ctx context.Context, q execer, ownerID, name string) (*domain.Ingredient, bool, error) {
	now := formatTime(time.Now().UTC())
	res, err := q.ExecContext(ctx, `
		INSERT INTO ingredients (user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO NOTHING`,
		ownerID, name, now, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert ingredient: %w", err)
	}

	created := false
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		created = true
	}

	row := q.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE user_id = ? AND name = ?`, ownerID, name)
	ing, err := scanIngredient(row)
	if err != nil {
		return nil, false, fmt.Errorf("lookup ingredient %q: %w", name, err)
	}

	return ing, created, nil
}

// RenameIngredient updates an ingredient's name, scoped to its owner.
// Returns store.ErrAlreadyExists when the owner already has an ingredient
// with the new name, store.ErrNotFound when the ingredient is missing or
// foreign.
func (s *Store) RenameIngredient(ctx context.Context, ownerID string, ingredientID int64, name string) (*domain.Ingredient, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE ingredients SET name = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		name, formatTime(time.Now().UTC()), ingredientID, ownerID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists
		}
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetIngredient(ctx, ownerID, ingredientID)
}

// DeleteIngredient removes an ingredient and its recipe links, scoped to its
// owner.
func (s *Store) DeleteIngredient(ctx context.Context, ownerID string, ingredientID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM ingredients WHERE id = ? AND user_id = ?`, ingredientID, ownerID)
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

// getIngredientsForRecipe returns the ingredients linked to a recipe.
func (s *Store) getIngredientsForRecipe(ctx context.Context, q execer, recipeID int64) ([]*domain.Ingredient, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+ingredientColumns+` FROM ingredients
		WHERE id IN (SELECT ingredient_id FROM recipe_ingredients WHERE recipe_id = ?)
		ORDER BY name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ingredients == nil {
		ingredients = []*domain.Ingredient{}
	}

	return ingredients, nil
}
