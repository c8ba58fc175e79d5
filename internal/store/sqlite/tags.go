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

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, user_id, name, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// ListTags returns the owner's tags ordered by name descending.
// With AssignedOnly set, only tags linked to at least one recipe are returned.
func (s *Store) ListTags(ctx context.Context, ownerID string, filter store.AttributeFilter) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = ?`
	if filter.AssignedOnly {
		query += ` AND EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.tag_id = tags.id)`
	}
	query += ` ORDER BY name DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// GetTag retrieves a tag by ID, scoped to its owner.
// Another user's tag is indistinguishable from a missing one: both
// return store.ErrNotFound.
func (s *Store) GetTag(ctx context.Context, ownerID string, tagID int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ? AND user_id = ?`, tagID, ownerID)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FindOrCreateTag finds the owner's tag by name or creates it.
// Returns (tag, created, error) where created is true if a new tag was made.
// The conditional insert under UNIQUE(user_id, name) makes concurrent calls
// converge on a single row.
func (s *Store) FindOrCreateTag(ctx context.Context, ownerID, name string) (*domain.Tag, bool, error) {
	return s.findOrCreateTagTx(ctx, s.db, ownerID, name)
}

// execer covers *sql.DB and *sql.Tx for queries that run either standalone
// or inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) findOrCreateTagTx(ctx context.Context, q execer, ownerID, name string) (*domain.Tag, bool, error) {
	now := formatTime(time.Now().UTC())
	res, err := q.ExecContext(ctx, `
		INSERT INTO tags (user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO NOTHING`,
		ownerID, name, now, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert tag: %w", err)
	}

	created := false
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		created = true
	}

	row := q.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? AND name = ?`, ownerID, name)
	t, err := scanTag(row)
	if err != nil {
		return nil, false, fmt.Errorf("lookup tag %q: %w", name, err)
	}

	return t, created, nil
}

// RenameTag updates a tag's name, scoped to its owner.
// Returns store.ErrAlreadyExists when the owner already has a tag with the
// new name, store.ErrNotFound when the tag is missing or foreign.
func (s *Store) RenameTag(ctx context.Context, ownerID string, tagID int64, name string) (*domain.Tag, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		name, formatTime(time.Now().UTC()), tagID, ownerID,
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

	return s.GetTag(ctx, ownerID, tagID)
}

// DeleteTag removes a tag and its recipe links, scoped to its owner.
func (s *Store) DeleteTag(ctx context.Context, ownerID string, tagID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tags WHERE id = ? AND user_id = ?`, tagID, ownerID)
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

// getTagsForRecipe returns the tags linked to a recipe.
func (s *Store) getTagsForRecipe(ctx context.Context, q execer, recipeID int64) ([]*domain.Tag, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags
		WHERE id IN (SELECT tag_id FROM recipe_tags WHERE recipe_id = ?)
		ORDER BY name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}
