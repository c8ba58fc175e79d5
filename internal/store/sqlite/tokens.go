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

// GetOrCreateToken returns the user's API token, inserting the candidate
// token when the user has none yet. The conditional insert closes the race
// with concurrent logins: whichever insert lands first wins and everyone
// reads the winner back.
func (s *Store) GetOrCreateToken(ctx context.Context, userID, token string) (*domain.Token, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (token, user_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		token,
		userID,
		formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert auth token: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, created_at FROM auth_tokens WHERE user_id = ?`, userID)

	var (
		t         domain.Token
		createdAt string
	)
	if err := row.Scan(&t.Token, &t.UserID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// GetUserByToken resolves an opaque token to its user.
// Returns store.ErrNotFound for unknown tokens.
func (s *Store) GetUserByToken(ctx context.Context, token string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+prefixedUserColumns+`
		FROM users u
		JOIN auth_tokens t ON t.user_id = u.id
		WHERE t.token = ?`, token)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// prefixedUserColumns is userColumns qualified for joins against users u.
const prefixedUserColumns = `u.id, u.email, u.password_hash, u.name, u.created_at, u.updated_at`

// DeleteTokenForUser removes the user's token, if any. Idempotent.
func (s *Store) DeleteTokenForUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID)
	return err
}
