package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func insertTestUser(t *testing.T, s *Store, email string) *domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := &domain.User{
		ID:           id.MustGenerate("user"),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func insertTestRecipe(t *testing.T, s *Store, ownerID, title string, tagNames, ingredientNames []string) *domain.Recipe {
	t.Helper()

	now := time.Now().UTC()
	r := &domain.Recipe{
		UserID:      ownerID,
		Title:       title,
		TimeMinutes: 30,
		Price:       decimal.NewFromFloat(9.50),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateRecipe(context.Background(), r, tagNames, ingredientNames); err != nil {
		t.Fatalf("create recipe %s: %v", title, err)
	}
	return r
}
