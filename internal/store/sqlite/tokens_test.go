package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/recipebox/recipebox-server/internal/auth"
	"github.com/recipebox/recipebox-server/internal/store"
)

func TestGetOrCreateTokenIsStable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")

	first, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	tok1, err := s.GetOrCreateToken(ctx, u.ID, first)
	if err != nil {
		t.Fatalf("first get-or-create: %v", err)
	}
	if tok1.Token != first {
		t.Errorf("token = %q, want the candidate %q", tok1.Token, first)
	}

	second, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	tok2, err := s.GetOrCreateToken(ctx, u.ID, second)
	if err != nil {
		t.Fatalf("second get-or-create: %v", err)
	}
	if tok2.Token != first {
		t.Errorf("second login returned %q, want the original token %q", tok2.Token, first)
	}
}

func TestGetUserByToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := insertTestUser(t, s, "alice@example.com")
	bob := insertTestUser(t, s, "bob@example.com")

	aliceTok, err := s.GetOrCreateToken(ctx, alice.ID, "token-alice")
	if err != nil {
		t.Fatalf("alice token: %v", err)
	}
	bobTok, err := s.GetOrCreateToken(ctx, bob.ID, "token-bob")
	if err != nil {
		t.Fatalf("bob token: %v", err)
	}

	got, err := s.GetUserByToken(ctx, aliceTok.Token)
	if err != nil {
		t.Fatalf("resolve alice: %v", err)
	}
	if got.ID != alice.ID {
		t.Errorf("resolved %q, want %q", got.ID, alice.ID)
	}

	got, err = s.GetUserByToken(ctx, bobTok.Token)
	if err != nil {
		t.Fatalf("resolve bob: %v", err)
	}
	if got.ID != bob.ID {
		t.Errorf("resolved %q, want %q", got.ID, bob.ID)
	}
}

func TestGetUserByTokenUnknown(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByToken(context.Background(), "no-such-token")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown token: got %v, want ErrNotFound", err)
	}
}

func TestDeleteTokenForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")
	tok, err := s.GetOrCreateToken(ctx, u.ID, "token-cook")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := s.DeleteTokenForUser(ctx, u.ID); err != nil {
		t.Fatalf("delete token: %v", err)
	}
	if _, err := s.GetUserByToken(ctx, tok.Token); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("deleted token still resolves: %v", err)
	}

	// Deleting again is a no-op.
	if err := s.DeleteTokenForUser(ctx, u.ID); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestGetOrCreateTokenConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")

	const workers = 8
	tokens := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			candidate, err := auth.GenerateToken()
			if err != nil {
				t.Errorf("generate token: %v", err)
				return
			}
			tok, err := s.GetOrCreateToken(ctx, u.ID, candidate)
			if err != nil {
				t.Errorf("get-or-create: %v", err)
				return
			}
			tokens <- tok.Token
		}()
	}
	wg.Wait()
	close(tokens)

	var first string
	for tok := range tokens {
		if first == "" {
			first = tok
		} else if tok != first {
			t.Fatalf("concurrent logins converged on %q and %q", first, tok)
		}
	}
}
