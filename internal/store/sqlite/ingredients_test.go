package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/recipebox/recipebox-server/internal/store"
)

func TestFindOrCreateIngredient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")

	ing, created, err := s.FindOrCreateIngredient(ctx, u.ID, "flour")
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	if !created {
		t.Error("first call should report created")
	}

	again, created, err := s.FindOrCreateIngredient(ctx, u.ID, "flour")
	if err != nil {
		t.Fatalf("second find or create: %v", err)
	}
	if created {
		t.Error("second call should not report created")
	}
	if again.ID != ing.ID {
		t.Errorf("id = %d, want %d", again.ID, ing.ID)
	}
}

func TestListIngredientsOrderedByNameDescending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")
	for _, name := range []string{"butter", "salt", "eggs"} {
		if _, _, err := s.FindOrCreateIngredient(ctx, u.ID, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	ingredients, err := s.ListIngredients(ctx, u.ID, store.AttributeFilter{})
	if err != nil {
		t.Fatalf("list ingredients: %v", err)
	}

	want := []string{"salt", "eggs", "butter"}
	if len(ingredients) != len(want) {
		t.Fatalf("got %d ingredients, want %d", len(ingredients), len(want))
	}
	for i, name := range want {
		if ingredients[i].Name != name {
			t.Errorf("ingredients[%d] = %q, want %q", i, ingredients[i].Name, name)
		}
	}
}

func TestListIngredientsAssignedOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")
	if _, _, err := s.FindOrCreateIngredient(ctx, u.ID, "saffron"); err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	insertTestRecipe(t, s, u.ID, "Pancakes", nil, []string{"flour", "eggs"})

	assigned, err := s.ListIngredients(ctx, u.ID, store.AttributeFilter{AssignedOnly: true})
	if err != nil {
		t.Fatalf("list assigned: %v", err)
	}
	if len(assigned) != 2 {
		t.Errorf("got %d assigned ingredients, want 2", len(assigned))
	}
	for _, ing := range assigned {
		if ing.Name == "saffron" {
			t.Error("unassigned ingredient returned with AssignedOnly")
		}
	}
}

func TestGetIngredientCrossOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := insertTestUser(t, s, "alice@example.com")
	bob := insertTestUser(t, s, "bob@example.com")

	ing, _, err := s.FindOrCreateIngredient(ctx, alice.ID, "truffle")
	if err != nil {
		t.Fatalf("alice ingredient: %v", err)
	}

	if _, err := s.GetIngredient(ctx, bob.ID, ing.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-owner get: got %v, want ErrNotFound", err)
	}
}

func TestRenameIngredientCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")
	if _, _, err := s.FindOrCreateIngredient(ctx, u.ID, "flour"); err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	ing, _, err := s.FindOrCreateIngredient(ctx, u.ID, "wheat flour")
	if err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	if _, err := s.RenameIngredient(ctx, u.ID, ing.ID, "flour"); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("rename to taken name: got %v, want ErrAlreadyExists", err)
	}

	renamed, err := s.RenameIngredient(ctx, u.ID, ing.ID, "spelt flour")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "spelt flour" {
		t.Errorf("name = %q, want %q", renamed.Name, "spelt flour")
	}
}

func TestDeleteIngredientUnlinksRecipes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := insertTestUser(t, s, "cook@example.com")
	r := insertTestRecipe(t, s, u.ID, "Omelette", nil, []string{"eggs"})
	ing := r.Ingredients[0]

	if err := s.DeleteIngredient(ctx, u.ID, ing.ID); err != nil {
		t.Fatalf("delete ingredient: %v", err)
	}

	got, err := s.GetRecipe(ctx, u.ID, r.ID)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	if len(got.Ingredients) != 0 {
		t.Errorf("recipe still has %d ingredients", len(got.Ingredients))
	}
}
