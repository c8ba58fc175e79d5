package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipebox-server/internal/media/images"
	"github.com/recipebox/recipebox-server/internal/store/sqlite"
)

type testServices struct {
	User       *UserService
	Recipe     *RecipeService
	Tag        *TagService
	Ingredient *IngredientService
	Images     *images.Storage
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	imgs, err := images.NewStorage(t.TempDir())
	require.NoError(t, err)

	return &testServices{
		User:       NewUserService(st, logger),
		Recipe:     NewRecipeService(st, imgs, logger),
		Tag:        NewTagService(st, logger),
		Ingredient: NewIngredientService(st, logger),
		Images:     imgs,
	}
}

func registerTestUser(t *testing.T, svc *testServices, email string) string {
	t.Helper()

	u, err := svc.User.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "sup3r-secret",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return u.ID
}
