package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipebox-server/internal/config"
	"github.com/recipebox/recipebox-server/internal/media/images"
	"github.com/recipebox/recipebox-server/internal/service"
	"github.com/recipebox/recipebox-server/internal/store/sqlite"
)

// testAPIPoster is the subset of humatest.TestAPI the seed helpers need.
type testAPIPoster interface {
	Post(path string, args ...any) *httptest.ResponseRecorder
}

// envelope mirrors the wire format for decoding test responses.
type envelope[T any] struct {
	Version string            `json:"v"`
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func decodeEnvelope[T any](t *testing.T, body io.Reader) envelope[T] {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Environment: "development"},
		Logger: config.LoggerConfig{Level: "error"},
		Server: config.ServerConfig{
			Name:           "RecipeBox Test",
			Port:           "0",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    time.Minute,
			AllowedOrigins: []string{"*"},
		},
	}
}

func setup(t *testing.T) (*Server, humatest.TestAPI) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	imgs, err := images.NewStorage(t.TempDir())
	require.NoError(t, err)

	services := &Services{
		User:       service.NewUserService(st, logger),
		Recipe:     service.NewRecipeService(st, imgs, logger),
		Tag:        service.NewTagService(st, logger),
		Ingredient: service.NewIngredientService(st, logger),
	}

	s := NewServer(testConfig(), services, logger)
	return s, humatest.Wrap(t, s.api)
}

// registerAndLogin creates an account and returns its Authorization header.
func registerAndLogin(t *testing.T, s *Server, email string) string {
	t.Helper()
	ctx := context.Background()

	_, err := s.services.User.Register(ctx, service.RegisterInput{
		Email:    email,
		Password: "sup3r-secret",
		Name:     "Test User",
	})
	require.NoError(t, err)

	tok, err := s.services.User.Login(ctx, email, "sup3r-secret")
	require.NoError(t, err)
	return "Authorization: Bearer " + tok.Token
}
