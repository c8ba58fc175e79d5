package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipebox-server/internal/domain"
)

func TestCreateUserEndpoint(t *testing.T) {
	_, tapi := setup(t)

	resp := tapi.Post("/api/v1/users", map[string]any{
		"email":    "cook@example.com",
		"password": "sup3r-secret",
		"name":     "Cook",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	env := decodeEnvelope[*domain.User](t, resp.Body)
	assert.True(t, env.Success)
	assert.Equal(t, "cook@example.com", env.Data.Email)
	assert.NotContains(t, resp.Body.String(), "sup3r-secret")
}

func TestCreateUserDuplicate(t *testing.T) {
	s, tapi := setup(t)
	registerAndLogin(t, s, "cook@example.com")

	resp := tapi.Post("/api/v1/users", map[string]any{
		"email":    "Cook@Example.com",
		"password": "sup3r-secret",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	env := decodeEnvelope[any](t, resp.Body)
	assert.False(t, env.Success)
}

func TestCreateUserValidation(t *testing.T) {
	_, tapi := setup(t)

	resp := tapi.Post("/api/v1/users", map[string]any{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	env := decodeEnvelope[any](t, resp.Body)
	assert.False(t, env.Success)
	assert.Contains(t, env.Details, "password")
}

func TestCreateTokenEndpoint(t *testing.T) {
	s, tapi := setup(t)
	registerAndLogin(t, s, "cook@example.com")

	resp := tapi.Post("/api/v1/users/token", map[string]any{
		"email":    "cook@example.com",
		"password": "sup3r-secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeEnvelope[struct {
		Token string `json:"token"`
	}](t, resp.Body)
	assert.NotEmpty(t, env.Data.Token)

	// A second login returns the same token.
	resp2 := tapi.Post("/api/v1/users/token", map[string]any{
		"email":    "cook@example.com",
		"password": "sup3r-secret",
	})
	env2 := decodeEnvelope[struct {
		Token string `json:"token"`
	}](t, resp2.Body)
	assert.Equal(t, env.Data.Token, env2.Data.Token)
}

func TestCreateTokenBadCredentials(t *testing.T) {
	s, tapi := setup(t)
	registerAndLogin(t, s, "cook@example.com")

	resp := tapi.Post("/api/v1/users/token", map[string]any{
		"email":    "cook@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestDeleteTokenEndpoint(t *testing.T) {
	s, tapi := setup(t)
	auth := registerAndLogin(t, s, "cook@example.com")

	resp := tapi.Delete("/api/v1/users/token", auth)
	require.Equal(t, http.StatusNoContent, resp.Code)

	// The revoked token no longer authenticates.
	resp = tapi.Get("/api/v1/users/me", auth)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Logging in again issues a fresh token.
	resp = tapi.Post("/api/v1/users/token", map[string]any{
		"email":    "cook@example.com",
		"password": "sup3r-secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestMeEndpoint(t *testing.T) {
	s, tapi := setup(t)
	auth := registerAndLogin(t, s, "cook@example.com")

	resp := tapi.Get("/api/v1/users/me", auth)
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeEnvelope[*domain.User](t, resp.Body)
	assert.Equal(t, "cook@example.com", env.Data.Email)
}

func TestMeRequiresAuth(t *testing.T) {
	_, tapi := setup(t)

	resp := tapi.Get("/api/v1/users/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = tapi.Get("/api/v1/users/me", "Authorization: Bearer bogus")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPatchMeEndpoint(t *testing.T) {
	s, tapi := setup(t)
	auth := registerAndLogin(t, s, "cook@example.com")

	resp := tapi.Patch("/api/v1/users/me", auth, map[string]any{
		"name": "Chef",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeEnvelope[*domain.User](t, resp.Body)
	assert.Equal(t, "Chef", env.Data.Name)
	assert.Equal(t, "cook@example.com", env.Data.Email)
}

func TestPutMeEndpoint(t *testing.T) {
	s, tapi := setup(t)
	auth := registerAndLogin(t, s, "cook@example.com")

	resp := tapi.Put("/api/v1/users/me", auth, map[string]any{
		"email": "chef@example.com",
		"name":  "Chef",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeEnvelope[*domain.User](t, resp.Body)
	assert.Equal(t, "chef@example.com", env.Data.Email)
}
