package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/http/response"
)

// maxUploadSize caps image upload request bodies at 10 MiB.
const maxUploadSize = 10 << 20

// registerMediaRoutes wires the multipart upload and image serving routes.
// These bypass huma: uploads are multipart forms and downloads are raw
// JPEG bytes, neither of which fits the JSON envelope.
func (s *Server) registerMediaRoutes() {
	s.router.Post("/api/v1/recipes/{id}/upload-image", s.handleUploadRecipeImage)
	s.router.Get("/media/recipes/{file}", s.handleServeRecipeImage)
}

func (s *Server) handleUploadRecipeImage(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticateHTTP(w, r)
	if !ok {
		return
	}

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w, "recipe not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "missing image file")
		return
	}
	defer file.Close()

	updated, err := s.services.Recipe.AttachImage(r.Context(), u.ID, recipeID, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

func (s *Server) handleServeRecipeImage(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	if !strings.HasSuffix(file, ".jpg") {
		response.NotFound(w, "image not found")
		return
	}
	imageID := strings.TrimSuffix(file, ".jpg")

	path, err := s.services.Recipe.ImagePath(imageID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	http.ServeFile(w, r, path)
}

// authenticateHTTP is the router-level counterpart of authenticateRequest.
// It writes the 401 itself and reports whether the request may proceed.
func (s *Server) authenticateHTTP(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	token := extractToken(r.Header.Get("Authorization"))
	if token == "" {
		response.Unauthorized(w, "authentication required")
		return nil, false
	}

	u, err := s.services.User.AuthenticateToken(r.Context(), token)
	if err != nil {
		response.Unauthorized(w, "invalid or expired token")
		return nil, false
	}
	return u, true
}
