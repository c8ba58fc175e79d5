package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipebox/recipebox-server/internal/domain"
)

// authenticateRequest resolves the Authorization header to a user.
// Both "Bearer <token>" and "Token <token>" prefixes are accepted.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (*domain.User, error) {
	token := extractToken(authHeader)
	if token == "" {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	u, err := s.services.User.AuthenticateToken(ctx, token)
	if err != nil {
		return nil, huma.Error401Unauthorized("invalid or expired token")
	}
	return u, nil
}

func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	switch strings.ToLower(parts[0]) {
	case "bearer", "token":
		return strings.TrimSpace(parts[1])
	}
	return ""
}
