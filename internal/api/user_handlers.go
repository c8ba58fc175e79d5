package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/service"
)

// RegisterUserInput is the signup request.
type RegisterUserInput struct {
	Body service.RegisterInput
}

// UserOutput wraps a single user.
type UserOutput struct {
	Body *domain.User
}

// LoginInput is the token request.
type LoginInput struct {
	Body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
}

// TokenOutput carries the user's API token.
type TokenOutput struct {
	Body struct {
		Token string `json:"token"`
	}
}

// MeInput identifies the caller via the Authorization header.
type MeInput struct {
	Authorization string `header:"Authorization"`
}

// UpdateMeInput is a partial profile update.
type UpdateMeInput struct {
	Authorization string `header:"Authorization"`
	Body          service.UpdateProfileInput
}

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Register a new user",
		Description:   "Creates an account. Emails are unique, compared case-insensitively.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *RegisterUserInput) (*UserOutput, error) {
		u, err := s.services.User.Register(ctx, input.Body)
		if err != nil {
			return nil, err
		}
		return &UserOutput{Body: u}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "create-token",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/token",
		Summary:     "Log in",
		Description: "Verifies credentials and returns the account's API token. The token is created on first login and never rotates.",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *LoginInput) (*TokenOutput, error) {
		tok, err := s.services.User.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, err
		}
		out := &TokenOutput{}
		out.Body.Token = tok.Token
		return out, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-token",
		Method:        http.MethodDelete,
		Path:          "/api/v1/users/token",
		Summary:       "Log out",
		Description:   "Revokes the caller's API token. A later login issues a new one.",
		Tags:          []string{"Users"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *MeInput) (*struct{}, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		if err := s.services.User.Logout(ctx, u.ID); err != nil {
			return nil, err
		}
		return nil, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get own profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *MeInput) (*UserOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		profile, err := s.services.User.GetProfile(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		return &UserOutput{Body: profile}, nil
	})

	updateMe := func(ctx context.Context, input *UpdateMeInput) (*UserOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		updated, err := s.services.User.UpdateProfile(ctx, u.ID, input.Body)
		if err != nil {
			return nil, err
		}
		return &UserOutput{Body: updated}, nil
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "update-me",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/me",
		Summary:     "Update own profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, updateMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "patch-me",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Partially update own profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, updateMe)
}
