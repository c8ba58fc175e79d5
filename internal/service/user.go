package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/recipebox/recipebox-server/internal/auth"
	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/errors"
	"github.com/recipebox/recipebox-server/internal/id"
	"github.com/recipebox/recipebox-server/internal/store"
)

// UserService handles registration, login, and profile management.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a user service.
func NewUserService(st store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  st,
		logger: logger.With("service", "user"),
	}
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name,omitempty" validate:"max=255"`
}

// Register creates a new account. The email must not already be registered,
// compared case-insensitively.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, formatValidationError(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "hash password")
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           id.MustGenerate("user"),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, errors.AlreadyExists("a user with this email already exists")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "create user")
	}

	s.logger.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies credentials and returns the user's API token. The token is
// issued on first login and returned unchanged after that.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.InvalidCredentials("invalid email or password")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "lookup user")
	}

	ok, err := auth.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "verify password")
	}
	if !ok {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	candidate, err := auth.GenerateToken()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate token")
	}

	tok, err := s.store.GetOrCreateToken(ctx, u.ID, candidate)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "issue token")
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return tok, nil
}

// AuthenticateToken resolves an opaque API token to its user.
func (s *UserService) AuthenticateToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, errors.Unauthorized("missing token")
	}
	u, err := s.store.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Unauthorized("invalid token")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "resolve token")
	}
	return u, nil
}

// Logout revokes the user's API token. The next login issues a fresh one.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.store.DeleteTokenForUser(ctx, userID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "revoke token")
	}
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// GetProfile returns the user's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("user not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "get user")
	}
	return u, nil
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

// UpdateProfile applies a partial update to the user's own profile.
// Changing the password re-hashes it; the API token is left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, formatValidationError(err)
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("user not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "get user")
	}

	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "hash password")
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, errors.AlreadyExists("a user with this email already exists")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "update user")
	}

	return u, nil
}
