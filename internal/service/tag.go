package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/errors"
	"github.com/recipebox/recipebox-server/internal/store"
)

// TagService manages a user's recipe tags.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  st,
		logger: logger.With("service", "tag"),
	}
}

// List returns the user's tags, name descending. With assignedOnly set,
// only tags linked to at least one recipe are returned.
func (s *TagService) List(ctx context.Context, ownerID string, assignedOnly bool) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx, ownerID, store.AttributeFilter{AssignedOnly: assignedOnly})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "list tags")
	}
	return tags, nil
}

// Get returns one of the user's tags by ID.
func (s *TagService) Get(ctx context.Context, ownerID string, tagID int64) (*domain.Tag, error) {
	t, err := s.store.GetTag(ctx, ownerID, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("tag not found")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "get tag")
	}
	return t, nil
}

// Rename changes a tag's name. Names are unique per user.
func (s *TagService) Rename(ctx context.Context, ownerID string, tagID int64, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("name must not be empty")
	}

	t, err := s.store.RenameTag(ctx, ownerID, tagID, name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, errors.NotFound("tag not found")
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, errors.AlreadyExists("a tag with this name already exists")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "rename tag")
	}
	return t, nil
}

// Delete removes a tag and unlinks it from the user's recipes.
func (s *TagService) Delete(ctx context.Context, ownerID string, tagID int64) error {
	if err := s.store.DeleteTag(ctx, ownerID, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFound("tag not found")
		}
		return errors.Wrap(err, errors.CodeInternal, "delete tag")
	}
	s.logger.Debug("tag deleted", "tag_id", tagID)
	return nil
}
