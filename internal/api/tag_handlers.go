package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipebox/recipebox-server/internal/domain"
)

// ListAttributesInput carries the shared tag/ingredient list parameters.
type ListAttributesInput struct {
	Authorization string `header:"Authorization"`
	AssignedOnly  int    `query:"assigned_only" doc:"Pass 1 to only return items linked to a recipe" enum:"0,1"`
}

// AttributeByIDInput addresses one tag or ingredient.
type AttributeByIDInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id"`
}

// RenameAttributeInput renames a tag or ingredient.
type RenameAttributeInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id"`
	Body          struct {
		Name string `json:"name"`
	}
}

// TagsOutput wraps a tag list.
type TagsOutput struct {
	Body []*domain.Tag
}

// TagOutput wraps a single tag.
type TagOutput struct {
	Body *domain.Tag
}

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-tags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns the caller's tags in reverse name order.",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *ListAttributesInput) (*TagsOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		tags, err := s.services.Tag.List(ctx, u.ID, input.AssignedOnly == 1)
		if err != nil {
			return nil, err
		}
		return &TagsOutput{Body: tags}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-tag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get a tag",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, func(ctx context.Context, input *AttributeByIDInput) (*TagOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		t, err := s.services.Tag.Get(ctx, u.ID, input.ID)
		if err != nil {
			return nil, err
		}
		return &TagOutput{Body: t}, nil
	})

	renameTag := func(ctx context.Context, input *RenameAttributeInput) (*TagOutput, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		t, err := s.services.Tag.Rename(ctx, u.ID, input.ID, input.Body.Name)
		if err != nil {
			return nil, err
		}
		return &TagOutput{Body: t}, nil
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "update-tag",
		Method:      http.MethodPut,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update a tag",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, renameTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "patch-tag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Partially update a tag",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, renameTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-tag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{id}",
		Summary:       "Delete a tag",
		Tags:          []string{"Tags"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *AttributeByIDInput) (*struct{}, error) {
		u, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}
		if err := s.services.Tag.Delete(ctx, u.ID, input.ID); err != nil {
			return nil, err
		}
		return nil, nil
	})
}
