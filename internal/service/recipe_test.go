package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipebox-server/internal/domain"
	"github.com/recipebox/recipebox-server/internal/errors"
)

func createTestRecipe(t *testing.T, svc *testServices, ownerID string, input CreateRecipeInput) *domain.Recipe {
	t.Helper()

	if input.Title == "" {
		input.Title = "Test Recipe"
	}
	if input.Price == "" {
		input.Price = "5.00"
	}
	r, err := svc.Recipe.Create(context.Background(), ownerID, input)
	require.NoError(t, err)
	return r
}

func TestCreateRecipe(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")

	r, err := svc.Recipe.Create(ctx, userID, CreateRecipeInput{
		Title:       "Carbonara",
		TimeMinutes: 25,
		Price:       "12.50",
		Link:        "https://example.com/carbonara",
		Tags:        []string{"dinner", "pasta"},
		Ingredients: []string{"eggs", "guanciale"},
	})
	require.NoError(t, err)
	assert.NotZero(t, r.ID)
	assert.Equal(t, "12.5", r.Price.String())
	assert.Len(t, r.Tags, 2)
	assert.Len(t, r.Ingredients, 2)
}

func TestCreateRecipeValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")

	tests := []struct {
		name  string
		input CreateRecipeInput
	}{
		{"missing title", CreateRecipeInput{Price: "5.00"}},
		{"negative time", CreateRecipeInput{Title: "Soup", TimeMinutes: -1, Price: "5.00"}},
		{"bad price", CreateRecipeInput{Title: "Soup", Price: "five"}},
		{"negative price", CreateRecipeInput{Title: "Soup", Price: "-1.00"}},
		{"blank tag name", CreateRecipeInput{Title: "Soup", Price: "5.00", Tags: []string{"  "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Recipe.Create(ctx, userID, tt.input)
			assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
		})
	}
}

func TestCreateRecipeDeduplicatesNames(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")

	r, err := svc.Recipe.Create(ctx, userID, CreateRecipeInput{
		Title: "Stew",
		Price: "8.00",
		Tags:  []string{"dinner", "dinner", " dinner "},
	})
	require.NoError(t, err)
	assert.Len(t, r.Tags, 1)
}

func TestGetRecipeCrossOwner(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice := registerTestUser(t, svc, "alice@example.com")
	bob := registerTestUser(t, svc, "bob@example.com")

	r := createTestRecipe(t, svc, alice, CreateRecipeInput{Title: "Alice's Pie"})

	_, err := svc.Recipe.Get(ctx, bob, r.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestUpdateRecipeNormalizesPrice(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")
	r := createTestRecipe(t, svc, userID, CreateRecipeInput{Title: "Stew"})

	price := " 7.250 "
	got, err := svc.Recipe.Update(ctx, userID, r.ID, UpdateRecipeInput{Price: &price})
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("7.25")))
}

func TestDeleteRecipeRemovesImage(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")
	r := createTestRecipe(t, svc, userID, CreateRecipeInput{Title: "Stew"})

	updated, err := svc.Recipe.AttachImage(ctx, userID, r.ID, testUpload(t))
	require.NoError(t, err)
	require.True(t, updated.HasImage())
	require.True(t, svc.Images.Exists(updated.ImageID))

	require.NoError(t, svc.Recipe.Delete(ctx, userID, r.ID))
	assert.False(t, svc.Images.Exists(updated.ImageID), "image file should be removed with recipe")
}

func TestAttachImage(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")
	r := createTestRecipe(t, svc, userID, CreateRecipeInput{Title: "Stew"})

	got, err := svc.Recipe.AttachImage(ctx, userID, r.ID, testUpload(t))
	require.NoError(t, err)
	assert.True(t, got.HasImage())
	assert.NotEmpty(t, got.ImageBlurHash)
	assert.True(t, svc.Images.Exists(got.ImageID))
}

func TestAttachImageReplacesPrevious(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")
	r := createTestRecipe(t, svc, userID, CreateRecipeInput{Title: "Stew"})

	first, err := svc.Recipe.AttachImage(ctx, userID, r.ID, testUpload(t))
	require.NoError(t, err)

	second, err := svc.Recipe.AttachImage(ctx, userID, r.ID, testUpload(t))
	require.NoError(t, err)

	assert.NotEqual(t, first.ImageID, second.ImageID)
	assert.False(t, svc.Images.Exists(first.ImageID), "replaced image should be removed")
	assert.True(t, svc.Images.Exists(second.ImageID))
}

func TestAttachImageBadPayload(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "cook@example.com")
	r := createTestRecipe(t, svc, userID, CreateRecipeInput{Title: "Stew"})

	_, err := svc.Recipe.AttachImage(ctx, userID, r.ID, bytes.NewReader([]byte("not an image")))
	assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)

	got, err := svc.Recipe.Get(ctx, userID, r.ID)
	require.NoError(t, err)
	assert.False(t, got.HasImage(), "failed upload must not attach an image")
}

func TestAttachImageCrossOwner(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice := registerTestUser(t, svc, "alice@example.com")
	bob := registerTestUser(t, svc, "bob@example.com")

	r := createTestRecipe(t, svc, alice, CreateRecipeInput{Title: "Alice's Pie"})

	_, err := svc.Recipe.AttachImage(ctx, bob, r.ID, testUpload(t))
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func testUpload(t *testing.T) *bytes.Reader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}
