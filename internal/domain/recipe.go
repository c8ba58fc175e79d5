package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is the aggregate root of the catalog. Ownership is fixed at
// creation; tags and ingredients are owner-scoped associations.
type Recipe struct {
	ID            int64           `json:"id"`
	UserID        string          `json:"-"`
	Title         string          `json:"title"`
	TimeMinutes   int             `json:"time_minutes"`
	Price         decimal.Decimal `json:"price"`
	Link          string          `json:"link,omitempty"`
	Description   string          `json:"description,omitempty"`
	ImageID       string          `json:"-"`
	Image         string          `json:"image,omitempty"`
	ImageBlurHash string          `json:"image_blur_hash,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Tags        []*Tag        `json:"tags"`
	Ingredients []*Ingredient `json:"ingredients"`
}

// HasImage reports whether an image has been attached to the recipe.
func (r *Recipe) HasImage() bool {
	return r.ImageID != ""
}
