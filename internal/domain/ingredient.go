package domain

import "time"

// Ingredient is a user-owned recipe component. Names are unique per owner.
// Structurally identical to Tag but kept as a separate association set.
type Ingredient struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
