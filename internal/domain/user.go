// Package domain contains the core entities of the RecipeBox server.
package domain

import "time"

// User is an account that owns recipes, tags, and ingredients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Token is an opaque bearer credential bound 1:1 to a user.
// Issued at first login and returned unchanged on subsequent logins.
type Token struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
