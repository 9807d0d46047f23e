// Package model defines domain entities for the application.
package model

import "time"

// User is an account that can log in and own a cart.
// The password is stored only as an argon2id hash, never in plaintext.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved caller of an authenticated request.
// It is attached to the request context by the session middleware.
type Identity struct {
	UserID   int64
	Username string
}
