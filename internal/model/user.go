package model

import (
	"errors"
	"time"
)

// User represents a registered account. The avatar URL is derived from the
// email at registration time and never recomputed afterwards.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	Avatar         string    `db:"avatar" json:"avatar"`
	CreatedAt      time.Time `db:"created_at" json:"date"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when attempting to register an email that is taken
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	// Unknown email and wrong password both map here so the response never
	// distinguishes the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for a malformed, tampered or expired session token
	ErrInvalidToken = errors.New("invalid token")
)
