package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAuthenticated = errors.New("not authenticated")

// User models a registered author. PasswordHash never leaves the backend.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	PostIDs      []string  `json:"post_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
