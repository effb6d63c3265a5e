package models

import "time"

// User is the public profile shape returned to the client
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoredUser is a directory entry held in the identity store. The password is
// kept in plaintext because the identity provider is an explicitly-labeled
// non-production mock.
type StoredUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile strips the credential from a directory entry.
func (s StoredUser) Profile() User {
	return User{
		ID:        s.ID,
		Email:     s.Email,
		Name:      s.Name,
		Avatar:    s.Avatar,
		CreatedAt: s.CreatedAt,
	}
}

// SessionRecord is the single current-session record in the identity store
type SessionRecord struct {
	User User `json:"user"`
}

// LoginRequest represents the data needed for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the data needed to create a new user
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateProfileRequest is a partial profile patch
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Avatar *string `json:"avatar,omitempty" binding:"omitempty,url"`
}
