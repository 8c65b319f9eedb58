package models

import "time"

// User is an authenticated account on the backend
type User struct {
	ID              ID         `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// GetID returns the id as a string for quiet CLI output
func (u *User) GetID() string { return u.ID.String() }

// LoginRequest carries session login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the registration form
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}
