package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the public view of an account.
type UserPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse carries the bearer token and its owner.
type LoginResponse struct {
	Token     string      `json:"token"`
	Type      string      `json:"type"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserPayload `json:"user"`
}

// EmailAvailabilityResponse answers the registration pre-check.
type EmailAvailabilityResponse struct {
	Available bool `json:"available"`
}
