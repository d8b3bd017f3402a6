package dto

import "time"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ExternalSignInRequest struct {
	IDToken string `json:"idToken"`
}

// PublicProfile is the only part of a user returned to clients.
type PublicProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SessionResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      PublicProfile `json:"user"`
}

type VerifyResult struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId,omitempty"`
}

type APIKeyResult struct {
	APIKey string `json:"apiKey"`
}
