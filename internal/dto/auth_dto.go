package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TokenResponse is returned by both register (201) and login (200).
type TokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// MeResponse describes the authenticated user behind a bearer token.
type MeResponse struct {
	ID    uint     `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}
