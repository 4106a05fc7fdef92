package entities

import (
	"time"

	"tutortribe/internal/db"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Role      db.Role    `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type TokenResponse struct {
	TokenType    string       `json:"token_type"`
	AccessToken  string       `json:"access_token"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	Scope        string       `json:"scope"`
	User         UserResponse `json:"user"`
}

type BookingResponse struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	SlotID    int       `json:"slotId"`
	Student   string    `json:"student"`
	Tutor     string    `json:"tutor"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrorResponse is the uniform error envelope of the API.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
