package dto

import "time"

// AuthResponse is returned on successful register, login, refresh and OAuth
// code exchange.
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// ExchangeCodeRequest carries the Google authorization code from the frontend.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
