package services

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade handles JWT access tokens and refresh token rotation.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks a presented refresh token against the
	// user's stored hash and expiry, returning the user on success.
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleOAuthSvcFacade wraps the Google OAuth code exchange and ID token
// validation used by the login flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken trades an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken verifies the ID token's signature and audience
	// and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
