package services

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/platform/config"
	"github.com/fintrack-app/fintrack_backend/internal/utils"
)

type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryWithTx
}

// NewTokenService creates the token service.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryWithTx) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

// GenerateAccessToken creates a signed JWT for the user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return "", time.Time{}, apperrors.NewInternalServerError("failed to generate access token", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates a new opaque refresh token and persists its
// hash on the user row. Only the hash is stored; the raw token travels to the
// client once, in the cookie.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token")
		return "", time.Time{}, apperrors.NewInternalServerError("failed to generate refresh token", err)
	}

	expiresAt := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(raw), expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to persist refresh token hash")
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

// ValidateRefreshToken checks a presented refresh token against the user's
// stored hash and expiry, returning the user on success.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.RefreshTokenExpiryTime == nil || time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return user, nil
}
