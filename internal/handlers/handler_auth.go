package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/middleware"
	"github.com/fintrack-app/fintrack_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	oauthService portssvc.GoogleOAuthSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  services.User,
		tokenService: services.Token,
		oauthService: services.GoogleOAuth,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)

	// Credential endpoints get a strict per-IP limit on top of the global one.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/google/exchange-code", limitMiddleware, h.ExchangeCodeGoogle)
	}
}

// issueTokens generates the access/refresh token pair, sets the refresh
// cookie and writes the auth response. The cookie value carries the user ID
// alongside the opaque token so the refresh endpoint can look up the stored
// hash without an access token.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "")
		return
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()))
		respondError(c, err, "")
		return
	}

	maxAge := int(time.Until(refreshExpiry).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, user.UserID+":"+refreshToken, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        dto.ToUserResponse(user),
	})
}

// Register godoc
// @Summary Register a new user
// @Description Creates a local account, seeds the user's starter data and logs them in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "Registration details"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	h.issueTokens(c, user)
}

// Login godoc
// @Summary User login
// @Description Authenticates local credentials and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}
	h.issueTokens(c, user)
}

// parseRefreshCookie splits the cookie value into user ID and raw token.
func (h *AuthHandler) parseRefreshCookie(c *gin.Context) (string, string, bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		return "", "", false
	}
	userID, token, found := strings.Cut(value, ":")
	if !found || userID == "" || token == "" {
		return "", "", false
	}
	return userID, token, true
}

// Refresh godoc
// @Summary Rotate tokens
// @Description Validates the refresh cookie and issues a fresh token pair.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, refreshToken, ok := h.parseRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing or malformed refresh token"})
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, refreshToken)
	if err != nil {
		respondError(c, err, "")
		return
	}
	h.issueTokens(c, user)
}

// Logout godoc
// @Summary Log out
// @Description Clears the stored refresh token and expires the cookie.
// @Tags auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, _, ok := h.parseRefreshCookie(c); ok {
		if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Warn("Failed to clear refresh token on logout", slog.String("error", err.Error()))
		}
	}

	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.Status(http.StatusNoContent)
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code
// @Description Trades the frontend's authorization code for Google tokens, resolves the user and returns an application token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *AuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	oauth2Token, err := h.oauthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to communicate with Google"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	photoURL, _ := payload.Claims["picture"].(string)
	if email == "" {
		logger.Error("Email claim missing from Google ID token payload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Essential user information missing from Google token"})
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(ctx, name, email, photoURL)
	if err != nil {
		respondError(c, err, "")
		return
	}
	h.issueTokens(c, user)
}
