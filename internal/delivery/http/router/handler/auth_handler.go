// Package handler contains the HTTP handlers for the application.
package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"vitrine/config"
	"vitrine/internal/delivery/http/response"
	"vitrine/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler issues dashboard tokens for business owners.
type AuthHandler struct {
	tokenSvc service.TokenService
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(tokenSvc service.TokenService, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		tokenSvc: tokenSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

type issueTokenRequest struct {
	OwnerID string `json:"ownerId" form:"ownerId" validate:"required"`
	Secret  string `json:"secret" form:"secret" validate:"required"`
}

type issueTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// IssueToken exchanges the shared dashboard secret for a token pair. There is
// no owner account store; ownership is whatever "sub" the token carries.
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var input issueTokenRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token request")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "ownerId and secret are required")
	}

	if subtle.ConstantTimeCompare([]byte(input.Secret), []byte(h.cfg.SecretKey.Access)) != 1 {
		h.logger.Warn("Token request with wrong secret", slog.String("ownerId", input.OwnerID))

		return response.Unauthorized(c, "INVALID_SECRET", "Invalid dashboard secret")
	}

	accessToken, refreshToken, err := h.tokenSvc.GenerateTokens(input.OwnerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, issueTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(h.tokenSvc.GetRefreshTokenDuration().Seconds()),
	}, "Token issued successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
