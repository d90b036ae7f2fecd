package middleware

import (
	"net/http"
	"strings"

	"vitrine/config"
	"vitrine/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextOwnerIDKey is the echo context key carrying the authenticated owner ID.
const ContextOwnerIDKey = "ownerID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to parse token claims"})
		}

		ownerID, ok := claims["sub"].(string)
		if !ok || ownerID == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Owner ID missing from token"})
		}

		// Set owner info on the context for handlers to use
		c.Set(ContextOwnerIDKey, ownerID)

		return next(c)
	}
}

// OwnerIDFromContext extracts the authenticated owner ID set by Authenticate.
func OwnerIDFromContext(c echo.Context) (string, bool) {
	ownerID, ok := c.Get(ContextOwnerIDKey).(string)

	return ownerID, ok && ownerID != ""
}
