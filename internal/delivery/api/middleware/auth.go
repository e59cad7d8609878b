package middleware

import (
	"strings"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/service"
	"inventory/internal/errors"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "bearer "

// AuthMiddleware validates bearer access tokens.
type AuthMiddleware struct {
	tokenSvc        service.TokenService
	protectProducts bool
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	m := &AuthMiddleware{tokenSvc: tokenSvc}
	if cfg != nil && cfg.Auth != nil {
		m.protectProducts = cfg.Auth.ProtectProducts
	}

	return m
}

// Authenticate rejects the request unless it carries a valid access token, and records
// the token's user on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.WithStack(domainerrors.ErrInvalidToken.WithDetails("authorization header is missing"))
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return errors.WithStack(domainerrors.ErrInvalidToken.WithDetails("authorization header must be a bearer token"))
		}
		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
		}

		deliverycontext.SetIdentity(c, claims.UserID, claims.Subject)

		return next(c)
	}
}

// ProtectProducts applies Authenticate to product writes when auth.protectProducts is enabled.
func (m *AuthMiddleware) ProtectProducts(next echo.HandlerFunc) echo.HandlerFunc {
	if !m.protectProducts {
		return next
	}

	return m.Authenticate(next)
}
