// Package middleware provides HTTP middleware for the recipe API.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/response"
	"github.com/welldanyogia/recipe-api-backend/internal/logger"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
)

// userContextKey is the echo context key holding the authenticated *models.User
const userContextKey = "auth_user"

// Authorization schemes accepted by TokenAuth
var authSchemes = []string{"bearer", "token"}

// TokenVerifier resolves a bearer token to a user ID
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserLookup loads the user a verified token refers to
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// TokenAuth authenticates requests from the Authorization header.
// Requests without a valid token for an active user are rejected with 401
// before the handler runs.
func TokenAuth(tokens TokenVerifier, users UserLookup, secLogger *logger.SecurityLogger) echo.MiddlewareFunc {
	reject := func(c echo.Context, reason, message string) error {
		if secLogger != nil {
			secLogger.AuthFailure(c.RealIP(), c.Path(), reason)
		}
		return response.Unauthorized(c, message)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := extractToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject(c, "missing_token", "authentication credentials were not provided")
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				return reject(c, "invalid_token", "invalid token")
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return reject(c, "unknown_user", "invalid token")
				}
				return response.Error(c, err)
			}
			if !user.IsActive {
				return reject(c, "inactive_user", "user inactive or deleted")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// extractToken parses "<scheme> <token>" for the accepted schemes
func extractToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, s := range authSchemes {
		if strings.EqualFold(scheme, s) {
			return token, true
		}
	}
	return "", false
}

// CurrentUser returns the user stored by TokenAuth
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok && user != nil
}

// SetCurrentUser stores an authenticated user on the context
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}

// RequireStaff rejects authenticated callers without the staff flag with 403.
// It must run after TokenAuth.
func RequireStaff(secLogger *logger.SecurityLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return response.Unauthorized(c, "authentication credentials were not provided")
			}
			if !user.IsStaff {
				if secLogger != nil {
					secLogger.PermissionDenied(c.RealIP(), c.Path(), user.ID)
				}
				return response.Forbidden(c, "staff access required")
			}
			return next(c)
		}
	}
}
