package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/middleware"
	"github.com/welldanyogia/recipe-api-backend/internal/api/response"
	"github.com/welldanyogia/recipe-api-backend/internal/api/serializers"
	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
	"github.com/welldanyogia/recipe-api-backend/internal/logger"
	"github.com/welldanyogia/recipe-api-backend/internal/services"
)

// UserHandler handles account and token HTTP requests
type UserHandler struct {
	users     services.UserService
	tokens    services.TokenService
	secLogger *logger.SecurityLogger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users services.UserService, tokens services.TokenService, secLogger *logger.SecurityLogger) *UserHandler {
	return &UserHandler{
		users:     users,
		tokens:    tokens,
		secLogger: secLogger,
	}
}

// Register handles POST /api/users
func (h *UserHandler) Register(c echo.Context) error {
	var req serializers.RegisterRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.users.CreateUser(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case apperrors.IsDuplicateEntry(err):
			return response.Conflict(c, "user with this email already exists")
		case apperrors.IsInvalidInput(err):
			return response.Error(c, err)
		}
		return response.InternalError(c, "failed to create user")
	}

	return response.Created(c, serializers.NewUserResponse(user))
}

// Token handles POST /api/users/token
func (h *UserHandler) Token(c echo.Context) error {
	var req serializers.TokenRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			if h.secLogger != nil {
				h.secLogger.AuthFailure(c.RealIP(), c.Path(), "invalid_credentials")
			}
			return response.Unauthorized(c, "unable to authenticate with provided credentials")
		}
		return response.InternalError(c, "failed to authenticate")
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		return response.InternalError(c, "failed to issue token")
	}

	return response.Success(c, serializers.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	return response.Success(c, serializers.NewUserResponse(user))
}

// UpdateMe handles PATCH /api/users/me
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req serializers.UpdateMeRequest
	if err := bindRequest(c, &req); err != nil {
		return response.Error(c, err)
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user, services.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if apperrors.IsInvalidInput(err) {
			return response.Error(c, err)
		}
		return response.InternalError(c, "failed to update user")
	}

	return response.Success(c, serializers.NewUserResponse(updated))
}
