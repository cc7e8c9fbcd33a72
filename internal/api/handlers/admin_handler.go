package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/response"
	"github.com/welldanyogia/recipe-api-backend/internal/api/serializers"
	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
	"github.com/welldanyogia/recipe-api-backend/internal/services"
)

// AdminHandler handles staff-only account listings
type AdminHandler struct {
	users services.UserService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(users services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return response.InternalError(c, "failed to list users")
	}
	return response.Success(c, serializers.NewAdminUserList(users))
}

// GetUser handles GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := serializers.ParseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid user ID")
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return response.NotFound(c, "user not found")
		}
		return response.InternalError(c, "failed to get user")
	}

	return response.Success(c, serializers.NewAdminUserResponse(user))
}
