// Package handlers implements the HTTP handlers of the recipe API.
package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/middleware"
	"github.com/welldanyogia/recipe-api-backend/internal/api/response"
	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
)

// checker is implemented by requests with rules struct tags cannot express
type checker interface {
	Check() error
}

// bindRequest binds a JSON, urlencoded or multipart body into req and validates it
// with the echo validator. The returned error is ready for response.Error.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		if errors.Is(err, echo.ErrUnsupportedMediaType) {
			return apperrors.NewAppError(apperrors.ErrInvalidInput,
				"unsupported content type: send JSON or form data", apperrors.CodeInvalidInput)
		}
		return apperrors.NewAppError(apperrors.ErrInvalidInput, "invalid request body", apperrors.CodeInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if ck, ok := req.(checker); ok {
		return ck.Check()
	}
	return nil
}

// unauthenticated writes the 401 used when no caller is on the context
func unauthenticated(c echo.Context) error {
	return response.Unauthorized(c, "authentication credentials were not provided")
}

// callerID returns the authenticated caller's ID, or false when TokenAuth did not run
func callerID(c echo.Context) (uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
