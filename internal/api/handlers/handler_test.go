package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/middleware"
	"github.com/welldanyogia/recipe-api-backend/internal/api/response"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/validator"
)

// newTestEcho creates an echo instance with the request validator installed
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.NewRequestValidator()
	return e
}

// newContext creates a JSON request context, authenticated as user when user is non-nil
func newContext(e *echo.Echo, method, path, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(c, user)
	}
	return c, rec
}

// newFormContext creates an urlencoded form request context
func newFormContext(e *echo.Echo, method, path string, form url.Values, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newContext(e, method, path, form.Encode(), user)
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return c, rec
}

// withID sets the :id path parameter
func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

// parseAPIResponse parses the API response from the recorder
func parseAPIResponse(rec *httptest.ResponseRecorder) (*response.APIResponse, error) {
	var resp response.APIResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	return &resp, err
}

// parseErrorResponse parses the error response from the recorder
func parseErrorResponse(rec *httptest.ResponseRecorder) (*response.ErrorResponse, error) {
	var resp response.ErrorResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	return &resp, err
}

// decodeData re-decodes the data field of an API response into out
func decodeData(rec *httptest.ResponseRecorder, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}
