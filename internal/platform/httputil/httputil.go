// Package httputil holds request parsing shared by the domain handlers.
package httputil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/middleware"
)

// PathID parses the integer path parameter name. Non-integer or
// non-positive values are a validation error.
func PathID(c echo.Context, name string) (int64, error) {
	return parseID(c.Param(name), name)
}

// QueryID parses an optional integer query parameter. ok is false when the
// parameter is absent.
func QueryID(c echo.Context, name string) (id int64, ok bool, err error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err = parseID(raw, name)
	return id, err == nil, err
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("Invalid %s: must be a positive integer", name)
	}
	return id, nil
}

// Bind decodes the JSON request body into dst. Malformed JSON, type
// mismatches and a body that is not declared as JSON are reported as
// validation errors; an oversized body keeps its 413.
func Bind(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		if errors.Is(err, middleware.ErrBodyTooLarge) {
			return middleware.ErrBodyTooLarge
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusUnsupportedMediaType {
				return apperr.Validation("Invalid request body", "Content-Type must be application/json")
			}
			if msg, ok := he.Message.(string); ok && msg != "" {
				return apperr.Validation("Invalid request body", msg)
			}
		}
		return apperr.Validation("Invalid request body")
	}
	return nil
}
