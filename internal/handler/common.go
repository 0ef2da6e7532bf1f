// Package handler contains the HTTP layer: request binding, enum and role
// validation, and translation of repository errors into the standard
// response envelope {status, message, data}.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// reqContext bounds every DB call to a per-request timeout.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// envelope is the uniform response shape. Data is omitted on errors.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Status: "success", Data: data})
}

func successMsg(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, envelope{Status: "success", Message: msg, Data: data})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, envelope{Status: "error", Message: msg})
}

// repoError translates data-layer failures into HTTP statuses. notFoundMsg
// customizes the 404 message per resource; everything else carries the
// repository's own message or a generic one for unexpected failures.
func repoError(c echo.Context, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrConflict):
		var inUse *repository.InUseError
		if errors.As(err, &inUse) {
			return fail(c, http.StatusConflict, "cannot delete: "+inUse.Error())
		}
		return fail(c, http.StatusConflict, "a record with the same unique value already exists")
	case errors.Is(err, repository.ErrValidation),
		errors.Is(err, repository.ErrCategoryTypeMismatch):
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, repository.ErrBadCredentials),
		errors.Is(err, repository.ErrCodeInvalid):
		return fail(c, http.StatusUnauthorized, err.Error())
	}
	return fail(c, http.StatusInternalServerError, "internal error")
}

// currentUserID extracts the authenticated user's id stored by the JWT
// middleware.
func currentUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(c echo.Context) bool {
	v, _ := c.Get("role").(string)
	return v == "admin"
}

// pathID parses the :id (or named) path parameter as uint64.
func pathID(c echo.Context, name string) (uint64, bool) {
	return parseID(c.Param(name))
}

// parseID parses a positive uint64 from raw path or query input.
func parseID(raw string) (uint64, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	return n, err == nil && n > 0
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// pageParams reads page/per_page query parameters with defaults and caps.
func pageParams(c echo.Context) (page, perPage int) {
	page = 1
	perPage = defaultPerPage
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && v > 0 {
		perPage = v
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
	}
	return page, perPage
}

// trimmed returns the trimmed value and whether it is non-empty.
func trimmed(s string) (string, bool) {
	t := strings.TrimSpace(s)
	return t, t != ""
}
