package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec
}

func TestAdminOnly(t *testing.T) {
	assert.Equal(t, http.StatusOK, runWithRole(t, AdminOnly(), "admin").Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, AdminOnly(), "officer").Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, AdminOnly(), "").Code)
}

func TestRequireRoleAcceptsAnyListed(t *testing.T) {
	mw := RequireRole(model.RoleAdmin, model.RoleOfficer)
	assert.Equal(t, http.StatusOK, runWithRole(t, mw, "admin").Code)
	assert.Equal(t, http.StatusOK, runWithRole(t, mw, "officer").Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, mw, "guest").Code)
}
