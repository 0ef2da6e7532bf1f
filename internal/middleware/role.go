package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// RequireRole returns a middleware enforcing that the authenticated user
// holds one of the given roles. It assumes JWTAuth has stored the role in
// context; a missing or unknown role yields 403.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, _ := c.Get("role").(string)
			if !allowed[model.Role(v)] {
				return c.JSON(http.StatusForbidden, echo.Map{"status": "error", "message": "forbidden"})
			}
			return next(c)
		}
	}
}

// AdminOnly is shorthand for the admin-gated routes (deletes, status
// updates, reference-data writes, user administration).
func AdminOnly() echo.MiddlewareFunc {
	return RequireRole(model.RoleAdmin)
}
