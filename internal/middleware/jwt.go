// Package middleware provides shared request processing: JWT auth, role
// enforcement, response caching and rate limiting.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the subject and role claims into the request context under
// "user_id" (uint64) and "role" (string). The secret must match the one
// used when issuing tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid claims"})
			}

			uid, ok := subjectID(claims["sub"])
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid claims"})
			}
			role, _ := claims["role"].(string)

			c.Set("user_id", uid)
			c.Set("role", role)
			return next(c)
		}
	}
}

// subjectID coerces the sub claim into a uint64. JWT numbers decode as
// float64; some issuers encode numeric strings.
func subjectID(v any) (uint64, bool) {
	switch t := v.(type) {
	case float64:
		return uint64(t), true
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
