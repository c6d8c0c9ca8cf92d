package middleware // middleware provides reusable HTTP middleware for the API

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userIDKey is the context key under which the authenticated user id
// is stored for handlers.
const userIDKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's user_id claim into the request context
// as a uint64.  The secret must match the one used when issuing
// tokens.  Handlers behind this middleware read the id via UserID(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			// Accept both a bare token (original client behavior) and
			// the Bearer scheme.
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "INVALID_TOKEN"})
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "INVALID_TOKEN"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "INVALID_TOKEN"})
			}
			id, ok := claims["user_id"].(float64)
			if !ok || id <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "UNKNOWN_USER"})
			}
			c.Set(userIDKey, uint64(id))
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by JWTAuth.  The
// second return value is false when the request was not authenticated.
func UserID(c echo.Context) (uint64, bool) {
	v, ok := c.Get(userIDKey).(uint64)
	return v, ok && v > 0
}
