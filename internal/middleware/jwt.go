// Package middleware provides reusable request processing: JWT
// authentication, request identifiers and redis-backed rate limiting.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth validates a Bearer access token and stores its subject in
// the context under "user_id". The secret must match the one used
// when issuing tokens; only HMAC signing is accepted.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Numeric JWT claims decode as float64; tolerate string
			// subjects from other issuers.
			switch sub := claims["sub"].(type) {
			case float64:
				c.Set("user_id", uint64(sub))
			case string:
				n, err := strconv.ParseUint(sub, 10, 64)
				if err != nil {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid subject"})
				}
				c.Set("user_id", n)
			default:
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid subject"})
			}
			return next(c)
		}
	}
}
