package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bloghub/blog-api/internal/api/identity"
)

// Auth inspects the optional bearer token and, when it verifies, attaches the
// caller's identity to the request context. It never terminates the request:
// a missing, malformed or expired token simply leaves the request
// unauthenticated, and protected resolvers reject it themselves.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := verify(c.Request().Header.Get("Authorization"), jwtSecret)
			if !ok {
				return next(c)
			}

			ctx := identity.WithIdentity(c.Request().Context(), identity.Identity{UserID: userID})
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// verify decodes the Authorization header and returns the token's subject id.
func verify(authHeader, jwtSecret string) (string, bool) {
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", false
	}
	return userID, true
}
