package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is where the middleware stores the authenticated user id.
const userIDContextKey = "auth_user_id"

// Middleware returns the bearer-token gate for protected routes. The token is
// read from the Authorization header; a conventional "Bearer " prefix is
// accepted but not required. Every failure mode collapses to the same 401 so
// callers cannot distinguish a missing token from a forged or expired one.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")
			claims, err := jwtService.ValidateAccessToken(tokenString)
			if err != nil {
				return nil, err
			}
			c.Set(userIDContextKey, claims.UserID)
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		},
	})
}

// UserID returns the authenticated user id injected by Middleware.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDContextKey).(uint)
	return id, ok
}
