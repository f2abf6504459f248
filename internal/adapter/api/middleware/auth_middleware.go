package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"bizmatch/pkg/errors"
	"bizmatch/pkg/response"
)

// UserHeader carries the acting user id. It is an identity pass-through, not authentication.
const UserHeader = "X-User-ID"

type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// Authenticate puts the acting user id under "uid". Browsers cannot set headers on a websocket
// handshake, so the user_id query parameter is accepted as a fallback.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := strings.TrimSpace(c.Request().Header.Get(UserHeader))
		if userID == "" {
			userID = strings.TrimSpace(c.QueryParam("user_id"))
		}
		if userID == "" {
			return response.Error(c, errors.Unauthorized(UserHeader+" header is required", nil))
		}

		c.Set("uid", userID)
		return next(c)
	}
}
