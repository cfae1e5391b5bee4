package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/daspi/bookshop/internal/models"
	"github.com/daspi/bookshop/internal/tokens"
)

const userContextKey = "session_user"

// UserResolver turns the user id embedded in a token into the current
// profile. Backed by the auth service.
type UserResolver interface {
	UserByUserID(ctx context.Context, userID string) (*models.User, error)
}

// SessionMiddleware is the protected-route gate: it verifies the
// bearer token from the Authorization header and attaches the resolved
// profile to the request context.
type SessionMiddleware struct {
	JWTSecret []byte
	Users     UserResolver
}

func NewSessionMiddleware(secret []byte, users UserResolver) *SessionMiddleware {
	return &SessionMiddleware{JWTSecret: secret, Users: users}
}

func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
		}

		claims, err := tokens.SessionClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
		}

		user, err := m.Users.UserByUserID(c.Request().Context(), claims.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// CurrentUser returns the profile the session gate attached.
func CurrentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}
