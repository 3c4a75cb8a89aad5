package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/server/models"
)

// identityContextKey is the echo context key for the authenticated identity.
const identityContextKey = "identity"

// GetIdentity retrieves the authenticated identity from the request
// context. Nil when the route is not behind requireAuth.
func GetIdentity(c echo.Context) *models.Identity {
	ident, _ := c.Get(identityContextKey).(*models.Identity)
	return ident
}

// requireAuth extracts the bearer token from the Authorization header,
// resolves it to an identity, and stores the identity in the context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		header := c.Request().Header.Get(common.AuthHeaderName)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}

		token := strings.TrimPrefix(header, common.BearerPrefix)
		if token == header {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format, use: Bearer <token>")
		}

		ident, err := s.users.Resolve(c.Request().Context(), token)
		if err != nil {
			return mapError(err)
		}

		c.Set(identityContextKey, ident)
		return next(c)
	}
}
