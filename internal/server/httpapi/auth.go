package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/pdfchat/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user account.
// POST /api/v1/auth/register
func (s *Server) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := s.users.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    newUserResponse(user),
	})
}

// Login authenticates credentials and returns a token pair.
// POST /api/v1/auth/login
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	pair, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    common.TokenTypeBearer,
	})
}

// RefreshToken rotates a valid refresh token into a fresh pair.
// POST /api/v1/auth/refresh
func (s *Server) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	pair, err := s.users.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    common.TokenTypeBearer,
	})
}

// Me returns the authenticated user's profile.
// GET /api/v1/auth/me
func (s *Server) Me(c echo.Context) error {
	user, err := s.users.Profile(c.Request().Context(), GetIdentity(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout acknowledges a logout. Tokens are stateless, so the client is
// responsible for discarding them; there is no server-side blacklist.
// POST /api/v1/auth/logout
func (s *Server) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Logged out successfully. Please remove the token from client storage.",
	})
}
