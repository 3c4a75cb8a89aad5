package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/server/models"
)

// APIResponse is the generic success envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		IsActive:  u.Active,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type fileResponse struct {
	FileID           string    `json:"file_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	ContentType      string    `json:"content_type"`
	UploadTime       time.Time `json:"upload_time"`
	UserID           string    `json:"user_id"`
}

func newFileResponse(m *models.FileMeta) fileResponse {
	return fileResponse{
		FileID:           m.ID,
		Filename:         m.FileName,
		OriginalFilename: m.OriginalFileName,
		FileSize:         m.Size,
		ContentType:      m.ContentType,
		UploadTime:       m.UploadedAt,
		UserID:           m.UserID,
	}
}

// mapError translates service sentinel errors into echo HTTP errors.
// Residual errors become an opaque 500.
func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return echo.NewHTTPError(http.StatusBadRequest, "Username already registered")
	case errors.Is(err, common.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	case errors.Is(err, common.ErrorValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, common.ErrAccountInactive):
		return echo.NewHTTPError(http.StatusBadRequest, "Account is inactive")
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
