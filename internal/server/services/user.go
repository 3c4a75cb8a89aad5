// Package services contains server-side business logic. This file
// implements UserService: registration, login, token refresh, and
// per-request identity resolution.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/cryptox"
	"github.com/avolkov/pdfchat/internal/logging"
	"github.com/avolkov/pdfchat/internal/server/auth"
	"github.com/avolkov/pdfchat/internal/server/config"
	"github.com/avolkov/pdfchat/internal/server/models"
	"github.com/avolkov/pdfchat/internal/server/repositories/users"
)

// TokenPair bundles a short-lived access token and a longer-lived refresh
// token. Both are stateless bearer credentials; nothing is stored
// server-side, so a superseded refresh token stays valid until its own
// expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	passwordMinLen = 6
)

// dummyDigest is a bcrypt digest of a throwaway value. Login verifies
// against it when the username is unknown so the wrong-password and
// unknown-user paths take comparable time.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserService struct {
	repo                         users.Repository
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		repo:                         repo,
		logger:                       logger.With("module", "user_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new user record with a fresh id, a bcrypt password
// digest, the default role, and active=true. Duplicate errors from the
// repository are surfaced unchanged.
func (s *UserService) Register(ctx context.Context, username, email, password, fullName string) (*models.User, error) {

	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
		Active:       true,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) || errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		s.logger.Error(ctx, "error creating user", "error", err.Error())
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// Login authenticates the credentials and issues a token pair. An unknown
// username and a wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.VerifyPassword(password, dummyDigest)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "error looking up user", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, common.ErrAccountInactive
	}

	return s.generateTokenPair(user)
}

// Refresh verifies a refresh token, re-resolves the identity, and issues a
// new pair. A vanished or deactivated identity is reported as an invalid
// token so callers cannot probe for account existence.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {

	claims, err := auth.ParseToken(refreshToken, auth.TokenKindRefresh, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "error looking up user", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if !user.Active {
		return nil, common.ErrInvalidToken
	}

	return s.generateTokenPair(user)
}

// Resolve verifies an access token and returns the authenticated identity
// for use as an authorization context by collaborators.
func (s *UserService) Resolve(ctx context.Context, bearerToken string) (*models.Identity, error) {

	claims, err := auth.ParseToken(bearerToken, auth.TokenKindAccess, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.repo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		s.logger.Error(ctx, "error looking up user", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if !user.Active {
		return nil, common.ErrAccountInactive
	}

	return user.Identity(), nil
}

// Profile loads the full user record for an already-authenticated
// identity.
func (s *UserService) Profile(ctx context.Context, ident *models.Identity) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, ident.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		s.logger.Error(ctx, "error looking up user", "error", err.Error())
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(user.Username, user.ID, auth.TokenKindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.GenerateToken(user.Username, user.ID, auth.TokenKindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func validateRegistration(username, email, password string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Errorf("%w: username must be %d-%d characters", common.ErrorValidation, usernameMinLen, usernameMaxLen)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if len(password) < passwordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, passwordMinLen)
	}
	return nil
}
