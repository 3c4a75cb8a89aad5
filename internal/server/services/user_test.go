package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/logging"
	"github.com/avolkov/pdfchat/internal/server/config"
	"github.com/avolkov/pdfchat/internal/server/models"
	"github.com/avolkov/pdfchat/internal/server/repositories/users"
)

// --- helpers ---

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newUserService(t *testing.T) (*UserService, *users.InMemoryRepository) {
	t.Helper()
	repo := users.NewInMemoryRepository()
	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(repo, testLogger(), cfg), repo
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// erroringUsersRepo fails every operation; used to exercise the internal
// fault path.
type erroringUsersRepo struct{}

func (erroringUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, errBoom{}
}
func (erroringUsersRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, errBoom{}
}
func (erroringUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, errBoom{}
}

// --- tests ---

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "alice@example.com", "secret1", "Alice A")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" || user.Role != models.RoleUser || !user.Active {
		t.Fatalf("unexpected user record: %+v", user)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}

	pair, err := s.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must be distinct")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "bob", "bob@example.com", "secret1", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Same username, different email.
	_, err := s.Register(ctx, "bob", "bob2@example.com", "secret1", "")
	if !errors.Is(err, common.ErrDuplicateUsername) {
		t.Fatalf("want ErrDuplicateUsername, got %v", err)
	}

	// Different username, same email.
	_, err = s.Register(ctx, "bobby", "bob@example.com", "secret1", "")
	if !errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@example.com", "secret1"},
		{"long username", string(make([]byte, 51)), "a@example.com", "secret1"},
		{"bad email", "carol", "not-an-email", "secret1"},
		{"short password", "carol", "carol@example.com", "12345"},
	}
	for _, tc := range cases {
		if _, err := s.Register(ctx, tc.username, tc.email, tc.password, ""); !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("%s: want ErrorValidation, got %v", tc.name, err)
		}
	}
}

func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "dave", "dave@example.com", "correct1", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, errWrongPassword := s.Login(ctx, "dave", "incorrect")
	_, errUnknownUser := s.Login(ctx, "nobody", "whatever1")

	if !errors.Is(errWrongPassword, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, common.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", errUnknownUser)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	t.Parallel()

	s, repo := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "erin", "erin@example.com", "secret1", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := repo.SetActive(ctx, "erin", false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}

	_, err := s.Login(ctx, "erin", "secret1")
	if !errors.Is(err, common.ErrAccountInactive) {
		t.Fatalf("want ErrAccountInactive, got %v", err)
	}
}

func TestResolve_AccessTokenReturnsRegisteredIdentity(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "alice@example.com", "secret1", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	pair, err := s.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	ident, err := s.Resolve(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if ident.ID != user.ID || ident.Username != "alice" || ident.Role != models.RoleUser || !ident.Active {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestResolve_RefreshTokenRejected(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "frank", "frank@example.com", "secret1", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	pair, err := s.Login(ctx, "frank", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	// A refresh token used where an access token is required.
	_, err = s.Resolve(ctx, pair.RefreshToken)
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated for kind mismatch, got %v", err)
	}
}

func TestRefresh_RotatesTokenPair(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "alice@example.com", "secret1", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	pair, err := s.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	rotated, err := s.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if rotated.AccessToken == pair.AccessToken || rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("rotated pair must differ from the original")
	}

	ident, err := s.Resolve(ctx, rotated.AccessToken)
	if err != nil {
		t.Fatalf("Resolve after refresh error: %v", err)
	}
	if ident.ID != user.ID {
		t.Fatalf("identity changed across refresh: got %q want %q", ident.ID, user.ID)
	}
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	t.Parallel()

	s, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "gary", "gary@example.com", "secret1", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	pair, err := s.Login(ctx, "gary", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	_, err = s.Refresh(ctx, pair.AccessToken)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for kind mismatch, got %v", err)
	}
}

func TestRefresh_DeactivatedIdentityLooksLikeBadToken(t *testing.T) {
	t.Parallel()

	s, repo := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "helen", "helen@example.com", "secret1", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	pair, err := s.Login(ctx, "helen", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := repo.SetActive(ctx, "helen", false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}

	_, err = s.Refresh(ctx, pair.RefreshToken)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for inactive identity, got %v", err)
	}
}

func TestResolve_InactiveAccount(t *testing.T) {
	t.Parallel()

	s, repo := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "ivan", "ivan@example.com", "secret1", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	pair, err := s.Login(ctx, "ivan", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := repo.SetActive(ctx, "ivan", false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}

	_, err = s.Resolve(ctx, pair.AccessToken)
	if !errors.Is(err, common.ErrAccountInactive) {
		t.Fatalf("want ErrAccountInactive, got %v", err)
	}
}

func TestUserService_RepoFaultsAreOpaque(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	s := NewUserService(erroringUsersRepo{}, testLogger(), cfg)
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "alice@example.com", "secret1", ""); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("Register: want ErrorInternal, got %v", err)
	}
	if _, err := s.Login(ctx, "alice", "secret1"); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("Login: want ErrorInternal, got %v", err)
	}
}
