package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/pkg/jwt"
)

// ── fake blacklist ──

type fakeBlacklist struct {
	revoked map[string]time.Duration
	err     error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]time.Duration)}
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[jti]
	return ok, nil
}

// ── helpers ──

func setupTestAuthService() (*authService, *testRepos, *fakeBlacklist, *jwt.Manager) {
	cfg := testConfig()
	repos := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	bl := newFakeBlacklist()
	svc := NewAuthService(cfg, repos.repo, jwtMgr, bl, nopLogger).(*authService)
	return svc, repos, bl, jwtMgr
}

func createTestUser(repos *testRepos, id, password string) *model.User {
	repos.addTeam("team-a", "Alpha")
	u := repos.addUser(id, model.RoleRecruiter, "team-a")
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u.PasswordHash = string(hash)
	return u
}

// ── Login ──

func TestLogin_Success(t *testing.T) {
	svc, repos, _, jwtMgr := setupTestAuthService()
	createTestUser(repos, "rita", "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "rita@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login should succeed, got: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("both tokens should be issued")
	}
	if result.ExpiresIn != 900 {
		t.Errorf("expected ExpiresIn=900, got %d", result.ExpiresIn)
	}
	if result.User.ID != "rita" || result.User.Team == nil || result.User.Team.Name != "Alpha" {
		t.Errorf("unexpected user payload: %+v", result.User)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("access token should parse: %v", err)
	}
	if claims.TeamID != "team-a" || claims.Role != model.RoleRecruiter || claims.TokenType != jwt.TokenTypeAccess {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if repos.users.users["rita"].LastLoginAt == nil {
		t.Error("last login should be recorded")
	}
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	createTestUser(repos, "rita", "password123")

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "RITA@Example.com",
		Password: "password123",
	}); err != nil {
		t.Errorf("Login should match email case-insensitively, got: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	createTestUser(repos, "rita", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "rita@example.com",
		Password: "wrong_password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_Inactive(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	u := createTestUser(repos, "rita", "password123")
	u.IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "rita@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("expected ErrUserInactive, got: %v", err)
	}
}

// ── Refresh ──

func TestRefresh_Success(t *testing.T) {
	svc, repos, _, jwtMgr := setupTestAuthService()
	createTestUser(repos, "rita", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "rita@example.com",
		Password:   "password123",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	result, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh should succeed, got: %v", err)
	}
	claims, err := jwtMgr.ParseToken(result.RefreshToken)
	if err != nil {
		t.Fatalf("new refresh token should parse: %v", err)
	}
	if !claims.RememberMe {
		t.Error("remember-me should carry over to the new refresh token")
	}
}

func TestRefresh_PicksUpRoleChange(t *testing.T) {
	svc, repos, _, jwtMgr := setupTestAuthService()
	u := createTestUser(repos, "rita", "password123")

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Email: "rita@example.com", Password: "password123"})
	u.Role = model.RoleManager

	result, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	claims, _ := jwtMgr.ParseToken(result.AccessToken)
	if claims.Role != model.RoleManager {
		t.Errorf("expected role manager after refresh, got %s", claims.Role)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	createTestUser(repos, "rita", "password123")

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Email: "rita@example.com", Password: "password123"})

	if _, err := svc.Refresh(context.Background(), login.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken, got: %v", err)
	}
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	for _, token := range []string{"", "not-a-jwt"} {
		if _, err := svc.Refresh(context.Background(), token); !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("token %q: expected ErrInvalidRefreshToken, got: %v", token, err)
		}
	}
}

func TestRefresh_Blacklisted(t *testing.T) {
	svc, repos, bl, jwtMgr := setupTestAuthService()
	createTestUser(repos, "rita", "password123")

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Email: "rita@example.com", Password: "password123"})
	claims, _ := jwtMgr.ParseToken(login.RefreshToken)
	bl.revoked[claims.ID] = time.Hour

	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken, got: %v", err)
	}
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	u := createTestUser(repos, "rita", "password123")

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Email: "rita@example.com", Password: "password123"})
	u.IsActive = false

	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, ErrUserInactive) {
		t.Errorf("expected ErrUserInactive, got: %v", err)
	}
}

// ── Logout ──

func TestLogout_BlacklistsForRemainingLifetime(t *testing.T) {
	svc, _, bl, _ := setupTestAuthService()
	svc.now = fixedNow

	if err := svc.Logout(context.Background(), "jti-1", fixedNow().Add(10*time.Minute)); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if ttl := bl.revoked["jti-1"]; ttl != 10*time.Minute {
		t.Errorf("expected ttl 10m, got %v", ttl)
	}
}

func TestLogout_WithoutBlacklist(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(cfg, newTestRepos().repo, jwt.NewManager(&cfg.Auth), nil, nopLogger)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Errorf("Logout without a blacklist should be a no-op, got: %v", err)
	}
}

func TestLogout_StoreFailure(t *testing.T) {
	svc, _, bl, _ := setupTestAuthService()
	bl.err = errStoreDown

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Minute)); !errors.Is(err, errStoreDown) {
		t.Errorf("expected store error, got: %v", err)
	}
}

// ── Me ──

func TestMe(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	u := createTestUser(repos, "rita", "password123")

	me, err := svc.Me(context.Background(), actorOf(u))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.FullName != "Rita Tester" {
		t.Errorf("expected full name 'Rita Tester', got %q", me.FullName)
	}

	delete(repos.users.users, "rita")
	if _, err := svc.Me(context.Background(), actorOf(u)); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}
