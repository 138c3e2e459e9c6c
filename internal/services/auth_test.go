package services

import (
	"context"
	"testing"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/session"
	"medical-inventory/pkg/config"
	"medical-inventory/pkg/constants"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/service"
	"medical-inventory/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	*fixture
	svc      *AuthService
	sessions *session.Store
	user     dto.UserDTO
}

func newAuthFixture(t *testing.T, cfg config.AuthConfig, storedPassword string) *authFixture {
	t.Helper()
	f := newFixture()
	user := dto.UserDTO{
		ID: uuid.New(), Email: "admin@hospital.cl", Password: storedPassword,
		Nombre: "Admin", Rol: "Administrador", Estado: constants.UserActive,
	}
	f.users.items = []dto.UserDTO{user}

	sessions := session.NewStore(f.cache, time.Hour)
	jwtSvc := service.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	svc := NewAuthService(NewBaseService(f.cache, nil, time.UTC, zap.NewNop()), f.users, f.cache, sessions, jwtSvc, zap.NewNop(), cfg)
	return &authFixture{fixture: f, svc: svc, sessions: sessions, user: user}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

var defaultAuth = config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute}

func TestLoginIssuesTokensAndSession(t *testing.T) {
	a := newAuthFixture(t, defaultAuth, mustHash(t, "secreto1"))
	ctx := context.Background()

	resp, err := a.svc.Login(ctx, dto.LoginDTO{Email: " admin@hospital.cl ", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, a.user.ID, resp.User.ID)
	assert.Contains(t, a.users.lastAccess, a.user.ID)

	claims, err := service.NewJWTService("test-secret", 15*time.Minute, time.Hour).ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	sess, err := a.sessions.Get(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, a.user.ID, sess.UserID)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	a := newAuthFixture(t, defaultAuth, mustHash(t, "secreto1"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := a.svc.Login(ctx, dto.LoginDTO{Email: "admin@hospital.cl", Password: "mal"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	_, err := a.svc.Login(ctx, dto.LoginDTO{Email: "admin@hospital.cl", Password: "secreto1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestLoginSuccessResetsAttempts(t *testing.T) {
	a := newAuthFixture(t, defaultAuth, mustHash(t, "secreto1"))
	ctx := context.Background()

	_, err := a.svc.Login(ctx, dto.LoginDTO{Email: "admin@hospital.cl", Password: "mal"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = a.svc.Login(ctx, dto.LoginDTO{Email: "admin@hospital.cl", Password: "secreto1"})
	require.NoError(t, err)

	_, err = a.cache.Get(ctx, attemptsKey("admin@hospital.cl"))
	assert.Error(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	a := newAuthFixture(t, defaultAuth, mustHash(t, "secreto1"))
	_, err := a.svc.Login(context.Background(), dto.LoginDTO{Email: "nadie@hospital.cl", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLegacyPlaintextRejectedByDefault(t *testing.T) {
	a := newAuthFixture(t, defaultAuth, "secreto1")
	_, err := a.svc.Login(context.Background(), dto.LoginDTO{Email: "admin@hospital.cl", Password: "secreto1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLegacyPlaintextIsRehashed(t *testing.T) {
	cfg := defaultAuth
	cfg.AllowLegacyPlaintext = true
	a := newAuthFixture(t, cfg, "secreto1")
	ctx := context.Background()

	_, err := a.svc.Login(ctx, dto.LoginDTO{Email: "admin@hospital.cl", Password: "otro"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = a.svc.Login(ctx, dto.LoginDTO{Email: "admin@hospital.cl", Password: "secreto1"})
	require.NoError(t, err)

	stored, err := a.users.FindByID(ctx, a.user.ID)
	require.NoError(t, err)
	assert.True(t, utils.IsPasswordHash(stored.Password))
	assert.NoError(t, utils.ComparePasswords(stored.Password, "secreto1"))
}

func TestRefreshAndLogout(t *testing.T) {
	a := newAuthFixture(t, defaultAuth, mustHash(t, "secreto1"))
	ctx := context.Background()

	resp, err := a.svc.Login(ctx, dto.LoginDTO{Email: "admin@hospital.cl", Password: "secreto1"})
	require.NoError(t, err)

	_, err = a.svc.RefreshTokens(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)

	refreshed, err := a.svc.RefreshTokens(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := service.NewJWTService("test-secret", 15*time.Minute, time.Hour).ValidateToken(refreshed.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, a.svc.Logout(ctx, claims.SessionID))

	_, err = a.svc.RefreshTokens(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestMeReturnsSessionUser(t *testing.T) {
	a := newAuthFixture(t, defaultAuth, mustHash(t, "secreto1"))

	_, err := a.svc.Me(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	me, err := a.svc.Me(withSession(context.Background(), a.user.ID, a.user.Email))
	require.NoError(t, err)
	assert.Equal(t, a.user.Email, me.Email)
}
