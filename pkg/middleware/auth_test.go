package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medical-inventory/internal/authz"
	"medical-inventory/internal/dto"
	"medical-inventory/internal/repositories"
	"medical-inventory/internal/session"
	"medical-inventory/pkg/service"
	"medical-inventory/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	echo     *echo.Echo
	jwt      service.JWTService
	sessions *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	jwtSvc := service.NewJWTService("secret", time.Hour, 24*time.Hour)
	sessions := session.NewStore(repositories.NewMemoryCacheRepository(), time.Hour)
	m := NewAuthMiddleware(jwtSvc, sessions, zap.NewNop())

	e := echo.New()
	api := e.Group("/api", m.Auth)
	api.GET("/me", func(c echo.Context) error {
		sess, err := utils.GetSessionFromContext(c.Request().Context())
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, sess.Role)
	})
	api.DELETE("/users/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, m.RequirePermission(authz.UsersManage))

	return &fixture{echo: e, jwt: jwtSvc, sessions: sessions}
}

func (f *fixture) login(t *testing.T, role string) (string, string, string) {
	t.Helper()
	sess, err := f.sessions.Create(context.Background(), dto.UserDTO{ID: uuid.New(), Nombre: "Test", Rol: role})
	require.NoError(t, err)
	access, refresh, err := f.jwt.GenerateTokens(sess.ID, sess.UserID.String(), role)
	require.NoError(t, err)
	return sess.ID, access, refresh
}

func (f *fixture) do(method, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/me", "Bearer abc").Code)
}

func TestAuthAcceptsLiveSession(t *testing.T) {
	f := newFixture(t)
	_, access, refresh := f.login(t, authz.RoleTechnician)

	rec := f.do(http.MethodGet, "/api/me", "Bearer "+access)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, authz.RoleTechnician, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/me", "Bearer "+refresh).Code)
}

func TestAuthRejectsAfterLogout(t *testing.T) {
	f := newFixture(t)
	id, access, _ := f.login(t, authz.RoleAdmin)
	require.NoError(t, f.sessions.Delete(context.Background(), id))

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/me", "Bearer "+access).Code)
}

func TestRequirePermission(t *testing.T) {
	f := newFixture(t)
	_, admin, _ := f.login(t, authz.RoleAdmin)
	_, tech, _ := f.login(t, authz.RoleTechnician)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/users/1", "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, "/api/users/1", "Bearer "+tech).Code)
}
