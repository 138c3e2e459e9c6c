package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"medical-inventory/internal/authz"
	"medical-inventory/internal/dto"
	"medical-inventory/internal/repositories"
	"medical-inventory/pkg/config"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/eventbus"
	"medical-inventory/pkg/filestorage"
	"medical-inventory/pkg/service"
	"medical-inventory/pkg/types"
	"medical-inventory/pkg/utils"
	"medical-inventory/pkg/validation"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// Заглушки репозиториев. Методы, которые маршрутам не нужны, не реализованы
// и упадут при вызове.
type stubEquipmentRepo struct {
	repositories.EquipmentRepositoryInterface
	mu    sync.Mutex
	items []dto.EquipmentDTO
}

func (r *stubEquipmentRepo) List(context.Context, types.Filter) ([]dto.EquipmentDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.EquipmentDTO(nil), r.items...), nil
}

func (r *stubEquipmentRepo) FindByID(_ context.Context, id uuid.UUID) (*dto.EquipmentDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubEquipmentRepo) Create(_ context.Context, rec dto.EquipmentDTO) (*dto.EquipmentDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	r.items = append(r.items, rec)
	return &rec, nil
}

func (r *stubEquipmentRepo) Update(_ context.Context, id uuid.UUID, rec dto.EquipmentDTO, _ null.Time) (*dto.EquipmentDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			rec.ID = id
			rec.UpdatedAt = time.Now()
			r.items[i] = rec
			return &rec, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type stubMaintenanceRepo struct {
	repositories.MaintenanceRepositoryInterface
}

func (stubMaintenanceRepo) List(context.Context, types.Filter) ([]dto.MaintenanceDTO, error) {
	return nil, nil
}

type stubEventRepo struct {
	repositories.EventRepositoryInterface
}

func (stubEventRepo) List(context.Context, types.Filter) ([]dto.EventDTO, error) {
	return nil, nil
}

func (stubEventRepo) ListByEquipment(context.Context, uuid.UUID) ([]dto.EventDTO, error) {
	return nil, nil
}

type stubUserRepo struct {
	repositories.UserRepositoryInterface
	users []dto.UserDTO
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*dto.UserDTO, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*dto.UserDTO, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) UpdateLastAccess(context.Context, uuid.UUID, time.Time) error { return nil }

type RouterTestSuite struct {
	suite.Suite
	Echo      *echo.Echo
	Bus       *eventbus.Bus
	Equipment *stubEquipmentRepo
	MonitorID uuid.UUID
	VentID    uuid.UUID
}

const testPassword = "secreto123"

func (s *RouterTestSuite) SetupTest() {
	nopLogger := zap.NewNop()

	hash, err := utils.HashPassword(testPassword)
	require.NoError(s.T(), err)

	s.MonitorID = uuid.New()
	s.VentID = uuid.New()
	s.Equipment = &stubEquipmentRepo{items: []dto.EquipmentDTO{
		{ID: s.MonitorID, Nombre: "Monitor de signos vitales", Marca: null.StringFrom("Philips"), NumeroSerie: null.StringFrom("SN-1"), Estado: "activo"},
		{ID: s.VentID, Nombre: "Ventilador", Marca: null.StringFrom("Dräger"), Estado: "fuera-servicio"},
	}}
	users := &stubUserRepo{users: []dto.UserDTO{
		{ID: uuid.New(), Email: "admin@hospital.test", Password: hash, Nombre: "Ana", Rol: authz.RoleAdmin, Estado: "Activo"},
		{ID: uuid.New(), Email: "invitado@hospital.test", Password: hash, Nombre: "Iván", Rol: authz.RoleGuest, Estado: "Activo"},
	}}

	catalogue, err := config.LoadCatalogue("")
	require.NoError(s.T(), err)

	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: time.Hour, RefreshTokenTTL: 24 * time.Hour},
		Auth:    config.AuthConfig{MaxLoginAttempts: 5, LockoutDuration: time.Minute},
		Reports: config.ReportsConfig{Location: time.UTC, StatisticsCacheTTL: time.Minute},
	}

	e := echo.New()
	validator := validation.New()
	e.Validator = validator

	files, err := filestorage.NewLocalFileStorage(s.T().TempDir())
	require.NoError(s.T(), err)

	s.Bus = eventbus.New(nopLogger)
	InitRouter(e, Dependencies{
		Store: &repositories.Store{
			Equipment:   s.Equipment,
			Maintenance: stubMaintenanceRepo{},
			Events:      stubEventRepo{},
			Users:       users,
		},
		Cache:     repositories.NewMemoryCacheRepository(),
		Bus:       s.Bus,
		JWT:       service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL),
		Catalogue: catalogue,
		Validator: validator,
		Files:     files,
		Config:    cfg,
	}, &Loggers{Main: nopLogger, Auth: nopLogger, Equipment: nopLogger, Report: nopLogger, User: nopLogger})

	s.Echo = e
}

func (s *RouterTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) login(email string) string {
	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(s.T(), http.StatusOK, rec.Code, "Body: %s", rec.Body.String())

	var resp struct {
		Body dto.AuthResponseDTO `json:"body"`
	}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.T(), resp.Body.AccessToken)
	return resp.Body.AccessToken
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Status bool `json:"status"`
		Body   T    `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Body
}

func (s *RouterTestSuite) TestLoginAndListEquipment() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/equipment?limit=10", token, nil)
	s.Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())

	body := decodeBody[struct {
		List       []dto.EquipmentDTO `json:"list"`
		Pagination struct {
			Count int `json:"count"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}](s.T(), rec)
	s.Len(body.List, 2)
	s.Equal(2, body.Pagination.Count)
	s.Equal(10, body.Pagination.Limit)
}

func (s *RouterTestSuite) TestWrongPasswordIsUnauthorized() {
	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@hospital.test", "password": "otra"})
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestRequestWithoutTokenIsRejected() {
	rec := s.do(http.MethodGet, "/api/equipment", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestGuestCannotCreateEquipment() {
	token := s.login("invitado@hospital.test")

	rec := s.do(http.MethodPost, "/api/equipment", token, map[string]string{"nombre": "Bomba de infusión"})
	s.Equal(http.StatusForbidden, rec.Code)

	// просмотр гостю доступен
	rec = s.do(http.MethodGet, "/api/equipment/"+s.MonitorID.String(), token, nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestInvalidIDIsBadRequest() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/equipment/not-a-uuid", token, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestCreateEquipmentValidatesPayload() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodPost, "/api/equipment", token, map[string]string{"nombre": "Desfibrilador", "estado": "roto"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestStatisticsRefreshAfterCreate() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/reports/statistics", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	stats := decodeBody[dto.GeneralStatisticsDTO](s.T(), rec)
	s.Equal(2, stats.Total)
	s.Equal(1, stats.EquiposActivos)
	s.Equal(1, stats.EquiposFueraServicio)

	rec = s.do(http.MethodPost, "/api/equipment", token, map[string]string{"nombre": "Desfibrilador", "marca": "Zoll"})
	s.Require().Equal(http.StatusCreated, rec.Code, "Body: %s", rec.Body.String())
	created := decodeBody[dto.EquipmentDTO](s.T(), rec)
	s.Equal("activo", created.Estado)
	s.Equal("admin@hospital.test", created.CreatedBy.String)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Require().NoError(s.Bus.Wait(ctx))

	rec = s.do(http.MethodGet, "/api/reports/statistics", token, nil)
	stats = decodeBody[dto.GeneralStatisticsDTO](s.T(), rec)
	s.Equal(3, stats.Total)
}

func (s *RouterTestSuite) TestTrendsRejectsMonthsOutOfRange() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/reports/trends?months=abc", token, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/reports/trends?months=6", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	s.Len(decodeBody[[]dto.MonthlyTrendDTO](s.T(), rec), 6)
}

func (s *RouterTestSuite) TestExportInventoryAsXLSX() {
	token := s.login("invitado@hospital.test")

	rec := s.do(http.MethodGet, "/api/reports/export/inventory?format=xlsx", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get(echo.HeaderContentType))
	disposition := rec.Header().Get("Content-Disposition")
	s.True(strings.HasPrefix(disposition, `attachment; filename="inventario_equipos_`), disposition)
	s.True(strings.HasSuffix(disposition, ".xlsx"), disposition)
	s.NotZero(rec.Body.Len())
}

func (s *RouterTestSuite) TestExportEquipmentEventsAsPDF() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/reports/export/events/"+s.MonitorID.String(), token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	s.Equal("application/pdf", rec.Header().Get(echo.HeaderContentType))
	s.True(strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func (s *RouterTestSuite) TestExportFilenameWithAccentedBrand() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/reports/export/events/"+s.VentID.String()+"?format=xlsx", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	disposition := rec.Header().Get("Content-Disposition")
	s.Contains(disposition, `filename="eventos_Dr_ger_sin_serie_`)
	s.Contains(disposition, `filename*=UTF-8''eventos_Dr%C3%A4ger_sin_serie_`)
	s.True(strings.HasSuffix(disposition, ".xlsx"), disposition)
}

func (s *RouterTestSuite) TestExportUnknownFormat() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/reports/export/inventory?format=docx", token, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestMeAndLogout() {
	token := s.login("admin@hospital.test")

	rec := s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("admin@hospital.test", decodeBody[dto.UserDTO](s.T(), rec).Email)

	rec = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) upload(path, token, fileName string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(s.T(), err)
	_, err = part.Write(content)
	require.NoError(s.T(), err)
	require.NoError(s.T(), w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestAttachFileToEquipment() {
	token := s.login("admin@hospital.test")
	path := "/api/equipment/" + s.MonitorID.String() + "/files"

	rec := s.upload(path, token, "certificado.pdf", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"))
	s.Require().Equal(http.StatusCreated, rec.Code, "Body: %s", rec.Body.String())
	eq := decodeBody[dto.EquipmentDTO](s.T(), rec)
	s.Require().Len(eq.Archivos, 1)
	s.True(strings.HasPrefix(eq.Archivos[0], "/uploads/equipment/"))

	// текст под видом pdf не принимается
	rec = s.upload(path, token, "virus.pdf", []byte("just some plain text"))
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, path+"?url="+eq.Archivos[0], token, nil)
	s.Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())
	s.Empty(decodeBody[dto.EquipmentDTO](s.T(), rec).Archivos)
}

func (s *RouterTestSuite) TestGuestCannotAttachFiles() {
	token := s.login("invitado@hospital.test")

	rec := s.upload("/api/equipment/"+s.MonitorID.String()+"/files", token, "foto.png", []byte("\x89PNG\r\n\x1a\n"))
	s.Equal(http.StatusForbidden, rec.Code)
}
