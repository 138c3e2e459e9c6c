package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medical-inventory/internal/listeners"
	"medical-inventory/internal/repositories"
	"medical-inventory/internal/services"
	"medical-inventory/internal/session"
	"medical-inventory/pkg/config"
	"medical-inventory/pkg/eventbus"
	"medical-inventory/pkg/filestorage"
	"medical-inventory/pkg/middleware"
	"medical-inventory/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
	Report    *zap.Logger
	User      *zap.Logger
}

// Dependencies - инфраструктура, которую main поднимает до маршрутов.
type Dependencies struct {
	Store     *repositories.Store
	Cache     repositories.CacheRepositoryInterface
	Bus       *eventbus.Bus
	JWT       service.JWTService
	Catalogue *config.Catalogue
	Validator services.StructValidator
	Files     filestorage.FileStorageInterface
	Config    *config.Config
}

func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")
	cfg := deps.Config

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	sessions := session.NewStore(deps.Cache, cfg.JWT.RefreshTokenTTL)
	authMW := middleware.NewAuthMiddleware(deps.JWT, sessions, loggers.Auth)

	// Любое изменение данных сбрасывает закешированные отчёты
	listeners.NewReportCacheListener(deps.Cache, loggers.Main.Named("report_cache")).Register(deps.Bus)

	// --- 1. СЕРВИСЫ ---
	base := services.NewBaseService(deps.Cache, deps.Bus, cfg.Reports.Location, loggers.Main)
	authService := services.NewAuthService(base, deps.Store.Users, deps.Cache, sessions, deps.JWT, loggers.Auth, cfg.Auth)
	equipmentService := services.NewEquipmentService(base, deps.Store, loggers.Equipment)
	importService := services.NewEquipmentImportService(base, deps.Store, deps.Validator, loggers.Equipment.Named("import"))
	fileService := services.NewEquipmentFileService(base, deps.Store, deps.Files, loggers.Equipment.Named("files"))
	maintenanceService := services.NewMaintenanceService(base, deps.Store, loggers.Equipment.Named("maintenance"))
	eventService := services.NewEventService(base, deps.Store, loggers.Equipment.Named("events"))
	userService := services.NewUserService(base, deps.Store, loggers.User)
	reportService := services.NewReportService(base, deps.Store, deps.Catalogue, cfg.Reports, loggers.Report)

	// --- 2. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, loggers.Auth, authMW)
	runEquipmentRouter(secureGroup, equipmentService, maintenanceService, eventService, loggers.Equipment, authMW)
	runUploadRouter(secureGroup, importService, fileService, loggers.Equipment, authMW)
	runMaintenanceRouter(secureGroup, maintenanceService, loggers.Equipment, authMW)
	runEventRouter(secureGroup, eventService, loggers.Equipment, authMW)
	runUserRouter(secureGroup, userService, loggers.User, authMW)
	runReportRouter(secureGroup, reportService, loggers.Report, authMW)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}
