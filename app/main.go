// Файл: main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"medical-inventory/internal/infrastructure"
	"medical-inventory/internal/routes"
	"medical-inventory/pkg/config"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/eventbus"
	"medical-inventory/pkg/filestorage"
	applogger "medical-inventory/pkg/logger"
	appmiddleware "medical-inventory/pkg/middleware"
	"medical-inventory/pkg/service"
	"medical-inventory/pkg/utils"
	"medical-inventory/pkg/validation"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. Логгер и конфиг (.env читается внутри config.New)
	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	// 2. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, appmiddleware.HeaderRequestID},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition", appmiddleware.HeaderRequestID},
	}))

	// 3. Валидатор с правилами предметной области
	validator := validation.New()
	e.Validator = validator

	// 4. Хранилище, кэш, вложения, справочник рекомендаций
	ctx := context.Background()
	infra, err := infrastructure.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Не удалось подготовить хранилище", zap.Error(err))
	}
	defer infra.Close()

	catalogue, err := config.LoadCatalogue(cfg.Reports.CataloguePath)
	if err != nil {
		logger.Fatal("Не удалось загрузить справочник рекомендаций", zap.Error(err))
	}

	files, err := filestorage.NewLocalFileStorage(cfg.Server.UploadsDir)
	if err != nil {
		logger.Fatal("Не удалось подготовить каталог вложений", zap.Error(err))
	}
	absPath, err := filepath.Abs(cfg.Server.UploadsDir)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	bus := eventbus.New(logger.Named("eventbus"))
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	// 5. Маршруты
	routes.InitRouter(e, routes.Dependencies{
		Store:     infra.Store,
		Cache:     infra.Cache,
		Bus:       bus,
		JWT:       jwtSvc,
		Catalogue: catalogue,
		Validator: validator,
		Files:     files,
		Config:    cfg,
	}, &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Equipment: logger.Named("equipment"),
		Report:    logger.Named("report"),
		User:      logger.Named("user"),
	})

	// 6. Запуск и корректная остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("driver", cfg.Gateway.Driver))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки HTTP-сервера", zap.Error(err))
	}
	if err := bus.Wait(shutdownCtx); err != nil {
		logger.Warn("Не все обработчики событий успели завершиться", zap.Error(err))
	}
	logger.Info("Сервер остановлен")
}
