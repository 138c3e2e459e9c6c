package routes

import (
	"medical-inventory/internal/authz"
	"medical-inventory/internal/controllers"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUploadRouter(
	secureGroup *echo.Group,
	importService services.EquipmentImportServiceInterface,
	fileService services.EquipmentFileServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	uploadCtrl := controllers.NewUploadController(importService, fileService, logger)

	secureGroup.POST("/equipment/import", uploadCtrl.ImportEquipment,
		authMW.RequirePermission(authz.EquipmentCreate),
		authMW.RequirePermission(authz.EquipmentUpdate),
	)

	secureGroup.POST("/equipment/:id/files", uploadCtrl.AttachFile, authMW.RequirePermission(authz.EquipmentUpdate))
	secureGroup.DELETE("/equipment/:id/files", uploadCtrl.RemoveFile, authMW.RequirePermission(authz.EquipmentUpdate))
}
