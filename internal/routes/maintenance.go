package routes

import (
	"medical-inventory/internal/authz"
	"medical-inventory/internal/controllers"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runMaintenanceRouter(secureGroup *echo.Group, maintenanceService services.MaintenanceServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewMaintenanceController(maintenanceService, logger)
	view := authMW.RequirePermission(authz.MaintenanceView)

	secureGroup.GET("/maintenance", ctrl.GetMaintenances, view)
	secureGroup.GET("/maintenance/search", ctrl.SearchMaintenance, view)
	secureGroup.GET("/maintenance/:id", ctrl.FindMaintenance, view)
	secureGroup.POST("/maintenance", ctrl.CreateMaintenance, authMW.RequirePermission(authz.MaintenanceCreate))
	secureGroup.PUT("/maintenance/:id", ctrl.UpdateMaintenance, authMW.RequirePermission(authz.MaintenanceUpdate))
	secureGroup.DELETE("/maintenance/:id", ctrl.DeleteMaintenance, authMW.RequirePermission(authz.MaintenanceDelete))
}
