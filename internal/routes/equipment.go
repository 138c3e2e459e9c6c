package routes

import (
	"medical-inventory/internal/authz"
	"medical-inventory/internal/controllers"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	maintenanceService services.MaintenanceServiceInterface,
	eventService services.EventServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	maintenanceCtrl := controllers.NewMaintenanceController(maintenanceService, logger)
	eventCtrl := controllers.NewEventController(eventService, logger)

	view := authMW.RequirePermission(authz.EquipmentView)

	secureGroup.GET("/equipment", equipmentCtrl.GetEquipments, view)
	secureGroup.GET("/equipment/search", equipmentCtrl.SearchEquipment, view)
	secureGroup.GET("/equipment/state/:state", equipmentCtrl.GetByState, view)
	secureGroup.GET("/equipment/department/:department", equipmentCtrl.GetByDepartment, view)
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment, view)
	secureGroup.GET("/equipment/:id/detail", equipmentCtrl.GetEquipmentDetail, view)
	secureGroup.GET("/equipment/:id/maintenance", maintenanceCtrl.GetByEquipment, authMW.RequirePermission(authz.MaintenanceView))
	secureGroup.GET("/equipment/:id/events", eventCtrl.GetByEquipment, authMW.RequirePermission(authz.EventsView))
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, authMW.RequirePermission(authz.EquipmentCreate))
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, authMW.RequirePermission(authz.EquipmentUpdate))
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, authMW.RequirePermission(authz.EquipmentDelete))
}
