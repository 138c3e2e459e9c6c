package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medical-inventory/internal/authz"
	"medical-inventory/internal/controllers"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportController := controllers.NewReportController(reportService, logger)
	view := authMW.RequirePermission(authz.ReportsView)
	export := authMW.RequirePermission(authz.ReportsExport)

	reports := secureGroup.Group("/reports")
	reports.GET("/statistics", reportController.GetStatistics, view)
	reports.GET("/maintenance", reportController.GetMaintenanceReport, view)
	reports.GET("/attention", reportController.GetAttentionList, view)
	reports.GET("/trends", reportController.GetMonthlyTrends, view)
	reports.GET("/events", reportController.GetEventStatistics, view)
	reports.GET("/users", reportController.GetUserStatistics, view, authMW.RequirePermission(authz.UsersView))
	reports.GET("/departments", reportController.GetDepartmentCosts, view)

	reports.GET("/export/inventory", reportController.ExportInventory, export)
	reports.GET("/export/maintenance", reportController.ExportMaintenance, export)
	reports.GET("/export/events/:id", reportController.ExportEquipmentEvents, export)
	reports.GET("/export/costs", reportController.ExportCosts, export)

	secureGroup.GET("/equipment/:id/events/frequency", reportController.GetEventFrequency, view)
}
