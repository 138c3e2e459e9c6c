package routes

import (
	"medical-inventory/internal/authz"
	"medical-inventory/internal/controllers"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEventRouter(secureGroup *echo.Group, eventService services.EventServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewEventController(eventService, logger)
	view := authMW.RequirePermission(authz.EventsView)

	secureGroup.GET("/events", ctrl.GetEvents, view)
	secureGroup.GET("/events/search", ctrl.SearchEvents, view)
	secureGroup.GET("/events/:id", ctrl.FindEvent, view)
	secureGroup.POST("/events", ctrl.CreateEvent, authMW.RequirePermission(authz.EventsCreate))
	secureGroup.PUT("/events/:id", ctrl.UpdateEvent, authMW.RequirePermission(authz.EventsUpdate))
	secureGroup.DELETE("/events/:id", ctrl.DeleteEvent, authMW.RequirePermission(authz.EventsDelete))
}
