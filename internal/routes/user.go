package routes

import (
	"medical-inventory/internal/authz"
	"medical-inventory/internal/controllers"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUserRouter(secureGroup *echo.Group, userService services.UserServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	userCtrl := controllers.NewUserController(userService, logger)
	view := authMW.RequirePermission(authz.UsersView)
	manage := authMW.RequirePermission(authz.UsersManage)

	secureGroup.GET("/users", userCtrl.GetUsers, view)
	secureGroup.GET("/users/search", userCtrl.SearchUsers, view)
	secureGroup.GET("/users/:id", userCtrl.FindUser, view)
	secureGroup.POST("/users", userCtrl.CreateUser, manage)
	secureGroup.PUT("/users/:id", userCtrl.UpdateUser, manage)
	secureGroup.DELETE("/users/:id", userCtrl.DeleteUser, manage)
}
