package routes

import (
	"medical-inventory/internal/controllers"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.RefreshToken)
		authGroup.POST("/logout", authCtrl.Logout, authMW.Auth)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
