package controllers

import (
	"net/http"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/services"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const refreshCookieName = "refreshToken"

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.ErrBadRequest)
	}

	if err := c.Validate(&payload); err != nil {
		ctrl.logger.Warn("Login: ошибка валидации данных", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: ошибка авторизации", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return ctrl.respondWithTokens(c, res, "Авторизация прошла успешно")
}

// RefreshToken принимает refresh-токен из тела запроса или из cookie.
func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	_ = c.Bind(&payload)

	token := payload.RefreshToken
	if token == "" {
		cookie, err := c.Cookie(refreshCookieName)
		if err != nil || cookie.Value == "" {
			return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
		}
		token = cookie.Value
	}

	res, err := ctrl.authService.RefreshTokens(c.Request().Context(), token)
	if err != nil {
		ctrl.logger.Warn("RefreshToken: не удалось обновить токены", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return ctrl.respondWithTokens(c, res, "Токены успешно обновлены")
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	sess, err := utils.GetSessionFromContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.authService.Logout(c.Request().Context(), sess.ID); err != nil {
		ctrl.logger.Error("Logout: не удалось завершить сессию", zap.String("sessionID", sess.ID), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return utils.SuccessResponse(c, struct{}{}, "Вы успешно вышли из системы.", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	user, err := ctrl.authService.Me(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("Me: ошибка получения профиля", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, user, "Профиль пользователя успешно получен", http.StatusOK)
}

func (ctrl *AuthController) respondWithTokens(c echo.Context, res *dto.AuthResponseDTO, message string) error {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    res.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return utils.SuccessResponse(c, res, message, http.StatusOK)
}
