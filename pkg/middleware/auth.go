package middleware

import (
	"context"
	"strings"

	"medical-inventory/internal/authz"
	"medical-inventory/internal/session"
	"medical-inventory/pkg/contextkeys"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/service"
	"medical-inventory/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	sessions   *session.Store
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, sessions *session.Store, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		sessions:   sessions,
		logger:     logger,
	}
}

// Auth - это основная функция middleware.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// 1. Извлекаем токен из заголовка
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		// 2. Проверяем формат заголовка "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		// 3. Валидируем токен
		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// 4. Убеждаемся, что это не refresh токен
		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		// 5. Сессия должна быть жива: выход или истечение срока отзывают токен
		ctx := c.Request().Context()
		sess, err := m.sessions.Get(ctx, claims.SessionID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Сессия недоступна", zap.String("sessionID", claims.SessionID), zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		c.SetRequest(c.Request().WithContext(context.WithValue(ctx, contextkeys.SessionKey, sess)))

		m.logger.Debug("AuthMiddleware: Пользователь аутентифицирован",
			zap.String("userID", sess.UserID.String()),
			zap.String("role", sess.Role),
		)
		return next(c)
	}
}

// RequirePermission пропускает запрос, только если роль сессии имеет право permission.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := utils.GetSessionFromContext(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !authz.Can(sess.Role, permission) {
				m.logger.Warn("Доступ запрещён",
					zap.String("userID", sess.UserID.String()),
					zap.String("role", sess.Role),
					zap.String("permission", permission),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
