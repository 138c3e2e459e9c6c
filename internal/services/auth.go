package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/repositories"
	"medical-inventory/internal/session"
	"medical-inventory/pkg/config"
	"medical-inventory/pkg/constants"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/service"
	"medical-inventory/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	*BaseService
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	sessions  *session.Store
	jwt       service.JWTService
	logger    *zap.Logger
	cfg       config.AuthConfig
}

func NewAuthService(
	base *BaseService,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	sessions *session.Store,
	jwt service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) *AuthService {
	return &AuthService{
		BaseService: base,
		userRepo:    userRepo,
		cacheRepo:   cacheRepo,
		sessions:    sessions,
		jwt:         jwt,
		logger:      logger,
		cfg:         cfg,
	}
}

func attemptsKey(email string) string {
	return "login_attempts:" + strings.ToLower(email)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	email := strings.TrimSpace(payload.Email)
	logger := s.logger.With(zap.String("email", email))

	// 1. Проверка блокировки по количеству попыток
	if s.cfg.MaxLoginAttempts > 0 {
		attemptsStr, err := s.cacheRepo.Get(ctx, attemptsKey(email))
		if err == nil {
			if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
				logger.Warn("Вход заблокирован после неудачных попыток")
				return nil, apperrors.ErrAccountLocked
			}
		}
	}

	// 2. Поиск активного профиля
	user, err := s.userRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.registerFailure(ctx, email)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Проверка пароля
	if !s.verifyPassword(ctx, user, payload.Password, logger) {
		s.registerFailure(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, attemptsKey(email)); err != nil {
		logger.Warn("Не удалось сбросить счётчик попыток", zap.Error(err))
	}
	if err := s.userRepo.UpdateLastAccess(ctx, user.ID, s.Now()); err != nil {
		logger.Warn("Не удалось обновить время последнего входа", zap.Error(err))
	}

	resp, err := s.issue(ctx, *user)
	if err != nil {
		return nil, err
	}
	logger.Info("Пользователь вошёл в систему", zap.String("rol", user.Rol))
	return resp, nil
}

// verifyPassword сверяет пароль с bcrypt-хешем. Пароль в открытом виде принимается
// только при включённом AUTH_ALLOW_LEGACY_PLAINTEXT и сразу перехешируется.
func (s *AuthService) verifyPassword(ctx context.Context, user *dto.UserDTO, password string, logger *zap.Logger) bool {
	if utils.IsPasswordHash(user.Password) {
		return utils.ComparePasswords(user.Password, password) == nil
	}
	if !s.cfg.AllowLegacyPlaintext {
		logger.Warn("Профиль хранит пароль без хеширования, вход отклонён")
		return false
	}
	if user.Password == "" || !utils.ConstantTimeEquals(user.Password, password) {
		return false
	}

	logger.Warn("БЕЗОПАСНОСТЬ: вход по паролю в открытом виде, выполняется перехеширование")
	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Не удалось перехешировать пароль", zap.Error(err))
		return true
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		logger.Error("Не удалось сохранить новый хеш пароля", zap.Error(err))
		return true
	}
	user.Password = hash
	return true
}

func (s *AuthService) registerFailure(ctx context.Context, email string) {
	if s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	key := attemptsKey(email)
	n, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.String("email", email), zap.Error(err))
		return
	}
	if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
		s.logger.Warn("Не удалось задать срок блокировки", zap.String("email", email), zap.Error(err))
	}
	if int(n) >= s.cfg.MaxLoginAttempts {
		s.logger.Warn("Превышено число попыток входа", zap.String("email", email), zap.Int64("attempts", n))
	}
}

// RefreshTokens продлевает сессию и выдаёт новую пару токенов.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	sess, err := s.sessions.Refresh(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil || user.Estado != constants.UserActive {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, apperrors.ErrUnauthorized
	}
	return s.tokensFor(sess, *user)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.ErrUnauthorized
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Me - актуальный профиль пользователя текущей сессии.
func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	sess, err := utils.GetSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, sess.UserID)
}

func (s *AuthService) issue(ctx context.Context, user dto.UserDTO) (*dto.AuthResponseDTO, error) {
	sess, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.tokensFor(sess, user)
}

func (s *AuthService) tokensFor(sess *session.Session, user dto.UserDTO) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwt.GenerateTokens(sess.ID, user.ID.String(), user.Rol)
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токены: %w", err)
	}
	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    s.Now().Add(s.jwt.GetAccessTokenTTL()),
		User:         user,
	}, nil
}
