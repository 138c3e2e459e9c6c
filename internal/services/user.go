package services

import (
	"context"
	"strings"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"
	"medical-inventory/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, error)
	FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SearchUsers(ctx context.Context, term string) ([]dto.UserDTO, error)
}

type UserService struct {
	*BaseService
	userRepository repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewUserService(base *BaseService, store *repositories.Store, logger *zap.Logger) *UserService {
	return &UserService{BaseService: base, userRepository: store.Users, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, error) {
	return s.userRepository.List(ctx, filter)
}

func (s *UserService) FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error) {
	return s.userRepository.FindByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	payload.Normalize()
	payload.Email = strings.TrimSpace(payload.Email)

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}
	created, err := s.userRepository.Create(ctx, payload.ToRecord(hash))
	if err != nil {
		s.logger.Error("Ошибка при создании пользователя", zap.String("email", payload.Email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Пользователь создан", zap.String("id", created.ID.String()), zap.String("rol", created.Rol))
	s.Publish(ctx, events.EntityUser, events.ActionCreated, created.ID)
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	payload.Normalize()
	payload.Email = strings.TrimSpace(payload.Email)

	current, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var hash string
	if payload.Password != "" {
		if hash, err = utils.HashPassword(payload.Password); err != nil {
			return nil, err
		}
	}

	updated, err := s.userRepository.Update(ctx, id, payload.ApplyTo(*current, hash), payload.ExpectedUpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Publish(ctx, events.EntityUser, events.ActionUpdated, id)
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if sess, err := utils.GetSessionFromContext(ctx); err == nil && sess.UserID == id {
		return apperrors.NewInvalidInputError("нельзя удалить собственную учётную запись")
	}
	if err := s.userRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Пользователь удалён", zap.String("id", id.String()))
	s.Publish(ctx, events.EntityUser, events.ActionDeleted, id)
	return nil
}

func (s *UserService) SearchUsers(ctx context.Context, term string) ([]dto.UserDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.userRepository.List(ctx, types.Filter{})
	}
	return s.userRepository.Search(ctx, term)
}
