package services

import (
	"context"
	"strings"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	"medical-inventory/pkg/constants"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceServiceInterface interface {
	GetMaintenances(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, error)
	FindMaintenance(ctx context.Context, id uuid.UUID) (*dto.MaintenanceDTO, error)
	CreateMaintenance(ctx context.Context, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, error)
	UpdateMaintenance(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, error)
	DeleteMaintenance(ctx context.Context, id uuid.UUID) error
	SearchMaintenance(ctx context.Context, term, state string) ([]dto.MaintenanceDTO, error)
	GetByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.MaintenanceDTO, error)
}

type MaintenanceService struct {
	*BaseService
	repo   repositories.MaintenanceRepositoryInterface
	logger *zap.Logger
}

func NewMaintenanceService(base *BaseService, store *repositories.Store, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{BaseService: base, repo: store.Maintenance, logger: logger}
}

func (s *MaintenanceService) GetMaintenances(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, error) {
	return s.repo.List(ctx, filter)
}

func (s *MaintenanceService) FindMaintenance(ctx context.Context, id uuid.UUID) (*dto.MaintenanceDTO, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MaintenanceService) CreateMaintenance(ctx context.Context, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, error) {
	s.prepare(&payload)
	created, err := s.repo.Create(ctx, payload.ToRecord())
	if err != nil {
		s.logger.Error("Ошибка при создании обслуживания", zap.String("equipo_id", payload.EquipoID.String()), zap.Error(err))
		return nil, err
	}
	s.Publish(ctx, events.EntityMaintenance, events.ActionCreated, created.ID)
	return created, nil
}

func (s *MaintenanceService) UpdateMaintenance(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, error) {
	s.prepare(&payload.CreateMaintenanceDTO)
	updated, err := s.repo.Update(ctx, id, payload.ToRecord(), payload.ExpectedUpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Publish(ctx, events.EntityMaintenance, events.ActionUpdated, id)
	return updated, nil
}

func (s *MaintenanceService) DeleteMaintenance(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Publish(ctx, events.EntityMaintenance, events.ActionDeleted, id)
	return nil
}

func (s *MaintenanceService) SearchMaintenance(ctx context.Context, term, state string) ([]dto.MaintenanceDTO, error) {
	if state != "" && !constants.Contains(constants.MaintenanceStates, state) {
		return nil, apperrors.NewInvalidInputError("неизвестное состояние обслуживания: %s", state)
	}
	return s.repo.Search(ctx, strings.TrimSpace(term), state)
}

func (s *MaintenanceService) GetByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.MaintenanceDTO, error) {
	return s.repo.ListByEquipment(ctx, equipmentID)
}

// prepare: выполненная работа без даты завершения закрывается сегодняшним днём.
func (s *MaintenanceService) prepare(payload *dto.CreateMaintenanceDTO) {
	payload.Normalize()
	payload.CompleteOn(types.DateOf(s.Now(), s.loc))
}
