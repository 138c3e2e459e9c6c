package services

import (
	"context"
	"strings"
	"sync"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	"medical-inventory/pkg/constants"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error)
	FindEquipment(ctx context.Context, id uuid.UUID) (*dto.EquipmentDTO, error)
	GetEquipmentDetail(ctx context.Context, id uuid.UUID) (*dto.EquipmentDetailDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uuid.UUID) error
	SearchEquipment(ctx context.Context, term string) ([]dto.EquipmentDTO, error)
	GetByState(ctx context.Context, state string) ([]dto.EquipmentDTO, error)
	GetByDepartment(ctx context.Context, department string) ([]dto.EquipmentDTO, error)
}

type EquipmentService struct {
	*BaseService
	equipmentRepository   repositories.EquipmentRepositoryInterface
	maintenanceRepository repositories.MaintenanceRepositoryInterface
	eventRepository       repositories.EventRepositoryInterface
	logger                *zap.Logger
}

func NewEquipmentService(
	base *BaseService,
	store *repositories.Store,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		BaseService:           base,
		equipmentRepository:   store.Equipment,
		maintenanceRepository: store.Maintenance,
		eventRepository:       store.Events,
		logger:                logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error) {
	return s.equipmentRepository.List(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uuid.UUID) (*dto.EquipmentDTO, error) {
	return s.equipmentRepository.FindByID(ctx, id)
}

// GetEquipmentDetail - карточка вместе с историей событий и обслуживания.
func (s *EquipmentService) GetEquipmentDetail(ctx context.Context, id uuid.UUID) (*dto.EquipmentDetailDTO, error) {
	equipment, err := s.equipmentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		errs        []error
		history     []dto.EventDTO
		maintenance []dto.MaintenanceDTO
	)
	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	addTask(func() (err error) { history, err = s.eventRepository.ListByEquipment(ctx, id); return })
	addTask(func() (err error) { maintenance, err = s.maintenanceRepository.ListByEquipment(ctx, id); return })
	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Ошибка загрузки истории аппарата", zap.String("id", id.String()), zap.Error(errs[0]))
		return nil, errs[0]
	}
	return &dto.EquipmentDetailDTO{
		Equipo:         *equipment,
		Eventos:        nonNil(history),
		Mantenimientos: nonNil(maintenance),
	}, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	payload.Normalize()
	rec := payload.ToRecord()
	if email := actorEmail(ctx); email != "" {
		rec.CreatedBy = null.StringFrom(email)
	}

	created, err := s.equipmentRepository.Create(ctx, rec)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.String("nombre", payload.Nombre), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Оборудование создано", zap.String("id", created.ID.String()), zap.String("nombre", created.Nombre))
	s.Publish(ctx, events.EntityEquipment, events.ActionCreated, created.ID)
	return created, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	payload.Normalize()
	updated, err := s.equipmentRepository.Update(ctx, id, payload.ToRecord(), payload.ExpectedUpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Publish(ctx, events.EntityEquipment, events.ActionUpdated, id)
	return updated, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	if err := s.equipmentRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Оборудование удалено", zap.String("id", id.String()))
	s.Publish(ctx, events.EntityEquipment, events.ActionDeleted, id)
	return nil
}

func (s *EquipmentService) SearchEquipment(ctx context.Context, term string) ([]dto.EquipmentDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.equipmentRepository.List(ctx, types.Filter{})
	}
	return s.equipmentRepository.Search(ctx, term)
}

func (s *EquipmentService) GetByState(ctx context.Context, state string) ([]dto.EquipmentDTO, error) {
	if !constants.Contains(constants.EquipmentStates, state) {
		return nil, apperrors.NewInvalidInputError("неизвестное состояние оборудования: %s", state)
	}
	return s.equipmentRepository.ListByState(ctx, state)
}

func (s *EquipmentService) GetByDepartment(ctx context.Context, department string) ([]dto.EquipmentDTO, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, apperrors.NewInvalidInputError("не указано отделение")
	}
	return s.equipmentRepository.ListByDepartment(ctx, department)
}

// nonNil - пустой список вместо null в JSON-ответе.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
