package services

import (
	"context"
	"strings"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	"medical-inventory/pkg/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventServiceInterface interface {
	GetEvents(ctx context.Context, filter types.Filter) ([]dto.EventDTO, error)
	FindEvent(ctx context.Context, id uuid.UUID) (*dto.EventDTO, error)
	CreateEvent(ctx context.Context, payload dto.CreateEventDTO) (*dto.EventDTO, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, payload dto.UpdateEventDTO) (*dto.EventDTO, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	SearchEvents(ctx context.Context, term string) ([]dto.EventDTO, error)
	GetByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.EventDTO, error)
}

type EventService struct {
	*BaseService
	repo   repositories.EventRepositoryInterface
	logger *zap.Logger
}

func NewEventService(base *BaseService, store *repositories.Store, logger *zap.Logger) *EventService {
	return &EventService{BaseService: base, repo: store.Events, logger: logger}
}

func (s *EventService) GetEvents(ctx context.Context, filter types.Filter) ([]dto.EventDTO, error) {
	return s.repo.List(ctx, filter)
}

func (s *EventService) FindEvent(ctx context.Context, id uuid.UUID) (*dto.EventDTO, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventService) CreateEvent(ctx context.Context, payload dto.CreateEventDTO) (*dto.EventDTO, error) {
	payload.Normalize(s.Now())
	created, err := s.repo.Create(ctx, payload.ToRecord())
	if err != nil {
		s.logger.Error("Ошибка при регистрации события", zap.String("equipo_id", payload.EquipoID.String()), zap.Error(err))
		return nil, err
	}
	s.Publish(ctx, events.EntityEvent, events.ActionCreated, created.ID)
	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, payload dto.UpdateEventDTO) (*dto.EventDTO, error) {
	payload.Normalize(s.Now())
	updated, err := s.repo.Update(ctx, id, payload.ToRecord(), payload.ExpectedUpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Publish(ctx, events.EntityEvent, events.ActionUpdated, id)
	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Publish(ctx, events.EntityEvent, events.ActionDeleted, id)
	return nil
}

func (s *EventService) SearchEvents(ctx context.Context, term string) ([]dto.EventDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx, types.Filter{})
	}
	return s.repo.Search(ctx, term)
}

func (s *EventService) GetByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.EventDTO, error) {
	return s.repo.ListByEquipment(ctx, equipmentID)
}
