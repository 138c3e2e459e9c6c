package repositories

import (
	"context"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/entities"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var eventListFields = map[string]string{
	"estado":      "estado",
	"prioridad":   "prioridad",
	"tipoEvento":  "tipo_evento",
	"equipoId":    "equipo_id",
	"fechaEvento": "fecha_evento",
}

type EventRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]dto.EventDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.EventDTO, error)
	Create(ctx context.Context, rec dto.EventDTO) (*dto.EventDTO, error)
	Update(ctx context.Context, id uuid.UUID, rec dto.EventDTO, expected null.Time) (*dto.EventDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string) ([]dto.EventDTO, error)
	// ListByEquipment - история аппарата, новые события первыми.
	ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.EventDTO, error)
}

type EventRepository struct {
	crud      crud[entities.Event, dto.EventDTO]
	table     Table[entities.Event]
	equipment Table[entities.Equipment]
	logger    *zap.Logger
}

func NewEventRepository(table Table[entities.Event], equipment Table[entities.Equipment], logger *zap.Logger) EventRepositoryInterface {
	return &EventRepository{
		crud:      newCrud(table, entities.Event.ToDTO),
		table:     table,
		equipment: equipment,
		logger:    logger,
	}
}

func (r *EventRepository) selectJoined(ctx context.Context, q Query) ([]dto.EventDTO, error) {
	rows, err := selectWithEquipment[entities.Event, *entities.Event](ctx, r.table, r.equipment, q, r.logger)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, entities.Event.ToDTO), nil
}

func (r *EventRepository) List(ctx context.Context, filter types.Filter) ([]dto.EventDTO, error) {
	q := QueryFromFilter(filter, eventListFields, entities.EventSearchColumns)
	if q.OrderBy == "" {
		q.OrderBy, q.Desc = "fecha_evento", true
	}
	return r.selectJoined(ctx, q)
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (*dto.EventDTO, error) {
	rows, err := r.selectJoined(ctx, ByID(id.String()))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rows[0], nil
}

func (r *EventRepository) Create(ctx context.Context, rec dto.EventDTO) (*dto.EventDTO, error) {
	created, err := r.crud.create(ctx, entities.EventFromDTO(rec).Values())
	if err != nil {
		return nil, err
	}
	return r.withEquipment(ctx, created)
}

func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, rec dto.EventDTO, expected null.Time) (*dto.EventDTO, error) {
	updated, err := r.crud.update(ctx, id, entities.EventFromDTO(rec).Values(), expected)
	if err != nil {
		return nil, err
	}
	return r.withEquipment(ctx, updated)
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.crud.delete(ctx, id)
}

func (r *EventRepository) Search(ctx context.Context, term string) ([]dto.EventDTO, error) {
	q := Query{
		Search:  &Search{Term: term, Columns: entities.EventSearchColumns},
		OrderBy: "fecha_evento",
		Desc:    true,
	}
	return r.selectJoined(ctx, q)
}

func (r *EventRepository) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.EventDTO, error) {
	q := Query{OrderBy: "fecha_evento", Desc: true}.Where("equipo_id", OpEq, equipmentID.String())
	return r.selectJoined(ctx, q)
}

func (r *EventRepository) withEquipment(ctx context.Context, d *dto.EventDTO) (*dto.EventDTO, error) {
	rows := []entities.Event{entities.EventFromDTO(*d)}
	if err := attachEquipment[entities.Event, *entities.Event](ctx, rows, r.equipment); err != nil {
		r.logger.Warn("Не удалось подтянуть карточку аппарата", zap.String("equipo_id", d.EquipoID.String()), zap.Error(err))
		return d, nil
	}
	out := rows[0].ToDTO()
	return &out, nil
}
