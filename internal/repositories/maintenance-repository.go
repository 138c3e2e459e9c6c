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

var maintenanceListFields = map[string]string{
	"estado":          "estado",
	"tipo":            "tipo",
	"equipoId":        "equipo_id",
	"fechaProgramada": "fecha_programada",
	"fechaCompletado": "fecha_completado",
	"createdAt":       "created_at",
}

type MaintenanceRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.MaintenanceDTO, error)
	Create(ctx context.Context, rec dto.MaintenanceDTO) (*dto.MaintenanceDTO, error)
	Update(ctx context.Context, id uuid.UUID, rec dto.MaintenanceDTO, expected null.Time) (*dto.MaintenanceDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Search ищет по технику и описанию; пустое state - без фильтра по состоянию.
	Search(ctx context.Context, term, state string) ([]dto.MaintenanceDTO, error)
	ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.MaintenanceDTO, error)
	// ListCompletedBetween - работы с датой завершения в [start, end].
	ListCompletedBetween(ctx context.Context, start, end types.Date) ([]dto.MaintenanceDTO, error)
}

type MaintenanceRepository struct {
	crud      crud[entities.Maintenance, dto.MaintenanceDTO]
	table     Table[entities.Maintenance]
	equipment Table[entities.Equipment]
	logger    *zap.Logger
}

func NewMaintenanceRepository(table Table[entities.Maintenance], equipment Table[entities.Equipment], logger *zap.Logger) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{
		crud:      newCrud(table, entities.Maintenance.ToDTO),
		table:     table,
		equipment: equipment,
		logger:    logger,
	}
}

func (r *MaintenanceRepository) selectJoined(ctx context.Context, q Query) ([]dto.MaintenanceDTO, error) {
	rows, err := selectWithEquipment[entities.Maintenance, *entities.Maintenance](ctx, r.table, r.equipment, q, r.logger)
	if err != nil {
		return nil, err
	}
	return mapRows(rows, entities.Maintenance.ToDTO), nil
}

func (r *MaintenanceRepository) List(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, error) {
	q := QueryFromFilter(filter, maintenanceListFields, entities.MaintenanceSearchColumns)
	if q.OrderBy == "" {
		q.OrderBy = "fecha_programada"
	}
	return r.selectJoined(ctx, q)
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*dto.MaintenanceDTO, error) {
	rows, err := r.selectJoined(ctx, ByID(id.String()))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rows[0], nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, rec dto.MaintenanceDTO) (*dto.MaintenanceDTO, error) {
	created, err := r.crud.create(ctx, entities.MaintenanceFromDTO(rec).Values())
	if err != nil {
		return nil, err
	}
	return r.withEquipment(ctx, created)
}

func (r *MaintenanceRepository) Update(ctx context.Context, id uuid.UUID, rec dto.MaintenanceDTO, expected null.Time) (*dto.MaintenanceDTO, error) {
	updated, err := r.crud.update(ctx, id, entities.MaintenanceFromDTO(rec).Values(), expected)
	if err != nil {
		return nil, err
	}
	return r.withEquipment(ctx, updated)
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.crud.delete(ctx, id)
}

func (r *MaintenanceRepository) Search(ctx context.Context, term, state string) ([]dto.MaintenanceDTO, error) {
	q := Query{OrderBy: "fecha_programada"}
	if term != "" {
		q.Search = &Search{Term: term, Columns: entities.MaintenanceSearchColumns}
	}
	if state != "" {
		q = q.Where("estado", OpEq, state)
	}
	return r.selectJoined(ctx, q)
}

func (r *MaintenanceRepository) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.MaintenanceDTO, error) {
	q := Query{OrderBy: "fecha_programada", Desc: true}.Where("equipo_id", OpEq, equipmentID.String())
	return r.selectJoined(ctx, q)
}

func (r *MaintenanceRepository) ListCompletedBetween(ctx context.Context, start, end types.Date) ([]dto.MaintenanceDTO, error) {
	q := Query{OrderBy: "fecha_completado", Desc: true}.
		Where("fecha_completado", OpGte, start).
		Where("fecha_completado", OpLte, end)
	return r.selectJoined(ctx, q)
}

// withEquipment дополняет одну запись карточкой аппарата после вставки или обновления.
func (r *MaintenanceRepository) withEquipment(ctx context.Context, d *dto.MaintenanceDTO) (*dto.MaintenanceDTO, error) {
	rows := []entities.Maintenance{entities.MaintenanceFromDTO(*d)}
	if err := attachEquipment[entities.Maintenance, *entities.Maintenance](ctx, rows, r.equipment); err != nil {
		r.logger.Warn("Не удалось подтянуть карточку аппарата", zap.String("equipo_id", d.EquipoID.String()), zap.Error(err))
		return d, nil
	}
	out := rows[0].ToDTO()
	return &out, nil
}
