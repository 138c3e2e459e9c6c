package repositories

import (
	"context"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/entities"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Поля, по которым клиент может фильтровать и сортировать список.
var equipmentListFields = map[string]string{
	"estado":       "estado",
	"categoria":    "categoria",
	"departamento": "departamento",
	"edificio":     "edificio",
	"nombre":       "nombre",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.EquipmentDTO, error)
	Create(ctx context.Context, rec dto.EquipmentDTO) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uuid.UUID, rec dto.EquipmentDTO, expected null.Time) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string) ([]dto.EquipmentDTO, error)
	ListByState(ctx context.Context, state string) ([]dto.EquipmentDTO, error)
	ListByDepartment(ctx context.Context, department string) ([]dto.EquipmentDTO, error)
}

type EquipmentRepository struct {
	crud   crud[entities.Equipment, dto.EquipmentDTO]
	logger *zap.Logger
}

func NewEquipmentRepository(table Table[entities.Equipment], logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		crud:   newCrud(table, entities.Equipment.ToDTO),
		logger: logger,
	}
}

func (r *EquipmentRepository) List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error) {
	q := QueryFromFilter(filter, equipmentListFields, entities.EquipmentSearchColumns)
	if q.OrderBy == "" {
		q.OrderBy, q.Desc = "created_at", true
	}
	return r.crud.list(ctx, q)
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*dto.EquipmentDTO, error) {
	row, err := r.crud.findOne(ctx, id)
	if err != nil {
		return nil, err
	}
	d := row.ToDTO()
	return &d, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, rec dto.EquipmentDTO) (*dto.EquipmentDTO, error) {
	return r.crud.create(ctx, entities.EquipmentFromDTO(rec).Values())
}

func (r *EquipmentRepository) Update(ctx context.Context, id uuid.UUID, rec dto.EquipmentDTO, expected null.Time) (*dto.EquipmentDTO, error) {
	values := entities.EquipmentFromDTO(rec).Values()
	// автор записи не меняется при редактировании
	delete(values, "created_by")
	return r.crud.update(ctx, id, values, expected)
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.crud.delete(ctx, id)
}

func (r *EquipmentRepository) Search(ctx context.Context, term string) ([]dto.EquipmentDTO, error) {
	q := Query{
		Search:  &Search{Term: term, Columns: entities.EquipmentSearchColumns},
		OrderBy: "created_at",
		Desc:    true,
	}
	return r.crud.list(ctx, q)
}

func (r *EquipmentRepository) ListByState(ctx context.Context, state string) ([]dto.EquipmentDTO, error) {
	q := Query{OrderBy: "created_at", Desc: true}.Where("estado", OpEq, state)
	return r.crud.list(ctx, q)
}

func (r *EquipmentRepository) ListByDepartment(ctx context.Context, department string) ([]dto.EquipmentDTO, error) {
	q := Query{OrderBy: "created_at", Desc: true}.Where("departamento", OpEq, department)
	return r.crud.list(ctx, q)
}
