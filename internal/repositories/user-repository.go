package repositories

import (
	"context"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/entities"
	"medical-inventory/pkg/constants"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var userListFields = map[string]string{
	"rol":          "rol",
	"estado":       "estado",
	"departamento": "departamento",
	"nombre":       "nombre",
	"createdAt":    "created_at",
}

type UserRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]dto.UserDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error)
	Create(ctx context.Context, rec dto.UserDTO) (*dto.UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, rec dto.UserDTO, expected null.Time) (*dto.UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string) ([]dto.UserDTO, error)
	// FindActiveByEmail - точное совпадение email среди активных профилей.
	FindActiveByEmail(ctx context.Context, email string) (*dto.UserDTO, error)
	UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type UserRepository struct {
	crud   crud[entities.User, dto.UserDTO]
	table  Table[entities.User]
	logger *zap.Logger
}

func NewUserRepository(table Table[entities.User], logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{
		crud:   newCrud(table, entities.User.ToDTO),
		table:  table,
		logger: logger,
	}
}

func (r *UserRepository) List(ctx context.Context, filter types.Filter) ([]dto.UserDTO, error) {
	q := QueryFromFilter(filter, userListFields, entities.UserSearchColumns)
	if q.OrderBy == "" {
		q.OrderBy, q.Desc = "created_at", true
	}
	return r.crud.list(ctx, q)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error) {
	row, err := r.crud.findOne(ctx, id)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	d := row.ToDTO()
	return &d, nil
}

func (r *UserRepository) Create(ctx context.Context, rec dto.UserDTO) (*dto.UserDTO, error) {
	return r.crud.create(ctx, entities.UserFromDTO(rec).Values())
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, rec dto.UserDTO, expected null.Time) (*dto.UserDTO, error) {
	return r.crud.update(ctx, id, entities.UserFromDTO(rec).Values(), expected)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.crud.delete(ctx, id)
}

func (r *UserRepository) Search(ctx context.Context, term string) ([]dto.UserDTO, error) {
	q := Query{
		Search:  &Search{Term: term, Columns: entities.UserSearchColumns},
		OrderBy: "nombre",
	}
	return r.crud.list(ctx, q)
}

func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*dto.UserDTO, error) {
	q := Query{Limit: 1}.
		Where("email", OpEq, email).
		Where("estado", OpEq, constants.UserActive)
	rows, err := r.table.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	d := rows[0].ToDTO()
	return &d, nil
}

func (r *UserRepository) UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	rows, err := r.table.Update(ctx, ByID(id.String()), map[string]interface{}{"ultimo_acceso": at.UTC()})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	values := map[string]interface{}{"password": passwordHash, "updated_at": time.Now().UTC()}
	rows, err := r.table.Update(ctx, ByID(id.String()), values)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
