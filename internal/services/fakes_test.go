package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/repositories"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

var fixedNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

// memRepo - общее хранилище фейковых репозиториев.
type memRepo[T any] struct {
	mu        sync.Mutex
	items     []T
	listCalls int
	id        func(T) uuid.UUID
	setID     func(*T, uuid.UUID)
}

func (r *memRepo[T]) list() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	return append([]T(nil), r.items...)
}

func (r *memRepo[T]) find(id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.id(r.items[i]) == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memRepo[T]) create(item T) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setID(&item, uuid.New())
	r.items = append(r.items, item)
	return &item
}

func (r *memRepo[T]) update(id uuid.UUID, item T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.id(r.items[i]) == id {
			r.setID(&item, id)
			r.items[i] = item
			return &item, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memRepo[T]) delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.id(r.items[i]) == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memRepo[T]) where(match func(T) bool) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

type fakeEquipmentRepo struct{ memRepo[dto.EquipmentDTO] }

func newFakeEquipmentRepo(items ...dto.EquipmentDTO) *fakeEquipmentRepo {
	return &fakeEquipmentRepo{memRepo[dto.EquipmentDTO]{
		items: items,
		id:    func(e dto.EquipmentDTO) uuid.UUID { return e.ID },
		setID: func(e *dto.EquipmentDTO, id uuid.UUID) { e.ID = id },
	}}
}

func (r *fakeEquipmentRepo) List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error) {
	return r.list(), nil
}
func (r *fakeEquipmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*dto.EquipmentDTO, error) {
	return r.find(id)
}
func (r *fakeEquipmentRepo) Create(ctx context.Context, rec dto.EquipmentDTO) (*dto.EquipmentDTO, error) {
	return r.create(rec), nil
}
func (r *fakeEquipmentRepo) Update(ctx context.Context, id uuid.UUID, rec dto.EquipmentDTO, expected null.Time) (*dto.EquipmentDTO, error) {
	if expected.Valid {
		current, err := r.find(id)
		if err != nil {
			return nil, err
		}
		if !current.UpdatedAt.Equal(expected.Time) {
			return nil, apperrors.ErrConflict
		}
	}
	return r.update(id, rec)
}
func (r *fakeEquipmentRepo) Delete(ctx context.Context, id uuid.UUID) error { return r.delete(id) }
func (r *fakeEquipmentRepo) Search(ctx context.Context, term string) ([]dto.EquipmentDTO, error) {
	return r.where(func(e dto.EquipmentDTO) bool {
		return strings.Contains(strings.ToLower(e.Nombre), strings.ToLower(term))
	}), nil
}
func (r *fakeEquipmentRepo) ListByState(ctx context.Context, state string) ([]dto.EquipmentDTO, error) {
	return r.where(func(e dto.EquipmentDTO) bool { return e.Estado == state }), nil
}
func (r *fakeEquipmentRepo) ListByDepartment(ctx context.Context, department string) ([]dto.EquipmentDTO, error) {
	return r.where(func(e dto.EquipmentDTO) bool { return e.Departamento.String == department }), nil
}

type fakeMaintenanceRepo struct{ memRepo[dto.MaintenanceDTO] }

func newFakeMaintenanceRepo(items ...dto.MaintenanceDTO) *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{memRepo[dto.MaintenanceDTO]{
		items: items,
		id:    func(m dto.MaintenanceDTO) uuid.UUID { return m.ID },
		setID: func(m *dto.MaintenanceDTO, id uuid.UUID) { m.ID = id },
	}}
}

func (r *fakeMaintenanceRepo) List(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, error) {
	return r.list(), nil
}
func (r *fakeMaintenanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*dto.MaintenanceDTO, error) {
	return r.find(id)
}
func (r *fakeMaintenanceRepo) Create(ctx context.Context, rec dto.MaintenanceDTO) (*dto.MaintenanceDTO, error) {
	return r.create(rec), nil
}
func (r *fakeMaintenanceRepo) Update(ctx context.Context, id uuid.UUID, rec dto.MaintenanceDTO, expected null.Time) (*dto.MaintenanceDTO, error) {
	return r.update(id, rec)
}
func (r *fakeMaintenanceRepo) Delete(ctx context.Context, id uuid.UUID) error { return r.delete(id) }
func (r *fakeMaintenanceRepo) Search(ctx context.Context, term, state string) ([]dto.MaintenanceDTO, error) {
	return r.where(func(m dto.MaintenanceDTO) bool { return state == "" || m.Estado == state }), nil
}
func (r *fakeMaintenanceRepo) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.MaintenanceDTO, error) {
	return r.where(func(m dto.MaintenanceDTO) bool { return m.EquipoID == equipmentID }), nil
}
func (r *fakeMaintenanceRepo) ListCompletedBetween(ctx context.Context, start, end types.Date) ([]dto.MaintenanceDTO, error) {
	return r.where(func(m dto.MaintenanceDTO) bool {
		return m.FechaCompletado.Valid && m.FechaCompletado.Date.Between(start, end)
	}), nil
}

type fakeEventRepo struct{ memRepo[dto.EventDTO] }

func newFakeEventRepo(items ...dto.EventDTO) *fakeEventRepo {
	return &fakeEventRepo{memRepo[dto.EventDTO]{
		items: items,
		id:    func(e dto.EventDTO) uuid.UUID { return e.ID },
		setID: func(e *dto.EventDTO, id uuid.UUID) { e.ID = id },
	}}
}

func (r *fakeEventRepo) List(ctx context.Context, filter types.Filter) ([]dto.EventDTO, error) {
	return r.list(), nil
}
func (r *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*dto.EventDTO, error) {
	return r.find(id)
}
func (r *fakeEventRepo) Create(ctx context.Context, rec dto.EventDTO) (*dto.EventDTO, error) {
	return r.create(rec), nil
}
func (r *fakeEventRepo) Update(ctx context.Context, id uuid.UUID, rec dto.EventDTO, expected null.Time) (*dto.EventDTO, error) {
	return r.update(id, rec)
}
func (r *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error { return r.delete(id) }
func (r *fakeEventRepo) Search(ctx context.Context, term string) ([]dto.EventDTO, error) {
	return r.where(func(e dto.EventDTO) bool { return strings.Contains(e.Titulo, term) }), nil
}
func (r *fakeEventRepo) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]dto.EventDTO, error) {
	return r.where(func(e dto.EventDTO) bool { return e.EquipoID == equipmentID }), nil
}

type fakeUserRepo struct {
	memRepo[dto.UserDTO]
	lastAccess map[uuid.UUID]time.Time
}

func newFakeUserRepo(items ...dto.UserDTO) *fakeUserRepo {
	return &fakeUserRepo{
		memRepo: memRepo[dto.UserDTO]{
			items: items,
			id:    func(u dto.UserDTO) uuid.UUID { return u.ID },
			setID: func(u *dto.UserDTO, id uuid.UUID) { u.ID = id },
		},
		lastAccess: make(map[uuid.UUID]time.Time),
	}
}

func (r *fakeUserRepo) List(ctx context.Context, filter types.Filter) ([]dto.UserDTO, error) {
	return r.list(), nil
}
func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error) {
	u, err := r.find(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}
func (r *fakeUserRepo) Create(ctx context.Context, rec dto.UserDTO) (*dto.UserDTO, error) {
	return r.create(rec), nil
}
func (r *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, rec dto.UserDTO, expected null.Time) (*dto.UserDTO, error) {
	return r.update(id, rec)
}
func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return r.delete(id) }
func (r *fakeUserRepo) Search(ctx context.Context, term string) ([]dto.UserDTO, error) {
	return r.where(func(u dto.UserDTO) bool { return strings.Contains(u.Email, term) }), nil
}
func (r *fakeUserRepo) FindActiveByEmail(ctx context.Context, email string) (*dto.UserDTO, error) {
	found := r.where(func(u dto.UserDTO) bool { return u.Email == email && u.Estado == "Activo" })
	if len(found) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return &found[0], nil
}
func (r *fakeUserRepo) UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastAccess[id] = at
	return nil
}
func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Password = passwordHash
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type fixture struct {
	equipment   *fakeEquipmentRepo
	maintenance *fakeMaintenanceRepo
	events      *fakeEventRepo
	users       *fakeUserRepo
	cache       repositories.CacheRepositoryInterface
	store       *repositories.Store
}

func newFixture() *fixture {
	f := &fixture{
		equipment:   newFakeEquipmentRepo(),
		maintenance: newFakeMaintenanceRepo(),
		events:      newFakeEventRepo(),
		users:       newFakeUserRepo(),
		cache:       repositories.NewMemoryCacheRepository(),
	}
	f.store = &repositories.Store{
		Equipment:   f.equipment,
		Maintenance: f.maintenance,
		Events:      f.events,
		Users:       f.users,
	}
	return f
}
