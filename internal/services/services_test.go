package services

import (
	"context"
	"testing"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/events"
	"medical-inventory/internal/session"
	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/contextkeys"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/eventbus"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBase(f *fixture, bus *eventbus.Bus) *BaseService {
	base := NewBaseService(f.cache, bus, time.UTC, zap.NewNop())
	base.SetClock(func() time.Time { return fixedNow })
	return base
}

func withSession(ctx context.Context, userID uuid.UUID, email string) context.Context {
	return context.WithValue(ctx, contextkeys.SessionKey, &session.Session{
		ID: "s-1", UserID: userID, Email: email, Role: "Administrador",
	})
}

func TestCreateEquipmentStampsAuthorAndPublishes(t *testing.T) {
	f := newFixture()
	bus := eventbus.New(zap.NewNop())
	got := make(chan events.EntityChangedEvent, 1)
	bus.Subscribe(events.EntityChangedName, func(ctx context.Context, e eventbus.Event) error {
		got <- e.(events.EntityChangedEvent)
		return nil
	})
	svc := NewEquipmentService(newBase(f, bus), f.store, zap.NewNop())

	actor := uuid.New()
	ctx := withSession(context.Background(), actor, "admin@hospital.cl")
	created, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		Nombre: "Monitor", Marca: null.StringFrom("  "),
	})
	require.NoError(t, err)

	assert.Equal(t, constants.EquipmentActive, created.Estado)
	assert.False(t, created.Marca.Valid)
	assert.Equal(t, null.StringFrom("admin@hospital.cl"), created.CreatedBy)

	select {
	case e := <-got:
		assert.Equal(t, events.EntityEquipment, e.Entity)
		assert.Equal(t, events.ActionCreated, e.Action)
		assert.Equal(t, created.ID, e.ID)
		assert.Equal(t, actor, e.Actor)
	case <-time.After(time.Second):
		t.Fatal("событие не опубликовано")
	}
}

func TestEquipmentDetailCollectsHistory(t *testing.T) {
	f := newFixture()
	eq := dto.EquipmentDTO{ID: uuid.New(), Nombre: "Ventilador", Estado: constants.EquipmentActive}
	f.equipment.items = []dto.EquipmentDTO{eq}
	f.events.items = []dto.EventDTO{{ID: uuid.New(), EquipoID: eq.ID, Titulo: "Falla"}, {ID: uuid.New(), EquipoID: uuid.New()}}
	svc := NewEquipmentService(newBase(f, nil), f.store, zap.NewNop())

	detail, err := svc.GetEquipmentDetail(context.Background(), eq.ID)
	require.NoError(t, err)
	assert.Equal(t, eq.ID, detail.Equipo.ID)
	assert.Len(t, detail.Eventos, 1)
	assert.NotNil(t, detail.Mantenimientos)
	assert.Empty(t, detail.Mantenimientos)

	_, err = svc.GetEquipmentDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentByStateRejectsUnknownState(t *testing.T) {
	f := newFixture()
	svc := NewEquipmentService(newBase(f, nil), f.store, zap.NewNop())

	_, err := svc.GetByState(context.Background(), "roto")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.GetByDepartment(context.Background(), " ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCompletedMaintenanceGetsTodayAsCompletionDate(t *testing.T) {
	f := newFixture()
	svc := NewMaintenanceService(newBase(f, nil), f.store, zap.NewNop())

	created, err := svc.CreateMaintenance(context.Background(), dto.CreateMaintenanceDTO{
		EquipoID:        uuid.New(),
		Tipo:            constants.MaintenancePreventive,
		FechaProgramada: types.MustParseDate("2025-03-10"),
		Estado:          constants.MaintenanceCompleted,
	})
	require.NoError(t, err)
	require.True(t, created.FechaCompletado.Valid)
	assert.Equal(t, "2025-03-15", created.FechaCompletado.Date.String())

	pending, err := svc.CreateMaintenance(context.Background(), dto.CreateMaintenanceDTO{
		EquipoID:        uuid.New(),
		Tipo:            constants.MaintenanceCorrective,
		FechaProgramada: types.MustParseDate("2025-03-20"),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.MaintenanceScheduled, pending.Estado)
	assert.False(t, pending.FechaCompletado.Valid)
}

func TestCreateEventDefaults(t *testing.T) {
	f := newFixture()
	svc := NewEventService(newBase(f, nil), f.store, zap.NewNop())

	created, err := svc.CreateEvent(context.Background(), dto.CreateEventDTO{
		EquipoID: uuid.New(), TipoEvento: "Falla", Titulo: "No enciende",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.PriorityMedium, created.Prioridad)
	assert.Equal(t, constants.EventRegistered, created.Estado)
	assert.True(t, created.FechaEvento.Equal(fixedNow))
}

func TestUserServiceHashesAndKeepsPassword(t *testing.T) {
	f := newFixture()
	svc := NewUserService(newBase(f, nil), f.store, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Email: "tec@hospital.cl", Password: "secreto1", Nombre: "Ana", Rol: "Técnico",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secreto1", created.Password)
	assert.Equal(t, constants.UserActive, created.Estado)
	hash := created.Password

	updated, err := svc.UpdateUser(ctx, created.ID, dto.UpdateUserDTO{
		Email: "tec@hospital.cl", Nombre: "Ana María", Rol: "Técnico", Estado: constants.UserActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Nombre)
	assert.Equal(t, hash, updated.Password)
}

func TestUserCannotDeleteSelf(t *testing.T) {
	f := newFixture()
	svc := NewUserService(newBase(f, nil), f.store, zap.NewNop())
	id := uuid.New()

	err := svc.DeleteUser(withSession(context.Background(), id, "a@b.cl"), id)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
