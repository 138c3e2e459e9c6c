package services

import (
	"context"
	"testing"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/config"
	"medical-inventory/pkg/constants"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportService(t *testing.T, f *fixture) *ReportService {
	t.Helper()
	catalogue, err := config.LoadCatalogue("")
	require.NoError(t, err)
	cfg := config.ReportsConfig{Location: time.UTC, StatisticsCacheTTL: time.Minute}
	return NewReportService(newBase(f, nil), f.store, catalogue, cfg, zap.NewNop())
}

func seedFleet(f *fixture) uuid.UUID {
	uci := uuid.New()
	f.equipment.items = []dto.EquipmentDTO{
		{ID: uci, Nombre: "Monitor", Estado: constants.EquipmentActive, Departamento: null.StringFrom("UCI")},
		{ID: uuid.New(), Nombre: "Bomba", Estado: constants.EquipmentActive},
		{ID: uuid.New(), Nombre: "Rayos X", Estado: constants.EquipmentOutOfOrder},
	}
	f.maintenance.items = []dto.MaintenanceDTO{
		{
			ID: uuid.New(), EquipoID: uci, Tipo: constants.MaintenancePreventive, Estado: constants.MaintenanceCompleted,
			FechaProgramada: types.MustParseDate("2025-03-01"),
			FechaCompletado: types.NullDateFrom(types.MustParseDate("2025-03-02")),
			Costo:           null.Float64From(250),
		},
		{
			ID: uuid.New(), EquipoID: uci, Tipo: constants.MaintenanceCorrective, Estado: constants.MaintenanceScheduled,
			FechaProgramada: types.MustParseDate("2025-03-15"),
		},
	}
	f.events.items = []dto.EventDTO{
		{ID: uuid.New(), EquipoID: uci, Titulo: "Falla", Estado: constants.EventRegistered, FechaEvento: fixedNow.AddDate(0, 0, -2), CostoReparacion: null.Float64From(100)},
	}
	return uci
}

func TestStatisticsAreCachedUntilInvalidated(t *testing.T) {
	f := newFixture()
	seedFleet(f)
	svc := newReportService(t, f)
	ctx := context.Background()

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.EquiposActivos)
	assert.Equal(t, 1, stats.EquiposFueraServicio)
	assert.Equal(t, 1, stats.ProximosMantenimientos)

	f.equipment.items = append(f.equipment.items, dto.EquipmentDTO{ID: uuid.New(), Estado: constants.EquipmentActive})
	again, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Total)
	assert.Equal(t, 1, f.equipment.listCalls)

	_, err = f.cache.Incr(ctx, ReportCacheGenerationKey)
	require.NoError(t, err)
	fresh, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, fresh.Total)
}

// changingEquipmentRepo имитирует изменение данных, пока отчёт ещё считается.
type changingEquipmentRepo struct {
	*fakeEquipmentRepo
	onList func()
}

func (r *changingEquipmentRepo) List(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error) {
	items, err := r.fakeEquipmentRepo.List(ctx, filter)
	r.onList()
	return items, err
}

func TestStatisticsLoadedBeforeInvalidationAreNotServedAfterIt(t *testing.T) {
	f := newFixture()
	seedFleet(f)
	ctx := context.Background()
	f.store.Equipment = &changingEquipmentRepo{fakeEquipmentRepo: f.equipment, onList: func() {
		f.equipment.items = append(f.equipment.items, dto.EquipmentDTO{ID: uuid.New(), Estado: constants.EquipmentActive})
		_, err := f.cache.Incr(ctx, ReportCacheGenerationKey)
		assert.NoError(t, err)
	}}
	svc := newReportService(t, f)

	stale, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stale.Total)

	f.store.Equipment = f.equipment
	fresh, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, fresh.Total)
	assert.Equal(t, 2, f.equipment.listCalls)
}

func TestMaintenanceReportDefaultsToCurrentMonth(t *testing.T) {
	f := newFixture()
	seedFleet(f)
	svc := newReportService(t, f)

	report, err := svc.GetMaintenanceReport(context.Background(), types.NullDate{}, types.NullDate{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", report.Desde.String())
	assert.Equal(t, "2025-03-15", report.Hasta.String())
	assert.Equal(t, 1, report.TotalMantenimientos)
	assert.Equal(t, 250.0, report.CostoTotal)

	_, err = svc.GetMaintenanceReport(context.Background(),
		types.NullDateFrom(types.MustParseDate("2025-03-10")),
		types.NullDateFrom(types.MustParseDate("2025-03-01")))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestAttentionAndTrends(t *testing.T) {
	f := newFixture()
	uci := seedFleet(f)
	svc := newReportService(t, f)
	ctx := context.Background()

	attention, err := svc.GetAttentionList(ctx)
	require.NoError(t, err)
	assert.Len(t, attention.EquiposFueraServicio, 1)
	assert.Empty(t, attention.MantenimientosVencidos)

	trends, err := svc.GetMonthlyTrends(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, trends, 12)

	_, err = svc.GetMonthlyTrends(ctx, 100)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	freq, err := svc.GetEventFrequency(ctx, uci, 6)
	require.NoError(t, err)
	assert.Len(t, freq.Meses, 6)
	assert.Equal(t, 1, freq.Total)
}

func TestDepartmentCostsAndDocuments(t *testing.T) {
	f := newFixture()
	uci := seedFleet(f)
	svc := newReportService(t, f)
	ctx := context.Background()

	costs, err := svc.GetDepartmentCosts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, costs.Departamentos)
	assert.Equal(t, "UCI", costs.Departamentos[0].Departamento)
	assert.Equal(t, 350.0, costs.Departamentos[0].CostoTotal)
	assert.Equal(t, 350.0, costs.TotalGeneral)
	assert.NotEmpty(t, costs.Recomendaciones)

	doc, err := svc.CostsDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reporte_costos_2025-03-15", doc.Name)

	doc, err = svc.EquipmentEventsDocument(ctx, uci)
	require.NoError(t, err)
	assert.Len(t, doc.Table.Rows, 1)

	_, err = svc.EquipmentEventsDocument(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	inv, err := svc.InventoryDocument(ctx)
	require.NoError(t, err)
	assert.Len(t, inv.Table.Rows, 3)

	events, err := svc.GetEventStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, events.TotalEventos)

	users, err := svc.GetUserStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, users.Total)
}
