package seeders

import (
	"context"
	"fmt"
	"os"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/listeners"
	"medical-inventory/internal/repositories"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/config"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/eventbus"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeder наполняет хранилище демонстрационными данными.
// Повторный запуск ничего не дублирует.
type Seeder struct {
	store       *repositories.Store
	base        *services.BaseService
	users       services.UserServiceInterface
	equipment   services.EquipmentServiceInterface
	maintenance services.MaintenanceServiceInterface
	events      services.EventServiceInterface
	importer    services.EquipmentImportServiceInterface
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func New(
	store *repositories.Store,
	cache repositories.CacheRepositoryInterface,
	cfg *config.Config,
	validate services.StructValidator,
	logger *zap.Logger,
) *Seeder {
	// отчёты, закэшированные работающим сервером, сбрасываются так же, как при правке через API
	bus := eventbus.New(logger.Named("eventbus"))
	listeners.NewReportCacheListener(cache, logger).Register(bus)

	base := services.NewBaseService(cache, bus, cfg.Reports.Location, logger)
	return &Seeder{
		store:       store,
		base:        base,
		users:       services.NewUserService(base, store, logger),
		equipment:   services.NewEquipmentService(base, store, logger),
		maintenance: services.NewMaintenanceService(base, store, logger),
		events:      services.NewEventService(base, store, logger),
		importer:    services.NewEquipmentImportService(base, store, validate, logger),
		bus:         bus,
		logger:      logger,
	}
}

// SeedUsers создаёт учётные записи, которых ещё нет. Возвращает число созданных.
func (s *Seeder) SeedUsers(ctx context.Context) (int, error) {
	created := 0
	for _, u := range usersData {
		existing, err := s.store.Users.FindActiveByEmail(ctx, u.Email)
		if err == nil && existing != nil {
			s.logger.Info("Пользователь уже существует", zap.String("email", u.Email))
			continue
		}
		if err != nil && apperrors.KindOf(err) != apperrors.KindNotFound {
			return created, fmt.Errorf("проверка пользователя %s: %w", u.Email, err)
		}

		if _, err := s.users.CreateUser(ctx, u); err != nil {
			return created, fmt.Errorf("создание пользователя %s: %w", u.Email, err)
		}
		created++
	}
	return created, nil
}

// SeedInventory заводит демонстрационное оборудование вместе с историей
// обслуживания и событиями. Если в реестре уже есть аппараты, ничего не делает.
func (s *Seeder) SeedInventory(ctx context.Context) (int, error) {
	existing, err := s.store.Equipment.List(ctx, types.Filter{Page: 1, Limit: 1, WithPagination: true})
	if err != nil {
		return 0, fmt.Errorf("проверка реестра оборудования: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("Реестр оборудования не пуст, демонстрационные данные пропущены")
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(equipmentData))
	for _, form := range equipmentData {
		created, err := s.equipment.CreateEquipment(ctx, form)
		if err != nil {
			return len(ids), fmt.Errorf("создание оборудования %q: %w", form.Nombre, err)
		}
		ids = append(ids, created.ID)
	}

	now := s.base.Now()
	today := types.DateOf(now, now.Location())
	for _, m := range maintenanceData {
		form := m.form
		form.EquipoID = ids[m.equipment]
		form.FechaProgramada = today.AddDays(m.offset)
		if _, err := s.maintenance.CreateMaintenance(ctx, form); err != nil {
			return len(ids), fmt.Errorf("создание обслуживания: %w", err)
		}
	}

	for i, e := range eventsData {
		form := e.form
		form.EquipoID = ids[e.equipment]
		// события разнесены по последним неделям, чтобы динамика не была пустой
		form.FechaEvento = null.TimeFrom(now.AddDate(0, 0, -7*(i+1)))
		if _, err := s.events.CreateEvent(ctx, form); err != nil {
			return len(ids), fmt.Errorf("создание события %q: %w", form.Titulo, err)
		}
	}
	return len(ids), nil
}

// ImportFile загружает инвентарную ведомость xlsx.
func (s *Seeder) ImportFile(ctx context.Context, path string) (*dto.ImportResultDTO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("открытие файла %s: %w", path, err)
	}
	defer f.Close()
	return s.importer.Import(ctx, f)
}

// Wait дожидается обработчиков событий, запущенных сидером.
func (s *Seeder) Wait(ctx context.Context) error {
	return s.bus.Wait(ctx)
}
