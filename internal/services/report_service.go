package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"medical-inventory/internal/aggregation"
	"medical-inventory/internal/dto"
	"medical-inventory/internal/export"
	"medical-inventory/internal/repositories"
	"medical-inventory/pkg/config"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Имена кешируемых отчётов. Ключ в кеше дополнительно несёт номер поколения,
// который слушатель изменений увеличивает при любом изменении данных.
const (
	cacheKeyStatistics      = "reports:statistics"
	cacheKeyEventStatistics = "reports:events"
	cacheKeyUserStatistics  = "reports:users"
	cacheKeyDepartmentCosts = "reports:costs"
)

// ReportCacheGenerationKey - счётчик поколений кеша отчётов.
const ReportCacheGenerationKey = "reports:generation"

var ReportCacheNames = []string{
	cacheKeyStatistics,
	cacheKeyEventStatistics,
	cacheKeyUserStatistics,
	cacheKeyDepartmentCosts,
}

// ReportCacheKey - ключ отчёта в заданном поколении.
func ReportCacheKey(name string, generation int64) string {
	return fmt.Sprintf("%s:%d", name, generation)
}

const maxMonthsBack = 60

type ReportServiceInterface interface {
	GetStatistics(ctx context.Context) (*dto.GeneralStatisticsDTO, error)
	GetMaintenanceReport(ctx context.Context, start, end types.NullDate) (*dto.MaintenanceReportDTO, error)
	GetAttentionList(ctx context.Context) (*dto.AttentionListDTO, error)
	GetMonthlyTrends(ctx context.Context, monthsBack int) ([]dto.MonthlyTrendDTO, error)
	GetEventFrequency(ctx context.Context, equipmentID uuid.UUID, monthsBack int) (*dto.EventFrequencyDTO, error)
	GetEventStatistics(ctx context.Context) (*dto.EventStatisticsDTO, error)
	GetUserStatistics(ctx context.Context) (*dto.UserStatisticsDTO, error)
	GetDepartmentCosts(ctx context.Context) (*dto.DepartmentCostsDTO, error)

	InventoryDocument(ctx context.Context) (*export.Document, error)
	MaintenanceDocument(ctx context.Context) (*export.Document, error)
	EquipmentEventsDocument(ctx context.Context, equipmentID uuid.UUID) (*export.Document, error)
	CostsDocument(ctx context.Context) (*export.Document, error)
}

type ReportService struct {
	*BaseService
	store     *repositories.Store
	catalogue *config.Catalogue
	cfg       config.ReportsConfig
	logger    *zap.Logger
}

func NewReportService(
	base *BaseService,
	store *repositories.Store,
	catalogue *config.Catalogue,
	cfg config.ReportsConfig,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		BaseService: base,
		store:       store,
		catalogue:   catalogue,
		cfg:         cfg,
		logger:      logger,
	}
}

// dataset - сырые коллекции, из которых считаются отчёты.
type dataset struct {
	equipment   []dto.EquipmentDTO
	maintenance []dto.MaintenanceDTO
	events      []dto.EventDTO
	users       []dto.UserDTO
}

const (
	needEquipment = 1 << iota
	needMaintenance
	needEvents
	needUsers
)

// load параллельно загружает нужные коллекции. Первая ошибка прерывает отчёт.
func (s *ReportService) load(ctx context.Context, need int) (*dataset, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		data dataset
		all  types.Filter
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

	if need&needEquipment != 0 {
		addTask(func() (err error) { data.equipment, err = s.store.Equipment.List(ctx, all); return })
	}
	if need&needMaintenance != 0 {
		addTask(func() (err error) { data.maintenance, err = s.store.Maintenance.List(ctx, all); return })
	}
	if need&needEvents != 0 {
		addTask(func() (err error) { data.events, err = s.store.Events.List(ctx, all); return })
	}
	if need&needUsers != 0 {
		addTask(func() (err error) { data.users, err = s.store.Users.List(ctx, all); return })
	}

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Ошибка загрузки данных для отчёта", zap.Error(errs[0]))
		return nil, errs[0]
	}
	return &data, nil
}

// reportKey фиксирует поколение до загрузки данных: если данные изменятся
// во время расчёта, результат попадёт в устаревшее поколение и не будет прочитан.
func (s *ReportService) reportKey(ctx context.Context, name string) string {
	var generation int64
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, ReportCacheGenerationKey); err == nil {
			generation, _ = strconv.ParseInt(raw, 10, 64)
		}
	}
	return ReportCacheKey(name, generation)
}

func (s *ReportService) GetStatistics(ctx context.Context) (*dto.GeneralStatisticsDTO, error) {
	var cached dto.GeneralStatisticsDTO
	key := s.reportKey(ctx, cacheKeyStatistics)
	if s.CacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	data, err := s.load(ctx, needEquipment|needMaintenance)
	if err != nil {
		return nil, err
	}
	stats := aggregation.GeneralStatistics(data.equipment, data.maintenance, s.Now())
	s.CacheSet(ctx, key, stats, s.cfg.StatisticsCacheTTL)
	return &stats, nil
}

// GetMaintenanceReport - работы, завершённые за период. По умолчанию с начала месяца по сегодня.
func (s *ReportService) GetMaintenanceReport(ctx context.Context, start, end types.NullDate) (*dto.MaintenanceReportDTO, error) {
	today := types.DateOf(s.Now(), s.loc)
	from, to := today.FirstOfMonth(0), today
	if start.Valid {
		from = start.Date
	}
	if end.Valid {
		to = end.Date
	}
	if to.Before(from) {
		return nil, apperrors.NewInvalidInputError("дата окончания периода раньше даты начала")
	}

	maintenance, err := s.store.Maintenance.ListCompletedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	report := aggregation.MaintenanceReport(maintenance, from, to)
	return &report, nil
}

func (s *ReportService) GetAttentionList(ctx context.Context) (*dto.AttentionListDTO, error) {
	data, err := s.load(ctx, needEquipment|needMaintenance)
	if err != nil {
		return nil, err
	}
	policy := aggregation.AttentionPolicy{RecentWindowDays: s.cfg.RecentMaintenanceDays}
	list := aggregation.AttentionList(data.equipment, data.maintenance, s.Now(), policy)
	return &list, nil
}

func (s *ReportService) GetMonthlyTrends(ctx context.Context, monthsBack int) ([]dto.MonthlyTrendDTO, error) {
	monthsBack, err := checkMonths(monthsBack)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.store.Maintenance.List(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	return aggregation.MonthlyTrends(maintenance, monthsBack, s.Now()), nil
}

func (s *ReportService) GetEventFrequency(ctx context.Context, equipmentID uuid.UUID, monthsBack int) (*dto.EventFrequencyDTO, error) {
	monthsBack, err := checkMonths(monthsBack)
	if err != nil {
		return nil, err
	}
	events, err := s.store.Events.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	freq := aggregation.EventFrequency(events, equipmentID, monthsBack, s.Now())
	return &freq, nil
}

func (s *ReportService) GetEventStatistics(ctx context.Context) (*dto.EventStatisticsDTO, error) {
	var cached dto.EventStatisticsDTO
	key := s.reportKey(ctx, cacheKeyEventStatistics)
	if s.CacheGet(ctx, key, &cached) {
		return &cached, nil
	}
	data, err := s.load(ctx, needEvents)
	if err != nil {
		return nil, err
	}
	stats := aggregation.EventStatistics(data.events, s.Now())
	s.CacheSet(ctx, key, stats, s.cfg.StatisticsCacheTTL)
	return &stats, nil
}

func (s *ReportService) GetUserStatistics(ctx context.Context) (*dto.UserStatisticsDTO, error) {
	var cached dto.UserStatisticsDTO
	key := s.reportKey(ctx, cacheKeyUserStatistics)
	if s.CacheGet(ctx, key, &cached) {
		return &cached, nil
	}
	data, err := s.load(ctx, needUsers)
	if err != nil {
		return nil, err
	}
	stats := aggregation.UserStatistics(data.users)
	s.CacheSet(ctx, key, stats, s.cfg.StatisticsCacheTTL)
	return &stats, nil
}

func (s *ReportService) GetDepartmentCosts(ctx context.Context) (*dto.DepartmentCostsDTO, error) {
	var cached dto.DepartmentCostsDTO
	key := s.reportKey(ctx, cacheKeyDepartmentCosts)
	if s.CacheGet(ctx, key, &cached) {
		return &cached, nil
	}
	data, err := s.load(ctx, needEquipment|needMaintenance|needEvents)
	if err != nil {
		return nil, err
	}
	costs := aggregation.DepartmentCosts(data.equipment, data.maintenance, data.events, s.catalogue, s.Now())
	s.CacheSet(ctx, key, costs, s.cfg.StatisticsCacheTTL)
	return &costs, nil
}

func (s *ReportService) InventoryDocument(ctx context.Context) (*export.Document, error) {
	equipment, err := s.store.Equipment.List(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	return export.InventoryReport(equipment, s.Now()), nil
}

func (s *ReportService) MaintenanceDocument(ctx context.Context) (*export.Document, error) {
	maintenance, err := s.store.Maintenance.List(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	return export.MaintenanceListing(maintenance, s.Now()), nil
}

func (s *ReportService) EquipmentEventsDocument(ctx context.Context, equipmentID uuid.UUID) (*export.Document, error) {
	equipment, err := s.store.Equipment.FindByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	events, err := s.store.Events.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return export.EquipmentEvents(*equipment, events, s.Now()), nil
}

func (s *ReportService) CostsDocument(ctx context.Context) (*export.Document, error) {
	costs, err := s.GetDepartmentCosts(ctx)
	if err != nil {
		return nil, err
	}
	return export.DepartmentCostsReport(*costs, s.Now()), nil
}

func checkMonths(n int) (int, error) {
	if n == 0 {
		return aggregation.DefaultMonthsBack, nil
	}
	if n < 1 || n > maxMonthsBack {
		return 0, apperrors.NewInvalidInputError("количество месяцев должно быть от 1 до %d", maxMonthsBack)
	}
	return n, nil
}
