package listeners

import (
	"context"
	"fmt"

	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/eventbus"

	"go.uber.org/zap"
)

// ReportCacheListener сбрасывает кеш отчётов после изменения любых данных:
// увеличивает поколение и удаляет записи предыдущего.
type ReportCacheListener struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewReportCacheListener(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *ReportCacheListener {
	return &ReportCacheListener{cache: cache, logger: logger}
}

func (l *ReportCacheListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EntityChangedName, l.handleEntityChanged)
	l.logger.Info("ReportCacheListener подписан на событие", zap.String("event", events.EntityChangedName))
}

func (l *ReportCacheListener) handleEntityChanged(ctx context.Context, e eventbus.Event) error {
	changed, ok := e.(events.EntityChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", e)
	}
	generation, err := l.cache.Incr(ctx, services.ReportCacheGenerationKey)
	if err != nil {
		return fmt.Errorf("не удалось сбросить кеш отчётов: %w", err)
	}
	stale := make([]string, 0, len(services.ReportCacheNames))
	for _, name := range services.ReportCacheNames {
		stale = append(stale, services.ReportCacheKey(name, generation-1))
	}
	if err := l.cache.Del(ctx, stale...); err != nil {
		l.logger.Warn("Не удалось удалить устаревшие отчёты", zap.Error(err))
	}
	l.logger.Debug("Кеш отчётов сброшен",
		zap.Int64("generation", generation),
		zap.String("entity", changed.Entity),
		zap.String("action", changed.Action),
		zap.String("id", changed.ID.String()),
	)
	return nil
}
