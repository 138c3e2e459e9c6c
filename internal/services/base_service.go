package services

import (
	"context"
	"encoding/json"
	"time"

	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	"medical-inventory/pkg/eventbus"
	"medical-inventory/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseService - общие для сервисов кеш, шина событий и часы.
type BaseService struct {
	cache  repositories.CacheRepositoryInterface
	bus    *eventbus.Bus
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewBaseService(cache repositories.CacheRepositoryInterface, bus *eventbus.Bus, loc *time.Location, logger *zap.Logger) *BaseService {
	if loc == nil {
		loc = time.Local
	}
	return &BaseService{cache: cache, bus: bus, logger: logger, loc: loc, now: time.Now}
}

// Now - текущее время в часовом поясе учреждения.
func (s *BaseService) Now() time.Time {
	return s.now().In(s.loc)
}

// SetClock подменяет часы; используется в тестах.
func (s *BaseService) SetClock(now func() time.Time) {
	s.now = now
}

// CacheGet получает данные из кэша
func (s *BaseService) CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		s.logger.Warn("Повреждённая запись в кэше", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// CacheSet сохраняет данные в кэш
func (s *BaseService) CacheSet(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if s.cache == nil || ttl <= 0 {
		return
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, serialized, ttl); err != nil {
		s.logger.Warn("Не удалось записать в кэш", zap.String("key", key), zap.Error(err))
	}
}

// Publish сообщает подписчикам об изменении сущности.
func (s *BaseService) Publish(ctx context.Context, entity, action string, id uuid.UUID) {
	if s.bus == nil {
		return
	}
	var actor uuid.UUID
	if sess, err := utils.GetSessionFromContext(ctx); err == nil {
		actor = sess.UserID
	}
	s.bus.Publish(ctx, events.EntityChangedEvent{Entity: entity, Action: action, ID: id, Actor: actor})
}

// actorEmail - email текущего пользователя для полей "кем создано".
func actorEmail(ctx context.Context) string {
	if sess, err := utils.GetSessionFromContext(ctx); err == nil {
		return sess.Email
	}
	return ""
}
