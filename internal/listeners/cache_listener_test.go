package listeners

import (
	"context"
	"testing"
	"time"

	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	"medical-inventory/internal/services"
	"medical-inventory/pkg/eventbus"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type otherEvent struct{}

func (otherEvent) Name() string { return events.EntityChangedName }

func TestReportCacheListenerDropsReportKeys(t *testing.T) {
	ctx := context.Background()
	cache := repositories.NewMemoryCacheRepository()
	for _, name := range services.ReportCacheNames {
		require.NoError(t, cache.Set(ctx, services.ReportCacheKey(name, 0), "{}", time.Minute))
	}
	require.NoError(t, cache.Set(ctx, "session:abc", "{}", time.Minute))

	bus := eventbus.New(zap.NewNop())
	NewReportCacheListener(cache, zap.NewNop()).Register(bus)

	publish := func() {
		bus.Publish(ctx, events.EntityChangedEvent{
			Entity: events.EntityEquipment,
			Action: events.ActionUpdated,
			ID:     uuid.New(),
		})
		require.NoError(t, bus.Wait(ctx))
	}
	publish()

	for _, name := range services.ReportCacheNames {
		_, err := cache.Get(ctx, services.ReportCacheKey(name, 0))
		assert.ErrorIs(t, err, repositories.ErrCacheMiss, name)
	}
	generation, err := cache.Get(ctx, services.ReportCacheGenerationKey)
	require.NoError(t, err)
	assert.Equal(t, "1", generation)
	_, err = cache.Get(ctx, "session:abc")
	assert.NoError(t, err)

	// записи предыдущего поколения удаляются при следующем сбросе
	require.NoError(t, cache.Set(ctx, services.ReportCacheKey(services.ReportCacheNames[0], 1), "{}", time.Minute))
	publish()
	_, err = cache.Get(ctx, services.ReportCacheKey(services.ReportCacheNames[0], 2))
	assert.ErrorIs(t, err, repositories.ErrCacheMiss)
	_, err = cache.Get(ctx, services.ReportCacheKey(services.ReportCacheNames[0], 1))
	assert.ErrorIs(t, err, repositories.ErrCacheMiss)
}

func TestReportCacheListenerRejectsForeignEvent(t *testing.T) {
	l := NewReportCacheListener(repositories.NewMemoryCacheRepository(), zap.NewNop())
	assert.Error(t, l.handleEntityChanged(context.Background(), otherEvent{}))
}
