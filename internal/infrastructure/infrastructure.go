package infrastructure

import (
	"context"
	"fmt"

	"medical-inventory/internal/integrations/gateway"
	"medical-inventory/internal/repositories"
	"medical-inventory/migrations"
	"medical-inventory/pkg/config"
	"medical-inventory/pkg/database/postgresql"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Infrastructure - подключения к хранилищу и кэшу, общие для сервера и сидера.
type Infrastructure struct {
	Store *repositories.Store
	Cache repositories.CacheRepositoryInterface

	pool        *pgxpool.Pool
	redisClient *redis.Client
	logger      *zap.Logger
}

// Open поднимает кэш (Redis или память процесса) и хранилище выбранного драйвера.
// Для PostgreSQL сразу применяются миграции.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{logger: logger}

	if cfg.Redis.Address != "" {
		infra.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if _, err := infra.redisClient.Ping(ctx).Result(); err != nil {
			infra.Close()
			return nil, fmt.Errorf("не удалось подключиться к Redis %s: %w", cfg.Redis.Address, err)
		}
		infra.Cache = repositories.NewRedisCacheRepository(infra.redisClient)
		logger.Info("✅ Подключено к Redis", zap.String("address", cfg.Redis.Address))
	} else {
		infra.Cache = repositories.NewMemoryCacheRepository()
		logger.Warn("REDIS_ADDRESS не задан, сессии и кэш хранятся в памяти процесса")
	}

	var client *gateway.Client
	switch cfg.Gateway.Driver {
	case config.DriverPostgres:
		pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.pool = pool
		if err := postgresql.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			infra.Close()
			return nil, err
		}
	default:
		client = gateway.New(cfg.Gateway, logger)
		logger.Info("Используется REST-шлюз", zap.String("url", cfg.Gateway.URL))
	}

	store, err := repositories.NewStore(cfg.Gateway.Driver, client, infra.pool, logger)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Store = store
	return infra, nil
}

func (i *Infrastructure) Close() {
	if i.pool != nil {
		i.pool.Close()
	}
	if i.redisClient != nil {
		if err := i.redisClient.Close(); err != nil {
			i.logger.Warn("Ошибка закрытия соединения с Redis", zap.Error(err))
		}
	}
}
