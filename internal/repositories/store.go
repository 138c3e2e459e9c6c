package repositories

import (
	"fmt"

	"medical-inventory/internal/entities"
	"medical-inventory/internal/integrations/gateway"
	"medical-inventory/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store собирает репозитории поверх выбранного драйвера хранилища.
type Store struct {
	Equipment   EquipmentRepositoryInterface
	Maintenance MaintenanceRepositoryInterface
	Events      EventRepositoryInterface
	Users       UserRepositoryInterface
}

// NewRestStore - хранилище через REST-шлюз.
func NewRestStore(client *gateway.Client, logger *zap.Logger) *Store {
	return newStore(
		NewRestTable[entities.Equipment](client, entities.EquipmentTable, entities.EquipmentColumns),
		NewRestTable[entities.Maintenance](client, entities.MaintenanceTable, entities.MaintenanceColumns),
		NewRestTable[entities.Event](client, entities.EventTable, entities.EventColumns),
		NewRestTable[entities.User](client, entities.UserTable, entities.UserColumns),
		logger,
	)
}

// NewPgStore - прямое подключение к PostgreSQL.
func NewPgStore(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	return newStore(
		NewPgTable[entities.Equipment](pool, entities.EquipmentTable, entities.EquipmentColumns),
		NewPgTable[entities.Maintenance](pool, entities.MaintenanceTable, entities.MaintenanceColumns),
		NewPgTable[entities.Event](pool, entities.EventTable, entities.EventColumns),
		NewPgTable[entities.User](pool, entities.UserTable, entities.UserColumns),
		logger,
	)
}

func newStore(
	equipment Table[entities.Equipment],
	maintenance Table[entities.Maintenance],
	events Table[entities.Event],
	users Table[entities.User],
	logger *zap.Logger,
) *Store {
	return &Store{
		Equipment:   NewEquipmentRepository(equipment, logger.Named("equipment_repo")),
		Maintenance: NewMaintenanceRepository(maintenance, equipment, logger.Named("maintenance_repo")),
		Events:      NewEventRepository(events, equipment, logger.Named("event_repo")),
		Users:       NewUserRepository(users, logger.Named("user_repo")),
	}
}

// NewStore выбирает драйвер по конфигурации.
func NewStore(driver string, client *gateway.Client, pool *pgxpool.Pool, logger *zap.Logger) (*Store, error) {
	switch driver {
	case config.DriverREST:
		if client == nil {
			return nil, fmt.Errorf("драйвер %q требует клиента шлюза", driver)
		}
		return NewRestStore(client, logger), nil
	case config.DriverPostgres:
		if pool == nil {
			return nil, fmt.Errorf("драйвер %q требует пула соединений", driver)
		}
		return NewPgStore(pool, logger), nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища %q", driver)
	}
}
