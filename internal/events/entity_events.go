package events

import "github.com/google/uuid"

const EntityChangedName = "entity.changed"

// Сущности, изменения которых публикуются в шину.
const (
	EntityEquipment   = "equipos"
	EntityMaintenance = "mantenimientos"
	EntityEvent       = "historial_equipos"
	EntityUser        = "perfiles_usuario"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityChangedEvent возникает после успешной записи в хранилище.
type EntityChangedEvent struct {
	Entity string
	Action string
	ID     uuid.UUID
	// Actor - кто внёс изменение; uuid.Nil для системных операций.
	Actor uuid.UUID
}

// Name - реализуем интерфейс eventbus.Event
func (e EntityChangedEvent) Name() string {
	return EntityChangedName
}
