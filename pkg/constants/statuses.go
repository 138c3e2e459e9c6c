package constants

// --- СОСТОЯНИЯ ОБОРУДОВАНИЯ (совпадают со значениями в БД) ---
const (
	EquipmentActive      = "activo"
	EquipmentMaintenance = "mantenimiento"
	EquipmentOutOfOrder  = "fuera-servicio"
	EquipmentRetired     = "retirado"
)

var EquipmentStates = []string{
	EquipmentActive,
	EquipmentMaintenance,
	EquipmentOutOfOrder,
	EquipmentRetired,
}

// --- ОБСЛУЖИВАНИЕ ---
const (
	MaintenancePreventive = "preventivo"
	MaintenanceCorrective = "correctivo"
)

var MaintenanceTypes = []string{MaintenancePreventive, MaintenanceCorrective}

const (
	MaintenanceScheduled  = "programado"
	MaintenanceInProgress = "en_proceso"
	MaintenanceCompleted  = "completado"
	MaintenanceCancelled  = "cancelado"
)

var MaintenanceStates = []string{
	MaintenanceScheduled,
	MaintenanceInProgress,
	MaintenanceCompleted,
	MaintenanceCancelled,
}

// --- СОБЫТИЯ ---
var EventTypes = []string{
	"Falla",
	"Reparación",
	"Observación",
	"Incidente",
	"Mantenimiento Preventivo",
	"Mantenimiento Correctivo",
	"Calibración",
	"Actualización",
	"Otro",
}

const (
	PriorityHigh   = "Alta"
	PriorityMedium = "Media"
	PriorityLow    = "Baja"
)

var EventPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

const (
	EventRegistered = "Registrado"
	EventInProgress = "En Proceso"
	EventResolved   = "Resuelto"
	EventCancelled  = "Cancelado"
)

var EventStates = []string{EventRegistered, EventInProgress, EventResolved, EventCancelled}

// IsPendingEvent - событие ещё не закрыто.
func IsPendingEvent(state string) bool {
	return state != EventResolved && state != EventCancelled
}

// --- ПОЛЬЗОВАТЕЛИ ---
const (
	UserActive    = "Activo"
	UserInactive  = "Inactivo"
	UserSuspended = "Suspendido"
)

var UserStatuses = []string{UserActive, UserInactive, UserSuspended}

// Значение для пустых группировок в отчётах.
const Unspecified = "Sin especificar"

func Contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
