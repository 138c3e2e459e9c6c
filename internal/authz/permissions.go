// internal/authz/permissions.go
package authz

// --- РОЛИ (регистр важен, совпадают со значениями в БД) ---
const (
	RoleAdmin      = "Administrador"
	RoleTechnician = "Técnico"
	RoleGuest      = "Invitado"
)

var Roles = []string{RoleAdmin, RoleTechnician, RoleGuest}

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---
const (
	// Оборудование
	EquipmentView   = "equipment:view"
	EquipmentCreate = "equipment:create"
	EquipmentUpdate = "equipment:update"
	EquipmentDelete = "equipment:delete"

	// Обслуживание
	MaintenanceView   = "maintenance:view"
	MaintenanceCreate = "maintenance:create"
	MaintenanceUpdate = "maintenance:update"
	MaintenanceDelete = "maintenance:delete"

	// История событий
	EventsView   = "events:view"
	EventsCreate = "events:create"
	EventsUpdate = "events:update"
	EventsDelete = "events:delete"

	// Отчёты
	ReportsView   = "reports:view"
	ReportsExport = "reports:export"

	// Пользователи
	UsersView   = "users:view"
	UsersManage = "users:manage"
)

// Права гостя: только просмотр.
var guestPermissions = map[string]bool{
	EquipmentView:   true,
	MaintenanceView: true,
	EventsView:      true,
	ReportsView:     true,
	ReportsExport:   true,
}

// Техник может всё, кроме управления пользователями.
var technicianDenied = map[string]bool{
	UsersView:   true,
	UsersManage: true,
}

// Can проверяет, разрешено ли действие роли. Неизвестная роль не может ничего.
func Can(role, permission string) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleTechnician:
		return !technicianDenied[permission]
	case RoleGuest:
		return guestPermissions[permission]
	default:
		return false
	}
}

func IsKnownRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
