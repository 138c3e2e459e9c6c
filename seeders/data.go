package seeders

import (
	"medical-inventory/internal/authz"
	"medical-inventory/internal/dto"
	"medical-inventory/pkg/constants"

	"github.com/aarondl/null/v8"
)

// Пароль демонстрационных учётных записей. Только для локального стенда.
const demoPassword = "Hospital123!"

var usersData = []dto.CreateUserDTO{
	{
		Email: "admin@hospital.local", Password: demoPassword, Nombre: "María", Apellido: null.StringFrom("González"),
		Departamento: null.StringFrom("Ingeniería Biomédica"), Cargo: null.StringFrom("Jefa de Ingeniería"),
		Rol: authz.RoleAdmin,
	},
	{
		Email: "tecnico@hospital.local", Password: demoPassword, Nombre: "Carlos", Apellido: null.StringFrom("Pérez"),
		Departamento: null.StringFrom("Ingeniería Biomédica"), Cargo: null.StringFrom("Técnico Biomédico"),
		Rol: authz.RoleTechnician,
	},
	{
		Email: "consulta@hospital.local", Password: demoPassword, Nombre: "Lucía", Apellido: null.StringFrom("Ramírez"),
		Departamento: null.StringFrom("Dirección Médica"), Cargo: null.StringFrom("Auditora"),
		Rol: authz.RoleGuest,
	},
}

var equipmentData = []dto.CreateEquipmentDTO{
	{
		Nombre: "Monitor de Signos Vitales", Marca: null.StringFrom("Philips"), Modelo: null.StringFrom("IntelliVue MX450"),
		NumeroSerie: null.StringFrom("PH-MX450-0001"), Categoria: null.StringFrom("Monitoreo"),
		Estado: constants.EquipmentActive, AnoFabricacion: null.IntFrom(2019),
		Edificio: null.StringFrom("Torre A"), Piso: null.StringFrom("3"), Sala: null.StringFrom("UCI"), Cama: null.StringFrom("12"),
		Departamento: null.StringFrom("Cuidados Intensivos"), FrecuenciaMantenimiento: null.StringFrom("Semestral"),
		CostoAdquisicion: null.Float64From(8500000), ValorActual: null.Float64From(5200000),
	},
	{
		Nombre: "Ventilador Mecánico", Marca: null.StringFrom("Dräger"), Modelo: null.StringFrom("Evita V300"),
		NumeroSerie: null.StringFrom("DR-V300-0452"), Categoria: null.StringFrom("Soporte Vital"),
		Estado: constants.EquipmentOutOfOrder, AnoFabricacion: null.IntFrom(2012),
		Edificio: null.StringFrom("Torre A"), Piso: null.StringFrom("3"), Sala: null.StringFrom("UCI"),
		Departamento: null.StringFrom("Cuidados Intensivos"), FrecuenciaMantenimiento: null.StringFrom("Trimestral"),
		CostoAdquisicion: null.Float64From(45000000), ValorActual: null.Float64From(12000000),
	},
	{
		Nombre: "Electrocardiógrafo", Marca: null.StringFrom("GE Healthcare"), Modelo: null.StringFrom("MAC 2000"),
		NumeroSerie: null.StringFrom("GE-MAC2-7781"), Categoria: null.StringFrom("Diagnóstico"),
		Estado: constants.EquipmentActive, AnoFabricacion: null.IntFrom(2021),
		Edificio: null.StringFrom("Torre B"), Piso: null.StringFrom("1"), Sala: null.StringFrom("Urgencias"),
		Departamento: null.StringFrom("Urgencias"), FrecuenciaMantenimiento: null.StringFrom("Anual"),
		CostoAdquisicion: null.Float64From(12500000), ValorActual: null.Float64From(10000000),
	},
	{
		Nombre: "Bomba de Infusión", Marca: null.StringFrom("B. Braun"), Modelo: null.StringFrom("Infusomat Space"),
		NumeroSerie: null.StringFrom("BB-INF-3310"), Categoria: null.StringFrom("Terapia"),
		Estado: constants.EquipmentMaintenance, AnoFabricacion: null.IntFrom(2017),
		Edificio: null.StringFrom("Torre B"), Piso: null.StringFrom("2"), Sala: null.StringFrom("Hospitalización"),
		Departamento: null.StringFrom("Medicina Interna"), FrecuenciaMantenimiento: null.StringFrom("Semestral"),
		CostoAdquisicion: null.Float64From(3200000),
	},
}

// maintenanceSeed ссылается на аппарат по индексу в equipmentData;
// даты задаются смещением в днях от сегодняшнего дня.
type maintenanceSeed struct {
	equipment int
	offset    int
	form      dto.CreateMaintenanceDTO
}

var maintenanceData = []maintenanceSeed{
	{equipment: 0, offset: -45, form: dto.CreateMaintenanceDTO{
		Tipo: constants.MaintenancePreventive, Tecnico: null.StringFrom("Carlos Pérez"),
		Descripcion: null.StringFrom("Revisión general y calibración de módulos"), Costo: null.Float64From(350000),
		Estado: constants.MaintenanceCompleted,
	}},
	{equipment: 1, offset: -7, form: dto.CreateMaintenanceDTO{
		Tipo: constants.MaintenanceCorrective, Tecnico: null.StringFrom("Servicio técnico Dräger"),
		Descripcion: null.StringFrom("Falla en sensor de flujo espiratorio"), Costo: null.Float64From(1800000),
		Estado: constants.MaintenanceScheduled,
	}},
	{equipment: 3, offset: 0, form: dto.CreateMaintenanceDTO{
		Tipo: constants.MaintenancePreventive, Tecnico: null.StringFrom("Carlos Pérez"),
		Descripcion: null.StringFrom("Verificación de precisión de flujo"),
		Estado:      constants.MaintenanceInProgress,
	}},
	{equipment: 2, offset: 14, form: dto.CreateMaintenanceDTO{
		Tipo: constants.MaintenancePreventive, Descripcion: null.StringFrom("Mantenimiento anual"),
		Estado: constants.MaintenanceScheduled,
	}},
}

type eventSeed struct {
	equipment int
	form      dto.CreateEventDTO
}

var eventsData = []eventSeed{
	{equipment: 1, form: dto.CreateEventDTO{
		TipoEvento: "Falla", Titulo: "Alarma de presión persistente",
		Descripcion: null.StringFrom("El equipo se detuvo durante la ventilación del paciente de la cama 4"),
		Prioridad:   constants.PriorityHigh, Estado: constants.EventInProgress,
		TecnicoResponsable: null.StringFrom("Carlos Pérez"),
	}},
	{equipment: 0, form: dto.CreateEventDTO{
		TipoEvento: "Calibración", Titulo: "Calibración de módulo SpO2",
		Prioridad: constants.PriorityLow, Estado: constants.EventResolved,
		CostoReparacion: null.Float64From(120000),
	}},
	{equipment: 3, form: dto.CreateEventDTO{
		TipoEvento: "Observación", Titulo: "Pantalla con píxeles muertos",
		Prioridad: constants.PriorityMedium,
	}},
}
