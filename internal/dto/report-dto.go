package dto

import (
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// GeneralStatisticsDTO - сводка по парку оборудования для панели.
type GeneralStatisticsDTO struct {
	Total                     int            `json:"totalEquipos"`
	EquiposActivos            int            `json:"equiposActivos"`
	EquiposMantenimiento      int            `json:"equiposMantenimiento"`
	EquiposFueraServicio      int            `json:"equiposFueraServicio"`
	EquiposRetirados          int            `json:"equiposRetirados"`
	PorcentajeActivos         null.Float64   `json:"porcentajeActivos"`
	MantenimientosProgramados int            `json:"mantenimientosProgramados"`
	ProximosMantenimientos    int            `json:"proximosMantenimientos"`
	DistribucionCategoria     map[string]int `json:"distribucionCategoria"`
	DistribucionUbicacion     map[string]int `json:"distribucionUbicacion"`
	DistribucionDepartamento  map[string]int `json:"distribucionDepartamento"`
}

type MaintenanceReportDTO struct {
	Desde                     types.Date       `json:"desde"`
	Hasta                     types.Date       `json:"hasta"`
	TotalMantenimientos       int              `json:"totalMantenimientos"`
	MantenimientosCompletados int              `json:"mantenimientosCompletados"`
	MantenimientosPendientes  int              `json:"mantenimientosPendientes"`
	OtrosEstados              int              `json:"otrosEstados"`
	CostoTotal                float64          `json:"costoTotal"`
	MantenimientosPorTipo     map[string]int   `json:"mantenimientosPorTipo"`
	Detalles                  []MaintenanceDTO `json:"detalles"`
}

type AttentionListDTO struct {
	EquiposFueraServicio            []EquipmentDTO   `json:"equiposFueraServicio"`
	MantenimientosVencidos          []MaintenanceDTO `json:"mantenimientosVencidos"`
	EquiposSinMantenimientoReciente []EquipmentDTO   `json:"equiposSinMantenimientoReciente"`
	VentanaDias                     int              `json:"ventanaDias"`
}

type MonthlyTrendDTO struct {
	Mes         string  `json:"mes"`
	Total       int     `json:"total"`
	Completados int     `json:"completados"`
	Costo       float64 `json:"costo"`
}

type MonthCountDTO struct {
	Mes      string `json:"mes"`
	Etiqueta string `json:"etiqueta"`
	Cantidad int    `json:"cantidad"`
}

type EventFrequencyDTO struct {
	EquipoID        uuid.UUID       `json:"equipoId"`
	Meses           []MonthCountDTO `json:"meses"`
	Total           int             `json:"total"`
	PromedioMensual float64         `json:"promedioMensual"`
}

type EventStatisticsDTO struct {
	TotalEventos      int            `json:"totalEventos"`
	EventosRecientes  int            `json:"eventosRecientes"`
	EventosPendientes int            `json:"eventosPendientes"`
	PorTipo           map[string]int `json:"porTipo"`
	PorEstado         map[string]int `json:"porEstado"`
	PorPrioridad      map[string]int `json:"porPrioridad"`
}

type UserStatisticsDTO struct {
	Total     int            `json:"total"`
	Activos   int            `json:"activos"`
	Inactivos int            `json:"inactivos"`
	PorRol    map[string]int `json:"porRol"`
}

type DepartmentCostDTO struct {
	Departamento       string  `json:"departamento"`
	Equipos            int     `json:"equipos"`
	CostoMantenimiento float64 `json:"costoMantenimiento"`
	CostoReparaciones  float64 `json:"costoReparaciones"`
	CostoTotal         float64 `json:"costoTotal"`
	ValorAdquisicion   float64 `json:"valorAdquisicion"`
}

type DepartmentCostsDTO struct {
	Departamentos   []DepartmentCostDTO `json:"departamentos"`
	TotalGeneral    float64             `json:"totalGeneral"`
	Recomendaciones []string            `json:"recomendaciones"`
}
