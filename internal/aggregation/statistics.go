// Package aggregation считает отчёты по уже загруженным записям.
// Функции чистые: текущий момент передаётся явно, сравнение дат идёт
// по календарным дням в часовом поясе переданного now.
package aggregation

import (
	"math"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
)

// UpcomingWindowDays - горизонт "ближайших" работ в днях, включая сегодняшний.
const UpcomingWindowDays = 7

func today(now time.Time) types.Date {
	return types.DateOf(now, now.Location())
}

func keyOrUnspecified(s null.String) string {
	if !s.Valid || s.String == "" {
		return constants.Unspecified
	}
	return s.String
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func GeneralStatistics(equipment []dto.EquipmentDTO, maintenance []dto.MaintenanceDTO, now time.Time) dto.GeneralStatisticsDTO {
	stats := dto.GeneralStatisticsDTO{
		Total:                    len(equipment),
		DistribucionCategoria:    make(map[string]int),
		DistribucionUbicacion:    make(map[string]int),
		DistribucionDepartamento: make(map[string]int),
	}

	for _, e := range equipment {
		switch e.Estado {
		case constants.EquipmentActive:
			stats.EquiposActivos++
		case constants.EquipmentMaintenance:
			stats.EquiposMantenimiento++
		case constants.EquipmentOutOfOrder:
			stats.EquiposFueraServicio++
		case constants.EquipmentRetired:
			stats.EquiposRetirados++
		}
		stats.DistribucionCategoria[keyOrUnspecified(e.Categoria)]++
		stats.DistribucionUbicacion[keyOrUnspecified(e.Edificio)]++
		stats.DistribucionDepartamento[keyOrUnspecified(e.Departamento)]++
	}

	// доля не определена для пустого парка
	if stats.Total > 0 {
		stats.PorcentajeActivos = null.Float64From(round2(float64(stats.EquiposActivos) * 100 / float64(stats.Total)))
	}

	day := today(now)
	for _, m := range maintenance {
		if m.Estado == constants.MaintenanceScheduled {
			stats.MantenimientosProgramados++
		}
		if isUpcoming(m, day) {
			stats.ProximosMantenimientos++
		}
	}
	return stats
}

// isUpcoming: работа назначена на сегодня или ближайшие 7 дней, состояние не учитывается.
func isUpcoming(m dto.MaintenanceDTO, day types.Date) bool {
	if m.FechaProgramada.IsZero() {
		return false
	}
	diff := day.DaysUntil(m.FechaProgramada)
	return diff >= 0 && diff <= UpcomingWindowDays
}

// isOverdue: плановая работа, дата которой строго в прошлом.
func isOverdue(m dto.MaintenanceDTO, day types.Date) bool {
	return m.Estado == constants.MaintenanceScheduled &&
		!m.FechaProgramada.IsZero() &&
		m.FechaProgramada.Before(day)
}
