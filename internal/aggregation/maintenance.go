package aggregation

import (
	"medical-inventory/internal/dto"
	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/types"
)

// MaintenanceReport отбирает работы, завершённые в [start, end] включительно.
// Записи без даты завершения в отчёт не попадают.
func MaintenanceReport(maintenance []dto.MaintenanceDTO, start, end types.Date) dto.MaintenanceReportDTO {
	report := dto.MaintenanceReportDTO{
		Desde:                 start,
		Hasta:                 end,
		MantenimientosPorTipo: make(map[string]int),
		Detalles:              make([]dto.MaintenanceDTO, 0),
	}

	var cost float64
	for _, m := range maintenance {
		if !m.FechaCompletado.Valid || !m.FechaCompletado.Date.Between(start, end) {
			continue
		}
		report.Detalles = append(report.Detalles, m)
		report.TotalMantenimientos++

		switch m.Estado {
		case constants.MaintenanceCompleted:
			report.MantenimientosCompletados++
		case constants.MaintenanceScheduled:
			report.MantenimientosPendientes++
		default:
			report.OtrosEstados++
		}

		if m.Costo.Valid {
			cost += m.Costo.Float64
		}

		tipo := m.Tipo
		if tipo == "" {
			tipo = constants.Unspecified
		}
		report.MantenimientosPorTipo[tipo]++
	}
	report.CostoTotal = cost
	return report
}
