package aggregation

import (
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/constants"

	"github.com/google/uuid"
)

// AttentionPolicy задаёт, что считать "недавним" обслуживанием.
// RecentWindowDays == 0 - окно не задано, и в список попадают все активные аппараты.
type AttentionPolicy struct {
	RecentWindowDays int
}

func AttentionList(equipment []dto.EquipmentDTO, maintenance []dto.MaintenanceDTO, now time.Time, policy AttentionPolicy) dto.AttentionListDTO {
	out := dto.AttentionListDTO{
		EquiposFueraServicio:            make([]dto.EquipmentDTO, 0),
		MantenimientosVencidos:          make([]dto.MaintenanceDTO, 0),
		EquiposSinMantenimientoReciente: make([]dto.EquipmentDTO, 0),
		VentanaDias:                     policy.RecentWindowDays,
	}

	day := today(now)
	for _, m := range maintenance {
		if isOverdue(m, day) {
			out.MantenimientosVencidos = append(out.MantenimientosVencidos, m)
		}
	}

	recent := make(map[uuid.UUID]bool)
	if policy.RecentWindowDays > 0 {
		since := day.AddDays(-policy.RecentWindowDays)
		for _, m := range maintenance {
			if m.Estado == constants.MaintenanceCompleted && m.FechaCompletado.Valid &&
				m.FechaCompletado.Date.Between(since, day) {
				recent[m.EquipoID] = true
			}
		}
	}

	for _, e := range equipment {
		switch e.Estado {
		case constants.EquipmentOutOfOrder:
			out.EquiposFueraServicio = append(out.EquiposFueraServicio, e)
		case constants.EquipmentActive:
			if !recent[e.ID] {
				out.EquiposSinMantenimientoReciente = append(out.EquiposSinMantenimientoReciente, e)
			}
		}
	}
	return out
}
