package aggregation

import (
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/constants"
)

// RecentEventsDays - события младше этого числа дней считаются недавними.
const RecentEventsDays = 7

func EventStatistics(events []dto.EventDTO, now time.Time) dto.EventStatisticsDTO {
	stats := dto.EventStatisticsDTO{
		TotalEventos: len(events),
		PorTipo:      make(map[string]int),
		PorEstado:    make(map[string]int),
		PorPrioridad: make(map[string]int),
	}

	since := now.AddDate(0, 0, -RecentEventsDays)
	for _, e := range events {
		stats.PorTipo[orUnspecified(e.TipoEvento)]++
		stats.PorEstado[orUnspecified(e.Estado)]++
		stats.PorPrioridad[orUnspecified(e.Prioridad)]++

		if !e.FechaEvento.Before(since) {
			stats.EventosRecientes++
		}
		if constants.IsPendingEvent(e.Estado) {
			stats.EventosPendientes++
		}
	}
	return stats
}

// UserStatistics: неактивные - все, кто не в статусе Activo; роли считаются среди активных.
func UserStatistics(users []dto.UserDTO) dto.UserStatisticsDTO {
	stats := dto.UserStatisticsDTO{Total: len(users), PorRol: make(map[string]int)}
	for _, u := range users {
		if u.Estado != constants.UserActive {
			continue
		}
		stats.Activos++
		stats.PorRol[orUnspecified(u.Rol)]++
	}
	stats.Inactivos = stats.Total - stats.Activos
	return stats
}

func orUnspecified(s string) string {
	if s == "" {
		return constants.Unspecified
	}
	return s
}
