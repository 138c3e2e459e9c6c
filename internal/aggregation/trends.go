package aggregation

import (
	"fmt"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/types"

	"github.com/google/uuid"
)

const DefaultMonthsBack = 12

var monthAbbr = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// monthKeys возвращает n ключей YYYY-MM по возрастанию, последний - текущий месяц.
func monthKeys(now time.Time, n int) []types.Date {
	if n <= 0 {
		n = DefaultMonthsBack
	}
	first := today(now).FirstOfMonth(0)
	out := make([]types.Date, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, first.FirstOfMonth(-i))
	}
	return out
}

func monthLabel(d types.Date) string {
	return fmt.Sprintf("%s %d", monthAbbr[d.Month()-1], d.Year())
}

// MonthlyTrends группирует работы по месяцу завершения за последние monthsBack месяцев.
// Месяцы без работ присутствуют с нулями.
func MonthlyTrends(maintenance []dto.MaintenanceDTO, monthsBack int, now time.Time) []dto.MonthlyTrendDTO {
	months := monthKeys(now, monthsBack)
	out := make([]dto.MonthlyTrendDTO, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		out[i] = dto.MonthlyTrendDTO{Mes: m.MonthKey()}
		index[m.MonthKey()] = i
	}

	for _, m := range maintenance {
		if !m.FechaCompletado.Valid {
			continue
		}
		i, ok := index[m.FechaCompletado.Date.MonthKey()]
		if !ok {
			continue
		}
		out[i].Total++
		if m.Estado == constants.MaintenanceCompleted {
			out[i].Completados++
		}
		if m.Costo.Valid {
			out[i].Costo += m.Costo.Float64
		}
	}
	return out
}

// EventFrequency считает события одного аппарата по месяцам, от monthsBack-1 месяцев назад до текущего.
func EventFrequency(events []dto.EventDTO, equipmentID uuid.UUID, monthsBack int, now time.Time) dto.EventFrequencyDTO {
	months := monthKeys(now, monthsBack)
	out := dto.EventFrequencyDTO{
		EquipoID: equipmentID,
		Meses:    make([]dto.MonthCountDTO, len(months)),
	}
	index := make(map[string]int, len(months))
	for i, m := range months {
		out.Meses[i] = dto.MonthCountDTO{Mes: m.MonthKey(), Etiqueta: monthLabel(m)}
		index[m.MonthKey()] = i
	}

	loc := now.Location()
	for _, e := range events {
		if e.EquipoID != equipmentID || e.FechaEvento.IsZero() {
			continue
		}
		i, ok := index[types.DateOf(e.FechaEvento, loc).MonthKey()]
		if !ok {
			continue
		}
		out.Meses[i].Cantidad++
		out.Total++
	}
	out.PromedioMensual = round2(float64(out.Total) / float64(len(months)))
	return out
}
