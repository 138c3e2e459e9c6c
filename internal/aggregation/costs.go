package aggregation

import (
	"sort"
	"strings"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/config"
	"medical-inventory/pkg/constants"

	"github.com/google/uuid"
)

const departmentPlaceholder = "{department}"

// DepartmentCosts сводит затраты по отделениям: обслуживание (кроме отменённого)
// плюс ремонт по событиям. Записи без аппарата или отделения идут в "Sin especificar".
func DepartmentCosts(
	equipment []dto.EquipmentDTO,
	maintenance []dto.MaintenanceDTO,
	events []dto.EventDTO,
	catalogue *config.Catalogue,
	now time.Time,
) dto.DepartmentCostsDTO {
	departmentOf := make(map[uuid.UUID]string, len(equipment))
	rows := make(map[string]*dto.DepartmentCostDTO)
	row := func(name string) *dto.DepartmentCostDTO {
		r, ok := rows[name]
		if !ok {
			r = &dto.DepartmentCostDTO{Departamento: name}
			rows[name] = r
		}
		return r
	}
	lookup := func(id uuid.UUID) string {
		if d, ok := departmentOf[id]; ok {
			return d
		}
		return constants.Unspecified
	}

	for _, e := range equipment {
		name := keyOrUnspecified(e.Departamento)
		departmentOf[e.ID] = name
		r := row(name)
		r.Equipos++
		if e.CostoAdquisicion.Valid {
			r.ValorAdquisicion += e.CostoAdquisicion.Float64
		}
	}
	for _, m := range maintenance {
		if m.Estado == constants.MaintenanceCancelled || !m.Costo.Valid {
			continue
		}
		row(lookup(m.EquipoID)).CostoMantenimiento += m.Costo.Float64
	}
	for _, ev := range events {
		if !ev.CostoReparacion.Valid {
			continue
		}
		row(lookup(ev.EquipoID)).CostoReparaciones += ev.CostoReparacion.Float64
	}

	out := dto.DepartmentCostsDTO{
		Departamentos:   make([]dto.DepartmentCostDTO, 0, len(rows)),
		Recomendaciones: make([]string, 0),
	}
	for _, r := range rows {
		r.CostoTotal = r.CostoMantenimiento + r.CostoReparaciones
		out.TotalGeneral += r.CostoTotal
		out.Departamentos = append(out.Departamentos, *r)
	}
	sort.Slice(out.Departamentos, func(i, j int) bool {
		a, b := out.Departamentos[i], out.Departamentos[j]
		if a.CostoTotal != b.CostoTotal {
			return a.CostoTotal > b.CostoTotal
		}
		return a.Departamento < b.Departamento
	})

	if catalogue != nil {
		out.Recomendaciones = recommend(catalogue, equipment, maintenance, out.Departamentos, now)
	}
	return out
}

func recommend(
	catalogue *config.Catalogue,
	equipment []dto.EquipmentDTO,
	maintenance []dto.MaintenanceDTO,
	departments []dto.DepartmentCostDTO,
	now time.Time,
) []string {
	day := today(now)
	out := make([]string, 0, len(catalogue.Recommendations))
	for _, rec := range catalogue.Recommendations {
		switch rec.Rule {
		case config.RuleAlways:
			out = append(out, rec.Text)
		case config.RuleAgedEquipment:
			if hasAgedEquipment(equipment, day.Year(), catalogue.AgedEquipmentYears) {
				out = append(out, rec.Text)
			}
		case config.RuleOverdueMaintenance:
			for _, m := range maintenance {
				if isOverdue(m, day) {
					out = append(out, rec.Text)
					break
				}
			}
		case config.RuleOutOfService:
			for _, e := range equipment {
				if e.Estado == constants.EquipmentOutOfOrder {
					out = append(out, rec.Text)
					break
				}
			}
		case config.RuleTopDepartment:
			// отделения уже отсортированы по убыванию затрат
			if len(departments) > 0 && departments[0].CostoTotal > 0 {
				out = append(out, strings.ReplaceAll(rec.Text, departmentPlaceholder, departments[0].Departamento))
			}
		}
	}
	return out
}

func hasAgedEquipment(equipment []dto.EquipmentDTO, year, maxAge int) bool {
	for _, e := range equipment {
		if e.Estado == constants.EquipmentRetired || !e.AnoFabricacion.Valid {
			continue
		}
		if year-e.AnoFabricacion.Int > maxAge {
			return true
		}
	}
	return false
}
