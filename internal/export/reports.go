package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/constants"

	"github.com/aarondl/null/v8"
)

const displayDate = "02/01/2006"

func orDefault(s null.String, def string) string {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return def
	}
	return s.String
}

func orText(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Money - "$12.345,50": разделители как в es-ES.
func Money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	out := "$" + b.String()
	if frac != "00" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Location склеивает здание, этаж, палату и койку.
func Location(e dto.EquipmentDTO) string {
	var parts []string
	for _, p := range []null.String{e.Edificio, e.Piso, e.Sala, e.Cama} {
		if p.Valid && strings.TrimSpace(p.String) != "" {
			parts = append(parts, p.String)
		}
	}
	if len(parts) == 0 {
		return "Sin ubicación"
	}
	return strings.Join(parts, " / ")
}

func stamp(now time.Time) string {
	return now.Format("2006-01-02")
}

func count(n int) string { return strconv.Itoa(n) }

func InventoryReport(equipment []dto.EquipmentDTO, now time.Time) *Document {
	var active, maintenance, outOfOrder int
	rows := make([][]string, 0, len(equipment))
	for _, e := range equipment {
		switch e.Estado {
		case constants.EquipmentActive:
			active++
		case constants.EquipmentMaintenance:
			maintenance++
		case constants.EquipmentOutOfOrder:
			outOfOrder++
		}
		year := "Sin año"
		if e.AnoFabricacion.Valid {
			year = strconv.Itoa(e.AnoFabricacion.Int)
		}
		rows = append(rows, []string{
			orDefault(e.Marca, "Sin marca"),
			orDefault(e.Modelo, "Sin modelo"),
			orDefault(e.NumeroSerie, "Sin serie"),
			Location(e),
			orText(e.Estado, "Sin estado"),
			year,
			orDefault(e.Categoria, "Sin categoría"),
		})
	}

	return &Document{
		Name:         "inventario_equipos_" + stamp(now),
		Title:        "REPORTE DE INVENTARIO",
		Subtitle:     SystemSubtitle,
		GeneratedAt:  now,
		SummaryTitle: "RESUMEN GENERAL",
		Summary: []Field{
			{"Total de Equipos", count(len(equipment))},
			{"Equipos Activos", count(active)},
			{"En Mantenimiento", count(maintenance)},
			{"Fuera de Servicio", count(outOfOrder)},
		},
		Table: Table{
			Title:   "DETALLE DE EQUIPOS",
			Headers: []string{"Marca", "Modelo", "S/N", "Ubicación", "Estado", "Año", "Categoría"},
			Widths:  []float64{1.1, 1.1, 1, 1.6, 1, 0.6, 1.1},
			Rows:    rows,
		},
		Accent: ColorBlue,
	}
}

func MaintenanceListing(maintenance []dto.MaintenanceDTO, now time.Time) *Document {
	var preventive, corrective, done, pending int
	var cost float64
	rows := make([][]string, 0, len(maintenance))
	for _, m := range maintenance {
		switch m.Tipo {
		case constants.MaintenancePreventive:
			preventive++
		case constants.MaintenanceCorrective:
			corrective++
		}
		switch m.Estado {
		case constants.MaintenanceCompleted:
			done++
		case constants.MaintenanceScheduled:
			pending++
		}
		if m.Costo.Valid {
			cost += m.Costo.Float64
		}

		brand, model := "Equipo no encontrado", ""
		if m.Equipo != nil {
			brand = orDefault(m.Equipo.Marca, m.Equipo.Nombre)
			model = orDefault(m.Equipo.Modelo, "Sin modelo")
		}
		scheduled := "Sin fecha"
		if !m.FechaProgramada.IsZero() {
			scheduled = m.FechaProgramada.Time().Format(displayDate)
		}
		description := "Sin descripción"
		if m.Descripcion.Valid && m.Descripcion.String != "" {
			description = truncate(m.Descripcion.String, 30)
		}
		rows = append(rows, []string{
			brand,
			model,
			orText(m.Tipo, "Sin tipo"),
			orDefault(m.Tecnico, "Sin técnico"),
			scheduled,
			orText(m.Estado, "Sin estado"),
			description,
		})
	}

	return &Document{
		Name:         "mantenimientos_" + stamp(now),
		Title:        "REPORTE DE MANTENIMIENTOS",
		Subtitle:     SystemSubtitle,
		GeneratedAt:  now,
		SummaryTitle: "RESUMEN DE MANTENIMIENTOS",
		Summary: []Field{
			{"Total de Mantenimientos", count(len(maintenance))},
			{"Preventivos", count(preventive)},
			{"Correctivos", count(corrective)},
			{"Completados", count(done)},
			{"Pendientes", count(pending)},
			{"Costo Total", Money(cost)},
		},
		Table: Table{
			Title:   "DETALLE DE MANTENIMIENTOS",
			Headers: []string{"Equipo", "Modelo", "Tipo", "Técnico", "Fecha Prog.", "Estado", "Descripción"},
			Widths:  []float64{1.1, 1, 0.9, 1.1, 0.9, 0.9, 1.8},
			Rows:    rows,
		},
		Accent: ColorGreen,
	}
}

func EquipmentEvents(equipment dto.EquipmentDTO, events []dto.EventDTO, now time.Time) *Document {
	var resolved, pending, critical int
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		if e.Estado == constants.EventResolved {
			resolved++
		}
		if constants.IsPendingEvent(e.Estado) {
			pending++
		}
		if e.Prioridad == constants.PriorityHigh {
			critical++
		}
		date := "Sin fecha"
		if !e.FechaEvento.IsZero() {
			date = e.FechaEvento.In(now.Location()).Format(displayDate)
		}
		title := "Sin título"
		if e.Titulo != "" {
			title = truncate(e.Titulo, 25)
		}
		rows = append(rows, []string{
			orText(e.TipoEvento, "Sin tipo"),
			orText(e.Prioridad, "Sin prioridad"),
			orText(e.Estado, "Sin estado"),
			date,
			orDefault(e.TecnicoResponsable, "Sin técnico"),
			title,
		})
	}

	brand := orDefault(equipment.Marca, "equipo")
	serial := orDefault(equipment.NumeroSerie, "sin_serie")

	return &Document{
		Name:     fmt.Sprintf("eventos_%s_%s_%s", fileSafe(brand), fileSafe(serial), stamp(now)),
		Title:    "REPORTE DE EVENTOS",
		Subtitle: orDefault(equipment.Marca, "Sin marca") + " " + orDefault(equipment.Modelo, "Sin modelo"),
		Info: []string{
			"S/N: " + orDefault(equipment.NumeroSerie, "Sin serie"),
			"Ubicación: " + Location(equipment),
		},
		GeneratedAt:  now,
		SummaryTitle: "RESUMEN DE EVENTOS",
		Summary: []Field{
			{"Total de Eventos", count(len(events))},
			{"Eventos Resueltos", count(resolved)},
			{"Eventos Pendientes", count(pending)},
			{"Eventos Críticos", count(critical)},
		},
		Table: Table{
			Title:     "DETALLE DE EVENTOS",
			Headers:   []string{"Tipo", "Prioridad", "Estado", "Fecha", "Técnico", "Título"},
			Widths:    []float64{1.3, 0.8, 0.9, 0.8, 1.2, 1.8},
			Rows:      rows,
			EmptyText: "No hay eventos registrados para este equipo.",
		},
		Accent: ColorRed,
	}
}

func DepartmentCostsReport(costs dto.DepartmentCostsDTO, now time.Time) *Document {
	rows := make([][]string, 0, len(costs.Departamentos))
	for _, d := range costs.Departamentos {
		rows = append(rows, []string{
			d.Departamento,
			count(d.Equipos),
			Money(d.CostoMantenimiento),
			Money(d.CostoReparaciones),
			Money(d.CostoTotal),
			Money(d.ValorAdquisicion),
		})
	}

	return &Document{
		Name:         "reporte_costos_" + stamp(now),
		Title:        "REPORTE DE COSTOS",
		Subtitle:     "Análisis Financiero del Equipamiento Médico",
		GeneratedAt:  now,
		SummaryTitle: "RESUMEN DE COSTOS",
		Summary: []Field{
			{"Departamentos", count(len(costs.Departamentos))},
			{"TOTAL GENERAL", Money(costs.TotalGeneral)},
		},
		Table: Table{
			Title:   "COSTOS POR DEPARTAMENTO",
			Headers: []string{"Departamento", "Equipos", "Mantenimiento", "Reparaciones", "Total", "Valor Adquisición"},
			Widths:  []float64{1.6, 0.7, 1.1, 1.1, 1.1, 1.2},
			Rows:    rows,
		},
		Accent:     ColorAmber,
		NotesTitle: "RECOMENDACIONES",
		Notes:      costs.Recomendaciones,
	}
}

// fileSafe убирает из части имени файла символы, недопустимые в Content-Disposition.
func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}
