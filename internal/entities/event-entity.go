package entities

import (
	"time"

	"medical-inventory/internal/dto"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

const EventTable = "historial_eventos"

var EventColumns = []string{
	"id", "equipo_id", "tipo_evento", "titulo", "descripcion", "fecha_evento", "prioridad", "estado",
	"tecnico_responsable", "costo_reparacion", "fecha_resolucion", "observaciones_resolucion",
	"created_at", "updated_at",
}

var EventSearchColumns = []string{"titulo", "descripcion", "tecnico_responsable"}

type Event struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	EquipmentID     uuid.UUID    `json:"equipo_id" db:"equipo_id"`
	Type            string       `json:"tipo_evento" db:"tipo_evento"`
	Title           string       `json:"titulo" db:"titulo"`
	Description     null.String  `json:"descripcion" db:"descripcion"`
	OccurredAt      time.Time    `json:"fecha_evento" db:"fecha_evento"`
	Priority        string       `json:"prioridad" db:"prioridad"`
	State           string       `json:"estado" db:"estado"`
	Technician      null.String  `json:"tecnico_responsable" db:"tecnico_responsable"`
	RepairCost      null.Float64 `json:"costo_reparacion" db:"costo_reparacion"`
	ResolvedAt      null.Time    `json:"fecha_resolucion" db:"fecha_resolucion"`
	ResolutionNotes null.String  `json:"observaciones_resolucion" db:"observaciones_resolucion"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`

	Equipment *EquipmentSummary `json:"equipos,omitempty" db:"-"`
}

func (e Event) Values() map[string]interface{} {
	return map[string]interface{}{
		"equipo_id":                e.EquipmentID,
		"tipo_evento":              e.Type,
		"titulo":                   e.Title,
		"descripcion":              e.Description,
		"fecha_evento":             e.OccurredAt,
		"prioridad":                e.Priority,
		"estado":                   e.State,
		"tecnico_responsable":      e.Technician,
		"costo_reparacion":         e.RepairCost,
		"fecha_resolucion":         e.ResolvedAt,
		"observaciones_resolucion": e.ResolutionNotes,
	}
}

func (e Event) EquipmentRef() uuid.UUID { return e.EquipmentID }

func (e *Event) AttachEquipment(s *EquipmentSummary) { e.Equipment = s }

func (e Event) ToDTO() dto.EventDTO {
	return dto.EventDTO{
		ID:                      e.ID,
		EquipoID:                e.EquipmentID,
		TipoEvento:              e.Type,
		Titulo:                  e.Title,
		Descripcion:             e.Description,
		FechaEvento:             e.OccurredAt,
		Prioridad:               e.Priority,
		Estado:                  e.State,
		TecnicoResponsable:      e.Technician,
		CostoReparacion:         e.RepairCost,
		FechaResolucion:         e.ResolvedAt,
		ObservacionesResolucion: e.ResolutionNotes,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
		Equipo:                  e.Equipment.ToDTO(),
	}
}

func EventFromDTO(d dto.EventDTO) Event {
	return Event{
		ID:              d.ID,
		EquipmentID:     d.EquipoID,
		Type:            d.TipoEvento,
		Title:           d.Titulo,
		Description:     d.Descripcion,
		OccurredAt:      d.FechaEvento,
		Priority:        d.Prioridad,
		State:           d.Estado,
		Technician:      d.TecnicoResponsable,
		RepairCost:      d.CostoReparacion,
		ResolvedAt:      d.FechaResolucion,
		ResolutionNotes: d.ObservacionesResolucion,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Equipment:       EquipmentSummaryFromDTO(d.Equipo),
	}
}
