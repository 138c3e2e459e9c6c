package dto

import (
	"time"

	"medical-inventory/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// EventDTO - запись истории событий аппарата.
type EventDTO struct {
	ID                      uuid.UUID            `json:"id"`
	EquipoID                uuid.UUID            `json:"equipoId"`
	TipoEvento              string               `json:"tipoEvento"`
	Titulo                  string               `json:"titulo"`
	Descripcion             null.String          `json:"descripcion"`
	FechaEvento             time.Time            `json:"fechaEvento"`
	Prioridad               string               `json:"prioridad"`
	Estado                  string               `json:"estado"`
	TecnicoResponsable      null.String          `json:"tecnicoResponsable"`
	CostoReparacion         null.Float64         `json:"costoReparacion"`
	FechaResolucion         null.Time            `json:"fechaResolucion"`
	ObservacionesResolucion null.String          `json:"observacionesResolucion"`
	CreatedAt               time.Time            `json:"createdAt"`
	UpdatedAt               time.Time            `json:"updatedAt"`
	Equipo                  *EquipmentSummaryDTO `json:"equipo"`
}

type CreateEventDTO struct {
	EquipoID                uuid.UUID    `json:"equipoId" validate:"required"`
	TipoEvento              string       `json:"tipoEvento" validate:"required,event_type"`
	Titulo                  string       `json:"titulo" validate:"required,max=200"`
	Descripcion             null.String  `json:"descripcion"`
	FechaEvento             null.Time    `json:"fechaEvento"`
	Prioridad               string       `json:"prioridad" validate:"omitempty,event_priority"`
	Estado                  string       `json:"estado" validate:"omitempty,event_state"`
	TecnicoResponsable      null.String  `json:"tecnicoResponsable" validate:"omitempty,max=150"`
	CostoReparacion         null.Float64 `json:"costoReparacion" validate:"omitempty,nonneg_money"`
	FechaResolucion         null.Time    `json:"fechaResolucion"`
	ObservacionesResolucion null.String  `json:"observacionesResolucion"`
}

type UpdateEventDTO struct {
	CreateEventDTO
	ExpectedUpdatedAt null.Time `json:"expectedUpdatedAt"`
}

// Normalize подставляет значения формы по умолчанию; now - момент регистрации.
func (d *CreateEventDTO) Normalize(now time.Time) {
	d.Descripcion = BlankToNull(d.Descripcion)
	d.TecnicoResponsable = BlankToNull(d.TecnicoResponsable)
	d.ObservacionesResolucion = BlankToNull(d.ObservacionesResolucion)
	if d.Prioridad == "" {
		d.Prioridad = constants.PriorityMedium
	}
	if d.Estado == "" {
		d.Estado = constants.EventRegistered
	}
	if !d.FechaEvento.Valid {
		d.FechaEvento = null.TimeFrom(now)
	}
}

func (d CreateEventDTO) ToRecord() EventDTO {
	return EventDTO{
		EquipoID:                d.EquipoID,
		TipoEvento:              d.TipoEvento,
		Titulo:                  d.Titulo,
		Descripcion:             d.Descripcion,
		FechaEvento:             d.FechaEvento.Time,
		Prioridad:               d.Prioridad,
		Estado:                  d.Estado,
		TecnicoResponsable:      d.TecnicoResponsable,
		CostoReparacion:         d.CostoReparacion,
		FechaResolucion:         d.FechaResolucion,
		ObservacionesResolucion: d.ObservacionesResolucion,
	}
}
