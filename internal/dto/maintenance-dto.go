package dto

import (
	"time"

	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type MaintenanceDTO struct {
	ID              uuid.UUID            `json:"id"`
	EquipoID        uuid.UUID            `json:"equipoId"`
	Tipo            string               `json:"tipo"`
	Tecnico         null.String          `json:"tecnico"`
	FechaProgramada types.Date           `json:"fechaProgramada"`
	FechaCompletado types.NullDate       `json:"fechaCompletado"`
	Descripcion     null.String          `json:"descripcion"`
	Costo           null.Float64         `json:"costo"`
	Estado          string               `json:"estado"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Equipo          *EquipmentSummaryDTO `json:"equipo"`
}

type CreateMaintenanceDTO struct {
	EquipoID        uuid.UUID      `json:"equipoId" validate:"required"`
	Tipo            string         `json:"tipo" validate:"required,maintenance_type"`
	Tecnico         null.String    `json:"tecnico" validate:"omitempty,max=150"`
	FechaProgramada types.Date     `json:"fechaProgramada" validate:"required"`
	FechaCompletado types.NullDate `json:"fechaCompletado"`
	Descripcion     null.String    `json:"descripcion"`
	Costo           null.Float64   `json:"costo" validate:"omitempty,nonneg_money"`
	Estado          string         `json:"estado" validate:"omitempty,maintenance_state"`
}

type UpdateMaintenanceDTO struct {
	CreateMaintenanceDTO
	ExpectedUpdatedAt null.Time `json:"expectedUpdatedAt"`
}

func (d *CreateMaintenanceDTO) Normalize() {
	d.Tecnico = BlankToNull(d.Tecnico)
	d.Descripcion = BlankToNull(d.Descripcion)
	if d.Estado == "" {
		d.Estado = constants.MaintenanceScheduled
	}
}

// CompleteOn проставляет дату завершения, если работа отмечена выполненной без даты.
func (d *CreateMaintenanceDTO) CompleteOn(today types.Date) {
	if d.Estado == constants.MaintenanceCompleted && !d.FechaCompletado.Valid {
		d.FechaCompletado = types.NullDateFrom(today)
	}
}

func (d CreateMaintenanceDTO) ToRecord() MaintenanceDTO {
	return MaintenanceDTO{
		EquipoID:        d.EquipoID,
		Tipo:            d.Tipo,
		Tecnico:         d.Tecnico,
		FechaProgramada: d.FechaProgramada,
		FechaCompletado: d.FechaCompletado,
		Descripcion:     d.Descripcion,
		Costo:           d.Costo,
		Estado:          d.Estado,
	}
}
