package entities

import (
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

const MaintenanceTable = "mantenimientos"

var MaintenanceColumns = []string{
	"id", "equipo_id", "tipo", "tecnico", "fecha_programada", "fecha_completado",
	"descripcion", "costo", "estado", "created_at", "updated_at",
}

var MaintenanceSearchColumns = []string{"tecnico", "descripcion"}

type Maintenance struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	EquipmentID   uuid.UUID      `json:"equipo_id" db:"equipo_id"`
	Type          string         `json:"tipo" db:"tipo"`
	Technician    null.String    `json:"tecnico" db:"tecnico"`
	ScheduledDate types.Date     `json:"fecha_programada" db:"fecha_programada"`
	CompletedDate types.NullDate `json:"fecha_completado" db:"fecha_completado"`
	Description   null.String    `json:"descripcion" db:"descripcion"`
	Cost          null.Float64   `json:"costo" db:"costo"`
	State         string         `json:"estado" db:"estado"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`

	// Встроенный ресурс, не колонка таблицы
	Equipment *EquipmentSummary `json:"equipos,omitempty" db:"-"`
}

func (m Maintenance) Values() map[string]interface{} {
	return map[string]interface{}{
		"equipo_id":        m.EquipmentID,
		"tipo":             m.Type,
		"tecnico":          m.Technician,
		"fecha_programada": m.ScheduledDate,
		"fecha_completado": m.CompletedDate,
		"descripcion":      m.Description,
		"costo":            m.Cost,
		"estado":           m.State,
	}
}

func (m Maintenance) EquipmentRef() uuid.UUID { return m.EquipmentID }

func (m *Maintenance) AttachEquipment(s *EquipmentSummary) { m.Equipment = s }

func (m Maintenance) ToDTO() dto.MaintenanceDTO {
	return dto.MaintenanceDTO{
		ID:              m.ID,
		EquipoID:        m.EquipmentID,
		Tipo:            m.Type,
		Tecnico:         m.Technician,
		FechaProgramada: m.ScheduledDate,
		FechaCompletado: m.CompletedDate,
		Descripcion:     m.Description,
		Costo:           m.Cost,
		Estado:          m.State,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Equipo:          m.Equipment.ToDTO(),
	}
}

func MaintenanceFromDTO(d dto.MaintenanceDTO) Maintenance {
	return Maintenance{
		ID:            d.ID,
		EquipmentID:   d.EquipoID,
		Type:          d.Tipo,
		Technician:    d.Tecnico,
		ScheduledDate: d.FechaProgramada,
		CompletedDate: d.FechaCompletado,
		Description:   d.Descripcion,
		Cost:          d.Costo,
		State:         d.Estado,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Equipment:     EquipmentSummaryFromDTO(d.Equipo),
	}
}
