package entities

import (
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

const EquipmentTable = "equipos"

// EquipmentColumns - колонки таблицы equipos в порядке выборки.
var EquipmentColumns = []string{
	"id", "nombre", "marca", "modelo", "numero_serie", "codigo_interno", "categoria", "estado",
	"año_fabricacion", "potencia", "voltaje", "dimensiones", "peso", "certificaciones",
	"fecha_vencimiento_garantia", "edificio", "piso", "sala", "cama", "responsable", "departamento",
	"frecuencia_mantenimiento", "proveedor_mantenimiento", "costo_promedio_mantenimiento",
	"costo_adquisicion", "valor_actual", "notas", "archivos", "created_by", "created_at", "updated_at",
}

// EquipmentSearchColumns - по ним ищет строка поиска.
var EquipmentSearchColumns = []string{"nombre", "marca", "modelo", "numero_serie", "codigo_interno", "sala"}

type Equipment struct {
	ID                   uuid.UUID      `json:"id" db:"id"`
	Name                 string         `json:"nombre" db:"nombre"`
	Brand                null.String    `json:"marca" db:"marca"`
	Model                null.String    `json:"modelo" db:"modelo"`
	SerialNumber         null.String    `json:"numero_serie" db:"numero_serie"`
	InternalCode         null.String    `json:"codigo_interno" db:"codigo_interno"`
	Category             null.String    `json:"categoria" db:"categoria"`
	State                string         `json:"estado" db:"estado"`
	ManufactureYear      null.Int       `json:"año_fabricacion" db:"año_fabricacion"`
	Power                null.String    `json:"potencia" db:"potencia"`
	Voltage              null.String    `json:"voltaje" db:"voltaje"`
	Dimensions           null.String    `json:"dimensiones" db:"dimensiones"`
	Weight               null.String    `json:"peso" db:"peso"`
	Certifications       null.String    `json:"certificaciones" db:"certificaciones"`
	WarrantyExpiry       types.NullDate `json:"fecha_vencimiento_garantia" db:"fecha_vencimiento_garantia"`
	Building             null.String    `json:"edificio" db:"edificio"`
	Floor                null.String    `json:"piso" db:"piso"`
	Room                 null.String    `json:"sala" db:"sala"`
	Bed                  null.String    `json:"cama" db:"cama"`
	Responsible          null.String    `json:"responsable" db:"responsable"`
	Department           null.String    `json:"departamento" db:"departamento"`
	MaintenanceFrequency null.String    `json:"frecuencia_mantenimiento" db:"frecuencia_mantenimiento"`
	MaintenanceProvider  null.String    `json:"proveedor_mantenimiento" db:"proveedor_mantenimiento"`
	AvgMaintenanceCost   null.Float64   `json:"costo_promedio_mantenimiento" db:"costo_promedio_mantenimiento"`
	AcquisitionCost      null.Float64   `json:"costo_adquisicion" db:"costo_adquisicion"`
	CurrentValue         null.Float64   `json:"valor_actual" db:"valor_actual"`
	Notes                null.String    `json:"notas" db:"notas"`
	Files                []string       `json:"archivos" db:"archivos"`
	CreatedBy            null.String    `json:"created_by" db:"created_by"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" db:"updated_at"`
}

// EquipmentSummary - встроенный ресурс equipos!equipo_id(id,nombre,marca,modelo).
type EquipmentSummary struct {
	ID    uuid.UUID   `json:"id" db:"id"`
	Name  string      `json:"nombre" db:"nombre"`
	Brand null.String `json:"marca" db:"marca"`
	Model null.String `json:"modelo" db:"modelo"`
}

const EquipmentEmbed = "equipos!equipo_id(id,nombre,marca,modelo)"

// Values - записываемые колонки; id и метки времени проставляет хранилище.
func (e Equipment) Values() map[string]interface{} {
	return map[string]interface{}{
		"nombre":                       e.Name,
		"marca":                        e.Brand,
		"modelo":                       e.Model,
		"numero_serie":                 e.SerialNumber,
		"codigo_interno":               e.InternalCode,
		"categoria":                    e.Category,
		"estado":                       e.State,
		"año_fabricacion":              e.ManufactureYear,
		"potencia":                     e.Power,
		"voltaje":                      e.Voltage,
		"dimensiones":                  e.Dimensions,
		"peso":                         e.Weight,
		"certificaciones":              e.Certifications,
		"fecha_vencimiento_garantia":   e.WarrantyExpiry,
		"edificio":                     e.Building,
		"piso":                         e.Floor,
		"sala":                         e.Room,
		"cama":                         e.Bed,
		"responsable":                  e.Responsible,
		"departamento":                 e.Department,
		"frecuencia_mantenimiento":     e.MaintenanceFrequency,
		"proveedor_mantenimiento":      e.MaintenanceProvider,
		"costo_promedio_mantenimiento": e.AvgMaintenanceCost,
		"costo_adquisicion":            e.AcquisitionCost,
		"valor_actual":                 e.CurrentValue,
		"notas":                        e.Notes,
		"archivos":                     e.Files,
		"created_by":                   e.CreatedBy,
	}
}

func (e Equipment) ToDTO() dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:                         e.ID,
		Nombre:                     e.Name,
		Marca:                      e.Brand,
		Modelo:                     e.Model,
		NumeroSerie:                e.SerialNumber,
		CodigoInterno:              e.InternalCode,
		Categoria:                  e.Category,
		Estado:                     e.State,
		AnoFabricacion:             e.ManufactureYear,
		Potencia:                   e.Power,
		Voltaje:                    e.Voltage,
		Dimensiones:                e.Dimensions,
		Peso:                       e.Weight,
		Certificaciones:            e.Certifications,
		FechaVencimientoGarantia:   e.WarrantyExpiry,
		Edificio:                   e.Building,
		Piso:                       e.Floor,
		Sala:                       e.Room,
		Cama:                       e.Bed,
		Responsable:                e.Responsible,
		Departamento:               e.Department,
		FrecuenciaMantenimiento:    e.MaintenanceFrequency,
		ProveedorMantenimiento:     e.MaintenanceProvider,
		CostoPromedioMantenimiento: e.AvgMaintenanceCost,
		CostoAdquisicion:           e.AcquisitionCost,
		ValorActual:                e.CurrentValue,
		Notas:                      e.Notes,
		Archivos:                   e.Files,
		CreatedBy:                  e.CreatedBy,
		CreatedAt:                  e.CreatedAt,
		UpdatedAt:                  e.UpdatedAt,
	}
}

func EquipmentFromDTO(d dto.EquipmentDTO) Equipment {
	return Equipment{
		ID:                   d.ID,
		Name:                 d.Nombre,
		Brand:                d.Marca,
		Model:                d.Modelo,
		SerialNumber:         d.NumeroSerie,
		InternalCode:         d.CodigoInterno,
		Category:             d.Categoria,
		State:                d.Estado,
		ManufactureYear:      d.AnoFabricacion,
		Power:                d.Potencia,
		Voltage:              d.Voltaje,
		Dimensions:           d.Dimensiones,
		Weight:               d.Peso,
		Certifications:       d.Certificaciones,
		WarrantyExpiry:       d.FechaVencimientoGarantia,
		Building:             d.Edificio,
		Floor:                d.Piso,
		Room:                 d.Sala,
		Bed:                  d.Cama,
		Responsible:          d.Responsable,
		Department:           d.Departamento,
		MaintenanceFrequency: d.FrecuenciaMantenimiento,
		MaintenanceProvider:  d.ProveedorMantenimiento,
		AvgMaintenanceCost:   d.CostoPromedioMantenimiento,
		AcquisitionCost:      d.CostoAdquisicion,
		CurrentValue:         d.ValorActual,
		Notes:                d.Notas,
		Files:                d.Archivos,
		CreatedBy:            d.CreatedBy,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func (s *EquipmentSummary) ToDTO() *dto.EquipmentSummaryDTO {
	if s == nil {
		return nil
	}
	return &dto.EquipmentSummaryDTO{ID: s.ID, Nombre: s.Name, Marca: s.Brand, Modelo: s.Model}
}

func EquipmentSummaryFromDTO(d *dto.EquipmentSummaryDTO) *EquipmentSummary {
	if d == nil {
		return nil
	}
	return &EquipmentSummary{ID: d.ID, Name: d.Nombre, Brand: d.Marca, Model: d.Modelo}
}

// Summary - короткая карточка для склейки с обслуживанием и событиями.
func (e Equipment) Summary() *EquipmentSummary {
	return &EquipmentSummary{ID: e.ID, Name: e.Name, Brand: e.Brand, Model: e.Model}
}
