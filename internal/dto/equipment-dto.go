package dto

import (
	"time"

	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// EquipmentDTO - карточка аппарата в том виде, в котором её видит клиент.
type EquipmentDTO struct {
	ID                         uuid.UUID      `json:"id"`
	Nombre                     string         `json:"nombre"`
	Marca                      null.String    `json:"marca"`
	Modelo                     null.String    `json:"modelo"`
	NumeroSerie                null.String    `json:"numeroSerie"`
	CodigoInterno              null.String    `json:"codigoInterno"`
	Categoria                  null.String    `json:"categoria"`
	Estado                     string         `json:"estado"`
	AnoFabricacion             null.Int       `json:"añoFabricacion"`
	Potencia                   null.String    `json:"potencia"`
	Voltaje                    null.String    `json:"voltaje"`
	Dimensiones                null.String    `json:"dimensiones"`
	Peso                       null.String    `json:"peso"`
	Certificaciones            null.String    `json:"certificaciones"`
	FechaVencimientoGarantia   types.NullDate `json:"fechaVencimientoGarantia"`
	Edificio                   null.String    `json:"edificio"`
	Piso                       null.String    `json:"piso"`
	Sala                       null.String    `json:"sala"`
	Cama                       null.String    `json:"cama"`
	Responsable                null.String    `json:"responsable"`
	Departamento               null.String    `json:"departamento"`
	FrecuenciaMantenimiento    null.String    `json:"frecuenciaMantenimiento"`
	ProveedorMantenimiento     null.String    `json:"proveedorMantenimiento"`
	CostoPromedioMantenimiento null.Float64   `json:"costoPromedioMantenimiento"`
	CostoAdquisicion           null.Float64   `json:"costoAdquisicion"`
	ValorActual                null.Float64   `json:"valorActual"`
	Notas                      null.String    `json:"notas"`
	Archivos                   []string       `json:"archivos"`
	CreatedBy                  null.String    `json:"createdBy"`
	CreatedAt                  time.Time      `json:"createdAt"`
	UpdatedAt                  time.Time      `json:"updatedAt"`
}

// EquipmentSummaryDTO - короткая карточка для списков обслуживания и событий.
type EquipmentSummaryDTO struct {
	ID     uuid.UUID   `json:"id"`
	Nombre string      `json:"nombre"`
	Marca  null.String `json:"marca"`
	Modelo null.String `json:"modelo"`
}

// CreateEquipmentDTO - данные формы создания аппарата.
type CreateEquipmentDTO struct {
	Nombre                     string         `json:"nombre" validate:"required,max=200"`
	Marca                      null.String    `json:"marca" validate:"omitempty,max=100"`
	Modelo                     null.String    `json:"modelo" validate:"omitempty,max=100"`
	NumeroSerie                null.String    `json:"numeroSerie" validate:"omitempty,max=100"`
	CodigoInterno              null.String    `json:"codigoInterno" validate:"omitempty,max=100"`
	Categoria                  null.String    `json:"categoria" validate:"omitempty,max=100"`
	Estado                     string         `json:"estado" validate:"omitempty,equipment_state"`
	AnoFabricacion             null.Int       `json:"añoFabricacion" validate:"omitempty,gte=1900,lte=2100"`
	Potencia                   null.String    `json:"potencia"`
	Voltaje                    null.String    `json:"voltaje"`
	Dimensiones                null.String    `json:"dimensiones"`
	Peso                       null.String    `json:"peso"`
	Certificaciones            null.String    `json:"certificaciones"`
	FechaVencimientoGarantia   types.NullDate `json:"fechaVencimientoGarantia"`
	Edificio                   null.String    `json:"edificio"`
	Piso                       null.String    `json:"piso"`
	Sala                       null.String    `json:"sala"`
	Cama                       null.String    `json:"cama"`
	Responsable                null.String    `json:"responsable"`
	Departamento               null.String    `json:"departamento"`
	FrecuenciaMantenimiento    null.String    `json:"frecuenciaMantenimiento"`
	ProveedorMantenimiento     null.String    `json:"proveedorMantenimiento"`
	CostoPromedioMantenimiento null.Float64   `json:"costoPromedioMantenimiento" validate:"omitempty,nonneg_money"`
	CostoAdquisicion           null.Float64   `json:"costoAdquisicion" validate:"omitempty,nonneg_money"`
	ValorActual                null.Float64   `json:"valorActual" validate:"omitempty,nonneg_money"`
	Notas                      null.String    `json:"notas"`
	Archivos                   []string       `json:"archivos" validate:"omitempty,dive,required"`
}

// UpdateEquipmentDTO - форма редактирования присылает карточку целиком.
// ExpectedUpdatedAt включает проверку на параллельное изменение.
type UpdateEquipmentDTO struct {
	CreateEquipmentDTO
	ExpectedUpdatedAt null.Time `json:"expectedUpdatedAt"`
}

// Normalize приводит пустые строки формы к null и подставляет состояние по умолчанию.
func (d *CreateEquipmentDTO) Normalize() {
	for _, s := range []*null.String{
		&d.Marca, &d.Modelo, &d.NumeroSerie, &d.CodigoInterno, &d.Categoria,
		&d.Potencia, &d.Voltaje, &d.Dimensiones, &d.Peso, &d.Certificaciones,
		&d.Edificio, &d.Piso, &d.Sala, &d.Cama, &d.Responsable, &d.Departamento,
		&d.FrecuenciaMantenimiento, &d.ProveedorMantenimiento, &d.Notas,
	} {
		*s = BlankToNull(*s)
	}
	if d.Estado == "" {
		d.Estado = constants.EquipmentActive
	}
	if len(d.Archivos) == 0 {
		d.Archivos = nil
	}
}

// ToRecord строит запись без идентификатора и меток времени.
func (d CreateEquipmentDTO) ToRecord() EquipmentDTO {
	return EquipmentDTO{
		Nombre:                     d.Nombre,
		Marca:                      d.Marca,
		Modelo:                     d.Modelo,
		NumeroSerie:                d.NumeroSerie,
		CodigoInterno:              d.CodigoInterno,
		Categoria:                  d.Categoria,
		Estado:                     d.Estado,
		AnoFabricacion:             d.AnoFabricacion,
		Potencia:                   d.Potencia,
		Voltaje:                    d.Voltaje,
		Dimensiones:                d.Dimensiones,
		Peso:                       d.Peso,
		Certificaciones:            d.Certificaciones,
		FechaVencimientoGarantia:   d.FechaVencimientoGarantia,
		Edificio:                   d.Edificio,
		Piso:                       d.Piso,
		Sala:                       d.Sala,
		Cama:                       d.Cama,
		Responsable:                d.Responsable,
		Departamento:               d.Departamento,
		FrecuenciaMantenimiento:    d.FrecuenciaMantenimiento,
		ProveedorMantenimiento:     d.ProveedorMantenimiento,
		CostoPromedioMantenimiento: d.CostoPromedioMantenimiento,
		CostoAdquisicion:           d.CostoAdquisicion,
		ValorActual:                d.ValorActual,
		Notas:                      d.Notas,
		Archivos:                   d.Archivos,
	}
}

// EquipmentDetailDTO - карточка аппарата вместе с историей.
type EquipmentDetailDTO struct {
	Equipo         EquipmentDTO     `json:"equipo"`
	Eventos        []EventDTO       `json:"eventos"`
	Mantenimientos []MaintenanceDTO `json:"mantenimientos"`
}

// ImportRowErrorDTO - строка файла, которую не удалось загрузить.
type ImportRowErrorDTO struct {
	Fila    int    `json:"fila"`
	Mensaje string `json:"mensaje"`
}

// ImportResultDTO - итог загрузки инвентаря из XLSX.
type ImportResultDTO struct {
	Hoja         string              `json:"hoja"`
	Creados      int                 `json:"creados"`
	Actualizados int                 `json:"actualizados"`
	Omitidos     int                 `json:"omitidos"`
	Errores      []ImportRowErrorDTO `json:"errores"`
}
