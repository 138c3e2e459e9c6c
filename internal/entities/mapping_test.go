package entities

import (
	"encoding/json"
	"testing"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2025, time.January, 31, 10, 30, 0, 0, time.UTC)

func fullEquipment() Equipment {
	return Equipment{
		ID:                   uuid.MustParse("3b2d4c1e-8f7a-4e5b-9c6d-0a1b2c3d4e5f"),
		Name:                 "Monitor multiparamétrico",
		Brand:                null.StringFrom("Philips"),
		Model:                null.StringFrom("IntelliVue MX450"),
		SerialNumber:         null.StringFrom("PH-2020-001"),
		InternalCode:         null.StringFrom("UTI-MON-01"),
		Category:             null.StringFrom("Monitoreo"),
		State:                "activo",
		ManufactureYear:      null.IntFrom(2020),
		Power:                null.StringFrom("60W"),
		Voltage:              null.StringFrom("220V"),
		Dimensions:           null.StringFrom("30x25x15"),
		Weight:               null.StringFrom("3.5kg"),
		Certifications:       null.StringFrom("CE, FDA"),
		WarrantyExpiry:       types.NullDateFrom(types.NewDate(2026, time.March, 1)),
		Building:             null.StringFrom("Torre A"),
		Floor:                null.StringFrom("3"),
		Room:                 null.StringFrom("UTI-2"),
		Bed:                  null.StringFrom("12"),
		Responsible:          null.StringFrom("Dra. Pérez"),
		Department:           null.StringFrom("UTI"),
		MaintenanceFrequency: null.StringFrom("semestral"),
		MaintenanceProvider:  null.StringFrom("MedService"),
		AvgMaintenanceCost:   null.Float64From(350.5),
		AcquisitionCost:      null.Float64From(12000),
		CurrentValue:         null.Float64From(8000),
		Notes:                null.StringFrom("Sin observaciones"),
		Files:                []string{"manual.pdf"},
		CreatedBy:            null.StringFrom("admin@hospital.local"),
		CreatedAt:            stamp,
		UpdatedAt:            stamp,
	}
}

func TestEquipmentRoundTrip(t *testing.T) {
	t.Run("все поля заполнены", func(t *testing.T) {
		e := fullEquipment()
		assert.Equal(t, e, EquipmentFromDTO(e.ToDTO()))
	})

	t.Run("все необязательные поля пусты", func(t *testing.T) {
		e := Equipment{ID: uuid.New(), Name: "Bomba de infusión", State: "mantenimiento", CreatedAt: stamp, UpdatedAt: stamp}
		back := EquipmentFromDTO(e.ToDTO())
		assert.Equal(t, e, back)
		assert.False(t, back.Brand.Valid, "отсутствующее значение остаётся null")
		assert.Nil(t, back.Files)
	})

	t.Run("через JSON клиента", func(t *testing.T) {
		e := fullEquipment()
		raw, err := json.Marshal(e.ToDTO())
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"añoFabricacion":2020`)
		assert.Contains(t, string(raw), `"fechaVencimientoGarantia":"2026-03-01"`)

		var decoded dto.EquipmentDTO
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, e, EquipmentFromDTO(decoded))
	})

	t.Run("через JSON хранилища", func(t *testing.T) {
		e := fullEquipment()
		raw, err := json.Marshal(e)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"numero_serie":"PH-2020-001"`)

		var decoded Equipment
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, e, decoded)
	})
}

func TestEquipmentValues_ExcludesGeneratedColumns(t *testing.T) {
	values := fullEquipment().Values()
	for _, col := range []string{"id", "created_at", "updated_at"} {
		_, ok := values[col]
		assert.False(t, ok, "колонка %s заполняется хранилищем", col)
	}
	// все остальные колонки таблицы присутствуют
	assert.Len(t, values, len(EquipmentColumns)-3)
}

func TestMaintenanceRoundTrip(t *testing.T) {
	m := Maintenance{
		ID:            uuid.New(),
		EquipmentID:   uuid.New(),
		Type:          "preventivo",
		Technician:    null.StringFrom("Juan Gómez"),
		ScheduledDate: types.NewDate(2025, time.February, 10),
		CompletedDate: types.NullDate{},
		Description:   null.String{},
		Cost:          null.Float64From(0),
		State:         "programado",
		CreatedAt:     stamp,
		UpdatedAt:     stamp,
	}
	assert.Equal(t, m, MaintenanceFromDTO(m.ToDTO()))

	m.Equipment = &EquipmentSummary{ID: m.EquipmentID, Name: "Desfibrilador", Brand: null.StringFrom("Zoll")}
	back := MaintenanceFromDTO(m.ToDTO())
	assert.Equal(t, m, back)
	assert.True(t, back.Cost.Valid, "нулевая стоимость не превращается в null")
}

func TestMaintenanceJSON_EmbeddedEquipment(t *testing.T) {
	raw := `{"id":"6f1c1a57-6c43-4c8f-9d1b-0b8f5a1d2c3e","equipo_id":"3b2d4c1e-8f7a-4e5b-9c6d-0a1b2c3d4e5f",
		"tipo":"correctivo","tecnico":null,"fecha_programada":"2025-02-10","fecha_completado":null,
		"descripcion":"Cambio de batería","costo":120.5,"estado":"en_proceso",
		"created_at":"2025-01-31T10:30:00+00:00","updated_at":"2025-01-31T10:30:00+00:00",
		"equipos":{"id":"3b2d4c1e-8f7a-4e5b-9c6d-0a1b2c3d4e5f","nombre":"Monitor","marca":"Philips","modelo":null}}`

	var m Maintenance
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	require.NotNil(t, m.Equipment)
	assert.Equal(t, "Monitor", m.Equipment.Name)
	assert.False(t, m.Equipment.Model.Valid)
	assert.Equal(t, "2025-02-10", m.ScheduledDate.String())
	assert.False(t, m.Technician.Valid)
}

func TestEventRoundTrip(t *testing.T) {
	e := Event{
		ID:              uuid.New(),
		EquipmentID:     uuid.New(),
		Type:            "Falla",
		Title:           "No enciende",
		Description:     null.StringFrom("La pantalla queda en negro"),
		OccurredAt:      stamp,
		Priority:        "Alta",
		State:           "Resuelto",
		Technician:      null.StringFrom("Ana Ruiz"),
		RepairCost:      null.Float64From(80),
		ResolvedAt:      null.TimeFrom(stamp.Add(48 * time.Hour)),
		ResolutionNotes: null.StringFrom("Fuente reemplazada"),
		CreatedAt:       stamp,
		UpdatedAt:       stamp,
	}
	assert.Equal(t, e, EventFromDTO(e.ToDTO()))

	orphan := e
	orphan.Equipment = nil
	assert.Nil(t, EventFromDTO(orphan.ToDTO()).Equipment, "сирота остаётся без аппарата")
}

func TestUserRoundTrip(t *testing.T) {
	u := User{
		ID:          uuid.New(),
		Email:       "tecnico@hospital.local",
		Password:    "$2a$10$hash",
		Name:        "Luis",
		LastName:    null.StringFrom("Martínez"),
		Role:        "Técnico",
		Status:      "Activo",
		JoinedAt:    types.NullDateFrom(types.NewDate(2023, time.May, 2)),
		LastAccess:  null.TimeFrom(stamp),
		Permissions: null.JSONFrom([]byte(`{"reportes":true}`)),
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
	assert.Equal(t, u, UserFromDTO(u.ToDTO()))

	raw, err := json.Marshal(u.ToDTO())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password", "пароль не отдаётся клиенту")
	assert.NotContains(t, string(raw), "$2a$10$hash")

	_, hasAccess := u.Values()["ultimo_acceso"]
	assert.False(t, hasAccess)
}
