package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/export"
	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/validation"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestImportReadsInventoryExport(t *testing.T) {
	f := newFixture()
	existingID := uuid.New()
	f.equipment.items = []dto.EquipmentDTO{{
		ID: existingID, Nombre: "Monitor viejo", NumeroSerie: null.StringFrom("SN-1"), Estado: constants.EquipmentActive,
	}}

	exported := []dto.EquipmentDTO{
		{
			Nombre: "Monitor", Marca: null.StringFrom("Philips"), Modelo: null.StringFrom("MX450"),
			NumeroSerie: null.StringFrom("sn-1"), Estado: constants.EquipmentMaintenance,
			Edificio: null.StringFrom("Torre A"), Piso: null.StringFrom("3"),
		},
		{
			Nombre: "Bomba", Marca: null.StringFrom("Baxter"), NumeroSerie: null.StringFrom("SN-2"),
			Estado: constants.EquipmentActive, AnoFabricacion: null.IntFrom(2018),
		},
		{Nombre: "Sin datos", Estado: constants.EquipmentActive},
	}
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXRenderer().Render(&buf, export.InventoryReport(exported, fixedNow)))

	svc := NewEquipmentImportService(newBase(f, nil), f.store, validation.New(), zap.NewNop())
	result, err := svc.Import(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Actualizados)
	assert.Equal(t, 1, result.Creados)
	assert.Equal(t, 1, result.Omitidos)
	assert.Empty(t, result.Errores)

	updated, err := f.equipment.FindByID(context.Background(), existingID)
	require.NoError(t, err)
	assert.Equal(t, "Philips MX450", updated.Nombre)
	assert.Equal(t, constants.EquipmentMaintenance, updated.Estado)
	assert.Equal(t, null.StringFrom("Torre A"), updated.Edificio)
	assert.Equal(t, null.StringFrom("3"), updated.Piso)

	created, err := f.equipment.ListByState(context.Background(), constants.EquipmentActive)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Baxter", created[0].Nombre)
	assert.Equal(t, null.IntFrom(2018), created[0].AnoFabricacion)
}

func TestImportReportsInvalidRows(t *testing.T) {
	x := excelize.NewFile()
	defer x.Close()
	rows := [][]interface{}{
		{"Inventario 2025"},
		{"Nombre", "N° Serie", "Estado", "Valor Adquisición"},
		{"Desfibrilador", "D-1", "roto", "$1.500"},
		{"Ecógrafo", "E-1", "Fuera de servicio", "$12.345,50"},
		{"TOTAL", "", "", ""},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, x.SetSheetRow("Sheet1", cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, x.Write(&buf))

	f := newFixture()
	svc := NewEquipmentImportService(newBase(f, nil), f.store, validation.New(), zap.NewNop())
	result, err := svc.Import(context.Background(), &buf)
	require.NoError(t, err)

	require.Len(t, result.Errores, 1)
	assert.Equal(t, 3, result.Errores[0].Fila)
	assert.Equal(t, 1, result.Creados)
	assert.Equal(t, 1, result.Omitidos)

	require.Len(t, f.equipment.items, 1)
	assert.Equal(t, constants.EquipmentOutOfOrder, f.equipment.items[0].Estado)
	assert.Equal(t, null.Float64From(12345.5), f.equipment.items[0].CostoAdquisicion)
}

func TestImportKeepsColumnsMissingFromSheet(t *testing.T) {
	f := newFixture()
	existingID := uuid.New()
	f.equipment.items = []dto.EquipmentDTO{{
		ID: existingID, Nombre: "Monitor viejo", NumeroSerie: null.StringFrom("SN-1"),
		Marca:       null.StringFrom("Philips"),
		Estado:      constants.EquipmentOutOfOrder,
		Potencia:    null.StringFrom("50W"),
		ValorActual: null.Float64From(900),
		Notas:       null.StringFrom("pantalla reemplazada"),
		Archivos:    []string{"/uploads/equipment/manual.pdf"},
		UpdatedAt:   fixedNow.Add(-time.Hour),
	}}

	x := excelize.NewFile()
	defer x.Close()
	rows := [][]interface{}{
		{"Nombre", "N° Serie"},
		{"Monitor de signos", "sn-1"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, x.SetSheetRow("Sheet1", cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, x.Write(&buf))

	svc := NewEquipmentImportService(newBase(f, nil), f.store, validation.New(), zap.NewNop())
	result, err := svc.Import(context.Background(), &buf)
	require.NoError(t, err)
	require.Empty(t, result.Errores)
	assert.Equal(t, 1, result.Actualizados)

	updated, err := f.equipment.FindByID(context.Background(), existingID)
	require.NoError(t, err)
	assert.Equal(t, "Monitor de signos", updated.Nombre)
	assert.Equal(t, null.StringFrom("sn-1"), updated.NumeroSerie)
	assert.Equal(t, null.StringFrom("Philips"), updated.Marca)
	assert.Equal(t, constants.EquipmentOutOfOrder, updated.Estado)
	assert.Equal(t, null.StringFrom("50W"), updated.Potencia)
	assert.Equal(t, null.Float64From(900), updated.ValorActual)
	assert.Equal(t, null.StringFrom("pantalla reemplazada"), updated.Notas)
	assert.Equal(t, []string{"/uploads/equipment/manual.pdf"}, updated.Archivos)
}

func TestImportWithoutHeader(t *testing.T) {
	f := newFixture()
	svc := NewEquipmentImportService(newBase(f, nil), f.store, validation.New(), zap.NewNop())

	_, err := svc.Import(context.Background(), bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}

func TestParseMoney(t *testing.T) {
	for in, want := range map[string]float64{
		"$1.500":     1500,
		"$12.345,50": 12345.5,
		"99.5":       99.5,
		"250":        250,
	} {
		got, ok := parseMoney(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := parseMoney("Sin costo")
	assert.False(t, ok)
}
