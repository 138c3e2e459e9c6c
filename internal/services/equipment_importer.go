package services

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	"medical-inventory/internal/dto"
	"medical-inventory/internal/events"
	"medical-inventory/internal/repositories"
	"medical-inventory/pkg/constants"
	apperrors "medical-inventory/pkg/errors"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// StructValidator - то же, что echo.Validator.
type StructValidator interface {
	Validate(i interface{}) error
}

// Колонки файла, которые понимает импорт.
const (
	colNombre = iota
	colMarca
	colModelo
	colSerie
	colCodigo
	colCategoria
	colEstado
	colAno
	colDepartamento
	colUbicacion
	colEdificio
	colPiso
	colSala
	colResponsable
	colCosto
)

// headerAliases - подстроки заголовка в нижнем регистре. Порядок важен:
// "código interno" проверяется раньше "serie", "año" раньше остальных.
var headerAliases = []struct {
	col     int
	aliases []string
}{
	{colCodigo, []string{"código", "codigo"}},
	{colSerie, []string{"serie", "s/n"}},
	{colAno, []string{"año", "ano fab"}},
	{colNombre, []string{"nombre", "equipo"}},
	{colMarca, []string{"marca"}},
	{colModelo, []string{"modelo"}},
	{colCategoria, []string{"categor"}},
	{colEstado, []string{"estado"}},
	{colDepartamento, []string{"departamento", "servicio"}},
	{colUbicacion, []string{"ubicaci"}},
	{colEdificio, []string{"edificio"}},
	{colPiso, []string{"piso"}},
	{colSala, []string{"sala"}},
	{colResponsable, []string{"responsable"}},
	{colCosto, []string{"costo", "valor adq"}},
}

type EquipmentImportServiceInterface interface {
	Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error)
}

// EquipmentImportService загружает инвентарь из XLSX. Существующие аппараты
// сопоставляются по серийному номеру и обновляются, остальные создаются.
type EquipmentImportService struct {
	*BaseService
	repo     repositories.EquipmentRepositoryInterface
	validate StructValidator
	logger   *zap.Logger
}

func NewEquipmentImportService(base *BaseService, store *repositories.Store, validate StructValidator, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{BaseService: base, repo: store.Equipment, validate: validate, logger: logger}
}

func (s *EquipmentImportService) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("не удалось прочитать файл XLSX: %v", err)
	}
	defer f.Close()

	sheet, rows, header, columns := findHeader(f)
	if header < 0 {
		return nil, apperrors.NewInvalidInputError("не найдена шапка таблицы: нужны колонки 'Nombre' или 'Marca' и 'Serie'")
	}
	s.logger.Info("Шапка найдена", zap.String("sheet", sheet), zap.Int("row", header+1))

	existing, err := s.repo.List(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	bySerial := make(map[string]dto.EquipmentDTO, len(existing))
	for _, e := range existing {
		if e.NumeroSerie.Valid {
			bySerial[strings.ToLower(e.NumeroSerie.String)] = e
		}
	}

	result := &dto.ImportResultDTO{Hoja: sheet, Errores: []dto.ImportRowErrorDTO{}}
	author := actorEmail(ctx)

	for i := header + 1; i < len(rows); i++ {
		line := i + 1
		payload, ok := rowToEquipment(rows[i], columns)
		if !ok {
			result.Omitidos++
			continue
		}
		state := payload.Estado
		payload.Normalize()
		if err := s.validate.Validate(&payload); err != nil {
			result.Errores = append(result.Errores, dto.ImportRowErrorDTO{Fila: line, Mensaje: err.Error()})
			continue
		}

		serial := strings.ToLower(payload.NumeroSerie.String)
		if current, found := bySerial[serial]; found && payload.NumeroSerie.Valid {
			merged := overlayImported(current, payload, state)
			updated, err := s.repo.Update(ctx, current.ID, merged, null.TimeFrom(current.UpdatedAt))
			if err != nil {
				result.Errores = append(result.Errores, dto.ImportRowErrorDTO{Fila: line, Mensaje: err.Error()})
				continue
			}
			bySerial[serial] = *updated
			result.Actualizados++
			continue
		}

		rec := payload.ToRecord()

		if author != "" {
			rec.CreatedBy = null.StringFrom(author)
		}
		created, err := s.repo.Create(ctx, rec)
		if err != nil {
			result.Errores = append(result.Errores, dto.ImportRowErrorDTO{Fila: line, Mensaje: err.Error()})
			continue
		}
		if payload.NumeroSerie.Valid {
			bySerial[serial] = *created
		}
		result.Creados++
	}

	s.logger.Info("Импорт оборудования завершён",
		zap.Int("created", result.Creados),
		zap.Int("updated", result.Actualizados),
		zap.Int("skipped", result.Omitidos),
		zap.Int("errors", len(result.Errores)),
	)
	if result.Creados+result.Actualizados > 0 {
		s.Publish(ctx, events.EntityEquipment, events.ActionUpdated, uuid.Nil)
	}
	return result, nil
}

// overlayImported переносит на карточку только заполненные ячейки строки;
// остальные поля (файлы, заметки, характеристики) остаются как были.
func overlayImported(current dto.EquipmentDTO, row dto.CreateEquipmentDTO, state string) dto.EquipmentDTO {
	current.Nombre = row.Nombre
	pairs := []struct {
		dst *null.String
		src null.String
	}{
		{&current.Marca, row.Marca},
		{&current.Modelo, row.Modelo},
		{&current.NumeroSerie, row.NumeroSerie},
		{&current.CodigoInterno, row.CodigoInterno},
		{&current.Categoria, row.Categoria},
		{&current.Departamento, row.Departamento},
		{&current.Responsable, row.Responsable},
		{&current.Edificio, row.Edificio},
		{&current.Piso, row.Piso},
		{&current.Sala, row.Sala},
		{&current.Cama, row.Cama},
	}
	for _, p := range pairs {
		if p.src.Valid {
			*p.dst = p.src
		}
	}
	if state != "" {
		current.Estado = row.Estado
	}
	if row.AnoFabricacion.Valid {
		current.AnoFabricacion = row.AnoFabricacion
	}
	if row.CostoAdquisicion.Valid {
		current.CostoAdquisicion = row.CostoAdquisicion
	}
	return current
}

// findHeader ищет первую строку, где есть имя (или марка) аппарата и серийный номер.
func findHeader(f *excelize.File) (string, [][]string, int, map[int]int) {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for rIdx, row := range rows {
			columns := make(map[int]int)
			for cIdx, cell := range row {
				if col, ok := matchHeader(cell); ok {
					if _, taken := columns[col]; !taken {
						columns[col] = cIdx
					}
				}
			}
			_, hasName := columns[colNombre]
			_, hasBrand := columns[colMarca]
			_, hasSerial := columns[colSerie]
			if (hasName || hasBrand) && hasSerial {
				return sheet, rows, rIdx, columns
			}
		}
	}
	return "", nil, -1, nil
}

func matchHeader(cell string) (int, bool) {
	c := strings.ToLower(strings.TrimSpace(cell))
	if c == "" || len(c) > 40 {
		return 0, false
	}
	for _, h := range headerAliases {
		for _, alias := range h.aliases {
			if strings.Contains(c, alias) {
				return h.col, true
			}
		}
	}
	return 0, false
}

// rowToEquipment собирает форму из строки файла; false - пустая или итоговая строка.
func rowToEquipment(row []string, columns map[int]int) (dto.CreateEquipmentDTO, bool) {
	get := func(col int) string {
		idx, ok := columns[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return cellValue(row[idx])
	}
	opt := func(col int) null.String {
		if v := get(col); v != "" {
			return null.StringFrom(v)
		}
		return null.String{}
	}

	var d dto.CreateEquipmentDTO
	d.Nombre = get(colNombre)
	d.Marca = opt(colMarca)
	d.Modelo = opt(colModelo)
	d.NumeroSerie = opt(colSerie)
	d.CodigoInterno = opt(colCodigo)
	d.Categoria = opt(colCategoria)
	d.Departamento = opt(colDepartamento)
	d.Responsable = opt(colResponsable)
	d.Edificio = opt(colEdificio)
	d.Piso = opt(colPiso)
	d.Sala = opt(colSala)

	if d.Nombre == "" {
		d.Nombre = strings.TrimSpace(d.Marca.String + " " + d.Modelo.String)
	}
	if d.Nombre == "" || isTotalRow(d.Nombre) {
		return d, false
	}

	if loc := get(colUbicacion); loc != "" && !d.Edificio.Valid {
		parts := strings.Split(loc, " / ")
		targets := []*null.String{&d.Edificio, &d.Piso, &d.Sala, &d.Cama}
		for i := 0; i < len(parts) && i < len(targets); i++ {
			if p := strings.TrimSpace(parts[i]); p != "" {
				*targets[i] = null.StringFrom(p)
			}
		}
	}

	d.Estado = normalizeState(get(colEstado))
	if year, err := strconv.Atoi(get(colAno)); err == nil {
		d.AnoFabricacion = null.IntFrom(year)
	}
	if cost, ok := parseMoney(get(colCosto)); ok {
		d.CostoAdquisicion = null.Float64From(cost)
	}
	return d, true
}

// cellValue: заглушки отчёта ("Sin marca", "Sin ubicación") считаются пустыми ячейками.
func cellValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(strings.ToLower(v), "sin ") {
		return ""
	}
	return v
}

func isTotalRow(v string) bool {
	v = strings.ToLower(v)
	return strings.HasPrefix(v, "total")
}

func normalizeState(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "":
		return ""
	case "fuera de servicio", "fuera_servicio":
		return constants.EquipmentOutOfOrder
	case "en mantenimiento":
		return constants.EquipmentMaintenance
	}
	return v
}

// "1.500" без дробной части - разделитель тысяч, а не десятичная точка.
var thousandsOnly = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parseMoney понимает "$12.345,50" и "12345.5".
func parseMoney(v string) (float64, bool) {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "$"))
	if v == "" {
		return 0, false
	}
	if strings.Contains(v, ",") || thousandsOnly.MatchString(v) {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
