// Package export собирает отчёты в нейтральную модель документа
// и выводит её в PDF или XLSX.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const SystemSubtitle = "Sistema de Gestión de Equipamiento Médico"

type RGB struct{ R, G, B int }

var (
	ColorBlue  = RGB{59, 130, 246}
	ColorGreen = RGB{16, 185, 129}
	ColorRed   = RGB{239, 68, 68}
	ColorAmber = RGB{245, 158, 11}
	rowFill    = RGB{248, 250, 252}
)

type Field struct {
	Label string
	Value string
}

type Table struct {
	Title   string
	Headers []string
	// Относительная ширина колонок; пусто - поровну.
	Widths []float64
	Rows   [][]string
	// Текст вместо таблицы, когда строк нет. Пусто - рисуется только шапка.
	EmptyText string
}

// Document - отчёт, не привязанный к формату вывода.
type Document struct {
	// Name - имя файла без расширения.
	Name         string
	Title        string
	Subtitle     string
	Info         []string
	GeneratedAt  time.Time
	SummaryTitle string
	Summary      []Field
	Table        Table
	Accent       RGB
	NotesTitle   string
	Notes        []string
}

func (d *Document) Filename(ext string) string {
	return d.Name + "." + ext
}

type Renderer interface {
	Render(w io.Writer, doc *Document) error
	ContentType() string
	Extension() string
}

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// RendererFor выбирает формат вывода; пустой формат - PDF.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPDF:
		return NewPDFRenderer(), nil
	case FormatXLSX:
		return NewXLSXRenderer(), nil
	default:
		return nil, fmt.Errorf("неподдерживаемый формат отчёта: %s", format)
	}
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// GeneratedLabel - "Generado el: 31 de enero de 2025, 14:05".
func GeneratedLabel(t time.Time) string {
	return fmt.Sprintf("Generado el: %d de %s de %d, %02d:%02d",
		t.Day(), monthNames[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
