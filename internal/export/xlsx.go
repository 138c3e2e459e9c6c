package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Reporte"

type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Extension() string { return FormatXLSX }

func (r *XLSXRenderer) Render(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	_ = f.SetDocProps(&excelize.DocProperties{Title: doc.Title, Creator: "medical-inventory"})

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(doc.Accent)}},
	})
	if err != nil {
		return err
	}
	stripe, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(rowFill)}},
	})
	if err != nil {
		return err
	}

	row := 1
	put := func(values []interface{}, style int) error {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return err
		}
		if style != 0 && len(values) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(xlsxSheet, cell, last, style); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	if err := put([]interface{}{doc.Title}, title); err != nil {
		return err
	}
	for _, line := range append([]string{doc.Subtitle}, doc.Info...) {
		if err := put([]interface{}{line}, 0); err != nil {
			return err
		}
	}
	if err := put([]interface{}{GeneratedLabel(doc.GeneratedAt)}, 0); err != nil {
		return err
	}
	row++

	if len(doc.Summary) > 0 {
		if err := put([]interface{}{doc.SummaryTitle}, bold); err != nil {
			return err
		}
		for _, s := range doc.Summary {
			if err := put([]interface{}{s.Label, s.Value}, 0); err != nil {
				return err
			}
		}
		row++
	}

	t := doc.Table
	if t.Title != "" {
		if err := put([]interface{}{t.Title}, bold); err != nil {
			return err
		}
	}
	if len(t.Rows) == 0 && t.EmptyText != "" {
		if err := put([]interface{}{t.EmptyText}, 0); err != nil {
			return err
		}
	} else if len(t.Headers) > 0 {
		if err := put(toRow(t.Headers), header); err != nil {
			return err
		}
		for i, r := range t.Rows {
			style := 0
			if i%2 == 1 {
				style = stripe
			}
			if err := put(toRow(r), style); err != nil {
				return err
			}
		}
		for i := range t.Headers {
			width := 18.0
			if i < len(t.Widths) && t.Widths[i] > 0 {
				width = 16 * t.Widths[i]
			}
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
				return err
			}
		}
	}

	if len(doc.Notes) > 0 {
		row++
		if err := put([]interface{}{doc.NotesTitle}, bold); err != nil {
			return err
		}
		for _, note := range doc.Notes {
			if err := put([]interface{}{"• " + note}, 0); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func toRow(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func hexColor(c RGB) string {
	return strings.ToUpper(fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B))
}
