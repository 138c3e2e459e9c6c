package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin      = 14.0
	pdfBottom      = 20.0
	pdfRowHeight   = 6.0
	pdfHeaderFont  = "Helvetica"
	pdfTableFontSz = 7.5
)

// PDFRenderer выводит документ на страницы A4 с повтором шапки таблицы
// на каждой странице и номером страницы внизу.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return FormatPDF }

func (r *PDFRenderer) Render(w io.Writer, doc *Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// встроенные шрифты работают в cp1252, испанские буквы переводим явно
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("medical-inventory", true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfBottom)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfHeaderFont, "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(pdfHeaderFont, "B", 20)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfHeaderFont, "", 12)
	pdf.CellFormat(0, 7, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfHeaderFont, "", 10)
	for _, line := range doc.Info {
		pdf.CellFormat(0, 6, tr(line), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
	pdf.CellFormat(0, 6, tr(GeneratedLabel(doc.GeneratedAt)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(doc.Summary) > 0 {
		sectionTitle(pdf, tr, doc.SummaryTitle)
		pdf.SetFont(pdfHeaderFont, "", 10)
		for _, f := range doc.Summary {
			pdf.CellFormat(0, 6, tr(f.Label+": "+f.Value), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	r.table(pdf, tr, doc)

	if len(doc.Notes) > 0 {
		pdf.Ln(6)
		sectionTitle(pdf, tr, doc.NotesTitle)
		pdf.SetFont(pdfHeaderFont, "", 10)
		for _, note := range doc.Notes {
			pdf.MultiCell(0, 6, tr("• "+note), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("ошибка построения PDF: %w", err)
	}
	return pdf.Output(w)
}

func sectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	if title == "" {
		return
	}
	pdf.SetFont(pdfHeaderFont, "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
}

func (r *PDFRenderer) table(pdf *fpdf.Fpdf, tr func(string) string, doc *Document) {
	t := doc.Table
	sectionTitle(pdf, tr, t.Title)
	if len(t.Rows) == 0 && t.EmptyText != "" {
		pdf.SetFont(pdfHeaderFont, "", 10)
		pdf.CellFormat(0, 6, tr(t.EmptyText), "", 1, "L", false, 0, "")
		return
	}
	if len(t.Headers) == 0 {
		return
	}

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(t, pageW-2*pdfMargin)

	header := func() {
		pdf.SetFont(pdfHeaderFont, "B", pdfTableFontSz+0.5)
		pdf.SetFillColor(doc.Accent.R, doc.Accent.G, doc.Accent.B)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], pdfRowHeight+1, tr(h), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfHeaderFont, "", pdfTableFontSz)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	for n, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfBottom {
			pdf.AddPage()
			header()
		}
		fill := n%2 == 1
		if fill {
			pdf.SetFillColor(rowFill.R, rowFill.G, rowFill.B)
		}
		for i := range t.Headers {
			var cell string
			if i < len(row) {
				cell = fit(pdf, tr(row[i]), widths[i]-2)
			}
			pdf.CellFormat(widths[i], pdfRowHeight, cell, "", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

// columnWidths распределяет ширину страницы пропорционально весам колонок.
func columnWidths(t Table, total float64) []float64 {
	weights := make([]float64, len(t.Headers))
	var sum float64
	for i := range weights {
		weights[i] = 1
		if i < len(t.Widths) && t.Widths[i] > 0 {
			weights[i] = t.Widths[i]
		}
		sum += weights[i]
	}
	for i := range weights {
		weights[i] = total * weights[i] / sum
	}
	return weights
}

// fit обрезает текст по ширине колонки.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+ellipsis) > width {
		b = b[:len(b)-1]
	}
	return string(b) + ellipsis
}
