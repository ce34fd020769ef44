package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 190.0 // A4 minus 10mm margins
	rowHeight  = 7.0
	headerFill = 230
)

// RenderPDF writes the report as a single-table A4 document.
func RenderPDF(w io.Writer, r *Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(9)

	if len(r.Columns) == 0 {
		return pdf.Output(w)
	}
	colWidth := pageWidth / float64(len(r.Columns))

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(headerFill, headerFill, headerFill)
		for _, c := range r.Columns {
			pdf.CellFormat(colWidth, rowHeight, c, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}

	header()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range r.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i := range r.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(colWidth, rowHeight, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
