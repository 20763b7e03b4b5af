package render

import (
	"fmt"
	"io"
	"transparency/internal/model"

	"github.com/go-pdf/fpdf"
)

// PDF renders an A4 report
type PDF struct{}

func (PDF) ContentType() string { return "application/pdf" }
func (PDF) Extension() string   { return "pdf" }

// Render writes the PDF for r to w
func (PDF) Render(w io.Writer, r *model.TransparencyReport) error {
	doc := NewDocument(r)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, _ := pdf.GetPageSize()
	body := width - 40

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(body, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(body, 8, tr("Generated on: "+doc.GeneratedOn), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	section(pdf, tr, body, "Product Information")
	for _, f := range doc.Fields {
		pdf.SetFont("Helvetica", "B", 11)
		label := tr(f.Label + ": ")
		lw := pdf.GetStringWidth(label) + 1
		pdf.CellFormat(lw, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(body-lw, 7, tr(f.Value), "", "L", false)
	}
	pdf.Ln(6)

	section(pdf, tr, body, "Transparency Analysis")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(body, 9, fmt.Sprintf("Transparency Score: %d/100", doc.Score), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(body, 7, tr("Assessment: "+doc.Interpretation), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	if len(doc.Recommendations) > 0 {
		section(pdf, tr, body, "Recommendations")
		pdf.SetFont("Helvetica", "", 11)
		for i, rec := range doc.Recommendations {
			pdf.MultiCell(body, 7, tr(fmt.Sprintf("%d. %s", i+1, rec)), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func section(pdf *fpdf.Fpdf, tr func(string) string, width float64, title string) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(width, 10, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(3)
}
