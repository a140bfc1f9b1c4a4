package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/K0NGR3SS/colrisk/internal/models"
)

const (
	pdfTitle     = "Data Security Risk Analysis Report"
	pdfFont      = "Arial"
	pdfMargin    = 15.0
	pdfLine      = 7.0
	pdfListLine  = 6.0
	pdfBodySize  = 10.0
	pdfTitleSize = 14.0
)

// PDFExporter renders one section per category with a block per column.
type PDFExporter struct {
	// DisableCompression leaves content streams readable, which tests rely on.
	DisableCompression bool
}

func (PDFExporter) Format() string { return "pdf" }

func (e PDFExporter) Export(path string, scan models.Scan) error {
	doc := e.render(scan)
	if err := doc.OutputFileAndClose(path); err != nil {
		return &ExportError{Format: e.Format(), Path: path, Err: err}
	}
	return nil
}

func (e PDFExporter) render(scan models.Scan) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!e.DisableCompression)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(pdfTitle, true)
	pdf.SetCreator("colrisk", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.CellFormat(0, 10, pdfTitle, "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFont, "", pdfBodySize)
	pdf.CellFormat(0, pdfListLine, tr(fmt.Sprintf("Source: %s", scan.Source)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, pdfListLine, fmt.Sprintf("Scan ID: %s  |  Rows: %d  |  Columns: %d", scan.ID, scan.Rows, len(scan.Findings)), "", 1, "C", false, 0, "")

	for _, sec := range Group(scan.Findings) {
		pdf.Ln(8)
		pdf.SetFont(pdfFont, "B", 12)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Category: %s", sec.Category)), "", 1, "", false, 0, "")

		for _, f := range sec.Findings {
			writeFinding(pdf, tr, f)
		}
	}

	return pdf
}

func writeFinding(pdf *fpdf.Fpdf, tr func(string) string, f models.Finding) {
	pdf.SetFont(pdfFont, "B", pdfBodySize)
	pdf.CellFormat(0, pdfLine, tr(fmt.Sprintf("Column: %s", f.Column)), "", 1, "", false, 0, "")

	pdf.SetFont(pdfFont, "", pdfBodySize)
	pdf.CellFormat(0, pdfLine, fmt.Sprintf("Risk Level: %s", f.Risk.Title()), "", 1, "", false, 0, "")
	pdf.CellFormat(0, pdfLine, tr(fmt.Sprintf("Information Type: %s", f.InformationType)), "", 1, "", false, 0, "")

	writeList(pdf, tr, "Concerns:", f.Concerns)
	writeList(pdf, tr, "Recommendations:", f.Recommendations)

	pdf.CellFormat(0, pdfLine, "Sample Values:", "", 1, "", false, 0, "")
	samples := joinSamples(f.SampleValues)
	if samples == "" {
		samples = "(none)"
	}
	pdf.MultiCell(0, pdfListLine, tr(samples), "", "L", false)
	pdf.Ln(4)
}

func writeList(pdf *fpdf.Fpdf, tr func(string) string, heading string, items []string) {
	pdf.CellFormat(0, pdfLine, heading, "", 1, "", false, 0, "")
	if len(items) == 0 {
		pdf.CellFormat(0, pdfListLine, "- none", "", 1, "", false, 0, "")
		return
	}
	for _, item := range items {
		pdf.MultiCell(0, pdfListLine, tr("- "+item), "", "L", false)
	}
}
