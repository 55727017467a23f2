package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/pointdigital/manager-api/internal/model"
)

const utf8FontName = "Body"

// Generator renders quotations. Without a font file it falls back to the
// core Helvetica font, which only covers cp1252 text.
type Generator struct {
	fontPath string
}

func NewGenerator(fontPath string) (*Generator, error) {
	fontPath = strings.TrimSpace(fontPath)
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			return nil, fmt.Errorf("pdf font: %w", err)
		}
	}
	return &Generator{fontPath: fontPath}, nil
}

type writer struct {
	pdf       *gofpdf.Fpdf
	font      string
	translate func(string) string
}

func (g *Generator) newWriter() *writer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	w := &writer{pdf: pdf, font: "Helvetica", translate: pdf.UnicodeTranslatorFromDescriptor("")}
	if g.fontPath != "" {
		pdf.AddUTF8Font(utf8FontName, "", g.fontPath)
		pdf.AddUTF8Font(utf8FontName, "B", g.fontPath)
		w.font = utf8FontName
		w.translate = func(s string) string { return s }
	}
	return w
}

func (w *writer) text(style string, size float64, height float64, value, align string) {
	w.pdf.SetFont(w.font, style, size)
	w.pdf.CellFormat(0, height, w.translate(value), "", 1, align, false, 0, "")
}

func (g *Generator) Quotation(q model.Quotation, agency *model.AgencySettings) ([]byte, error) {
	w := g.newWriter()
	pdf := w.pdf
	pdf.AddPage()

	if agency != nil {
		w.text("B", 16, 9, agency.Name, "L")
		for _, line := range []string{agency.Address, agency.Phone, agency.Email} {
			if strings.TrimSpace(line) != "" {
				w.text("", 10, 5, line, "L")
			}
		}
		pdf.Ln(4)
	}

	w.text("B", 14, 10, fmt.Sprintf("Quotation %s", q.ID), "C")
	w.text("", 11, 6, fmt.Sprintf("Date: %s", safeValue(q.Date)), "R")
	w.text("", 11, 6, fmt.Sprintf("Client: %s", safeValue(q.ClientName)), "L")
	if q.ClientPhone != "" {
		w.text("", 11, 6, fmt.Sprintf("Phone: %s", q.ClientPhone), "L")
	}
	w.text("", 11, 6, fmt.Sprintf("Status: %s", q.Status), "L")
	pdf.Ln(4)

	headers := []string{"#", "Description", "Price", "Qty", "Amount"}
	widths := []float64{10, 90, 30, 20, 30}
	w.tableRow(headers, widths, true)
	for i, item := range q.Items {
		w.tableRow([]string{
			fmt.Sprintf("%d", i+1),
			item.Description,
			formatMoney(item.Price, itemCurrency(item, q)),
			fmt.Sprintf("%d", item.Quantity),
			formatMoney(item.LineTotal(), itemCurrency(item, q)),
		}, widths, false)
	}

	pdf.Ln(2)
	w.text("B", 12, 8, fmt.Sprintf("Total: %s", formatMoney(q.Total, q.Currency)), "R")

	if strings.TrimSpace(q.Note) != "" {
		pdf.Ln(2)
		w.text("B", 11, 6, "Note", "L")
		pdf.SetFont(w.font, "", 10)
		pdf.MultiCell(0, 5, w.translate(q.Note), "", "L", false)
	}

	if agency != nil && len(agency.QuotationTerms) > 0 {
		pdf.Ln(4)
		w.text("B", 11, 6, "Terms", "L")
		pdf.SetFont(w.font, "", 10)
		for i, term := range agency.QuotationTerms {
			pdf.MultiCell(0, 5, w.translate(fmt.Sprintf("%d. %s", i+1, term)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *writer) tableRow(cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	w.pdf.SetFont(w.font, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		w.pdf.CellFormat(widths[i], 8, w.translate(col), "1", 0, align, false, 0, "")
	}
	w.pdf.Ln(-1)
}

func itemCurrency(item model.QuotationItem, q model.Quotation) string {
	if item.Currency != "" {
		return item.Currency
	}
	return q.Currency
}

func formatMoney(value decimal.Decimal, currency string) string {
	return strings.TrimSpace(value.StringFixed(2) + " " + currency)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
