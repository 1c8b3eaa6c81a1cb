package snapshot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 18.0
	labelWidth  = 78.0
	tableLabelW = 110.0
	lineHeight  = 6.0
	rowHeight   = 8.0
)

// RenderPDF lays a Document out on A4 pages. Output is byte-identical for
// equal documents: dates come from PreparedAt and catalog keys are sorted.
func RenderPDF(d Document) ([]byte, error) {
	return renderPDF(d, true)
}

func renderPDF(d Document, compress bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetCreationDate(d.PreparedAt)
	pdf.SetModificationDate(d.PreparedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(d.Title, true)
	pdf.SetAuthor("GFI", true)
	pdf.SetCreator("gfi", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AliasNbPages("")

	tf := newTypeface(pdf, d)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin + 4)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, tf.use("", 8, d.Footer), "", 0, "L", false, 0, "")
		pdf.SetX(pageMargin)
		pdf.CellFormat(0, 6, tf.use("", 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	for _, page := range d.Pages {
		pdf.AddPage()

		pdf.SetTextColor(20, 40, 80)
		pdf.CellFormat(0, 10, tf.use("B", 18, d.Title), "", 1, "L", false, 0, "")
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 8, tf.use("", 13, page.Title), "B", 1, "L", false, 0, "")
		pdf.Ln(4)

		for _, s := range page.Sections {
			writeSection(pdf, tf, s)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, tf *typeface, s Section) {
	pdf.SetTextColor(20, 40, 80)
	pdf.CellFormat(0, rowHeight, tf.use("B", 12, s.Heading), "", 1, "L", false, 0, "")

	pdf.SetTextColor(30, 30, 30)
	for _, line := range s.Lines {
		pdf.MultiCell(0, lineHeight, tf.use("", 10, line), "", "L", false)
	}

	for _, r := range s.Rows {
		switch {
		case s.Table:
			pdf.CellFormat(tableLabelW, rowHeight, tf.use("", 10, r.Label), "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, rowHeight, tf.use("B", 10, r.Value), "1", 1, "R", false, 0, "")
		case strings.HasPrefix(r.Value, "http://") || strings.HasPrefix(r.Value, "https://"):
			pdf.CellFormat(labelWidth, lineHeight, tf.use("", 10, r.Label), "", 0, "L", false, 0, "")
			pdf.SetTextColor(20, 80, 200)
			pdf.CellFormat(0, lineHeight, tf.use("", 10, r.Value), "", 1, "L", false, 0, r.Value)
			pdf.SetTextColor(30, 30, 30)
		default:
			pdf.CellFormat(labelWidth, lineHeight, tf.use("", 10, r.Label), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, lineHeight, tf.use("B", 10, r.Value), "", "L", false)
		}
	}
	pdf.Ln(4)
}
