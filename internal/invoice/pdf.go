package invoice

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	margin     = 15.0
	rowHeight  = 7.0
	dateLayout = "02/01/2006"
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"SKU", 30, "L"},
	{"Description", 70, "L"},
	{"Qty", 15, "R"},
	{"Unit price", 32.5, "R"},
	{"Total", 32.5, "R"},
}

// Renderer writes invoices as A4 PDFs.
type Renderer struct {
	Compress bool
}

func NewRenderer() Renderer {
	return Renderer{Compress: true}
}

// Render writes doc to w. Long item lists flow onto further pages with the
// table header repeated at the top of each one.
func (r Renderer) Render(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetTitle(doc.Title+" "+doc.Number, true)
	pdf.SetCreator(doc.Seller.Name, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	inTable := false
	pdf.SetHeaderFunc(func() {
		if inTable {
			tableHeader(pdf, tr)
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s - Page %d/{nb}", doc.Number, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, tr(doc.Seller.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range []string{doc.Seller.Address, doc.Seller.City, "Email: " + doc.Seller.Email} {
		pdf.CellFormat(0, 5, tr(s), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Date: "+doc.IssuedAt.Format(dateLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	phone := doc.Customer.Phone
	if phone == "" {
		phone = "Not specified"
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range []string{
		"Name: " + doc.Customer.Name,
		"Email: " + doc.Customer.Email,
		"Address: " + doc.Customer.Address,
		"Phone: " + phone,
	} {
		pdf.CellFormat(0, 5, tr(s), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, "Invoice No: "+doc.Number, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Order date: "+doc.OrderDate.Format(dateLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Payment: %s (%s)", doc.PaymentMethod, doc.PaymentStatus), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	tableHeader(pdf, tr)
	inTable = true

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range doc.Lines {
		cells := []string{
			line.SKU,
			line.Description,
			fmt.Sprintf("%d", line.Quantity),
			doc.Money(line.UnitPrice),
			doc.Money(line.Total),
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, rowHeight, fit(pdf, tr(cells[i]), col.width-2), "B", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	inTable = false

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	labelWidth := columns[0].width + columns[1].width + columns[2].width + columns[3].width
	pdf.CellFormat(labelWidth, 8, "Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(columns[4].width, 8, doc.Money(doc.Total), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Thank you for your business.", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// Bytes renders doc into memory.
func (r Renderer) Bytes(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(doc, &buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", doc.Number, err)
	}
	return buf.Bytes(), nil
}

func tableHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, rowHeight, tr(col.title), "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

// fit trims s until it is at most width wide. s is already translated to the
// single-byte font encoding.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
