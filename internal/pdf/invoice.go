// Package pdf renders a working state into a paginated A4 document:
// issuer header, the two identity boxes, the line-item table, the totals
// block for the tax-exempt regime and the legal footer.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/editor"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 14.0
	boxWidth   = 88.0
)

// Render is a pure function from the working state to PDF bytes. Line totals
// are computed here from quantity × price, not read from the state.
func Render(state editor.WorkingState) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, 30)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	renderHeader(doc, tr, state)
	renderInfoBoxes(doc, tr, state)
	renderItemsTable(doc, tr, state.Items)
	renderTotals(doc, tr, state.Total)
	renderAmountInWords(doc, tr, state)
	renderSignatureBox(doc, tr)
	renderLegalFooter(doc, tr, state.MyInfo)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderHeader(doc *gofpdf.Fpdf, tr func(string) string, state editor.WorkingState) {
	// issuer block on the left
	doc.SetFont("Helvetica", "B", 13)
	doc.SetTextColor(15, 23, 42)
	doc.CellFormat(120, 6, tr(state.MyInfo.Name), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(120, 5, tr(state.MyInfo.Address), "", 1, "L", false, 0, "")
	doc.CellFormat(120, 5, tr("Tél: "+state.MyInfo.Phone), "", 1, "L", false, 0, "")

	// document type, number and date on the right
	doc.SetXY(-pageMargin-70, pageMargin)
	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(30, 41, 59)
	doc.CellFormat(70, 9, tr(strings.ToUpper(state.DocSettings.Type)), "", 2, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(70, 6, tr("N° "+state.DocSettings.Number), "", 2, "R", false, 0, "")
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(70, 6, "Date: "+state.DocSettings.Date, "", 2, "R", false, 0, "")

	doc.SetY(40)
	doc.SetDrawColor(226, 232, 240)
	doc.Line(pageMargin, 40, 210-pageMargin, 40)
	doc.SetY(46)
}

func renderInfoBoxes(doc *gofpdf.Fpdf, tr func(string) string, state editor.WorkingState) {
	top := doc.GetY()

	// issuer tax identifiers
	doc.SetFillColor(248, 250, 252)
	doc.SetDrawColor(226, 232, 240)
	doc.Rect(pageMargin, top, boxWidth, 34, "FD")
	doc.SetXY(pageMargin+4, top+3)
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(boxWidth-8, 4, tr("ÉMETTEUR (AUTO-ENTREPRENEUR)"), "", 2, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(boxWidth-8, 5, "ICE: "+tr(state.MyInfo.ICE), "", 2, "L", false, 0, "")
	doc.CellFormat(boxWidth-8, 5, "IF: "+tr(state.MyInfo.IF), "", 2, "L", false, 0, "")
	doc.CellFormat(boxWidth-8, 5, "T.P / AE: "+tr(state.MyInfo.AeID), "", 2, "L", false, 0, "")

	// client identity
	clientLeft := 210 - pageMargin - boxWidth
	doc.Rect(clientLeft, top, boxWidth, 34, "FD")
	doc.SetXY(clientLeft+4, top+3)
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(boxWidth-8, 4, "CLIENT", "", 2, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 9)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(boxWidth-8, 5, tr(state.ClientInfo.Name), "", 2, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(boxWidth-8, 5, tr(state.ClientInfo.Address), "", 2, "L", false, 0, "")
	ice := state.ClientInfo.ICE
	if ice == "" {
		ice = "N/A"
	}
	doc.CellFormat(boxWidth-8, 4, "ICE: "+tr(ice), "", 2, "L", false, 0, "")
	if state.ClientInfo.IF != "" {
		doc.CellFormat(boxWidth-8, 4, "IF: "+tr(state.ClientInfo.IF), "", 2, "L", false, 0, "")
	}
	if state.ClientInfo.TaxePro != "" {
		doc.CellFormat(boxWidth-8, 4, "T.P: "+tr(state.ClientInfo.TaxePro), "", 2, "L", false, 0, "")
	}

	doc.SetY(top + 40)
}

func renderItemsTable(doc *gofpdf.Fpdf, tr func(string) string, items []editor.Item) {
	const (
		wDesc  = 91.0
		wQty   = 25.0
		wPrice = 30.0
		wTotal = 36.0
	)

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(30, 41, 59)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(wDesc, 8, "Description", "", 0, "L", true, 0, "")
	doc.CellFormat(wQty, 8, tr("Qté"), "", 0, "C", true, 0, "")
	doc.CellFormat(wPrice, 8, "P.U (DH)", "", 0, "R", true, 0, "")
	doc.CellFormat(wTotal, 8, "Total (DH)", "", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(51, 51, 51)
	doc.SetDrawColor(226, 232, 240)
	for i, it := range items {
		fill := i%2 == 1
		doc.SetFillColor(248, 250, 252)
		doc.CellFormat(wDesc, 7, tr(it.Description), "B", 0, "L", fill, 0, "")
		doc.CellFormat(wQty, 7, trimZeros(it.Quantity), "B", 0, "C", fill, 0, "")
		doc.CellFormat(wPrice, 7, fmt.Sprintf("%.2f", it.Price), "B", 0, "R", fill, 0, "")
		doc.CellFormat(wTotal, 7, fmt.Sprintf("%.2f", it.LineTotal()), "B", 1, "R", fill, 0, "")
	}
	doc.Ln(4)
}

// trimZeros prints quantities without a trailing ".00" when they are whole.
func trimZeros(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func renderTotals(doc *gofpdf.Fpdf, tr func(string) string, total float64) {
	const (
		wLabel = 50.0
		wValue = 40.0
	)
	left := 210 - pageMargin - wLabel - wValue

	doc.SetFont("Helvetica", "", 10)
	doc.SetX(left)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(wLabel, 6, "Total HT:", "", 0, "R", false, 0, "")
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(wValue, 6, fmt.Sprintf("%.2f DH", total), "", 1, "R", false, 0, "")

	doc.SetX(left)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(wLabel, 6, "TVA (0%):", "", 0, "R", false, 0, "")
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(wValue, 6, "0.00 DH", "", 1, "R", false, 0, "")

	doc.SetDrawColor(30, 41, 59)
	doc.SetLineWidth(0.5)
	doc.Line(left, doc.GetY()+1, 210-pageMargin, doc.GetY()+1)
	doc.SetLineWidth(0.2)
	doc.Ln(3)

	doc.SetX(left)
	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(30, 41, 59)
	doc.CellFormat(wLabel, 7, tr("Total Net à Payer:"), "", 0, "R", false, 0, "")
	doc.CellFormat(wValue, 7, fmt.Sprintf("%.2f DH", total), "", 1, "R", false, 0, "")
	doc.Ln(6)
}

func renderAmountInWords(doc *gofpdf.Fpdf, tr func(string) string, state editor.WorkingState) {
	docType := strings.ToLower(state.DocSettings.Type)
	doc.SetFillColor(241, 245, 249)
	y := doc.GetY()
	doc.Rect(pageMargin, y, 210-2*pageMargin, 14, "F")
	doc.SetXY(pageMargin+4, y+2)
	doc.SetFont("Helvetica", "I", 8)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(0, 4, tr(fmt.Sprintf("Arrêté la présente %s à la somme de :", docType)), "", 2, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(15, 23, 42)
	doc.CellFormat(0, 6, tr(state.TotalInWords), "", 1, "L", false, 0, "")
	doc.SetY(y + 18)
}

func renderSignatureBox(doc *gofpdf.Fpdf, tr func(string) string) {
	doc.Ln(10)
	const w, h = 55.0, 28.0
	left := 210 - pageMargin - w - 6
	y := doc.GetY()
	doc.SetDrawColor(203, 213, 225)
	doc.Rect(left, y, w, h, "D")
	doc.SetXY(left, y+2)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(148, 163, 184)
	doc.CellFormat(w, 4, "Cachet et Signature", "", 1, "C", false, 0, "")
	doc.SetY(y + h)
}

func renderLegalFooter(doc *gofpdf.Fpdf, tr func(string) string, issuer editor.IssuerInfo) {
	doc.SetY(-28)
	doc.SetDrawColor(226, 232, 240)
	doc.Line(pageMargin, doc.GetY(), 210-pageMargin, doc.GetY())
	doc.Ln(2)
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(0, 4, tr("Exonéré de la TVA en vertu de l'article 91 du Code Général des Impôts."), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(148, 163, 184)
	doc.CellFormat(0, 4, tr(fmt.Sprintf("%s - Auto-Entrepreneur | ICE: %s | IF: %s",
		issuer.Name, issuer.ICE, issuer.IF)), "", 1, "C", false, 0, "")
}
