package infra

// pdf.go — Quote sheet generation using go-pdf/fpdf.
// Renders an A4 summary of a stored project:
//   - Project name header with creation date
//   - Line table (item name, quantity, duration, unit cost, line total)
//   - Total cost
//   - Target price and minimum price
//
// The output file is saved to storagePath/quote_{projectID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"itabus/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateQuotePDF writes the quote sheet for a project and returns the
// absolute path of the generated file. storagePath is created if needed.
func GenerateQuotePDF(project *dto.ProjectResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("quote_%s.pdf", project.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Itabus — Proposta Comercial", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, project.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Criado em "+project.CreatedAt, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Line table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.40 // item name
	col2 := contentW * 0.12 // quantity
	col3 := contentW * 0.12 // duration
	col4 := contentW * 0.18 // unit cost
	col5 := contentW * 0.18 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Duração", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Custo unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range project.Items {
		name := line.ItemName
		if name == "" {
			name = line.ItemID
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", line.Duration), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "R$ "+line.UnitCost.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "R$ "+line.TotalCost.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.64, 7, "Custo total", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.36, 7, "R$ "+project.TotalCost.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW*0.64, 8, "Preço alvo", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.36, 8, "R$ "+project.TargetPrice.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.64, 6, "Preço mínimo", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.36, 6, "R$ "+project.MinPrice.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
