package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"rainharvest-cloud/internal/assessment/domain"
)

// BuildAssessmentPDF renders a feasibility report as a PDF.
func BuildAssessmentPDF(result *domain.DesignResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Rainwater Harvesting Assessment")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Location: %.5f, %.5f", result.Inputs.Lat, result.Inputs.Lng))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Roof area (m2): %.2f", result.Inputs.RoofArea))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual rainfall (mm): %.0f", result.RainfallMM))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Harvest potential (L/year): %.0f", result.TotalRunoffLitersYear))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual need (L): %.0f", result.AnnualNeedLiters))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Coverage ratio: %.3f", result.CoverageRatio))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Recommended recharge: %s", result.AquiferType))
	pdf.Ln(5)
	verdict := "Not feasible"
	if result.Feasible {
		verdict = "Feasible"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Verdict: %s", verdict))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Component", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Cost", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	rows := []struct {
		label string
		cost  float64
	}{
		{fmt.Sprintf("Pipe %s (%.0f mm)", result.Pipe.Chosen.Name, result.Pipe.DiameterMM), result.Costs.PipeCost},
		{fmt.Sprintf("Filter %s x%d", result.Filter.Chosen.Name, result.Filter.Chosen.UnitsRequired), result.Costs.FilterCost},
		{fmt.Sprintf("Recharge pit (%.2f m3)", result.Pit.VolumeM3), result.Costs.PitCost},
	}
	if result.Channel != nil {
		rows = append(rows, struct {
			label string
			cost  float64
		}{fmt.Sprintf("Channel (%.2f m)", result.Channel.LengthM), result.Costs.ChannelCost})
	}
	for _, row := range rows {
		pdf.CellFormat(90, 6, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.0f", row.cost), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Total estimate", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, fmt.Sprintf("%.0f", result.Costs.TotalCost), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAssessmentXLSX renders a feasibility report as an XLSX workbook.
func BuildAssessmentXLSX(result *domain.DesignResult) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	costsSheet := "costs"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(costsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Rainwater Harvesting Assessment")
	_ = f.SetCellValue(summarySheet, "A3", "Latitude")
	_ = f.SetCellValue(summarySheet, "B3", result.Inputs.Lat)
	_ = f.SetCellValue(summarySheet, "A4", "Longitude")
	_ = f.SetCellValue(summarySheet, "B4", result.Inputs.Lng)
	_ = f.SetCellValue(summarySheet, "A5", "Roof area (m2)")
	_ = f.SetCellValue(summarySheet, "B5", result.Inputs.RoofArea)
	_ = f.SetCellValue(summarySheet, "A6", "Annual rainfall (mm)")
	_ = f.SetCellValue(summarySheet, "B6", result.RainfallMM)
	_ = f.SetCellValue(summarySheet, "A7", "Harvest potential (L/year)")
	_ = f.SetCellValue(summarySheet, "B7", result.TotalRunoffLitersYear)
	_ = f.SetCellValue(summarySheet, "A8", "Annual need (L)")
	_ = f.SetCellValue(summarySheet, "B8", result.AnnualNeedLiters)
	_ = f.SetCellValue(summarySheet, "A9", "Coverage ratio")
	_ = f.SetCellValue(summarySheet, "B9", result.CoverageRatio)
	_ = f.SetCellValue(summarySheet, "A10", "Recommended recharge")
	_ = f.SetCellValue(summarySheet, "B10", result.AquiferType)
	_ = f.SetCellValue(summarySheet, "A11", "Feasible")
	_ = f.SetCellValue(summarySheet, "B11", result.Feasible)

	_ = f.SetCellValue(costsSheet, "A1", "Component")
	_ = f.SetCellValue(costsSheet, "B1", "Cost")
	_ = f.SetCellValue(costsSheet, "A2", fmt.Sprintf("Pipe %s (%.0f mm)", result.Pipe.Chosen.Name, result.Pipe.DiameterMM))
	_ = f.SetCellValue(costsSheet, "B2", result.Costs.PipeCost)
	_ = f.SetCellValue(costsSheet, "A3", fmt.Sprintf("Filter %s x%d", result.Filter.Chosen.Name, result.Filter.Chosen.UnitsRequired))
	_ = f.SetCellValue(costsSheet, "B3", result.Costs.FilterCost)
	_ = f.SetCellValue(costsSheet, "A4", fmt.Sprintf("Recharge pit (%.2f m3)", result.Pit.VolumeM3))
	_ = f.SetCellValue(costsSheet, "B4", result.Costs.PitCost)
	row := 5
	if result.Channel != nil {
		_ = f.SetCellValue(costsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Channel (%.2f m)", result.Channel.LengthM))
		_ = f.SetCellValue(costsSheet, fmt.Sprintf("B%d", row), result.Costs.ChannelCost)
		row++
	}
	_ = f.SetCellValue(costsSheet, fmt.Sprintf("A%d", row), "Total estimate")
	_ = f.SetCellValue(costsSheet, fmt.Sprintf("B%d", row), result.Costs.TotalCost)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
