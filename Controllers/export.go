package Controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportSettlementPDF renders one settlement as a PDF payout statement:
// header, line items, applied deductions, totals. Amounts are printed exactly
// as stored.
func ExportSettlementPDF(c *gin.Context) {
	var settlement Models.Settlement
	if err := settlementScope(c).
		Preload("Professional").
		Preload("LineItems").
		Preload("DiscountsApplied").
		First(&settlement, "settlements.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "OdontAll", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Settlement Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	writeInfoRow(pdf, "Professional:", settlement.Professional.FullName())
	writeInfoRow(pdf, "Period:", settlement.PeriodStart+" - "+settlement.PeriodEnd)
	writeInfoRow(pdf, "Status:", settlement.Status)
	writeInfoRow(pdf, "Generated:", time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Attentions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 58, 138)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(25, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Service", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Patient", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Charged", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "%", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Commission", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range settlement.LineItems {
		pdf.CellFormat(25, 6, item.AttendanceDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, item.ServiceName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, item.PatientName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.AmountCharged), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%.1f", item.CommissionPercentage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.CommissionAmount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if len(settlement.DiscountsApplied) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Discounts and Retentions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, applied := range settlement.DiscountsApplied {
			pdf.CellFormat(80, 6, applied.DiscountName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, applied.Category, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("-%.2f", applied.DiscountAmount), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 10)
	writeTotalRow(pdf, "Total Attended", settlement.TotalAttended)
	writeTotalRow(pdf, "Total Commission", settlement.TotalCommission)
	writeTotalRow(pdf, "Total Discounts", -settlement.TotalDiscounts)
	pdf.SetFont("Helvetica", "B", 12)
	writeTotalRow(pdf, "NET AMOUNT", settlement.NetAmount)

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=settlement_%s.pdf", settlement.ID))
	c.Data(http.StatusOK, "application/pdf", buffer.Bytes())
}

func writeInfoRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func writeTotalRow(pdf *gofpdf.Fpdf, label string, amount float64) {
	pdf.CellFormat(120, 7, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
}

// ExportSettlementsExcel writes every visible settlement as one spreadsheet
// row.
func ExportSettlementsExcel(c *gin.Context) {
	var settlements []Models.Settlement
	if err := settlementScope(c).Preload("Professional").Order("period_end desc").Find(&settlements).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file := excelize.NewFile()
	sheet := "Settlements"
	index, err := file.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate spreadsheet"})
		return
	}
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")

	headers := map[string]string{
		"A1": "ID",
		"B1": "Professional",
		"C1": "Period Start",
		"D1": "Period End",
		"E1": "Total Attended",
		"F1": "Total Commission",
		"G1": "Discounts",
		"H1": "Retentions",
		"I1": "Net Amount",
		"J1": "Status",
		"K1": "Payment Reference",
	}
	for cell, value := range headers {
		file.SetCellValue(sheet, cell, value)
	}

	for i, settlement := range settlements {
		row := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%v", row), settlement.ID)
		file.SetCellValue(sheet, fmt.Sprintf("B%v", row), settlement.Professional.FullName())
		file.SetCellValue(sheet, fmt.Sprintf("C%v", row), settlement.PeriodStart)
		file.SetCellValue(sheet, fmt.Sprintf("D%v", row), settlement.PeriodEnd)
		file.SetCellValue(sheet, fmt.Sprintf("E%v", row), settlement.TotalAttended)
		file.SetCellValue(sheet, fmt.Sprintf("F%v", row), settlement.TotalCommission)
		file.SetCellValue(sheet, fmt.Sprintf("G%v", row), settlement.TotalDiscounts)
		file.SetCellValue(sheet, fmt.Sprintf("H%v", row), settlement.TotalRetentions)
		file.SetCellValue(sheet, fmt.Sprintf("I%v", row), settlement.NetAmount)
		file.SetCellValue(sheet, fmt.Sprintf("J%v", row), settlement.Status)
		file.SetCellValue(sheet, fmt.Sprintf("K%v", row), settlement.PaymentReference)
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate spreadsheet"})
		return
	}

	filename := fmt.Sprintf("settlements_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}
