package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/velora-cart/velora/utils"
)

// ExportSalesPDF streams the seller's delivered sales as a PDF report.
func (sc *SalesReportController) ExportSalesPDF(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	rows, err := sc.fetchSales(adminID, nil, nil)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Velora Sales Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Order", "Product", "Qty", "Price", "Profit", "Date"}
	widths := []float64{25, 60, 15, 25, 25, 35}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	var totalProfit float64
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, row.OrderNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.ProductTitle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", row.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", row.ProductPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.2f", row.Profit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, row.OrderAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
		totalProfit += row.Profit
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Total profit: %.2f", totalProfit))

	c.Header("Content-Disposition", `attachment; filename="sales-report.pdf"`)
	c.Header("Content-Type", "application/pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("ExportSalesPDF failed for admin %d: %v", adminID, err)
	}
}

// ExportSalesExcel streams the seller's delivered sales as an Excel sheet.
func (sc *SalesReportController) ExportSalesExcel(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	rows, err := sc.fetchSales(adminID, nil, nil)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales")
	if err != nil {
		utils.InternalServerError(c, "Failed to build report", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, h := range []string{"Order", "Product", "Quantity", "Price", "Cost", "Profit", "Date"} {
		header.AddCell().SetString(h)
	}

	var totalProfit float64
	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.OrderNumber)
		r.AddCell().SetString(row.ProductTitle)
		r.AddCell().SetInt(row.Quantity)
		r.AddCell().SetFloat(row.ProductPrice)
		r.AddCell().SetFloat(row.ProductCost)
		r.AddCell().SetFloat(row.Profit)
		r.AddCell().SetString(row.OrderAt.Format("2006-01-02"))
		totalProfit += row.Profit
	}

	totals := sheet.AddRow()
	totals.AddCell().SetString("Total profit")
	for i := 0; i < 4; i++ {
		totals.AddCell()
	}
	totals.AddCell().SetFloat(totalProfit)

	c.Header("Content-Disposition", `attachment; filename="sales-report.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("ExportSalesExcel failed for admin %d: %v", adminID, err)
	}
}
