package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadReceipt generates a PDF receipt for a paid order.
// GET /v1/orders/:id/receipt
func DownloadReceipt(c *gin.Context) {
	utils.LogInfo("DownloadReceipt called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := orderService.Get(actor, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payment, err := payments.FindByOrderID(orderID)
	if err != nil {
		utils.LogError("No payment found for receipt, order ID: %d: %v", orderID, err)
		utils.NotFound(c, "No payment recorded for this order")
		return
	}
	if payment.Status != models.PaymentStatusCaptured && payment.Status != models.PaymentStatusRefunded {
		utils.BadRequest(c, "A receipt is only available for paid orders", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "GigSphere")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Payment receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(50, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(60, 8, "Date: "+payment.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(50, 8, "Payment ID: "+payment.RazorpayPaymentID)
	pdf.Cell(60, 8, "Status: "+order.Status)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Service:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.ServiceTitle+" ("+order.PlanTier+" plan)")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(120, 8, "Service price", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, pricing.FormatINR(order.Price), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(120, 8, "Platform commission (14%)", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, pricing.FormatINR(order.PlatformCommission), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.CellFormat(120, 8, "GST (18% on commission)", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, pricing.FormatINR(order.GSTAmount), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Total paid:", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 10, pricing.FormatINR(order.TotalAmount), "", 1, "R", false, 0, "")

	if payment.Status == models.PaymentStatusRefunded {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(120, 8, "Refunded:", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, pricing.FormatINR(payment.RefundAmount), "", 1, "R", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for using GigSphere!")

	var buf bytes.Buffer
	_ = pdf.Output(&buf)
	utils.LogInfo("PDF receipt generated for order ID: %d", orderID)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=receipt.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
