package controllers

import (
	"fmt"
	"time"

	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// GET /v1/admin/payouts/pending
func ListPendingPayouts(c *gin.Context) {
	utils.LogInfo("ListPendingPayouts called")

	entries, err := settlementEngine.PendingManualPayouts()
	if err != nil {
		utils.LogError("Failed to list pending payouts: %v", err)
		utils.InternalServerError(c, "Failed to list pending payouts", err.Error())
		return
	}

	utils.Success(c, "Pending manual payouts retrieved successfully", gin.H{
		"payouts": entries,
		"count":   len(entries),
	})
}

// POST /v1/admin/payouts/:id/confirm
func ConfirmManualPayout(c *gin.Context) {
	utils.LogInfo("ConfirmManualPayout called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		ExternalReference string `json:"external_reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	payment, err := settlementEngine.ConfirmManualPayout(actor, orderID, req.ExternalReference)
	if err != nil {
		utils.LogError("Failed to confirm manual payout for order ID: %d: %v", orderID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Manual payout confirmed", gin.H{
		"payment":        payment,
		"transferred_at": payment.TransferredAt,
		"reference":      payment.ExternalTransferID,
	})
}

// GET /v1/admin/refunds/failed
func ListFailedRefunds(c *gin.Context) {
	utils.LogInfo("ListFailedRefunds called")

	failed, err := refundEngine.FailedRefunds()
	if err != nil {
		utils.LogError("Failed to list failed refunds: %v", err)
		utils.InternalServerError(c, "Failed to list failed refunds", err.Error())
		return
	}

	rows := make([]gin.H, 0, len(failed))
	for _, payment := range failed {
		rows = append(rows, gin.H{
			"order_id":       payment.OrderID,
			"payment_id":     payment.ID,
			"client_id":      payment.Order.ClientID,
			"refund_amount":  payment.RefundAmount,
			"refund_display": pricing.FormatINR(payment.RefundAmount),
			"failure_reason": payment.RefundFailureReason,
			"failed_at":      payment.UpdatedAt,
		})
	}

	utils.Success(c, "Failed refunds retrieved successfully", gin.H{
		"refunds": rows,
		"count":   len(rows),
	})
}

// GET /v1/admin/payouts/pending/export
func DownloadPendingPayoutsExcel(c *gin.Context) {
	utils.LogInfo("DownloadPendingPayoutsExcel called")

	entries, err := settlementEngine.PendingManualPayouts()
	if err != nil {
		utils.LogError("Failed to list pending payouts for export: %v", err)
		utils.InternalServerError(c, "Failed to list pending payouts", err.Error())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Pending Payouts")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("GIGSPHERE - Pending Manual Payouts")
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04:05"))
	sheet.AddRow() // spacing

	headers := []string{"Order ID", "Freelancer ID", "Freelancer", "Email", "Payout", "Bank Account", "IFSC", "UPI", "Failure Reason", "Queued At"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	for _, entry := range entries {
		row := sheet.AddRow()
		row.AddCell().SetString(fmt.Sprintf("%d", entry.OrderID))
		row.AddCell().SetString(fmt.Sprintf("%d", entry.FreelancerID))
		row.AddCell().SetString(entry.FreelancerName)
		row.AddCell().SetString(entry.FreelancerEmail)
		row.AddCell().SetString(entry.PayoutDisplay)
		if entry.PayoutDetails != nil {
			row.AddCell().SetString(entry.PayoutDetails.BankAccountNumber)
			row.AddCell().SetString(entry.PayoutDetails.BankIFSC)
			row.AddCell().SetString(entry.PayoutDetails.UPIID)
		} else {
			row.AddCell().SetString("")
			row.AddCell().SetString("")
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(entry.FailureReason)
		row.AddCell().SetString(entry.QueuedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=pending_payouts.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
	}
	utils.LogInfo("Pending payouts export completed, %d rows", len(entries))
}
