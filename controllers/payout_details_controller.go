package controllers

import (
	"strings"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/freelancer/payout-details
func GetPayoutDetails(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	details, err := payoutDetails.FindByUserID(actor.ID)
	if err != nil {
		utils.LogError("Failed to load payout details for user ID: %d: %v", actor.ID, err)
		utils.InternalServerError(c, "Failed to load payout details", err.Error())
		return
	}
	if details == nil {
		utils.Success(c, "No payout details on file yet", gin.H{"payout_details": nil})
		return
	}

	utils.Success(c, "Payout details retrieved successfully", gin.H{
		"payout_details":      details,
		"auto_payout_enabled": details.HasLinkedAccount(),
		"manual_payout_ready": details.HasManualRecipient(),
	})
}

// PUT /v1/freelancer/payout-details
func UpdatePayoutDetails(c *gin.Context) {
	utils.LogInfo("UpdatePayoutDetails called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		RazorpayAccountID string `json:"razorpay_account_id"`
		BankAccountName   string `json:"bank_account_name"`
		BankAccountNumber string `json:"bank_account_number"`
		BankIFSC          string `json:"bank_ifsc"`
		UPIID             string `json:"upi_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payout details request from user ID: %d: %v", actor.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.BankIFSC != "" {
		if valid, msg := utils.ValidateIFSC(req.BankIFSC); !valid {
			utils.ValidationError(c, msg, nil)
			return
		}
	}
	if req.UPIID != "" {
		if valid, msg := utils.ValidateUPI(req.UPIID); !valid {
			utils.ValidationError(c, msg, nil)
			return
		}
	}
	if req.BankAccountNumber != "" && req.BankIFSC == "" {
		utils.BadRequest(c, "A bank account requires an IFSC code", nil)
		return
	}

	details := &models.FreelancerPayoutDetails{
		UserID:            actor.ID,
		RazorpayAccountID: strings.TrimSpace(req.RazorpayAccountID),
		BankAccountName:   utils.SanitizeString(req.BankAccountName),
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
		BankIFSC:          strings.ToUpper(strings.TrimSpace(req.BankIFSC)),
		UPIID:             strings.TrimSpace(req.UPIID),
	}
	if err := payoutDetails.Upsert(details); err != nil {
		utils.LogError("Failed to save payout details for user ID: %d: %v", actor.ID, err)
		utils.InternalServerError(c, "Failed to save payout details", err.Error())
		return
	}
	utils.LogInfo("Payout details saved for user ID: %d", actor.ID)

	utils.Success(c, "Payout details saved successfully", gin.H{
		"payout_details":      details,
		"auto_payout_enabled": details.HasLinkedAccount(),
		"manual_payout_ready": details.HasManualRecipient(),
	})
}
