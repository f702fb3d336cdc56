package models

import (
	"gorm.io/gorm"
)

// FreelancerPayoutDetails holds where a freelancer's settlement money goes.
// RazorpayAccountID is the linked account used for automatic transfers; the
// bank and UPI fields are what an operator needs to execute a manual payout
// when the automatic path fails. Settlement confirmation refuses to proceed
// when no usable recipient detail is on file.
type FreelancerPayoutDetails struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
	User   User `json:"-" gorm:"foreignKey:UserID"`

	RazorpayAccountID string `json:"razorpay_account_id"`
	BankAccountName   string `json:"bank_account_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSC          string `json:"bank_ifsc"`
	UPIID             string `json:"upi_id"`
}

// HasManualRecipient reports whether an operator could execute a transfer by
// hand with the details on file.
func (d *FreelancerPayoutDetails) HasManualRecipient() bool {
	if d == nil {
		return false
	}
	if d.UPIID != "" {
		return true
	}
	return d.BankAccountNumber != "" && d.BankIFSC != ""
}

// HasLinkedAccount reports whether the automatic gateway transfer path is
// available.
func (d *FreelancerPayoutDetails) HasLinkedAccount() bool {
	return d != nil && d.RazorpayAccountID != ""
}
