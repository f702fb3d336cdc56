package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/Aravind-813/GigSphere/services"
	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway talks to Razorpay for payment capture orders, Route
// transfers to freelancer linked accounts, and refunds.
type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// NewRazorpayGateway returns a gateway using the given API credentials.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// KeyID exposes the public key for checkout payloads.
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateCaptureOrder creates a Razorpay order for the full amount in paise,
// set to auto-capture, and returns its ID.
func (g *RazorpayGateway) CreateCaptureOrder(orderID uint, amount int64) (string, error) {
	orderData := map[string]interface{}{
		"amount":          amount,
		"currency":        "INR",
		"receipt":         "order_rcptid_" + strconv.FormatUint(uint64(orderID), 10),
		"payment_capture": 1,
	}
	rzOrder, err := g.client.Order.Create(orderData, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	id, ok := rzOrder["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order create: missing id in response")
	}
	return id, nil
}

// Transfer moves amount paise to the freelancer's linked account via Route
// and returns the transfer ID.
func (g *RazorpayGateway) Transfer(recipientAccountID string, amount int64, reference string) (string, error) {
	transferData := map[string]interface{}{
		"account":  recipientAccountID,
		"amount":   amount,
		"currency": "INR",
		"notes": map[string]interface{}{
			"reference": reference,
		},
	}
	result, err := g.client.Transfer.Create(transferData, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay transfer: %w", err)
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay transfer: missing id in response")
	}
	return id, nil
}

// Refund refunds amount paise of a captured payment and returns the refund ID.
func (g *RazorpayGateway) Refund(gatewayPaymentID string, amount int64, reference string) (string, error) {
	refundData := map[string]interface{}{
		"speed": "normal",
		"notes": map[string]interface{}{
			"reference": reference,
		},
	}
	result, err := g.client.Payment.Refund(gatewayPaymentID, int(amount), refundData, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay refund: %w", err)
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay refund: missing id in response")
	}
	return id, nil
}

// VerifySignature checks the checkout callback signature. Razorpay signs
// "<order_id>|<payment_id>" with the key secret using HMAC-SHA256.
func (g *RazorpayGateway) VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool {
	data := razorpayOrderID + "|" + razorpayPaymentID
	h := hmac.New(sha256.New, []byte(g.keySecret))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

var _ services.PaymentGateway = (*RazorpayGateway)(nil)
