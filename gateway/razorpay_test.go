package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "test_secret")

	signature := signPayload("test_secret", "order_N1abc", "pay_N1xyz")
	assert.True(t, g.VerifySignature("order_N1abc", "pay_N1xyz", signature))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "test_secret")

	signature := signPayload("test_secret", "order_N1abc", "pay_N1xyz")
	assert.False(t, g.VerifySignature("order_N1abc", "pay_other", signature))
	assert.False(t, g.VerifySignature("order_other", "pay_N1xyz", signature))
	assert.False(t, g.VerifySignature("order_N1abc", "pay_N1xyz", "deadbeef"))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "test_secret")

	signature := signPayload("other_secret", "order_N1abc", "pay_N1xyz")
	assert.False(t, g.VerifySignature("order_N1abc", "pay_N1xyz", signature))
}

func TestKeyID(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "test_secret")
	assert.Equal(t, "rzp_test_key", g.KeyID())
}
