package pricing

import (
	"errors"
	"fmt"
)

// All amounts are in paise. Rates are expressed in basis points so the
// arithmetic stays in integers end to end.
const (
	CommissionRateBP = 1400 // 14% platform commission on the service price
	GSTRateBP        = 1800 // 18% GST, charged on the commission only
	RefundFeeRateBP  = 400  // 4% processing fee withheld on fee-bearing refunds
)

// ErrUnroundtrippableTotal is returned by PriceFromTotal when the given total
// could not have been produced by Total for any price.
var ErrUnroundtrippableTotal = errors.New("total does not correspond to any price")

// Breakdown is the financial snapshot stored on an order at creation time.
// It is never recomputed from the order's price afterwards, so a later rate
// change cannot alter existing orders.
type Breakdown struct {
	Price            int64 `json:"price"`
	Commission       int64 `json:"platform_commission"`
	GST              int64 `json:"gst_amount"`
	Total            int64 `json:"total_amount"`
	FreelancerPayout int64 `json:"freelancer_payout"`
}

// roundBP applies a basis-point rate to an amount with half-up rounding.
func roundBP(amount int64, rateBP int64) int64 {
	return (amount*rateBP + 5000) / 10000
}

// Commission returns the platform commission on a price.
func Commission(price int64) int64 {
	return roundBP(price, CommissionRateBP)
}

// GST returns the tax charged on the commission for a price. The client's
// principal is not taxed.
func GST(price int64) int64 {
	return roundBP(Commission(price), GSTRateBP)
}

// Total returns the client-facing amount payable: price plus GST on the
// commission.
func Total(price int64) int64 {
	return price + GST(price)
}

// FreelancerPayout returns what the freelancer receives after commission.
func FreelancerPayout(price int64) int64 {
	return price - Commission(price)
}

// RefundFee returns the processing fee withheld on a fee-bearing refund.
func RefundFee(price int64) int64 {
	return roundBP(price, RefundFeeRateBP)
}

// RefundAmount returns the amount returned to the client when a paid order is
// cancelled. The GST collected at capture is not refunded.
func RefundAmount(price int64) int64 {
	return price - RefundFee(price)
}

// Compute returns the full financial snapshot for a price.
func Compute(price int64) Breakdown {
	return Breakdown{
		Price:            price,
		Commission:       Commission(price),
		GST:              GST(price),
		Total:            Total(price),
		FreelancerPayout: FreelancerPayout(price),
	}
}

// PriceFromTotal recovers the base price from a client-facing total produced
// by Total. The candidate from dividing out the tax-on-commission multiplier
// is verified by forward recomputation, scanning the neighbouring paise so
// that rounding in the forward direction never breaks the round trip.
func PriceFromTotal(total int64) (int64, error) {
	if total < 0 {
		return 0, ErrUnroundtrippableTotal
	}
	candidate := (total*10000 + 5126) / 10252
	for delta := int64(-2); delta <= 2; delta++ {
		price := candidate + delta
		if price >= 0 && Total(price) == total {
			return price, nil
		}
	}
	return 0, ErrUnroundtrippableTotal
}

// FormatINR renders a paise amount as a rupee string for responses, receipts
// and operator exports.
func FormatINR(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}
