package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTenThousandRupees(t *testing.T) {
	// ₹10,000 service price
	b := Compute(1000000)

	assert.Equal(t, int64(140000), b.Commission, "commission should be ₹1,400")
	assert.Equal(t, int64(25200), b.GST, "GST should be ₹252")
	assert.Equal(t, int64(1025200), b.Total, "total should be ₹10,252")
	assert.Equal(t, int64(860000), b.FreelancerPayout, "payout should be ₹8,600")
}

func TestTotalIsPricePlusGSTOnCommissionOnly(t *testing.T) {
	for _, price := range []int64{0, 1, 99, 100, 12345, 99999, 1000000, 999999999} {
		b := Compute(price)
		assert.Equal(t, b.Price+b.GST, b.Total, "price %d", price)
		assert.Equal(t, b.Price-b.Commission, b.FreelancerPayout, "price %d", price)
		assert.LessOrEqual(t, b.GST, b.Commission, "tax is on commission, price %d", price)
	}
}

func TestRefundOnCancelledPaidOrder(t *testing.T) {
	// ₹10,000 order cancelled after capture: refund ₹9,600, the client is out
	// the ₹400 fee plus the ₹252 GST that was collected at capture.
	price := int64(1000000)

	assert.Equal(t, int64(40000), RefundFee(price))
	assert.Equal(t, int64(960000), RefundAmount(price))

	clientLoss := Total(price) - RefundAmount(price)
	assert.Equal(t, int64(65200), clientLoss, "client loses ₹652")
}

func TestPriceFromTotalRoundTrips(t *testing.T) {
	prices := []int64{0, 1, 50, 99, 101, 2500, 49999, 123457, 1000000, 98765432101}
	for _, price := range prices {
		total := Total(price)
		recovered, err := PriceFromTotal(total)
		require.NoError(t, err, "price %d", price)
		assert.Equal(t, price, recovered, "price %d", price)
		assert.Equal(t, FreelancerPayout(price), FreelancerPayout(recovered), "price %d", price)
	}
}

func TestPriceFromTotalExhaustiveSmallRange(t *testing.T) {
	for price := int64(0); price < 25000; price++ {
		recovered, err := PriceFromTotal(Total(price))
		require.NoError(t, err, "price %d", price)
		require.Equal(t, price, recovered, "price %d", price)
	}
}

func TestPriceFromTotalRejectsImpossibleTotals(t *testing.T) {
	_, err := PriceFromTotal(-1)
	assert.ErrorIs(t, err, ErrUnroundtrippableTotal)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹10252.00", FormatINR(1025200))
	assert.Equal(t, "₹0.05", FormatINR(5))
	assert.Equal(t, "-₹1.50", FormatINR(-150))
}
