package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPrefix(t *testing.T) {
	assert.Equal(t, "orders/42/", ObjectPrefix(42))
}

func TestKeyBelongsToOrder(t *testing.T) {
	tests := []struct {
		name    string
		orderID uint
		key     string
		want    bool
	}{
		{"own delivery file", 7, "orders/7/delivery_a1b2c3d4_1767000000.zip", true},
		{"another order's file", 7, "orders/8/delivery_a1b2c3d4_1767000000.zip", false},
		{"prefix-confusable order id", 7, "orders/71/delivery_a1b2c3d4_1767000000.zip", false},
		{"bare prefix with no object", 7, "orders/7/", false},
		{"outside the orders namespace", 7, "briefs/logo-brief.pdf", false},
		{"empty key", 7, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyBelongsToOrder(tt.orderID, tt.key))
		})
	}
}
