package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeUpdatesMarshalsSliceColumns(t *testing.T) {
	values, err := encodeUpdates(map[string]interface{}{
		"delivery_files":   []string{"orders/7/delivery_logo.zip", "orders/7/delivery_src.ai"},
		"delivery_links":   []string{},
		"delivery_message": "final cut attached",
	})
	require.NoError(t, err)

	// Slice columns must arrive at the statement as JSON text, never as a
	// raw []string the driver would splat into an expression list.
	files, ok := values["delivery_files"].(string)
	require.True(t, ok, "delivery_files should be encoded to a string")
	assert.JSONEq(t, `["orders/7/delivery_logo.zip","orders/7/delivery_src.ai"]`, files)

	links, ok := values["delivery_links"].(string)
	require.True(t, ok)
	assert.Equal(t, "[]", links)

	assert.Equal(t, "final cut attached", values["delivery_message"])
}

func TestEncodeUpdatesLeavesScalarsUntouched(t *testing.T) {
	deliveredAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	values, err := encodeUpdates(map[string]interface{}{
		"delivered_at":        &deliveredAt,
		"revisions_used":      2,
		"cancellation_reason": "changed my mind",
	})
	require.NoError(t, err)

	assert.Equal(t, &deliveredAt, values["delivered_at"])
	assert.Equal(t, 2, values["revisions_used"])
	assert.Equal(t, "changed my mind", values["cancellation_reason"])
}

func TestEncodeUpdatesSingleFileStaysJSON(t *testing.T) {
	values, err := encodeUpdates(map[string]interface{}{
		"delivery_files": []string{"orders/3/delivery_report.pdf"},
	})
	require.NoError(t, err)

	// A one-element slice must still serialize as a JSON array, not as the
	// bare string, or every later read of the row fails to unmarshal.
	assert.JSONEq(t, `["orders/3/delivery_report.pdf"]`, values["delivery_files"].(string))
}
