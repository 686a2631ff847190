package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFulfillmentTransitions(t *testing.T) {
	cases := []struct {
		name string
		from FulfillmentStatus
		to   FulfillmentStatus
		ok   bool
	}{
		{"confirmed to cancelled", FulfillmentConfirmed, FulfillmentCancelled, true},
		{"confirmed to completed", FulfillmentConfirmed, FulfillmentCompleted, true},
		{"cancelled is terminal", FulfillmentCancelled, FulfillmentConfirmed, false},
		{"cancelled to completed", FulfillmentCancelled, FulfillmentCompleted, false},
		{"completed is terminal", FulfillmentCompleted, FulfillmentCancelled, false},
		{"no self transition", FulfillmentConfirmed, FulfillmentConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestFulfillmentTerminal(t *testing.T) {
	assert.False(t, FulfillmentConfirmed.Terminal())
	assert.True(t, FulfillmentCancelled.Terminal())
	assert.True(t, FulfillmentCompleted.Terminal())
}

func TestPaymentTransitions(t *testing.T) {
	cases := []struct {
		name string
		from PaymentStatus
		to   PaymentStatus
		ok   bool
	}{
		{"pending to paid", PaymentPending, PaymentPaid, true},
		{"pending to failed", PaymentPending, PaymentFailed, true},
		{"pending to cancelled", PaymentPending, PaymentCancelled, true},
		{"pending to refunded", PaymentPending, PaymentRefunded, false},
		{"paid to refunded", PaymentPaid, PaymentRefunded, true},
		{"paid to pending", PaymentPaid, PaymentPending, false},
		{"failed cannot retry", PaymentFailed, PaymentPending, false},
		{"failed to paid", PaymentFailed, PaymentPaid, false},
		{"cancelled is terminal", PaymentCancelled, PaymentPending, false},
		{"refunded is terminal", PaymentRefunded, PaymentPaid, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestParseFulfillmentStatus(t *testing.T) {
	got, err := ParseFulfillmentStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, FulfillmentCompleted, got)

	_, err = ParseFulfillmentStatus("done")
	assert.ErrorIs(t, err, ErrInvalidFulfillmentStatus)
}

func TestParsePaymentStatus(t *testing.T) {
	got, err := ParsePaymentStatus("refunded")
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, got)

	_, err = ParsePaymentStatus("expired")
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{From: "cancelled", To: "completed"}
	assert.Equal(t, `invalid transition from "cancelled" to "completed"`, err.Error())
}

func TestNewBookingCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := NewBookingCode()
		require.NoError(t, err)
		require.Len(t, code, 10)
		assert.Equal(t, "BK", code[:2])
		for _, r := range code[2:] {
			assert.NotContains(t, "0O1I", string(r))
		}
		seen[code] = true
	}
	// 100 draws from a 32^8 space should never collide.
	assert.Len(t, seen, 100)
}
