package reservation

import "fmt"

// FulfillmentStatus tracks whether the booked period was honored. It is
// fully independent of PaymentStatus: the engine never couples the two.
type FulfillmentStatus string

const (
	FulfillmentConfirmed FulfillmentStatus = "confirmed"
	FulfillmentCancelled FulfillmentStatus = "cancelled"
	FulfillmentCompleted FulfillmentStatus = "completed"
)

// ParseFulfillmentStatus converts a raw string into a FulfillmentStatus.
func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	switch FulfillmentStatus(s) {
	case FulfillmentConfirmed, FulfillmentCancelled, FulfillmentCompleted:
		return FulfillmentStatus(s), nil
	default:
		return "", ErrInvalidFulfillmentStatus
	}
}

// fulfillmentTransitions is the full transition table. Cancelled and
// completed are terminal.
var fulfillmentTransitions = map[FulfillmentStatus][]FulfillmentStatus{
	FulfillmentConfirmed: {FulfillmentCancelled, FulfillmentCompleted},
	FulfillmentCancelled: {},
	FulfillmentCompleted: {},
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s FulfillmentStatus) CanTransitionTo(next FulfillmentStatus) bool {
	for _, allowed := range fulfillmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further fulfillment transition is legal.
func (s FulfillmentStatus) Terminal() bool {
	return len(fulfillmentTransitions[s]) == 0
}

// PaymentStatus tracks the financial settlement of a reservation,
// independently of fulfillment. A failed payment cannot return to pending;
// a new payment attempt is modeled outside the engine.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ParsePaymentStatus converts a raw string into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return PaymentStatus(s), nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentPaid, PaymentFailed, PaymentCancelled},
	PaymentPaid:      {PaymentRefunded},
	PaymentFailed:    {},
	PaymentCancelled: {},
	PaymentRefunded:  {},
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InvalidTransitionError reports an illegal state change, naming the
// current state and the attempted target.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}
