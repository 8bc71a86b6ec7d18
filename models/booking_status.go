package models

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusDraft             BookingStatus = "DRAFT"
	StatusConfirmed         BookingStatus = "CONFIRMED"
	StatusAwaitingPayment   BookingStatus = "AWAITING_PAYMENT"
	StatusPaymentProcessing BookingStatus = "PAYMENT_PROCESSING"
	StatusPaymentFailed     BookingStatus = "PAYMENT_FAILED"
	StatusPaymentCompleted  BookingStatus = "PAYMENT_COMPLETED"
	StatusCompleted         BookingStatus = "COMPLETED"
	StatusCanceled          BookingStatus = "CANCELED"
)

// statusTransitions is the single authority on which status moves are legal.
// Every component must consult it before writing a status; nothing writes
// the status field directly.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusDraft:             {StatusConfirmed, StatusCanceled},
	StatusConfirmed:         {StatusAwaitingPayment, StatusCanceled},
	StatusAwaitingPayment:   {StatusPaymentProcessing, StatusCanceled},
	StatusPaymentProcessing: {StatusPaymentCompleted, StatusPaymentFailed},
	StatusPaymentFailed:     {StatusAwaitingPayment, StatusCanceled},
	StatusPaymentCompleted:  {StatusCompleted, StatusCanceled},
	StatusCanceled:          {},
	StatusCompleted:         {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := statusTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := statusTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the statuses reachable from this one.
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	allowed := statusTransitions[s]
	out := make([]BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := statusTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning false if unknown.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", false
	}
	return status, true
}
