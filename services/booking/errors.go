package booking

import (
	"fmt"

	"tidymove/models"
)

// The error kinds below are business-meaningful and surface to the controller
// layer unmodified, where they map onto 404/409/422 responses.

// NotFoundError reports an absent booking.
type NotFoundError struct {
	BookingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notFound: booking %s not found", e.BookingID)
}

// InvalidTransitionError reports a state-machine violation.
type InvalidTransitionError struct {
	BookingID string
	From      models.BookingStatus
	To        models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalidTransition: booking %s cannot move from %s to %s", e.BookingID, e.From, e.To)
}

// AlreadyCancelledError reports a cancel call on a booking already in CANCELED.
type AlreadyCancelledError struct {
	BookingID string
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("alreadyCancelled: booking %s is already cancelled", e.BookingID)
}

// CannotBeCancelledError reports a repository cancellation gate failure.
type CannotBeCancelledError struct {
	BookingID string
	Reason    string
}

func (e *CannotBeCancelledError) Error() string {
	return fmt.Sprintf("cannotBeCancelled: booking %s cannot be cancelled: %s", e.BookingID, e.Reason)
}

// UpdateNotAllowedError reports a repository modification gate failure.
type UpdateNotAllowedError struct {
	BookingID string
	Reason    string
}

func (e *UpdateNotAllowedError) Error() string {
	return fmt.Sprintf("updateNotAllowed: booking %s cannot be updated: %s", e.BookingID, e.Reason)
}

// DeletionNotAllowedError reports a repository deletion gate failure.
type DeletionNotAllowedError struct {
	BookingID string
	Reason    string
}

func (e *DeletionNotAllowedError) Error() string {
	return fmt.Sprintf("deletionNotAllowed: booking %s cannot be deleted: %s", e.BookingID, e.Reason)
}

// ConcurrencyConflictError reports an optimistic-write pre-image mismatch.
type ConcurrencyConflictError struct {
	BookingID string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrencyConflict: booking %s was modified by a racing writer", e.BookingID)
}

// ValidateTransition checks a status move against the transition table,
// returning an InvalidTransitionError when the move is not in the table.
func ValidateTransition(bookingID string, from, to models.BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{BookingID: bookingID, From: from, To: to}
	}
	return nil
}
