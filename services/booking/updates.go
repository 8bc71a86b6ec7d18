package booking

import (
	"errors"
	"fmt"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"

	"go.uber.org/zap"
)

// Update applies a patch to a booking. A status change inside the patch is
// validated against the transition table and applied through the entity's
// own mutator; the repository's modification gate must also pass. Both
// checks are required: the gate captures repository-specific business
// exceptions, the table enforces the state-machine law.
func (svc *DefaultUpdateService) Update(id string, patch models.BookingPatch) (*models.Booking, error) {
	booking, err := svc.load(id)
	if err != nil {
		return nil, err
	}

	ok, reason, err := svc.Repo.CanBeModified(id)
	if err != nil {
		return nil, fmt.Errorf("modification gate check failed for booking %s: %w", id, err)
	}
	if !ok {
		return nil, &UpdateNotAllowedError{BookingID: id, Reason: reason}
	}

	if patch.Status != nil && *patch.Status != booking.Status {
		if err := ValidateTransition(id, booking.Status, *patch.Status); err != nil {
			return nil, err
		}
		booking.SetStatus(*patch.Status)
		// Clear it so the whitelist application below cannot touch status again.
		patch.Status = nil
	}

	if err := booking.ApplyPatch(patch); err != nil {
		return nil, &UpdateNotAllowedError{BookingID: id, Reason: err.Error()}
	}

	if err := svc.Repo.Save(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking %s: %w", id, err)
	}

	svc.Logger.Info("booking updated",
		zap.String("booking_id", id),
		zap.String("status", booking.Status.String()))
	return booking, nil
}

// Cancel soft-cancels a booking. A booking already in CANCELED fails with
// AlreadyCancelledError before the gate is consulted.
func (svc *DefaultUpdateService) Cancel(id, reason string) error {
	booking, err := svc.load(id)
	if err != nil {
		return err
	}

	if booking.Status == models.StatusCanceled {
		return &AlreadyCancelledError{BookingID: id}
	}

	ok, gateReason, err := svc.Repo.CanBeCancelled(id)
	if err != nil {
		return fmt.Errorf("cancellation gate check failed for booking %s: %w", id, err)
	}
	if !ok {
		return &CannotBeCancelledError{BookingID: id, Reason: gateReason}
	}

	if err := ValidateTransition(id, booking.Status, models.StatusCanceled); err != nil {
		return err
	}

	booking.SetStatus(models.StatusCanceled)
	if reason != "" {
		booking.Notes = reason
	}
	if err := svc.Repo.Save(booking); err != nil {
		return fmt.Errorf("failed to persist cancellation of booking %s: %w", id, err)
	}

	svc.Logger.Info("booking cancelled",
		zap.String("booking_id", id),
		zap.String("reason", reason))
	return nil
}

// Delete physically removes a booking when the deletion gate allows it.
func (svc *DefaultUpdateService) Delete(id string) error {
	if _, err := svc.load(id); err != nil {
		return err
	}

	ok, reason, err := svc.Repo.CanBeDeleted(id)
	if err != nil {
		return fmt.Errorf("deletion gate check failed for booking %s: %w", id, err)
	}
	if !ok {
		return &DeletionNotAllowedError{BookingID: id, Reason: reason}
	}

	if err := svc.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}

	svc.Logger.Info("booking deleted", zap.String("booking_id", id))
	return nil
}

func (svc *DefaultUpdateService) load(id string) (*models.Booking, error) {
	booking, err := svc.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{BookingID: id}
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return booking, nil
}
