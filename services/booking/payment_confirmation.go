package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"

	"go.uber.org/zap"
)

const (
	loadMaxAttempts = 3
	loadBackoffBase = 200 * time.Millisecond
)

// paymentPreImages are the statuses a booking may hold when its payment
// succeeds. Provider-hosted checkout can deliver the webhook while we are
// still in AWAITING_PAYMENT, skipping the PAYMENT_PROCESSING hop.
var paymentPreImages = []models.BookingStatus{
	models.StatusPaymentProcessing,
	models.StatusAwaitingPayment,
}

// ConfirmPaymentSuccess processes a verified payment-success event. The
// status commit is the durable point: once PAYMENT_COMPLETED is persisted the
// call succeeds regardless of how the side-effect pipeline fares. Duplicate
// webhook deliveries short-circuit on the idempotency guard, so the payment
// provider can redeliver freely.
func (svc *DefaultPaymentConfirmationService) ConfirmPaymentSuccess(ctx context.Context, bookingID string, event models.PaymentEvent) error {
	booking, err := svc.loadWithRetry(ctx, bookingID)
	if err != nil {
		return err
	}

	// Idempotency guard: a booking already past the payment commit makes
	// this delivery a safe no-op, side effects are not re-run.
	if isPastPaymentCommit(booking.Status) {
		svc.Logger.Info("duplicate payment confirmation ignored",
			zap.String("booking_id", bookingID),
			zap.String("status", booking.Status.String()),
			zap.String("payment_reference", event.PaymentReferenceID))
		return nil
	}

	if err := svc.commitPayment(booking, event); err != nil {
		if errors.Is(err, errAlreadyCommitted) {
			return nil
		}
		return err
	}

	// Commit is durable from here on; everything below is best effort.
	booking.SetStatus(models.StatusPaymentCompleted)
	svc.runSideEffects(ctx, booking, event)
	return nil
}

// commitPayment performs the conditional status write. The pre-image filter
// replaces a distributed lock: of two racing deliveries exactly one matches,
// the other observes the already-committed status on re-read.
func (svc *DefaultPaymentConfirmationService) commitPayment(booking *models.Booking, event models.PaymentEvent) error {
	if !statusIn(booking.Status, paymentPreImages) {
		return &InvalidTransitionError{
			BookingID: booking.ID,
			From:      booking.Status,
			To:        models.StatusPaymentCompleted,
		}
	}

	matched, err := svc.Repo.UpdateStatusIf(booking.ID, paymentPreImages, models.StatusPaymentCompleted)
	if err != nil {
		return fmt.Errorf("payment status commit failed for booking %s: %w", booking.ID, err)
	}
	if matched {
		svc.Logger.Info("payment recorded",
			zap.String("booking_id", booking.ID),
			zap.String("payment_reference", event.PaymentReferenceID),
			zap.Float64("amount", event.Amount))
		return nil
	}

	// Pre-image mismatch: either a racing duplicate won the commit, or the
	// booking moved somewhere unexpected.
	current, readErr := svc.Repo.FindByID(booking.ID)
	if readErr == nil && isPastPaymentCommit(current.Status) {
		svc.Logger.Info("payment already committed by racing delivery",
			zap.String("booking_id", booking.ID),
			zap.String("status", current.Status.String()))
		return errAlreadyCommitted
	}
	return &ConcurrencyConflictError{BookingID: booking.ID}
}

// errAlreadyCommitted is an internal signal: a racing delivery committed the
// payment first, this call degrades to a no-op without side effects.
var errAlreadyCommitted = errors.New("payment already committed")

// runSideEffects drives the post-commit pipeline. Each step is isolated: a
// failure is logged with full context and never escalated, so the booking
// stays correctly marked paid and the provider never sees a spurious retry
// signal.
func (svc *DefaultPaymentConfirmationService) runSideEffects(ctx context.Context, booking *models.Booking, event models.PaymentEvent) {
	docResult, err := svc.Documents.Run(ctx, models.DocumentRunRequest{
		BookingID: booking.ID,
		Trigger:   models.DocumentTriggerPaymentCompleted,
		Payment:   &event,
	})
	switch {
	case err != nil:
		svc.Logger.Error("document orchestration failed",
			zap.String("booking_id", booking.ID),
			zap.String("payment_reference", event.PaymentReferenceID),
			zap.Error(err))
	case !docResult.Success:
		svc.Logger.Warn("document orchestration partially failed",
			zap.String("booking_id", booking.ID),
			zap.Strings("distributed", docResult.Distributed))
	default:
		svc.Logger.Info("documents distributed",
			zap.String("booking_id", booking.ID),
			zap.Strings("distributed", docResult.Distributed))
	}

	if err := svc.Attribution.Trigger(ctx, booking); err != nil {
		svc.Logger.Error("attribution trigger failed",
			zap.String("booking_id", booking.ID),
			zap.String("payment_reference", event.PaymentReferenceID),
			zap.Error(err))
	}
}

// loadWithRetry fetches the booking, retrying transient repository failures
// with doubling backoff. A missing booking is surfaced immediately.
func (svc *DefaultPaymentConfirmationService) loadWithRetry(ctx context.Context, bookingID string) (*models.Booking, error) {
	backoff := loadBackoffBase
	var lastErr error

	for attempt := 1; attempt <= loadMaxAttempts; attempt++ {
		booking, err := svc.Repo.FindByID(bookingID)
		if err == nil {
			return booking, nil
		}
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{BookingID: bookingID}
		}

		lastErr = err
		svc.Logger.Warn("transient booking load failure",
			zap.String("booking_id", bookingID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == loadMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("failed to load booking %s after %d attempts: %w", bookingID, loadMaxAttempts, lastErr)
}

// isPastPaymentCommit reports whether the booking already recorded its
// payment (or reached a terminal state afterwards).
func isPastPaymentCommit(status models.BookingStatus) bool {
	switch status {
	case models.StatusPaymentCompleted, models.StatusCompleted, models.StatusCanceled:
		return true
	}
	return false
}

func statusIn(status models.BookingStatus, set []models.BookingStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
