package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"
	"tidymove/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultDocumentOrchestrator implements Orchestrator. A failed run is
// reported in the result and requeued on the retry queue; it never blocks
// the lifecycle event that triggered it.
type DefaultDocumentOrchestrator struct {
	Repo        bookingRepo.BookingRepository
	Renderer    Renderer
	Distributor Distributor
	Notifier    notification.NotificationService
	Queue       *asynq.Client // nil disables out-of-band retry
	MaxAttempts int
	Logger      *zap.Logger
}

// Run generates and distributes the documents for the lifecycle event, then
// sends the payment-confirmation notification. Each document is attempted
// independently so one failed render does not block the others.
func (o *DefaultDocumentOrchestrator) Run(ctx context.Context, req models.DocumentRunRequest) (*models.DocumentRunResult, error) {
	booking, err := o.Repo.FindByID(req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, fmt.Errorf("document run for unknown booking %s", req.BookingID)
		}
		return nil, fmt.Errorf("document run failed to load booking %s: %w", req.BookingID, err)
	}

	result := &models.DocumentRunResult{Success: true}

	for _, kind := range []string{KindReceipt, KindInvoice} {
		if err := o.produce(ctx, kind, booking, req.Payment); err != nil {
			result.Success = false
			o.Logger.Error("document production failed",
				zap.String("booking_id", booking.ID),
				zap.String("kind", kind),
				zap.Int("attempt", req.Attempt),
				zap.Error(err))
			continue
		}
		result.Distributed = append(result.Distributed, kind)
	}

	if req.Payment != nil {
		if err := o.Notifier.SendPaymentConfirmation(ctx, booking, *req.Payment); err != nil {
			result.Success = false
			o.Logger.Error("payment confirmation notification failed",
				zap.String("booking_id", booking.ID),
				zap.Error(err))
		} else {
			result.Distributed = append(result.Distributed, "payment_confirmation")
		}
	}

	if !result.Success {
		o.enqueueRetry(req)
	}

	return result, nil
}

func (o *DefaultDocumentOrchestrator) produce(ctx context.Context, kind string, booking *models.Booking, payment *models.PaymentEvent) error {
	data := map[string]any{
		"bookingId":     booking.ID,
		"customerId":    booking.CustomerID,
		"serviceType":   booking.ServiceType,
		"scheduledDate": booking.ScheduledDate,
		"location":      booking.Location,
		"amount":        booking.TotalAmount,
		"currency":      booking.Currency,
	}
	if payment != nil {
		data["paymentReference"] = payment.PaymentReferenceID
		data["paidAmount"] = payment.Amount
	}

	doc, err := o.Renderer.Render(ctx, kind, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	if err := o.Distributor.Distribute(ctx, booking.ID, kind, doc); err != nil {
		return fmt.Errorf("distribute %s: %w", kind, err)
	}
	return nil
}

// enqueueRetry schedules an out-of-band retry with a doubling delay. Best
// effort as well: a queue failure is logged and dropped.
func (o *DefaultDocumentOrchestrator) enqueueRetry(req models.DocumentRunRequest) {
	if o.Queue == nil {
		return
	}
	if req.Attempt >= o.MaxAttempts {
		o.Logger.Warn("document retry attempts exhausted",
			zap.String("booking_id", req.BookingID),
			zap.Int("attempt", req.Attempt))
		return
	}

	retry := req
	retry.Attempt++
	delay := time.Duration(1<<uint(req.Attempt)) * time.Minute

	task, opts, err := NewRetryTask(retry, delay)
	if err != nil {
		o.Logger.Error("failed to build document retry task",
			zap.String("booking_id", req.BookingID),
			zap.Error(err))
		return
	}
	if _, err := o.Queue.Enqueue(task, opts...); err != nil {
		o.Logger.Error("failed to enqueue document retry task",
			zap.String("booking_id", req.BookingID),
			zap.Error(err))
		return
	}
	o.Logger.Info("document retry scheduled",
		zap.String("booking_id", req.BookingID),
		zap.Int("attempt", retry.Attempt),
		zap.Duration("delay", delay))
}
