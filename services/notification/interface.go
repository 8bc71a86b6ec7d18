package notification

import (
	"context"
	"fmt"
	"time"

	"tidymove/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher is the external transport that renders and delivers a
// notification (email, push). The core only assembles the payload.
type Dispatcher interface {
	Dispatch(ctx context.Context, customerID string, n models.Notification) error
}

// NotificationService assembles customer-facing notifications for booking
// lifecycle events.
type NotificationService interface {
	SendPaymentConfirmation(ctx context.Context, booking *models.Booking, event models.PaymentEvent) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Dispatcher Dispatcher
	Logger     *zap.Logger
}

// SendPaymentConfirmation builds the payment-confirmation payload and hands
// it to the dispatcher.
func (s *DefaultNotificationService) SendPaymentConfirmation(ctx context.Context, booking *models.Booking, event models.PaymentEvent) error {
	n := models.Notification{
		ID:      uuid.New().String(),
		Type:    "payment_confirmation",
		Title:   "Payment Confirmed!",
		Message: fmt.Sprintf("We've received your payment of %s %.2f for your %s booking on %s.",
			booking.Currency, event.Amount, booking.ServiceType, booking.ScheduledDate.Format("2 January, 3:04 PM")),
		Data: map[string]any{
			"bookingId":        booking.ID,
			"paymentReference": event.PaymentReferenceID,
			"amount":           event.Amount,
			"currency":         booking.Currency,
			"status":           booking.Status.String(),
		},
		CreatedAt: time.Now(),
		Read:      false,
	}

	if err := s.Dispatcher.Dispatch(ctx, booking.CustomerID, n); err != nil {
		return fmt.Errorf("SendPaymentConfirmation: failed to dispatch to customer %s: %w", booking.CustomerID, err)
	}

	s.Logger.Info("payment confirmation notification dispatched",
		zap.String("booking_id", booking.ID),
		zap.String("customer_id", booking.CustomerID))
	return nil
}
