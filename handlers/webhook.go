package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tidymove/config"
	"tidymove/models"
	"tidymove/services/booking"
	"tidymove/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentWebhookHandler receives payment-provider events and routes verified
// payment successes into the confirmation orchestrator.
type PaymentWebhookHandler struct {
	Confirmation booking.PaymentConfirmationService
	Logger       *zap.Logger
}

// NewPaymentWebhookHandler constructs a PaymentWebhookHandler.
func NewPaymentWebhookHandler(confirmation booking.PaymentConfirmationService, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		Confirmation: confirmation,
		Logger:       logger,
	}
}

// HandleStripeEvent handles POST /webhooks/stripe. A non-2xx response makes
// the provider redeliver, so only the mandatory status commit may fail the
// call; the idempotency guard makes those retries safe.
func (h *PaymentWebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable payload", err.Error())
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "webhook signature verification failed", err.Error())
		return
	}

	if event.Type != "payment_intent.succeeded" {
		// Not a payment success; acknowledge and ignore.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "malformed payment intent", err.Error())
		return
	}

	bookingID := intent.Metadata["booking_id"]
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing booking reference", "payment intent carries no booking_id metadata")
		return
	}

	paymentEvent := models.PaymentEvent{
		BookingID:          bookingID,
		PaymentReferenceID: intent.ID,
		Amount:             float64(intent.Amount) / 100,
		Currency:           string(intent.Currency),
		ProviderStatus:     string(intent.Status),
	}

	if err := h.Confirmation.ConfirmPaymentSuccess(c.Request.Context(), bookingID, paymentEvent); err != nil {
		h.Logger.Error("payment confirmation failed",
			zap.String("booking_id", bookingID),
			zap.String("payment_reference", intent.ID),
			zap.Error(err))
		respondWebhookError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func respondWebhookError(c *gin.Context, err error) {
	var (
		notFound          *booking.NotFoundError
		invalidTransition *booking.InvalidTransitionError
		conflict          *booking.ConcurrencyConflictError
	)

	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
	case errors.As(err, &invalidTransition), errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "booking state conflict", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "payment confirmation failed", err.Error())
	}
}
