package models

// PaymentEvent is the already-verified payment-success event handed to the
// confirmation orchestrator. It is not persisted by the core.
type PaymentEvent struct {
	BookingID          string  `json:"booking_id"`
	PaymentReferenceID string  `json:"payment_reference_id"` // Provider-side id, idempotency key candidate
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	ProviderStatus     string  `json:"provider_status"`
	Method             string  `json:"method,omitempty"`
}
