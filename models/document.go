package models

import "time"

// DocumentTrigger names the lifecycle event that caused a document run.
type DocumentTrigger string

const (
	DocumentTriggerPaymentCompleted DocumentTrigger = "PAYMENT_COMPLETED"
)

// DocumentRunRequest asks the document orchestration to generate and
// distribute the paperwork for a booking lifecycle event.
type DocumentRunRequest struct {
	BookingID string          `json:"booking_id"`
	Trigger   DocumentTrigger `json:"trigger"`
	Payment   *PaymentEvent   `json:"payment,omitempty"`
	Attempt   int             `json:"attempt"` // 0 for the inline run, >0 for queue retries
}

// DocumentRunResult reports which documents were produced and distributed.
type DocumentRunResult struct {
	Success     bool     `json:"success"`
	Distributed []string `json:"distributed"` // e.g., "receipt", "invoice", "payment_confirmation"
}

// Notification is a customer-facing message assembled by the core and handed
// to an external dispatcher for rendering and delivery.
type Notification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	Read      bool           `json:"read"`
}
