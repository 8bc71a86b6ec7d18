package models

import (
	"fmt"
	"time"
)

// Booking represents a scheduled, paid-for service engagement between a
// customer and (once attributed) a professional.
type Booking struct {
	ID             string        `bson:"id" json:"id"`                                             // Unique booking identifier (UUID)
	CustomerID     string        `bson:"customer_id" json:"customer_id"`                           // Customer who requested the service
	ProfessionalID string        `bson:"professional_id,omitempty" json:"professional_id,omitempty"` // Assigned professional, empty until attribution
	QuoteRequestID string        `bson:"quote_request_id,omitempty" json:"quote_request_id,omitempty"`
	ServiceType    string        `bson:"service_type" json:"service_type"` // e.g., "moving", "cleaning"
	Status         BookingStatus `bson:"status" json:"status"`
	TotalAmount    float64       `bson:"total_amount" json:"total_amount"`
	Currency       string        `bson:"currency" json:"currency"`
	PaymentMethod  string        `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	ScheduledDate  time.Time     `bson:"scheduled_date" json:"scheduled_date"`
	Location       string        `bson:"location" json:"location"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
	DisputeOpen    bool          `bson:"dispute_open,omitempty" json:"dispute_open,omitempty"` // An open dispute freezes cancellation
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

// SetStatus is the only writer of the status field. It bumps UpdatedAt so
// every persisted mutation advances the timestamp.
func (b *Booking) SetStatus(next BookingStatus) {
	b.Status = next
	b.touch()
}

// AssignProfessional records the professional matched to this booking.
func (b *Booking) AssignProfessional(professionalID string) {
	b.ProfessionalID = professionalID
	b.touch()
}

// BookingPatch carries the mutable fields of a booking. Nil fields are left
// untouched. Status changes are routed through the transition table by the
// update service before the remaining fields are applied.
type BookingPatch struct {
	Status        *BookingStatus `json:"status,omitempty"`
	ScheduledDate *time.Time     `json:"scheduled_date,omitempty"`
	Location      *string        `json:"location,omitempty"`
	TotalAmount   *float64       `json:"total_amount,omitempty"`
	Currency      *string        `json:"currency,omitempty"`
	PaymentMethod *string        `json:"payment_method,omitempty"`
	ServiceType   *string        `json:"service_type,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

// ApplyPatch applies the whitelisted non-status fields onto the booking.
// The explicit field list replaces a generic merge so a patch can never
// bypass the status-transition guard.
func (b *Booking) ApplyPatch(patch BookingPatch) error {
	if patch.TotalAmount != nil {
		if *patch.TotalAmount < 0 {
			return fmt.Errorf("total amount must be non-negative, got %.2f", *patch.TotalAmount)
		}
		b.TotalAmount = *patch.TotalAmount
	}
	if patch.ScheduledDate != nil {
		b.ScheduledDate = *patch.ScheduledDate
	}
	if patch.Location != nil {
		b.Location = *patch.Location
	}
	if patch.Currency != nil {
		b.Currency = *patch.Currency
	}
	if patch.PaymentMethod != nil {
		b.PaymentMethod = *patch.PaymentMethod
	}
	if patch.ServiceType != nil {
		b.ServiceType = *patch.ServiceType
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
	b.touch()
	return nil
}

// touch advances UpdatedAt, keeping it strictly monotonic even when two
// mutations land within the clock's resolution.
func (b *Booking) touch() {
	now := time.Now()
	if !now.After(b.UpdatedAt) {
		now = b.UpdatedAt.Add(time.Millisecond)
	}
	b.UpdatedAt = now
}
