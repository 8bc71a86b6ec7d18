package booking

import (
	"context"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"
	"tidymove/services/attribution"
	"tidymove/services/document"

	"go.uber.org/zap"
)

// QueryService exposes the read-only operations over the booking collection.
type QueryService interface {
	Search(criteria *bookingRepo.SearchCriteria) (*models.BookingSearchResult, error)
	GetByID(id string) (*models.Booking, error)
	GetByCustomer(customerID string) ([]models.Booking, error)
	GetByProfessional(professionalID string) ([]models.Booking, error)
	Exists(id string) (bool, error)
	Count(criteria *bookingRepo.SearchCriteria) (int64, error)
	IsOwnedByCustomer(id, customerID string) (bool, error)
	IsOwnedByProfessional(id, professionalID string) (bool, error)
}

// StatsService shapes the repository's booking aggregates.
type StatsService interface {
	GetCustomerStats(customerID string) (*models.BookingStats, error)
	GetProfessionalStats(professionalID string) (*models.BookingStats, error)
}

// UpdateService exposes the guarded mutation operations.
type UpdateService interface {
	Update(id string, patch models.BookingPatch) (*models.Booking, error)
	Cancel(id, reason string) error
	Delete(id string) error
}

// PaymentConfirmationService consumes verified payment-success events. It is
// the only writer allowed to move a booking into PAYMENT_COMPLETED.
type PaymentConfirmationService interface {
	ConfirmPaymentSuccess(ctx context.Context, bookingID string, event models.PaymentEvent) error
}

// DefaultQueryService implements QueryService.
type DefaultQueryService struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

// DefaultStatsService implements StatsService.
type DefaultStatsService struct {
	Repo bookingRepo.BookingRepository
}

// DefaultUpdateService implements UpdateService.
type DefaultUpdateService struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

// DefaultPaymentConfirmationService implements PaymentConfirmationService.
type DefaultPaymentConfirmationService struct {
	Repo        bookingRepo.BookingRepository
	Documents   document.Orchestrator
	Attribution attribution.Service
	Logger      *zap.Logger
}
