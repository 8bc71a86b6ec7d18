package attribution

import (
	"context"
	"time"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"

	"go.uber.org/zap"
)

// ProfessionalDirectory looks up professionals able to serve a booking.
type ProfessionalDirectory interface {
	FindAvailable(ctx context.Context, serviceType, location string, scheduledDate time.Time) ([]models.Professional, error)
}

// Service begins professional matching for a paid booking.
type Service interface {
	Trigger(ctx context.Context, booking *models.Booking) error
}

// DefaultAttributionService implements Service.
type DefaultAttributionService struct {
	Repo      bookingRepo.BookingRepository
	Directory ProfessionalDirectory
	Logger    *zap.Logger
}
