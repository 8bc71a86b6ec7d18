package bookingRepo

import (
	"errors"

	"tidymove/models"
)

// ErrNotFound is returned when a booking id resolves to no document.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Save(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	FindByCustomerID(customerID string) ([]models.Booking, error)
	FindByProfessionalID(professionalID string) ([]models.Booking, error)
	Search(criteria *SearchCriteria) ([]models.Booking, int64, error)
	Count(criteria *SearchCriteria) (int64, error)
	Exists(id string) (bool, error)
	Delete(id string) error

	IsOwnedByCustomer(id, customerID string) (bool, error)
	IsOwnedByProfessional(id, professionalID string) (bool, error)

	// Coarse business gates. The reason is empty when the gate passes.
	CanBeModified(id string) (bool, string, error)
	CanBeCancelled(id string) (bool, string, error)
	CanBeDeleted(id string) (bool, string, error)

	// UpdateStatusIf performs a conditional status write: the update applies
	// only when the stored status is one of expected. It reports whether a
	// document matched, making racing writers detectable without a lock.
	UpdateStatusIf(id string, expected []models.BookingStatus, next models.BookingStatus) (bool, error)

	GetBookingStatsByCustomer(customerID string) (*models.BookingStats, error)
	GetBookingStatsByProfessional(professionalID string) (*models.BookingStats, error)
}
