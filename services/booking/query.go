package booking

import (
	"errors"
	"fmt"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"
)

// Search delegates the typed query to the repository and shapes the page.
func (svc *DefaultQueryService) Search(criteria *bookingRepo.SearchCriteria) (*models.BookingSearchResult, error) {
	bookings, total, err := svc.Repo.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("booking search failed: %w", err)
	}
	return &models.BookingSearchResult{
		Bookings:   bookings,
		TotalCount: total,
		HasMore:    criteria.Offset+int64(len(bookings)) < total,
		Offset:     criteria.Offset,
		Limit:      criteria.Limit,
	}, nil
}

// GetByID fetches a single booking, failing with NotFoundError when absent.
func (svc *DefaultQueryService) GetByID(id string) (*models.Booking, error) {
	booking, err := svc.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{BookingID: id}
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return booking, nil
}

// GetByCustomer lists a customer's bookings, repository-ordered by scheduled date.
func (svc *DefaultQueryService) GetByCustomer(customerID string) ([]models.Booking, error) {
	return svc.Repo.FindByCustomerID(customerID)
}

// GetByProfessional lists a professional's bookings, repository-ordered by scheduled date.
func (svc *DefaultQueryService) GetByProfessional(professionalID string) ([]models.Booking, error) {
	return svc.Repo.FindByProfessionalID(professionalID)
}

// Exists reports whether the booking is stored.
func (svc *DefaultQueryService) Exists(id string) (bool, error) {
	return svc.Repo.Exists(id)
}

// Count returns the number of bookings matching the criteria (nil counts all).
func (svc *DefaultQueryService) Count(criteria *bookingRepo.SearchCriteria) (int64, error) {
	return svc.Repo.Count(criteria)
}

// IsOwnedByCustomer is a boolean fact check used by callers to authorize
// mutation requests; no authorization decision is made here.
func (svc *DefaultQueryService) IsOwnedByCustomer(id, customerID string) (bool, error) {
	return svc.Repo.IsOwnedByCustomer(id, customerID)
}

// IsOwnedByProfessional is the professional-side ownership fact check.
func (svc *DefaultQueryService) IsOwnedByProfessional(id, professionalID string) (bool, error) {
	return svc.Repo.IsOwnedByProfessional(id, professionalID)
}
