package booking

import (
	"fmt"

	"tidymove/models"
)

// GetCustomerStats returns the repository's aggregate for a customer. The
// aggregation itself lives in the persistence layer; this only shapes the result.
func (svc *DefaultStatsService) GetCustomerStats(customerID string) (*models.BookingStats, error) {
	stats, err := svc.Repo.GetBookingStatsByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customer stats: %w", err)
	}
	if stats.ByStatus == nil {
		stats.ByStatus = make(map[models.BookingStatus]int64)
	}
	return stats, nil
}

// GetProfessionalStats returns the repository's aggregate for a professional.
func (svc *DefaultStatsService) GetProfessionalStats(professionalID string) (*models.BookingStats, error) {
	stats, err := svc.Repo.GetBookingStatsByProfessional(professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate professional stats: %w", err)
	}
	if stats.ByStatus == nil {
		stats.ByStatus = make(map[models.BookingStatus]int64)
	}
	return stats, nil
}
