package attribution

import (
	"context"
	"fmt"
	"sort"

	"tidymove/models"

	"go.uber.org/zap"
)

// Trigger matches a professional for the paid booking and records the
// assignment. A booking that already carries a professional is a no-op.
func (s *DefaultAttributionService) Trigger(ctx context.Context, booking *models.Booking) error {
	if booking.ProfessionalID != "" {
		s.Logger.Debug("attribution skipped, professional already assigned",
			zap.String("booking_id", booking.ID),
			zap.String("professional_id", booking.ProfessionalID))
		return nil
	}

	candidates, err := s.Directory.FindAvailable(ctx, booking.ServiceType, booking.Location, booking.ScheduledDate)
	if err != nil {
		return fmt.Errorf("professional lookup failed for booking %s: %w", booking.ID, err)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no professionals available for booking %s (%s)", booking.ID, booking.ServiceType)
	}

	best := rankCandidates(candidates)[0]

	booking.AssignProfessional(best.ID)
	if err := s.Repo.Save(booking); err != nil {
		return fmt.Errorf("failed to persist attribution for booking %s: %w", booking.ID, err)
	}

	s.Logger.Info("professional attributed",
		zap.String("booking_id", booking.ID),
		zap.String("professional_id", best.ID),
		zap.Float64("rating", best.Rating))
	return nil
}

// rankCandidates orders professionals: verified first, then by rating, then
// lightest current load.
func rankCandidates(candidates []models.Professional) []models.Professional {
	ranked := make([]models.Professional, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Verified != ranked[j].Verified {
			return ranked[i].Verified
		}
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].ActiveBookings < ranked[j].ActiveBookings
	})
	return ranked
}
