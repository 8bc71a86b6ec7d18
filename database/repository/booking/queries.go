package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tidymove/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// criteriaFilter translates a validated SearchCriteria into a Mongo filter.
// The Has* predicates decide whether a clause is added, so range logic is
// never re-derived here.
func criteriaFilter(criteria *SearchCriteria) bson.M {
	filter := bson.M{}
	if criteria == nil {
		return filter
	}
	if criteria.CustomerID != "" {
		filter["customer_id"] = criteria.CustomerID
	}
	if criteria.ProfessionalID != "" {
		filter["professional_id"] = criteria.ProfessionalID
	}
	if criteria.Status != "" {
		filter["status"] = criteria.Status
	}
	if criteria.ServiceType != "" {
		filter["service_type"] = criteria.ServiceType
	}
	if criteria.PaymentMethod != "" {
		filter["payment_method"] = criteria.PaymentMethod
	}
	if criteria.HasLocationFilter() {
		filter["location"] = bson.M{"$regex": primitive.Regex{Pattern: criteria.Location, Options: "i"}}
	}
	if criteria.HasDateFilter() {
		rangeFilter := bson.M{}
		if criteria.DateFrom != nil {
			rangeFilter["$gte"] = *criteria.DateFrom
		}
		if criteria.DateTo != nil {
			rangeFilter["$lte"] = *criteria.DateTo
		}
		filter["created_at"] = rangeFilter
	}
	if criteria.HasScheduledDateFilter() {
		rangeFilter := bson.M{}
		if criteria.ScheduledDateFrom != nil {
			rangeFilter["$gte"] = *criteria.ScheduledDateFrom
		}
		if criteria.ScheduledDateTo != nil {
			rangeFilter["$lte"] = *criteria.ScheduledDateTo
		}
		filter["scheduled_date"] = rangeFilter
	}
	if criteria.HasAmountFilter() {
		rangeFilter := bson.M{}
		if criteria.MinAmount != nil {
			rangeFilter["$gte"] = *criteria.MinAmount
		}
		if criteria.MaxAmount != nil {
			rangeFilter["$lte"] = *criteria.MaxAmount
		}
		filter["total_amount"] = rangeFilter
	}
	return filter
}

// Search runs the typed booking query and returns the page plus the total
// count of matching documents.
func (repo *MongoBookingRepo) Search(criteria *SearchCriteria) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := criteriaFilter(criteria)

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: criteria.SortField(), Value: criteria.SortDirection()}}).
		SetSkip(criteria.Offset).
		SetLimit(criteria.Limit)

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("booking search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// Count returns the number of bookings matching the criteria; a nil criteria
// counts the whole collection.
func (repo *MongoBookingRepo) Count(criteria *SearchCriteria) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	total, err := repo.coll.CountDocuments(ctx, criteriaFilter(criteria))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return total, nil
}

// FindByCustomerID lists a customer's bookings, most recently scheduled first.
func (repo *MongoBookingRepo) FindByCustomerID(customerID string) ([]models.Booking, error) {
	return repo.findByOwner(bson.M{"customer_id": customerID})
}

// FindByProfessionalID lists a professional's bookings, most recently scheduled first.
func (repo *MongoBookingRepo) FindByProfessionalID(professionalID string) ([]models.Booking, error) {
	return repo.findByOwner(bson.M{"professional_id": professionalID})
}

func (repo *MongoBookingRepo) findByOwner(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// Exists reports whether a booking with the given id is stored.
func (repo *MongoBookingRepo) Exists(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("existence check failed for booking %s: %w", id, err)
	}
	return count > 0, nil
}

// IsOwnedByCustomer reports whether the booking belongs to the customer.
func (repo *MongoBookingRepo) IsOwnedByCustomer(id, customerID string) (bool, error) {
	return repo.isOwned(bson.M{"id": id, "customer_id": customerID})
}

// IsOwnedByProfessional reports whether the booking is assigned to the professional.
func (repo *MongoBookingRepo) IsOwnedByProfessional(id, professionalID string) (bool, error) {
	return repo.isOwned(bson.M{"id": id, "professional_id": professionalID})
}

func (repo *MongoBookingRepo) isOwned(filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("ownership check failed: %w", err)
	}
	return count > 0, nil
}

// CanBeModified gates mutations: terminal bookings are immutable.
func (repo *MongoBookingRepo) CanBeModified(id string) (bool, string, error) {
	booking, err := repo.FindByID(id)
	if err != nil {
		return false, "", err
	}
	if booking.Status.IsTerminal() {
		return false, fmt.Sprintf("booking is in terminal status %s", booking.Status), nil
	}
	return true, "", nil
}

// CanBeCancelled gates cancellation: the state machine must allow the move
// and no dispute may be open.
func (repo *MongoBookingRepo) CanBeCancelled(id string) (bool, string, error) {
	booking, err := repo.FindByID(id)
	if err != nil {
		return false, "", err
	}
	if booking.DisputeOpen {
		return false, "booking has an open dispute", nil
	}
	if !booking.Status.CanTransitionTo(models.StatusCanceled) {
		return false, fmt.Sprintf("status %s does not allow cancellation", booking.Status), nil
	}
	return true, "", nil
}

// CanBeDeleted gates physical deletion: only bookings that never captured a
// payment may be removed.
func (repo *MongoBookingRepo) CanBeDeleted(id string) (bool, string, error) {
	booking, err := repo.FindByID(id)
	if err != nil {
		return false, "", err
	}
	switch booking.Status {
	case models.StatusDraft, models.StatusCanceled:
		return true, "", nil
	default:
		return false, fmt.Sprintf("bookings in status %s must be cancelled, not deleted", booking.Status), nil
	}
}
