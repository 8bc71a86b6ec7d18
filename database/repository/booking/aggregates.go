package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tidymove/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetBookingStatsByCustomer aggregates booking counts and amounts for a customer.
func (repo *MongoBookingRepo) GetBookingStatsByCustomer(customerID string) (*models.BookingStats, error) {
	return repo.statsByOwner(bson.M{"customer_id": customerID})
}

// GetBookingStatsByProfessional aggregates booking counts and amounts for a professional.
func (repo *MongoBookingRepo) GetBookingStatsByProfessional(professionalID string) (*models.BookingStats, error) {
	return repo.statsByOwner(bson.M{"professional_id": professionalID})
}

// statsByOwner groups the owner's bookings by status, counting documents and
// summing amounts. Aggregation stays in the persistence layer so the service
// never re-derives it.
func (repo *MongoBookingRepo) statsByOwner(match bson.M) (*models.BookingStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$status",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status models.BookingStatus `bson:"_id"`
		Count  int64                `bson:"count"`
		Amount float64              `bson:"amount"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding stats aggregation result: %w", err)
	}

	stats := &models.BookingStats{
		ByStatus: make(map[models.BookingStatus]int64),
	}
	for _, r := range results {
		stats.ByStatus[r.Status] = r.Count
		stats.Total += r.Count
		stats.TotalAmount += r.Amount
	}
	return stats, nil
}
