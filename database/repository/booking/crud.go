package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tidymove/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Save upserts the full booking document keyed by its id.
func (repo *MongoBookingRepo) Save(booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, filter, booking, opts); err != nil {
		return fmt.Errorf("failed to save booking %s: %w", booking.ID, err)
	}
	return nil
}

// FindByID retrieves a booking document by id.
func (repo *MongoBookingRepo) FindByID(id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": id}
	if err := repo.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// Delete physically removes a booking document.
func (repo *MongoBookingRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatusIf applies a conditional status write. The filter asserts the
// status pre-image so that of two racing writers exactly one matches; the
// caller inspects the matched flag instead of holding a lock.
func (repo *MongoBookingRepo) UpdateStatusIf(id string, expected []models.BookingStatus, next models.BookingStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": expected},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     next,
			"updated_at": time.Now(),
		},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("conditional status update failed for booking %s: %w", id, err)
	}
	return res.MatchedCount == 1, nil
}
