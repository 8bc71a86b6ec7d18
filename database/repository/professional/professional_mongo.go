package professionalRepo

import (
	"context"
	"fmt"
	"time"

	"tidymove/config"
	"tidymove/database"
	"tidymove/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfessionalDirectory implements attribution.ProfessionalDirectory
// against the professionals collection.
type MongoProfessionalDirectory struct {
	coll *mongo.Collection
}

// NewMongoProfessionalDirectory constructs a new instance of MongoProfessionalDirectory.
func NewMongoProfessionalDirectory() *MongoProfessionalDirectory {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoProfessionalDirectory{
		coll: db.Collection("professionals"),
	}
}

// FindAvailable returns active professionals offering the service type near
// the booking's location, best-rated first.
func (r *MongoProfessionalDirectory) FindAvailable(ctx context.Context, serviceType, location string, scheduledDate time.Time) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"service_types": serviceType,
		"active":        true,
	}
	if location != "" {
		filter["service_area"] = bson.M{"$regex": primitive.Regex{Pattern: location, Options: "i"}}
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "verified", Value: -1},
			{Key: "rating", Value: -1},
			{Key: "active_bookings", Value: 1},
		}).
		SetLimit(20)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("professional search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var professionals []models.Professional
	if err := cursor.All(ctx, &professionals); err != nil {
		return nil, fmt.Errorf("failed to decode professionals: %w", err)
	}
	return professionals, nil
}
