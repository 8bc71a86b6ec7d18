package models

// Professional is the minimal view of a service professional used during attribution.
type Professional struct {
	ID             string   `bson:"id" json:"id"`
	Name           string   `bson:"name" json:"name"`
	ServiceTypes   []string `bson:"service_types" json:"service_types"`
	Rating         float64  `bson:"rating" json:"rating"`
	ActiveBookings int      `bson:"active_bookings" json:"active_bookings"`
	Verified       bool     `bson:"verified" json:"verified"`
}
