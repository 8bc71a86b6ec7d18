package models

// BookingStats aggregates booking counts and amounts for a customer or professional.
type BookingStats struct {
	Total       int64                   `json:"total"`
	ByStatus    map[BookingStatus]int64 `json:"by_status"`
	TotalAmount float64                 `json:"total_amount"`
}

// BookingSearchResult is the page of bookings returned by a typed search.
type BookingSearchResult struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	HasMore    bool      `json:"has_more"`
	Offset     int64     `json:"offset"`
	Limit      int64     `json:"limit"`
}
