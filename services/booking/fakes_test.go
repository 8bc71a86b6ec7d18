package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"
)

// fakeRepo is an in-memory BookingRepository with controllable gates and
// injectable failures, enough to exercise every service path without Mongo.
type fakeRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	// findErrs is consumed first by successive FindByID calls, simulating
	// transient failures ahead of a successful read.
	findErrs  []error
	saveErr   error
	findCalls int
	saveCalls int

	// statusWrites counts successful conditional status commits.
	statusWrites int

	modifyOK     bool
	modifyReason string
	cancelOK     bool
	cancelReason string
	deleteOK     bool
	deleteReason string

	// updateStatusIfHook, when set, replaces the real conditional write.
	updateStatusIfHook func(id string, expected []models.BookingStatus, next models.BookingStatus) (bool, error)

	searchBookings []models.Booking
	searchTotal    int64
	searchErr      error
	countResult    int64

	stats    *models.BookingStats
	statsErr error
}

func newFakeRepo(bookings ...*models.Booking) *fakeRepo {
	r := &fakeRepo{
		bookings: make(map[string]*models.Booking),
		modifyOK: true,
		cancelOK: true,
		deleteOK: true,
	}
	for _, b := range bookings {
		r.bookings[b.ID] = cloneBooking(b)
	}
	return r
}

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	return &c
}

func (r *fakeRepo) Save(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saveCalls++
	r.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *fakeRepo) FindByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	if len(r.findErrs) > 0 {
		err := r.findErrs[0]
		r.findErrs = r.findErrs[1:]
		return nil, err
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *fakeRepo) FindByCustomerID(customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByProfessionalID(professionalID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProfessionalID == professionalID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) Search(criteria *bookingRepo.SearchCriteria) ([]models.Booking, int64, error) {
	if r.searchErr != nil {
		return nil, 0, r.searchErr
	}
	return r.searchBookings, r.searchTotal, nil
}

func (r *fakeRepo) Count(criteria *bookingRepo.SearchCriteria) (int64, error) {
	return r.countResult, nil
}

func (r *fakeRepo) Exists(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.bookings[id]
	return ok, nil
}

func (r *fakeRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) IsOwnedByCustomer(id, customerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	return ok && b.CustomerID == customerID, nil
}

func (r *fakeRepo) IsOwnedByProfessional(id, professionalID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	return ok && b.ProfessionalID == professionalID, nil
}

func (r *fakeRepo) CanBeModified(id string) (bool, string, error) {
	return r.modifyOK, r.modifyReason, nil
}

func (r *fakeRepo) CanBeCancelled(id string) (bool, string, error) {
	return r.cancelOK, r.cancelReason, nil
}

func (r *fakeRepo) CanBeDeleted(id string) (bool, string, error) {
	return r.deleteOK, r.deleteReason, nil
}

func (r *fakeRepo) UpdateStatusIf(id string, expected []models.BookingStatus, next models.BookingStatus) (bool, error) {
	if r.updateStatusIfHook != nil {
		return r.updateStatusIfHook(id, expected, next)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	for _, s := range expected {
		if b.Status == s {
			b.Status = next
			b.UpdatedAt = time.Now()
			r.statusWrites++
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetBookingStatsByCustomer(customerID string) (*models.BookingStats, error) {
	return r.stats, r.statsErr
}

func (r *fakeRepo) GetBookingStatsByProfessional(professionalID string) (*models.BookingStats, error) {
	return r.stats, r.statsErr
}

func (r *fakeRepo) storedStatus(id string) models.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ""
	}
	return b.Status
}

func (r *fakeRepo) setStoredStatus(id string, status models.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
}

// fakeDocuments records document orchestration calls.
type fakeDocuments struct {
	runs    int
	lastReq models.DocumentRunRequest
	result  *models.DocumentRunResult
	err     error
}

func (f *fakeDocuments) Run(ctx context.Context, req models.DocumentRunRequest) (*models.DocumentRunResult, error) {
	f.runs++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &models.DocumentRunResult{Success: true, Distributed: []string{"receipt", "invoice"}}, nil
}

// fakeAttribution records matching triggers.
type fakeAttribution struct {
	triggers   int
	lastStatus models.BookingStatus
	err        error
}

func (f *fakeAttribution) Trigger(ctx context.Context, booking *models.Booking) error {
	f.triggers++
	f.lastStatus = booking.Status
	return f.err
}
