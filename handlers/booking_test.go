package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"
	"tidymove/services/booking"
	"tidymove/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

// stubServices implements the query, update and stats service interfaces with
// canned results.
type stubServices struct {
	lastCriteria *bookingRepo.SearchCriteria

	searchResult *models.BookingSearchResult
	searchErr    error
	booking      *models.Booking
	getErr       error
	countResult  int64
	updateResult *models.Booking
	updateErr    error
	cancelErr    error
	deleteErr    error
	stats        *models.BookingStats
	statsErr     error
}

func (s *stubServices) Search(criteria *bookingRepo.SearchCriteria) (*models.BookingSearchResult, error) {
	s.lastCriteria = criteria
	return s.searchResult, s.searchErr
}

func (s *stubServices) GetByID(id string) (*models.Booking, error) {
	return s.booking, s.getErr
}

func (s *stubServices) GetByCustomer(customerID string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubServices) GetByProfessional(professionalID string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubServices) Exists(id string) (bool, error) { return s.booking != nil, nil }

func (s *stubServices) Count(criteria *bookingRepo.SearchCriteria) (int64, error) {
	s.lastCriteria = criteria
	return s.countResult, nil
}

func (s *stubServices) IsOwnedByCustomer(id, customerID string) (bool, error) { return false, nil }

func (s *stubServices) IsOwnedByProfessional(id, professionalID string) (bool, error) {
	return false, nil
}

func (s *stubServices) Update(id string, patch models.BookingPatch) (*models.Booking, error) {
	return s.updateResult, s.updateErr
}

func (s *stubServices) Cancel(id, reason string) error { return s.cancelErr }

func (s *stubServices) Delete(id string) error { return s.deleteErr }

func (s *stubServices) GetCustomerStats(customerID string) (*models.BookingStats, error) {
	return s.stats, s.statsErr
}

func (s *stubServices) GetProfessionalStats(professionalID string) (*models.BookingStats, error) {
	return s.stats, s.statsErr
}

func newTestRouter(stub *stubServices) *gin.Engine {
	h := NewBookingHandler(stub, stub, stub, zap.NewNop())
	r := gin.New()
	r.GET("/bookings", h.SearchBookings)
	r.GET("/bookings/count", h.CountBookings)
	r.GET("/bookings/:id", h.GetBookingByID)
	r.PATCH("/bookings/:id", h.UpdateBooking)
	r.POST("/bookings/:id/cancel", h.CancelBooking)
	r.DELETE("/bookings/:id", h.DeleteBooking)
	return r
}

func perform(r *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchBookingsParsesQuery(t *testing.T) {
	stub := &stubServices{searchResult: &models.BookingSearchResult{}}
	r := newTestRouter(stub)

	w := perform(r, http.MethodGet, "/bookings?status=CONFIRMED&limit=10&min_amount=50&scheduled_from=2026-09-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	c := stub.lastCriteria
	if c == nil {
		t.Fatal("criteria never reached the service")
	}
	if c.Status != models.StatusConfirmed || c.Limit != 10 {
		t.Errorf("criteria = status %s / limit %d", c.Status, c.Limit)
	}
	if c.MinAmount == nil || *c.MinAmount != 50 {
		t.Error("min_amount not parsed")
	}
	if c.ScheduledDateFrom == nil || !c.ScheduledDateFrom.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("scheduled_from = %v", c.ScheduledDateFrom)
	}
	// Defaults filled by construction.
	if c.SortBy != bookingRepo.SortByCreatedAt || c.SortOrder != bookingRepo.SortOrderDesc {
		t.Errorf("sort defaults = %s/%s", c.SortBy, c.SortOrder)
	}
}

func TestSearchBookingsRejectsBadQuery(t *testing.T) {
	for _, target := range []string{
		"/bookings?limit=lots",
		"/bookings?min_amount=cheap",
		"/bookings?date_from=yesterday",
		"/bookings?status=SHIPPED",
		"/bookings?min_amount=200&max_amount=100",
	} {
		w := perform(newTestRouter(&stubServices{}), http.MethodGet, target, nil)
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d, want 422", target, w.Code)
		}
	}
}

func TestGetBookingByID(t *testing.T) {
	stub := &stubServices{booking: &models.Booking{ID: "b1", Status: models.StatusConfirmed}}
	w := perform(newTestRouter(stub), http.MethodGet, "/bookings/b1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if got.ID != "b1" {
		t.Errorf("body booking id = %s", got.ID)
	}
}

func TestGetBookingByIDNotFound(t *testing.T) {
	stub := &stubServices{getErr: &booking.NotFoundError{BookingID: "ghost"}}
	w := perform(newTestRouter(stub), http.MethodGet, "/bookings/ghost", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateBookingConflict(t *testing.T) {
	stub := &stubServices{updateErr: &booking.InvalidTransitionError{
		BookingID: "b1",
		From:      models.StatusDraft,
		To:        models.StatusCompleted,
	}}
	body, _ := json.Marshal(map[string]string{"status": "COMPLETED"})
	w := perform(newTestRouter(stub), http.MethodPatch, "/bookings/b1", body)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestUpdateBookingBadJSON(t *testing.T) {
	w := perform(newTestRouter(&stubServices{}), http.MethodPatch, "/bookings/b1", []byte("{nope"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	stub := &stubServices{cancelErr: &booking.AlreadyCancelledError{BookingID: "b1"}}
	w := perform(newTestRouter(stub), http.MethodPost, "/bookings/b1/cancel", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestDeleteBooking(t *testing.T) {
	w := perform(newTestRouter(&stubServices{}), http.MethodDelete, "/bookings/b1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}

	stub := &stubServices{deleteErr: &booking.DeletionNotAllowedError{BookingID: "b1", Reason: "not draft"}}
	w = perform(newTestRouter(stub), http.MethodDelete, "/bookings/b1", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestCountBookings(t *testing.T) {
	stub := &stubServices{countResult: 12}
	w := perform(newTestRouter(stub), http.MethodGet, "/bookings/count?status=CANCELED", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["count"] != 12 {
		t.Errorf("count = %d, want 12", body["count"])
	}
}
