package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"
	"tidymove/services/booking"
	"tidymove/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking query and mutation endpoints.
type BookingHandler struct {
	Query  booking.QueryService
	Update booking.UpdateService
	Stats  booking.StatsService
	Logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(query booking.QueryService, update booking.UpdateService, stats booking.StatsService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Query:  query,
		Update: update,
		Stats:  stats,
		Logger: logger,
	}
}

// SearchBookings handles GET /bookings with typed query parameters.
func (h *BookingHandler) SearchBookings(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result, err := h.Query.Search(criteria)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookingByID handles GET /bookings/:id.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	bookingRecord, err := h.Query.GetByID(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingRecord)
}

// CountBookings handles GET /bookings/count.
func (h *BookingHandler) CountBookings(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	count, err := h.Query.Count(criteria)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetCustomerBookings handles GET /customers/:id/bookings.
func (h *BookingHandler) GetCustomerBookings(c *gin.Context) {
	bookings, err := h.Query.GetByCustomer(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetProfessionalBookings handles GET /professionals/:id/bookings.
func (h *BookingHandler) GetProfessionalBookings(c *gin.Context) {
	bookings, err := h.Query.GetByProfessional(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetCustomerStats handles GET /customers/:id/bookings/stats.
func (h *BookingHandler) GetCustomerStats(c *gin.Context) {
	stats, err := h.Stats.GetCustomerStats(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetProfessionalStats handles GET /professionals/:id/bookings/stats.
func (h *BookingHandler) GetProfessionalStats(c *gin.Context) {
	stats, err := h.Stats.GetProfessionalStats(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateBooking handles PATCH /bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Update.Update(c.Param("id"), patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBooking handles POST /bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// Reason is optional; ignore an empty body.
	_ = c.ShouldBindJSON(&input)

	if err := h.Update.Cancel(c.Param("id"), input.Reason); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// DeleteBooking handles DELETE /bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.Update.Delete(c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// criteriaFromQuery builds a validated SearchCriteria from query parameters.
func criteriaFromQuery(c *gin.Context) (*bookingRepo.SearchCriteria, error) {
	raw := bookingRepo.SearchCriteria{
		CustomerID:     c.Query("customer_id"),
		ProfessionalID: c.Query("professional_id"),
		Status:         models.BookingStatus(c.Query("status")),
		ServiceType:    c.Query("service_type"),
		PaymentMethod:  c.Query("payment_method"),
		Location:       c.Query("location"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}

	var err error
	if raw.DateFrom, err = parseTimeParam(c, "date_from"); err != nil {
		return nil, err
	}
	if raw.DateTo, err = parseTimeParam(c, "date_to"); err != nil {
		return nil, err
	}
	if raw.ScheduledDateFrom, err = parseTimeParam(c, "scheduled_from"); err != nil {
		return nil, err
	}
	if raw.ScheduledDateTo, err = parseTimeParam(c, "scheduled_to"); err != nil {
		return nil, err
	}
	if raw.MinAmount, err = parseFloatParam(c, "min_amount"); err != nil {
		return nil, err
	}
	if raw.MaxAmount, err = parseFloatParam(c, "max_amount"); err != nil {
		return nil, err
	}
	if raw.Limit, err = parseIntParam(c, "limit"); err != nil {
		return nil, err
	}
	if raw.Offset, err = parseIntParam(c, "offset"); err != nil {
		return nil, err
	}

	return bookingRepo.NewSearchCriteria(raw)
}

func parseTimeParam(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		// Also accept plain dates.
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, &bookingRepo.CriteriaError{Reason: name + " must be an RFC3339 timestamp or YYYY-MM-DD date"}
		}
	}
	return &t, nil
}

func parseFloatParam(c *gin.Context, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, &bookingRepo.CriteriaError{Reason: name + " must be a number"}
	}
	return &f, nil
}

func parseIntParam(c *gin.Context, name string) (int64, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &bookingRepo.CriteriaError{Reason: name + " must be an integer"}
	}
	return n, nil
}

// respondDomainError maps the domain error taxonomy onto HTTP status codes.
func respondDomainError(c *gin.Context, err error) {
	var (
		notFound          *booking.NotFoundError
		invalidTransition *booking.InvalidTransitionError
		alreadyCancelled  *booking.AlreadyCancelledError
		cannotCancel      *booking.CannotBeCancelledError
		updateNotAllowed  *booking.UpdateNotAllowedError
		deleteNotAllowed  *booking.DeletionNotAllowedError
		conflict          *booking.ConcurrencyConflictError
		criteria          *bookingRepo.CriteriaError
	)

	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
	case errors.As(err, &invalidTransition),
		errors.As(err, &alreadyCancelled),
		errors.As(err, &cannotCancel),
		errors.As(err, &updateNotAllowed),
		errors.As(err, &deleteNotAllowed),
		errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "booking state conflict", err.Error())
	case errors.As(err, &criteria):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid search criteria", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
