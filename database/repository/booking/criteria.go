package bookingRepo

import (
	"fmt"
	"time"

	"tidymove/models"
)

// Sort field and order values accepted by NewSearchCriteria.
const (
	SortByCreatedAt     = "createdAt"
	SortByUpdatedAt     = "updatedAt"
	SortByScheduledDate = "scheduledDate"
	SortByTotalAmount   = "totalAmount"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const (
	defaultLimit  = int64(50)
	defaultOffset = int64(0)
)

// sortFields maps the public sort keys to their Mongo document fields.
var sortFields = map[string]string{
	SortByCreatedAt:     "created_at",
	SortByUpdatedAt:     "updated_at",
	SortByScheduledDate: "scheduled_date",
	SortByTotalAmount:   "total_amount",
}

// CriteriaError reports an invalid search criteria construction.
type CriteriaError struct {
	Reason string
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("invalid search criteria: %s", e.Reason)
}

func newCriteriaError(reason string) error {
	return &CriteriaError{Reason: reason}
}

// SearchCriteria describes a typed booking query. Build it with
// NewSearchCriteria and treat the result as read-only; all invariants are
// checked at construction, never at query time.
type SearchCriteria struct {
	CustomerID     string
	ProfessionalID string
	Status         models.BookingStatus
	ServiceType    string
	PaymentMethod  string
	Location       string // free-text, matched case-insensitively

	DateFrom          *time.Time
	DateTo            *time.Time
	ScheduledDateFrom *time.Time
	ScheduledDateTo   *time.Time
	MinAmount         *float64
	MaxAmount         *float64

	Limit     int64
	Offset    int64
	SortBy    string
	SortOrder string
}

// NewSearchCriteria validates the raw criteria, fills defaults
// (limit=50, offset=0, sort by createdAt descending) and returns an
// immutable value. It fails with a CriteriaError naming the violated
// invariant rather than silently clamping.
func NewSearchCriteria(raw SearchCriteria) (*SearchCriteria, error) {
	c := raw

	if c.Limit == 0 {
		c.Limit = defaultLimit
	}
	if c.Limit <= 0 {
		return nil, newCriteriaError(fmt.Sprintf("Limit must be positive, got %d", c.Limit))
	}
	if c.Offset < 0 {
		return nil, newCriteriaError(fmt.Sprintf("Offset must not be negative, got %d", c.Offset))
	}

	if c.DateFrom != nil && c.DateTo != nil && c.DateFrom.After(*c.DateTo) {
		return nil, newCriteriaError("DateFrom must be before DateTo")
	}
	if c.ScheduledDateFrom != nil && c.ScheduledDateTo != nil && c.ScheduledDateFrom.After(*c.ScheduledDateTo) {
		return nil, newCriteriaError("ScheduledDateFrom must be before ScheduledDateTo")
	}
	if c.MinAmount != nil && c.MaxAmount != nil && *c.MinAmount > *c.MaxAmount {
		return nil, newCriteriaError("MinAmount must be less than MaxAmount")
	}

	if c.Status != "" && !c.Status.IsValid() {
		return nil, newCriteriaError(fmt.Sprintf("unknown status %q", c.Status))
	}

	if c.SortBy == "" {
		c.SortBy = SortByCreatedAt
	}
	if _, ok := sortFields[c.SortBy]; !ok {
		return nil, newCriteriaError(fmt.Sprintf("unknown sort field %q", c.SortBy))
	}
	switch c.SortOrder {
	case "":
		c.SortOrder = SortOrderDesc
	case SortOrderAsc, SortOrderDesc:
	default:
		return nil, newCriteriaError(fmt.Sprintf("unknown sort order %q", c.SortOrder))
	}

	return &c, nil
}

// HasDateFilter reports whether a createdAt range clause is needed.
func (c *SearchCriteria) HasDateFilter() bool {
	return c.DateFrom != nil || c.DateTo != nil
}

// HasScheduledDateFilter reports whether a scheduledDate range clause is needed.
func (c *SearchCriteria) HasScheduledDateFilter() bool {
	return c.ScheduledDateFrom != nil || c.ScheduledDateTo != nil
}

// HasAmountFilter reports whether an amount range clause is needed.
func (c *SearchCriteria) HasAmountFilter() bool {
	return c.MinAmount != nil || c.MaxAmount != nil
}

// HasLocationFilter reports whether a free-text location clause is needed.
func (c *SearchCriteria) HasLocationFilter() bool {
	return c.Location != ""
}

// SortField returns the Mongo field backing the requested sort key.
func (c *SearchCriteria) SortField() string {
	return sortFields[c.SortBy]
}

// SortDirection returns the Mongo sort direction (1 asc, -1 desc).
func (c *SearchCriteria) SortDirection() int {
	if c.SortOrder == SortOrderAsc {
		return 1
	}
	return -1
}
