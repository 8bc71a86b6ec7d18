package bookingRepo

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tidymove/models"
)

func timePtr(t time.Time) *time.Time { return &t }
func floatPtr(f float64) *float64    { return &f }

func TestNewSearchCriteriaDefaults(t *testing.T) {
	c, err := NewSearchCriteria(SearchCriteria{CustomerID: "c1"})
	if err != nil {
		t.Fatalf("NewSearchCriteria failed: %v", err)
	}
	if c.Limit != 50 {
		t.Errorf("Limit = %d, want 50", c.Limit)
	}
	if c.Offset != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset)
	}
	if c.SortBy != SortByCreatedAt || c.SortOrder != SortOrderDesc {
		t.Errorf("sort defaults = %s/%s, want createdAt/desc", c.SortBy, c.SortOrder)
	}
	if c.SortField() != "created_at" || c.SortDirection() != -1 {
		t.Errorf("sort mapping = %s/%d", c.SortField(), c.SortDirection())
	}
}

func TestNewSearchCriteriaRejections(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		raw    SearchCriteria
		reason string
	}{
		{
			name:   "negative limit",
			raw:    SearchCriteria{Limit: -1},
			reason: "Limit must be positive",
		},
		{
			name:   "negative offset",
			raw:    SearchCriteria{Offset: -3},
			reason: "Offset must not be negative",
		},
		{
			name:   "inverted date range",
			raw:    SearchCriteria{DateFrom: timePtr(now), DateTo: timePtr(now.Add(-time.Hour))},
			reason: "DateFrom must be before DateTo",
		},
		{
			name:   "inverted scheduled range",
			raw:    SearchCriteria{ScheduledDateFrom: timePtr(now), ScheduledDateTo: timePtr(now.Add(-time.Hour))},
			reason: "ScheduledDateFrom must be before ScheduledDateTo",
		},
		{
			name:   "inverted amount range",
			raw:    SearchCriteria{MinAmount: floatPtr(200), MaxAmount: floatPtr(100)},
			reason: "MinAmount must be less than MaxAmount",
		},
		{
			name:   "unknown status",
			raw:    SearchCriteria{Status: models.BookingStatus("SHIPPED")},
			reason: `unknown status "SHIPPED"`,
		},
		{
			name:   "unknown sort field",
			raw:    SearchCriteria{SortBy: "price"},
			reason: `unknown sort field "price"`,
		},
		{
			name:   "unknown sort order",
			raw:    SearchCriteria{SortOrder: "descending"},
			reason: `unknown sort order "descending"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewSearchCriteria(tc.raw)
			if err == nil {
				t.Fatalf("expected rejection, got %+v", c)
			}
			var ce *CriteriaError
			if !errors.As(err, &ce) {
				t.Fatalf("error is %T, want *CriteriaError", err)
			}
			if !strings.Contains(ce.Reason, tc.reason) {
				t.Errorf("reason = %q, want it to contain %q", ce.Reason, tc.reason)
			}
			if !strings.HasPrefix(err.Error(), "invalid search criteria: ") {
				t.Errorf("Error() = %q, missing prefix", err.Error())
			}
		})
	}
}

func TestNewSearchCriteriaBoundaryValues(t *testing.T) {
	now := time.Now()

	// Equal range endpoints are allowed; MinAmount == MaxAmount is allowed too.
	c, err := NewSearchCriteria(SearchCriteria{
		DateFrom:  timePtr(now),
		DateTo:    timePtr(now),
		MinAmount: floatPtr(100),
		MaxAmount: floatPtr(100),
	})
	if err != nil {
		t.Fatalf("equal endpoints rejected: %v", err)
	}
	if !c.HasDateFilter() || !c.HasAmountFilter() {
		t.Error("range predicates should report set filters")
	}
	if c.HasScheduledDateFilter() || c.HasLocationFilter() {
		t.Error("unset predicates should report false")
	}

	// Half-open ranges never trip range-order validation.
	if _, err := NewSearchCriteria(SearchCriteria{MaxAmount: floatPtr(10)}); err != nil {
		t.Errorf("half-open amount range rejected: %v", err)
	}
	if _, err := NewSearchCriteria(SearchCriteria{DateTo: timePtr(now)}); err != nil {
		t.Errorf("half-open date range rejected: %v", err)
	}
}

func TestNewSearchCriteriaDoesNotMutateInput(t *testing.T) {
	raw := SearchCriteria{CustomerID: "c1"}
	c, err := NewSearchCriteria(raw)
	if err != nil {
		t.Fatalf("NewSearchCriteria failed: %v", err)
	}
	if raw.Limit != 0 || raw.SortBy != "" {
		t.Error("input was mutated during construction")
	}
	c.Limit = 7
	if raw.Limit != 0 {
		t.Error("returned criteria aliases the input")
	}
}

func TestSortDirections(t *testing.T) {
	asc, err := NewSearchCriteria(SearchCriteria{SortBy: SortByTotalAmount, SortOrder: SortOrderAsc})
	if err != nil {
		t.Fatalf("NewSearchCriteria failed: %v", err)
	}
	if asc.SortField() != "total_amount" || asc.SortDirection() != 1 {
		t.Errorf("asc mapping = %s/%d", asc.SortField(), asc.SortDirection())
	}

	desc, err := NewSearchCriteria(SearchCriteria{SortBy: SortByScheduledDate})
	if err != nil {
		t.Fatalf("NewSearchCriteria failed: %v", err)
	}
	if desc.SortField() != "scheduled_date" || desc.SortDirection() != -1 {
		t.Errorf("desc mapping = %s/%d", desc.SortField(), desc.SortDirection())
	}
}
