package types

import (
	"time"

	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT = 50

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Status *Status `json:"status,omitempty" form:"status"`
	Order  *string `json:"order,omitempty" form:"order" validate:"omitempty,oneof=asc desc"`
}

// NewDefaultQueryFilter defines default values for query filters
func NewDefaultQueryFilter() QueryFilter {
	return QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(0),
		Status: lo.ToPtr(StatusPublished),
		Order:  lo.ToPtr(OrderDesc),
	}
}

func (f QueryFilter) GetLimit() int {
	if f.Limit == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return *f.Limit
}

func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return 0
	}
	return *f.Offset
}

func (f QueryFilter) GetStatus() Status {
	if f.Status == nil {
		return StatusPublished
	}
	return *f.Status
}

func (f QueryFilter) GetOrder() string {
	if f.Order == nil {
		return OrderDesc
	}
	return *f.Order
}

// ScheduleFilter narrows schedule queries
type ScheduleFilter struct {
	QueryFilter
	CustomerID     string          `json:"customer_id,omitempty" form:"customer_id"`
	ScheduleStatus *ScheduleStatus `json:"schedule_status,omitempty" form:"schedule_status"`
	// DueBefore selects schedules whose next billing date is on or before
	// the given instant; used by billing runs to find work
	DueBefore *time.Time `json:"due_before,omitempty" form:"due_before" time_format:"2006-01-02"`
}

// CustomerFilter narrows customer queries
type CustomerFilter struct {
	QueryFilter
	ExternalID string `json:"external_id,omitempty" form:"external_id"`
}

// InvoiceFilter narrows invoice queries
type InvoiceFilter struct {
	QueryFilter
	CustomerID    string         `json:"customer_id,omitempty" form:"customer_id"`
	ScheduleID    string         `json:"schedule_id,omitempty" form:"schedule_id"`
	InvoiceStatus *InvoiceStatus `json:"invoice_status,omitempty" form:"invoice_status"`
}

// ListResponse is the standard shape for list endpoints
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
