package order

import (
	"fmt"
	"time"
)

// View names one of the order sub-pages.
type View string

const (
	ViewAll            View = "all"
	ViewNew            View = "new"
	ViewIncomplete     View = "incomplete"
	ViewComplete       View = "complete"
	ViewCancelRequests View = "cancel-requests"
	ViewCancelled      View = "cancelled"
)

func (v View) Valid() bool {
	switch v {
	case ViewAll, ViewNew, ViewIncomplete, ViewComplete, ViewCancelRequests, ViewCancelled:
		return true
	}
	return false
}

func (v View) matches(o *Order) bool {
	switch v {
	case ViewNew:
		return o.Status == StatusPending
	case ViewIncomplete:
		return o.Status == StatusProcessing
	case ViewComplete:
		return o.Status == StatusComplete
	case ViewCancelRequests:
		return o.Cancellation() == CancellationPending
	case ViewCancelled:
		return o.Status == StatusCancelled
	default:
		return true
	}
}

// Filter narrows a fetched order list. Zero values mean "no constraint".
type Filter struct {
	View   View
	Status *Status
	Date   string
}

// Validate normalises the filter and rejects values the screens never send.
func (f *Filter) Validate() error {
	if f.View == "" {
		f.View = ViewAll
	}
	if !f.View.Valid() {
		return fmt.Errorf("%w: unknown view %q", ErrInvalidFilter, f.View)
	}
	if f.Status != nil && (*f.Status < StatusPending || *f.Status > StatusComplete) {
		return fmt.Errorf("%w: status must be 0..2", ErrInvalidFilter)
	}
	if f.Date != "" {
		if _, err := time.Parse(time.DateOnly, f.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidFilter)
		}
	}
	return nil
}

// Apply keeps the orders matching every constraint, preserving order.
func (f Filter) Apply(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if !f.View.matches(o) {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.Date != "" && o.Day() != f.Date {
			continue
		}
		out = append(out, *o)
	}
	return out
}

// Stats are the order counts shown on the dashboard.
type Stats struct {
	All                  int `json:"all"`
	New                  int `json:"new"`
	Incomplete           int `json:"incomplete"`
	Complete             int `json:"complete"`
	CancellationRequests int `json:"cancellationRequests"`
	Cancelled            int `json:"cancelled"`
}

func ComputeStats(orders []Order) Stats {
	var st Stats
	for i := range orders {
		o := &orders[i]
		st.All++
		switch o.Status {
		case StatusPending:
			st.New++
		case StatusProcessing:
			st.Incomplete++
		case StatusComplete:
			st.Complete++
		case StatusCancelled:
			st.Cancelled++
		}
		if o.Cancellation() == CancellationPending {
			st.CancellationRequests++
		}
	}
	return st
}
