package order

import "fmt"

// Status is the order-level lifecycle status as the API stores it.
type Status int

const (
	StatusPending Status = iota
	StatusProcessing
	StatusComplete
	StatusCancelled
	StatusCancelRequested
)

var statusLabels = map[Status]string{
	StatusPending:         "Pending",
	StatusProcessing:      "Processing",
	StatusComplete:        "Complete",
	StatusCancelled:       "Cancelled",
	StatusCancelRequested: "Cancel Requested",
}

func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Unknown(%d)", int(s))
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether no further delivery or cancellation action applies.
func (s Status) Terminal() bool {
	return s == StatusCancelled
}

// ParseStatus accepts the integer codes 0..4.
func ParseStatus(v int) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, v)
	}
	return s, nil
}

// CancellationDecision is the admin's answer to a cancellation request.
type CancellationDecision int

const (
	DecisionUndecided CancellationDecision = iota
	DecisionApproved
	DecisionRejected
)

func (d CancellationDecision) String() string {
	switch d {
	case DecisionUndecided:
		return "undecided"
	case DecisionApproved:
		return "approved"
	case DecisionRejected:
		return "rejected"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// CancellationState is derived from the requested flag and the decision.
type CancellationState string

const (
	CancellationNone     CancellationState = "none"
	CancellationPending  CancellationState = "pending"
	CancellationApproved CancellationState = "approved"
	CancellationRejected CancellationState = "rejected"
)

func cancellationState(requested bool, d CancellationDecision) CancellationState {
	if !requested {
		return CancellationNone
	}
	switch d {
	case DecisionApproved:
		return CancellationApproved
	case DecisionRejected:
		return CancellationRejected
	default:
		return CancellationPending
	}
}
