package order

import "backoffice-console/internal/session"

// Tracker is the Pending -> Processing -> Complete progress bar.
type Tracker struct {
	Steps   []string `json:"steps"`
	Current int      `json:"current"`
}

type ItemView struct {
	OrderItem
	Action ItemAction `json:"action"`
	Owned  bool       `json:"owned"`
}

// DetailView is the read-only projection of one order for one caller.
type DetailView struct {
	ID               string            `json:"id"`
	OrderCode        string            `json:"orderCode"`
	Date             string            `json:"date"`
	CustomerName     string            `json:"customerName"`
	RecipientName    string            `json:"recipientName"`
	RecipientEmail   string            `json:"recipientEmail"`
	RecipientContact string            `json:"recipientContact"`
	RecipientAddress string            `json:"recipientAddress"`
	Status           Status            `json:"status"`
	StatusLabel      string            `json:"statusLabel"`
	Cancellation     CancellationState `json:"cancellation"`
	CancellationNote string            `json:"cancellationNote,omitempty"`
	CanApprove       bool              `json:"canApprove"`
	CanReject        bool              `json:"canReject"`
	Tracker          *Tracker          `json:"tracker,omitempty"`
	TotalPrice       float64           `json:"totalPrice"`
	Items            []ItemView        `json:"items"`
	TotalsMismatches []string          `json:"totalsMismatches,omitempty"`
}

var trackerSteps = []string{
	StatusPending.String(),
	StatusProcessing.String(),
	StatusComplete.String(),
}

func tracker(st Status) *Tracker {
	if st == StatusCancelled || st == StatusCancelRequested {
		return nil
	}
	return &Tracker{Steps: trackerSteps, Current: int(st)}
}

// NewDetailView derives everything the detail screen shows from the order
// and the caller. It never mutates o.
func NewDetailView(o *Order, s *session.Session) DetailView {
	resolvable := o.CanResolve(s) == nil

	v := DetailView{
		ID:               o.ID,
		OrderCode:        o.OrderCode,
		Date:             o.Date,
		CustomerName:     o.CustomerName(),
		RecipientName:    o.RecipientName,
		RecipientEmail:   o.RecipientEmail,
		RecipientContact: o.RecipientContact,
		RecipientAddress: o.RecipientAddress,
		Status:           o.Status,
		StatusLabel:      o.Status.String(),
		Cancellation:     o.Cancellation(),
		CancellationNote: o.CancellationNote,
		CanApprove:       resolvable,
		CanReject:        resolvable,
		Tracker:          tracker(o.Status),
		TotalPrice:       o.TotalPrice,
		Items:            make([]ItemView, 0, len(o.OrderItems)),
		TotalsMismatches: o.CheckTotals(),
	}

	for i := range o.OrderItems {
		it := &o.OrderItems[i]
		v.Items = append(v.Items, ItemView{
			OrderItem: *it,
			Action:    o.ItemAction(s, it),
			Owned:     it.VendorID == s.User.ID,
		})
	}
	return v
}
