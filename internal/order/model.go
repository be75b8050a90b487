package order

import (
	"fmt"
	"math"
	"time"
)

type Order struct {
	ID                      string               `json:"id"`
	OrderCode               string               `json:"orderCode"`
	Date                    string               `json:"date"`
	CustomerFirstName       string               `json:"customerFirstName"`
	CustomerLastName        string               `json:"customerLastName"`
	RecipientName           string               `json:"recipient_Name"`
	RecipientEmail          string               `json:"recipient_Email"`
	RecipientContact        string               `json:"recipient_Contact"`
	RecipientAddress        string               `json:"recipient_Address"`
	Status                  Status               `json:"status"`
	IsCancellationRequested bool                 `json:"isCancellationRequested"`
	IsCancellationApproved  CancellationDecision `json:"isCancellationApproved"`
	CancellationNote        string               `json:"cancellationNote"`
	OrderItemCount          int                  `json:"orderItemCount"`
	TotalPrice              float64              `json:"totalPrice"`
	OrderItems              []OrderItem          `json:"orderItems"`
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	VendorID    string  `json:"vendorId"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
	IsDelivered bool    `json:"isDelivered"`
}

func (o *Order) Cancellation() CancellationState {
	return cancellationState(o.IsCancellationRequested, o.IsCancellationApproved)
}

func (o *Order) CustomerName() string {
	return o.CustomerFirstName + " " + o.CustomerLastName
}

// Item finds the line matching both vendor and product.
func (o *Order) Item(vendorID, productID string) (*OrderItem, bool) {
	for i := range o.OrderItems {
		it := &o.OrderItems[i]
		if it.VendorID == vendorID && it.ProductID == productID {
			return it, true
		}
	}
	return nil, false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// PlacedAt parses the order date. Timestamps without a zone are UTC.
func (o *Order) PlacedAt() (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, o.Date); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised order date %q", o.Date)
}

// Day is the UTC calendar day the order was placed, as YYYY-MM-DD.
func (o *Order) Day() string {
	t, err := o.PlacedAt()
	if err != nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// CheckTotals returns one message per money total that does not add up.
func (o *Order) CheckTotals() []string {
	var problems []string
	var sum int64
	for _, it := range o.OrderItems {
		want := cents(it.UnitPrice * float64(it.Quantity))
		if cents(it.Total) != want {
			problems = append(problems, fmt.Sprintf(
				"item %s: total %.2f != %.2f x %d", it.ProductID, it.Total, it.UnitPrice, it.Quantity))
		}
		sum += cents(it.Total)
	}
	if cents(o.TotalPrice) != sum {
		problems = append(problems, fmt.Sprintf(
			"order %s: totalPrice %.2f != sum of items %.2f", o.ID, o.TotalPrice, float64(sum)/100))
	}
	return problems
}
