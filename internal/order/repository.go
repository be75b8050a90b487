package order

import (
	"context"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/session"
)

// Repository is the remote API's view of orders.
type Repository interface {
	FetchAll(ctx context.Context, s *session.Session) ([]Order, error)
	FetchByVendor(ctx context.Context, s *session.Session, vendorID string) ([]Order, error)
	FetchByID(ctx context.Context, s *session.Session, orderID string) (*Order, error)
	ApproveCancellation(ctx context.Context, s *session.Session, orderID string) error
	RejectCancellation(ctx context.Context, s *session.Session, orderID string) error
	MarkItemDelivered(ctx context.Context, s *session.Session, orderID, vendorID, productID string) error
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) FetchAll(ctx context.Context, s *session.Session) ([]Order, error) {
	orders := []Order{}
	if err := r.api.Get(ctx, s, "Orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FetchByVendor(ctx context.Context, s *session.Session, vendorID string) ([]Order, error) {
	orders := []Order{}
	if err := r.api.Get(ctx, s, apiclient.Path("Orders/vendor/%s", vendorID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FetchByID(ctx context.Context, s *session.Session, orderID string) (*Order, error) {
	var o Order
	if err := r.api.Get(ctx, s, apiclient.Path("Orders/%s", orderID), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) ApproveCancellation(ctx context.Context, s *session.Session, orderID string) error {
	return r.api.Patch(ctx, s, apiclient.Path("Orders/%s/approve-cancellation", orderID), nil, nil)
}

func (r *repository) RejectCancellation(ctx context.Context, s *session.Session, orderID string) error {
	return r.api.Patch(ctx, s, apiclient.Path("Orders/%s/reject-cancellation", orderID), nil, nil)
}

func (r *repository) MarkItemDelivered(ctx context.Context, s *session.Session, orderID, vendorID, productID string) error {
	path := apiclient.Path("Orders/%s/vendor/%s/product/%s/deliver", orderID, vendorID, productID)
	return r.api.Patch(ctx, s, path, nil, nil)
}
