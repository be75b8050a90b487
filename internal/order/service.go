package order

import (
	"context"
	"errors"
	"fmt"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/audit"
	"backoffice-console/internal/logger"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, s *session.Session, f Filter) ([]Order, error)
	Get(ctx context.Context, s *session.Session, orderID string) (*Order, error)
	Detail(ctx context.Context, s *session.Session, orderID string) (*DetailView, error)
	ApproveCancellation(ctx context.Context, s *session.Session, orderID string) (*Order, error)
	RejectCancellation(ctx context.Context, s *session.Session, orderID string) (*Order, error)
	MarkItemDelivered(ctx context.Context, s *session.Session, orderID, vendorID, productID string) (*Order, error)
	Stats(ctx context.Context, s *session.Session) (Stats, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
}

// NewService builds the order service. recorder may be nil.
func NewService(repo Repository, recorder audit.Recorder) Service {
	return &service{repo: repo, recorder: recorder}
}

func (svc *service) fetchScoped(ctx context.Context, s *session.Session) ([]Order, error) {
	if s.Can(role.ViewAllOrders) {
		return svc.repo.FetchAll(ctx, s)
	}
	return svc.repo.FetchByVendor(ctx, s, s.User.ID)
}

func (svc *service) List(ctx context.Context, s *session.Session, f Filter) ([]Order, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	orders, err := svc.fetchScoped(ctx, s)
	if err != nil {
		return nil, err
	}
	return f.Apply(orders), nil
}

func (svc *service) Get(ctx context.Context, s *session.Session, orderID string) (*Order, error) {
	o, err := svc.repo.FetchByID(ctx, s, orderID)
	if err != nil {
		return nil, err
	}
	if !s.Can(role.ViewAllOrders) && !hasVendorItem(o, s.User.ID) {
		return nil, ErrNotPermitted
	}
	return o, nil
}

func hasVendorItem(o *Order, vendorID string) bool {
	for _, it := range o.OrderItems {
		if it.VendorID == vendorID {
			return true
		}
	}
	return false
}

func (svc *service) Detail(ctx context.Context, s *session.Session, orderID string) (*DetailView, error) {
	o, err := svc.Get(ctx, s, orderID)
	if err != nil {
		return nil, err
	}

	if problems := o.CheckTotals(); len(problems) > 0 {
		logger.FromCtx(ctx).Warn("order totals do not add up",
			zap.String("order_id", o.ID),
			zap.Strings("problems", problems),
		)
	}

	v := NewDetailView(o, s)
	return &v, nil
}

// ApproveCancellation resolves a pending request. The returned order carries
// the new decision; it is not re-fetched after the call.
func (svc *service) ApproveCancellation(ctx context.Context, s *session.Session, orderID string) (*Order, error) {
	return svc.resolve(ctx, s, orderID, DecisionApproved)
}

func (svc *service) RejectCancellation(ctx context.Context, s *session.Session, orderID string) (*Order, error) {
	return svc.resolve(ctx, s, orderID, DecisionRejected)
}

func (svc *service) resolve(ctx context.Context, s *session.Session, orderID string, d CancellationDecision) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID), zap.Stringer("decision", d))

	o, err := svc.Get(ctx, s, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.CanResolve(s); err != nil {
		log.Warn("cancellation decision refused", zap.Error(err))
		return nil, err
	}

	call, action := svc.repo.ApproveCancellation, audit.ActionApproveCancellation
	if d == DecisionRejected {
		call, action = svc.repo.RejectCancellation, audit.ActionRejectCancellation
	}
	if err := call(ctx, s, o.ID); err != nil {
		log.Error("cancellation decision failed", zap.Error(err))
		return nil, err
	}

	o.IsCancellationApproved = d
	log.Info("cancellation resolved")
	svc.record(ctx, audit.NewEntry(s, action, o.ID, o.CancellationNote))
	return o, nil
}

// MarkItemDelivered marks one line delivered and returns the re-fetched
// order. The order-level status is left to the API.
func (svc *service) MarkItemDelivered(ctx context.Context, s *session.Session, orderID, vendorID, productID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("vendor_id", vendorID),
		zap.String("product_id", productID),
	)

	o, err := svc.Get(ctx, s, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.CanDeliver(s, vendorID, productID); err != nil {
		log.Warn("delivery refused", zap.Error(err))
		return nil, err
	}

	if err := svc.repo.MarkItemDelivered(ctx, s, o.ID, vendorID, productID); err != nil {
		log.Error("mark delivered failed", zap.Error(err))
		return nil, err
	}
	log.Info("item marked delivered")
	svc.record(ctx, audit.NewEntry(s, audit.ActionDeliverItem, o.ID, vendorID+"/"+productID))

	fresh, err := svc.repo.FetchByID(ctx, s, o.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order after delivery: %w", err)
	}
	return fresh, nil
}

func (svc *service) Stats(ctx context.Context, s *session.Session) (Stats, error) {
	orders, err := svc.fetchScoped(ctx, s)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(orders), nil
}

func (svc *service) record(ctx context.Context, e audit.Entry) {
	if svc.recorder == nil {
		return
	}
	if err := svc.recorder.Record(ctx, e); err != nil {
		logger.FromCtx(ctx).Error("failed to write audit entry",
			zap.String("action", string(e.Action)),
			zap.Error(err),
		)
	}
}

// IsNotFound reports whether the order or item does not exist upstream or locally.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) || errors.Is(err, apiclient.ErrNotFound)
}
