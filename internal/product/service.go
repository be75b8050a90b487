package product

import (
	"context"
	"errors"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/audit"
	"backoffice-console/internal/logger"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"
	"backoffice-console/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, s *session.Session, f Filter) ([]Product, error)
	Get(ctx context.Context, s *session.Session, id string) (*Product, error)
	Create(ctx context.Context, s *session.Session, in Input) error
	Update(ctx context.Context, s *session.Session, id string, in Input) error
	ToggleStatus(ctx context.Context, s *session.Session, id string) error
	ResetStock(ctx context.Context, s *session.Session, id string) error
	UpdateStock(ctx context.Context, s *session.Session, id string, change StockChange) error
	Delete(ctx context.Context, s *session.Session, id string) error
	ListProductLists(ctx context.Context, s *session.Session) ([]ProductList, error)
	ActiveProductLists(ctx context.Context, s *session.Session) ([]ProductList, error)
	CreateProductList(ctx context.Context, s *session.Session, in ListInput) error
	UpdateProductList(ctx context.Context, s *session.Session, id string, in ListInput) error
	DeleteProductList(ctx context.Context, s *session.Session, id string) error
	ToggleProductList(ctx context.Context, s *session.Session, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
}

func NewService(repo Repository, recorder audit.Recorder) Service {
	return &service{repo: repo, recorder: recorder}
}

func (svc *service) List(ctx context.Context, s *session.Session, f Filter) ([]Product, error) {
	var (
		products []Product
		err      error
	)
	if s.Can(role.ViewAllProducts) {
		products, err = svc.repo.FetchAll(ctx, s)
	} else {
		products, err = svc.repo.FetchByVendor(ctx, s, s.User.ID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(products))
	for i := range products {
		if f.match(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out, nil
}

// authorize lets staff act on any product and vendors only on their own.
func (svc *service) authorize(ctx context.Context, s *session.Session, id string) error {
	if s.Can(role.ViewAllProducts) {
		return nil
	}
	p, err := svc.repo.FetchByID(ctx, s, id)
	if err != nil {
		return err
	}
	if p.VendorID != s.User.ID {
		return ErrNotPermitted
	}
	return nil
}

func (svc *service) Get(ctx context.Context, s *session.Session, id string) (*Product, error) {
	p, err := svc.repo.FetchByID(ctx, s, id)
	if err != nil {
		return nil, err
	}
	if !s.Can(role.ViewAllProducts) && p.VendorID != s.User.ID {
		return nil, ErrNotPermitted
	}
	return p, nil
}

func (svc *service) record(ctx context.Context, log *zap.Logger, e audit.Entry) {
	if svc.recorder == nil {
		return
	}
	if err := svc.recorder.Record(ctx, e); err != nil {
		log.Error("failed to write audit entry", zap.Error(err))
	}
}

// Create adds a product owned by the signed-in vendor.
func (svc *service) Create(ctx context.Context, s *session.Session, in Input) error {
	if err := role.Require(s.User.Role, role.CreateProducts); err != nil {
		return err
	}
	if err := in.validateCreate(); err != nil {
		return err
	}
	in.VendorID = s.User.ID

	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("vendor_id", s.User.ID))
	if err := svc.repo.Create(ctx, s, in); err != nil {
		log.Error("product create failed", zap.Error(err))
		return err
	}
	log.Info("product created", zap.String("name", in.Name))
	svc.record(ctx, log, audit.NewEntry(s, audit.ActionCreateProduct, "", in.Name))
	return nil
}

func (svc *service) Update(ctx context.Context, s *session.Session, id string, in Input) error {
	if err := in.validateUpdate(); err != nil {
		return err
	}
	if !s.Can(role.ViewAllProducts) {
		in.VendorID = s.User.ID
	}
	return svc.mutate(ctx, s, id, audit.ActionUpdateProduct, "", func() error {
		return svc.repo.Update(ctx, s, id, in)
	})
}

func (svc *service) mutate(ctx context.Context, s *session.Session, id string, action audit.Action, detail string, call func() error) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("action", string(action)),
		zap.String("product_id", id),
	)

	if err := svc.authorize(ctx, s, id); err != nil {
		log.Warn("product mutation refused", zap.Error(err))
		return err
	}
	if err := call(); err != nil {
		log.Error("product mutation failed", zap.Error(err))
		return err
	}

	log.Info("product updated")
	svc.record(ctx, log, audit.NewEntry(s, action, id, detail))
	return nil
}

func (svc *service) ToggleStatus(ctx context.Context, s *session.Session, id string) error {
	return svc.mutate(ctx, s, id, audit.ActionToggleProduct, "", func() error {
		return svc.repo.ToggleStatus(ctx, s, id)
	})
}

func (svc *service) ResetStock(ctx context.Context, s *session.Session, id string) error {
	return svc.mutate(ctx, s, id, audit.ActionResetStock, "", func() error {
		return svc.repo.ResetStock(ctx, s, id)
	})
}

func (svc *service) UpdateStock(ctx context.Context, s *session.Session, id string, change StockChange) error {
	v := utils.NewValidationError()
	switch {
	case change.Type == nil:
		v.Add("type", "Type is required")
	case !change.Type.Valid():
		v.Add("type", "Type must be 0 (reduce) or 1 (add)")
	}
	if change.StockChange <= 0 {
		v.Add("stockChange", "Stock change must be a positive number")
	}
	if err := v.Err(); err != nil {
		return err
	}

	detail := "add"
	if *change.Type == StockReduce {
		detail = "reduce"
	}
	return svc.mutate(ctx, s, id, audit.ActionUpdateStock, detail, func() error {
		return svc.repo.UpdateStock(ctx, s, id, change)
	})
}

func (svc *service) Delete(ctx context.Context, s *session.Session, id string) error {
	return svc.mutate(ctx, s, id, audit.ActionDeleteProduct, "", func() error {
		err := svc.repo.Delete(ctx, s, id)
		if errors.Is(err, apiclient.ErrConflict) {
			return ErrPendingOrders
		}
		return err
	})
}

func (svc *service) ListProductLists(ctx context.Context, s *session.Session) ([]ProductList, error) {
	if err := role.Require(s.User.Role, role.ManageProductLists); err != nil {
		return nil, err
	}
	return svc.repo.FetchProductLists(ctx, s)
}

// ActiveProductLists feeds the product form's list picker and is open to
// every role.
func (svc *service) ActiveProductLists(ctx context.Context, s *session.Session) ([]ProductList, error) {
	return svc.repo.FetchActiveProductLists(ctx, s)
}

func (svc *service) mutateList(ctx context.Context, s *session.Session, id string, action audit.Action, detail string, call func() error) error {
	if err := role.Require(s.User.Role, role.ManageProductLists); err != nil {
		return err
	}
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("action", string(action)),
		zap.String("product_list_id", id),
	)

	if err := call(); err != nil {
		log.Error("product list mutation failed", zap.Error(err))
		return err
	}
	log.Info("product list updated")
	svc.record(ctx, log, audit.NewEntry(s, action, id, detail))
	return nil
}

func (svc *service) CreateProductList(ctx context.Context, s *session.Session, in ListInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	return svc.mutateList(ctx, s, "", audit.ActionCreateProductList, in.Name, func() error {
		return svc.repo.CreateProductList(ctx, s, in)
	})
}

func (svc *service) UpdateProductList(ctx context.Context, s *session.Session, id string, in ListInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	return svc.mutateList(ctx, s, id, audit.ActionUpdateProductList, "", func() error {
		return svc.repo.UpdateProductList(ctx, s, id, in)
	})
}

func (svc *service) DeleteProductList(ctx context.Context, s *session.Session, id string) error {
	return svc.mutateList(ctx, s, id, audit.ActionDeleteProductList, "", func() error {
		return svc.repo.DeleteProductList(ctx, s, id)
	})
}

func (svc *service) ToggleProductList(ctx context.Context, s *session.Session, id string) error {
	return svc.mutateList(ctx, s, id, audit.ActionToggleProductList, "", func() error {
		return svc.repo.ToggleProductList(ctx, s, id)
	})
}
