package product

import (
	"context"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/session"
)

type Repository interface {
	FetchAll(ctx context.Context, s *session.Session) ([]Product, error)
	FetchByVendor(ctx context.Context, s *session.Session, vendorID string) ([]Product, error)
	FetchByID(ctx context.Context, s *session.Session, id string) (*Product, error)
	Create(ctx context.Context, s *session.Session, in Input) error
	Update(ctx context.Context, s *session.Session, id string, in Input) error
	ToggleStatus(ctx context.Context, s *session.Session, id string) error
	ResetStock(ctx context.Context, s *session.Session, id string) error
	UpdateStock(ctx context.Context, s *session.Session, id string, change StockChange) error
	Delete(ctx context.Context, s *session.Session, id string) error
	FetchProductLists(ctx context.Context, s *session.Session) ([]ProductList, error)
	FetchActiveProductLists(ctx context.Context, s *session.Session) ([]ProductList, error)
	CreateProductList(ctx context.Context, s *session.Session, in ListInput) error
	UpdateProductList(ctx context.Context, s *session.Session, id string, in ListInput) error
	DeleteProductList(ctx context.Context, s *session.Session, id string) error
	ToggleProductList(ctx context.Context, s *session.Session, id string) error
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) FetchAll(ctx context.Context, s *session.Session) ([]Product, error) {
	products := []Product{}
	if err := r.api.Get(ctx, s, "Products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FetchByVendor(ctx context.Context, s *session.Session, vendorID string) ([]Product, error) {
	products := []Product{}
	if err := r.api.Get(ctx, s, apiclient.Path("Products/vendorId/%s", vendorID), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FetchByID(ctx context.Context, s *session.Session, id string) (*Product, error) {
	var p Product
	if err := r.api.Get(ctx, s, apiclient.Path("Products/%s", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, s *session.Session, in Input) error {
	return r.api.Post(ctx, s, "Products", in, nil)
}

func (r *repository) Update(ctx context.Context, s *session.Session, id string, in Input) error {
	return r.api.Put(ctx, s, apiclient.Path("Products/%s", id), in, nil)
}

func (r *repository) ToggleStatus(ctx context.Context, s *session.Session, id string) error {
	return r.api.Patch(ctx, s, apiclient.Path("Products/%s/status", id), nil, nil)
}

func (r *repository) ResetStock(ctx context.Context, s *session.Session, id string) error {
	return r.api.Put(ctx, s, apiclient.Path("Products/stocks/reset/%s", id), nil, nil)
}

func (r *repository) UpdateStock(ctx context.Context, s *session.Session, id string, change StockChange) error {
	return r.api.Put(ctx, s, apiclient.Path("Products/stocks/update/%s", id), change, nil)
}

func (r *repository) Delete(ctx context.Context, s *session.Session, id string) error {
	return r.api.Delete(ctx, s, apiclient.Path("Products/%s", id))
}

func (r *repository) FetchProductLists(ctx context.Context, s *session.Session) ([]ProductList, error) {
	lists := []ProductList{}
	if err := r.api.Get(ctx, s, "ProductLists", &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *repository) FetchActiveProductLists(ctx context.Context, s *session.Session) ([]ProductList, error) {
	lists := []ProductList{}
	if err := r.api.Get(ctx, s, "ProductLists/active", &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *repository) CreateProductList(ctx context.Context, s *session.Session, in ListInput) error {
	return r.api.Post(ctx, s, "ProductLists", in, nil)
}

func (r *repository) UpdateProductList(ctx context.Context, s *session.Session, id string, in ListInput) error {
	return r.api.Put(ctx, s, apiclient.Path("ProductLists/%s", id), in, nil)
}

func (r *repository) DeleteProductList(ctx context.Context, s *session.Session, id string) error {
	return r.api.Delete(ctx, s, apiclient.Path("ProductLists/%s", id))
}

func (r *repository) ToggleProductList(ctx context.Context, s *session.Session, id string) error {
	return r.api.Patch(ctx, s, apiclient.Path("ProductLists/%s/state", id), nil, nil)
}
