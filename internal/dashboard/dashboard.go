// Package dashboard assembles the landing page summary for a signed-in user.
package dashboard

import (
	"context"
	"errors"
	"sort"
	"sync"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/logger"
	"backoffice-console/internal/order"
	"backoffice-console/internal/product"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"
	"backoffice-console/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type OrderStats interface {
	Stats(ctx context.Context, s *session.Session) (order.Stats, error)
}

type Accounts interface {
	List(ctx context.Context, s *session.Session, kind user.Kind, f user.Filter) ([]user.Account, error)
}

type Products interface {
	List(ctx context.Context, s *session.Session, f product.Filter) ([]product.Product, error)
}

type ProductLists interface {
	FetchProductLists(ctx context.Context, s *session.Session) ([]product.ProductList, error)
}

type CustomerStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

// Summary holds one field per card. Cards the role cannot see, or whose
// fetch failed, are left nil.
type Summary struct {
	Role         role.Role       `json:"role"`
	Customers    *CustomerStats  `json:"customers,omitempty"`
	ProductLists *product.Counts `json:"productLists,omitempty"`
	Products     *product.Counts `json:"products,omitempty"`
	CSRs         *user.Counts    `json:"csrs,omitempty"`
	Vendors      *user.Counts    `json:"vendors,omitempty"`
	Orders       *order.Stats    `json:"orders,omitempty"`
	Unavailable  []string        `json:"unavailable,omitempty"`
}

type Service struct {
	orders       OrderStats
	accounts     Accounts
	products     Products
	productLists ProductLists
}

func NewService(orders OrderStats, accounts Accounts, products Products, productLists ProductLists) *Service {
	return &Service{
		orders:       orders,
		accounts:     accounts,
		products:     products,
		productLists: productLists,
	}
}

type section struct {
	name  string
	allow bool
	fetch func(ctx context.Context, sum *Summary) error
}

func (svc *Service) sections(s *session.Session) []section {
	return []section{
		{"customers", s.Can(role.ViewCustomerStats), func(ctx context.Context, sum *Summary) error {
			all, err := svc.accounts.List(ctx, s, user.KindCustomers, user.Filter{})
			if err != nil {
				return err
			}
			pending, err := svc.accounts.List(ctx, s, user.KindPendingCustomers, user.Filter{})
			if err != nil {
				return err
			}
			sum.Customers = &CustomerStats{
				Total:    len(all),
				Approved: user.CountAccounts(all).Active,
				Pending:  len(pending),
			}
			return nil
		}},
		{"productLists", s.Can(role.ViewCatalogStats), func(ctx context.Context, sum *Summary) error {
			ls, err := svc.productLists.FetchProductLists(ctx, s)
			if err != nil {
				return err
			}
			c := product.CountProductLists(ls)
			sum.ProductLists = &c
			return nil
		}},
		{"products", s.Can(role.ViewCatalogStats), func(ctx context.Context, sum *Summary) error {
			ps, err := svc.products.List(ctx, s, product.Filter{})
			if err != nil {
				return err
			}
			c := product.CountProducts(ps)
			sum.Products = &c
			return nil
		}},
		{"csrs", s.Can(role.ViewStaffStats), func(ctx context.Context, sum *Summary) error {
			as, err := svc.accounts.List(ctx, s, user.KindCSRs, user.Filter{})
			if err != nil {
				return err
			}
			c := user.CountAccounts(as)
			sum.CSRs = &c
			return nil
		}},
		{"vendors", s.Can(role.ViewStaffStats), func(ctx context.Context, sum *Summary) error {
			as, err := svc.accounts.List(ctx, s, user.KindVendors, user.Filter{})
			if err != nil {
				return err
			}
			c := user.CountAccounts(as)
			sum.Vendors = &c
			return nil
		}},
		{"orders", true, func(ctx context.Context, sum *Summary) error {
			st, err := svc.orders.Stats(ctx, s)
			if err != nil {
				return err
			}
			sum.Orders = &st
			return nil
		}},
	}
}

// Build fetches every visible section concurrently. A failing section is
// logged and listed in Unavailable; only ErrUnauthorized fails the whole call.
func (svc *Service) Build(ctx context.Context, s *session.Session) (*Summary, error) {
	log := logger.FromCtx(ctx)
	sum := &Summary{Role: s.User.Role}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, sec := range svc.sections(s) {
		if !sec.allow {
			continue
		}
		g.Go(func() error {
			part := &Summary{}
			err := sec.fetch(gctx, part)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, apiclient.ErrUnauthorized):
				return err
			case err != nil:
				log.Warn("dashboard section unavailable", zap.String("section", sec.name), zap.Error(err))
				sum.Unavailable = append(sum.Unavailable, sec.name)
			default:
				merge(sum, part)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(sum.Unavailable)
	return sum, nil
}

func merge(dst, src *Summary) {
	if src.Customers != nil {
		dst.Customers = src.Customers
	}
	if src.ProductLists != nil {
		dst.ProductLists = src.ProductLists
	}
	if src.Products != nil {
		dst.Products = src.Products
	}
	if src.CSRs != nil {
		dst.CSRs = src.CSRs
	}
	if src.Vendors != nil {
		dst.Vendors = src.Vendors
	}
	if src.Orders != nil {
		dst.Orders = src.Orders
	}
}
