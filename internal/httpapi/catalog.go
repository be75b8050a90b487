package httpapi

import (
	"net/http"
	"strconv"

	"backoffice-console/internal/product"
	"backoffice-console/internal/utils"

	"github.com/go-chi/chi/v5"
)

// stockRequest keeps Type a pointer so an omitted type is told apart from
// 0, which means reduce.
type stockRequest struct {
	Confirm     bool                    `json:"confirm"`
	Type        *product.StockDirection `json:"type"`
	StockChange int                     `json:"stockChange"`
}

type productRequest struct {
	Confirm bool `json:"confirm"`
	product.Input
}

type productListRequest struct {
	Confirm bool `json:"confirm"`
	product.ListInput
}

func productFilter(r *http.Request) product.Filter {
	q := r.URL.Query()
	f := product.Filter{
		Name:        q.Get("name"),
		StockStatus: q.Get("stockStatus"),
	}
	if v, err := strconv.ParseBool(q.Get("active")); err == nil {
		f.Active = &v
	}
	return f
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), sessionFrom(r), productFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	items, page := utils.Paginate(products, queryInt(r, "page", 1), queryInt(r, "perPage", utils.DefaultPerPage))
	writeJSON(w, http.StatusOK, listResponse[product.Product]{Items: items, Page: page})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
		return
	}
	if err := h.products.Create(r.Context(), sessionFrom(r), req.Input); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
		return
	}
	h.mutated(w, r, h.products.Update(r.Context(), sessionFrom(r), chi.URLParam(r, "id"), req.Input))
}

// mutated finishes every catalogue mutation, which has no body to return.
func (h *Handler) mutated(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	h.mutated(w, r, h.products.ToggleStatus(r.Context(), sessionFrom(r), chi.URLParam(r, "id")))
}

func (h *Handler) ResetStock(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	h.mutated(w, r, h.products.ResetStock(r.Context(), sessionFrom(r), chi.URLParam(r, "id")))
}

func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
		return
	}
	change := product.StockChange{Type: req.Type, StockChange: req.StockChange}
	h.mutated(w, r, h.products.UpdateStock(r.Context(), sessionFrom(r), chi.URLParam(r, "id"), change))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	h.mutated(w, r, h.products.Delete(r.Context(), sessionFrom(r), chi.URLParam(r, "id")))
}

func (h *Handler) ListProductLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.products.ListProductLists(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *Handler) ActiveProductLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.products.ActiveProductLists(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *Handler) CreateProductList(w http.ResponseWriter, r *http.Request) {
	var req productListRequest
	if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
		return
	}
	if err := h.products.CreateProductList(r.Context(), sessionFrom(r), req.ListInput); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) UpdateProductList(w http.ResponseWriter, r *http.Request) {
	var req productListRequest
	if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
		return
	}
	h.mutated(w, r, h.products.UpdateProductList(r.Context(), sessionFrom(r), chi.URLParam(r, "id"), req.ListInput))
}

func (h *Handler) DeleteProductList(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	h.mutated(w, r, h.products.DeleteProductList(r.Context(), sessionFrom(r), chi.URLParam(r, "id")))
}

func (h *Handler) ToggleProductList(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	h.mutated(w, r, h.products.ToggleProductList(r.Context(), sessionFrom(r), chi.URLParam(r, "id")))
}
