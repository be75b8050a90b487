package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"backoffice-console/internal/order"
	"backoffice-console/internal/utils"

	"github.com/go-chi/chi/v5"
)

func orderFilter(r *http.Request) (order.Filter, error) {
	q := r.URL.Query()
	f := order.Filter{
		View: order.View(q.Get("view")),
		Date: q.Get("date"),
	}
	if v := q.Get("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("%w: status %q", order.ErrInvalidFilter, v)
		}
		st := order.Status(n)
		f.Status = &st
	}
	return f, nil
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f, err := orderFilter(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	orders, err := h.orders.List(r.Context(), sessionFrom(r), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	items, page := utils.Paginate(orders, queryInt(r, "page", 1), queryInt(r, "perPage", utils.DefaultPerPage))
	writeJSON(w, http.StatusOK, listResponse[order.Order]{Items: items, Page: page})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.Detail(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// writeOrder answers a lifecycle mutation with the detail view of the
// resulting order, so the screen re-renders without another fetch.
func (h *Handler) writeOrder(w http.ResponseWriter, r *http.Request, o *order.Order, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order.NewDetailView(o, sessionFrom(r)))
}

func (h *Handler) ApproveCancellation(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	o, err := h.orders.ApproveCancellation(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	h.writeOrder(w, r, o, err)
}

func (h *Handler) RejectCancellation(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	o, err := h.orders.RejectCancellation(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	h.writeOrder(w, r, o, err)
}

func (h *Handler) DeliverItem(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	o, err := h.orders.MarkItemDelivered(r.Context(), sessionFrom(r),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "vendorId"),
		chi.URLParam(r, "productId"),
	)
	h.writeOrder(w, r, o, err)
}
