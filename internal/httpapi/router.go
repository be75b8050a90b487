package httpapi

import (
	"net/http"

	"backoffice-console/internal/logger"
	"backoffice-console/internal/middleware"
	"backoffice-console/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, auth *middleware.Auth, corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(corsOrigin))
	r.Use(auth.Authenticate)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession)

			r.Get("/me", h.Me)
			r.Get("/dashboard", h.Dashboard)
			r.Get("/notifications", h.Notifications)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile)
				r.Put("/", h.UpdateProfile)
				r.Put("/password", h.ChangePassword)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.ListOrders)
				r.Get("/{id}", h.GetOrder)
				r.Patch("/{id}/approve-cancellation", h.ApproveCancellation)
				r.Patch("/{id}/reject-cancellation", h.RejectCancellation)
				r.Patch("/{id}/vendor/{vendorId}/product/{productId}/deliver", h.DeliverItem)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Get("/{id}", h.GetProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Patch("/{id}/status", h.ToggleProduct)
				r.Put("/{id}/stock", h.UpdateStock)
				r.Put("/{id}/stock/reset", h.ResetStock)
				r.Delete("/{id}", h.DeleteProduct)
			})

			r.Route("/product-lists", func(r chi.Router) {
				r.Get("/", h.ListProductLists)
				r.Post("/", h.CreateProductList)
				r.Get("/active", h.ActiveProductLists)
				r.Put("/{id}", h.UpdateProductList)
				r.Delete("/{id}", h.DeleteProductList)
				r.Patch("/{id}/status", h.ToggleProductList)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/vendors", h.listAccounts(user.KindVendors))
				r.Post("/vendors", h.registerAccount(user.KindVendors))
				r.Get("/csrs", h.listAccounts(user.KindCSRs))
				r.Post("/csrs", h.registerAccount(user.KindCSRs))
				r.Get("/customers", h.listAccounts(user.KindCustomers))
				r.Get("/customers/pending", h.listAccounts(user.KindPendingCustomers))
				r.Put("/{id}/status", h.ToggleAccount)
			})

			r.Get("/reviews/ratings", h.Ratings)
			r.Get("/reviews/comments", h.Comments)
			r.Get("/audit", h.AuditTrail)
		})
	})

	return r
}
