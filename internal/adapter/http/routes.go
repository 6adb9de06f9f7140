package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/vendra/vendra/internal/middleware"
	"github.com/vendra/vendra/internal/service"
)

// MountRoutes registers all API routes on the given chi router. Routes are
// grouped by surface: /api/auth for accounts, /api/startup for the owner
// console, /api/saas/{tenantID} for the per-marketplace storefront and
// back-office.
func MountRoutes(r chi.Router, h *Handlers, authSvc *service.AuthService, tenants *service.TenantService) {
	auth := middleware.Auth(authSvc)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/signin", h.Signin)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/signout", h.Signout)
			r.Get("/me", h.Me)
			r.Patch("/me", h.UpdateMe)
		})
	})

	// Storefront bootstrap: host name to tenant.
	r.Get("/api/resolve/{subdomain}", h.ResolveTenant)

	r.Route("/api/startup", func(r chi.Router) {
		r.Use(auth)

		r.Route("/auth/profile", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Post("/", h.CreateProfile)
			r.Put("/", h.UpdateProfile)
		})

		r.Route("/marketplace", func(r chi.Router) {
			r.Get("/plans", h.ListPlans)
			r.Get("/plans/{planID}", h.GetPlan)
			r.Get("/check-subdomain", h.CheckSubdomain)
			r.Get("/suggest-subdomains", h.SuggestSubdomains)
			r.Post("/create", h.CreateMarketplace)
			r.Get("/my-marketplaces", h.MyMarketplaces)
			r.Get("/subscriptions", h.MySubscriptions)
			r.Get("/subscriptions/active", h.ActiveSubscription)
		})
	})

	r.Route("/api/saas/{tenantID}", func(r chi.Router) {
		r.Use(middleware.TenantContext(tenants))

		// Public storefront surface: no authentication.
		r.Get("/products/public", h.PublicProducts)
		r.Get("/categories/tree", h.CategoryTree)
		r.Post("/orders", h.CreateOrder)

		// Back-office surface: tenant staff or the startup owner.
		r.Group(func(r chi.Router) {
			r.Use(auth, middleware.RequireTenantMember)

			r.Get("/products", h.ListProducts)
			r.Post("/products", h.CreateProduct)
			r.Get("/products/{productID}", h.GetProduct)
			r.Put("/products/{productID}", h.UpdateProduct)
			r.Delete("/products/{productID}", h.DeleteProduct)
			r.Get("/products/{productID}/values", h.ProductFieldValues)

			r.Get("/categories", h.ListCategories)
			r.Post("/categories", h.CreateCategory)
			r.Get("/categories/{categoryID}", h.GetCategory)
			r.Put("/categories/{categoryID}", h.UpdateCategory)
			r.Delete("/categories/{categoryID}", h.DeleteCategory)

			r.Get("/fields", h.ListFields)
			r.Post("/fields", h.CreateField)
			r.Get("/fields/display", h.FieldDisplays)
			r.Put("/fields/display/reorder", h.ReorderDisplays)
			r.Get("/fields/{fieldID}", h.GetField)
			r.Put("/fields/{fieldID}", h.UpdateField)
			r.Delete("/fields/{fieldID}", h.DeleteField)
			r.Post("/fields/{fieldID}/values", h.SetFieldValue)

			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{orderID}", h.GetOrder)
			r.Patch("/orders/{orderID}/status", h.UpdateOrderStatus)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
		})
	})
}
