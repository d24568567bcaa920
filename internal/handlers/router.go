package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
)

// Router bundles the handlers and middleware mounted under /api/v1
type Router struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Address  *AddressHandler
	Catalog  *CatalogHandler
	Products *ProductHandler
	Reviews  *ReviewHandler
	Coupons  *CouponHandler
	Orders   *OrderHandler
	Health   *HealthHandler

	Sessions  *middleware.SessionManager
	RateLimit func(http.Handler) http.Handler
	DemoUsers []string
}

// Mount registers every route on r
func (rt *Router) Mount(r chi.Router) {
	r.Get("/health", rt.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", rt.authRoutes)
		r.Route("/users", rt.userRoutes)
		r.Route("/address", rt.addressRoutes)
		r.Route("/category", rt.catalogRoutes(rt.Catalog.ListCategories(), rt.Catalog.CreateCategory(), rt.Catalog.UpdateCategory(), rt.Catalog.DeleteCategory()))
		r.Route("/size", rt.catalogRoutes(rt.Catalog.ListSizes(), rt.Catalog.CreateSize(), rt.Catalog.UpdateSize(), rt.Catalog.DeleteSize()))
		r.Route("/return-reason", rt.catalogRoutes(rt.Catalog.ListReturnReasons(), rt.Catalog.CreateReturnReason(), rt.Catalog.UpdateReturnReason(), rt.Catalog.DeleteReturnReason()))
		r.Route("/products", rt.productRoutes)
		r.Route("/reviews", rt.reviewRoutes)
		r.Route("/coupons", rt.couponRoutes)
		r.Route("/orders", rt.orderRoutes)
	})

	r.NotFound(middleware.NotFound())
}

// signedIn authenticates and blocks writes by the demo accounts
func (rt *Router) signedIn(r chi.Router) chi.Router {
	return r.With(rt.Sessions.Authenticate, middleware.ReadOnlyDemo(rt.DemoUsers))
}

func (rt *Router) basic(r chi.Router) chi.Router {
	return rt.signedIn(r).With(middleware.RequireRole(models.RoleBasic))
}

func (rt *Router) admin(r chi.Router) chi.Router {
	return rt.signedIn(r).With(middleware.RequireRole(models.RoleAdmin))
}

func (rt *Router) authRoutes(r chi.Router) {
	limited := r.With(rt.RateLimit)
	limited.Post("/register", rt.Auth.Register)
	limited.Post("/admin/register", rt.Auth.RegisterAdmin)
	limited.Post("/verify", rt.Auth.Verify)
	limited.Post("/forgot-password", rt.Auth.ForgotPassword)
	limited.Post("/reset-password", rt.Auth.ResetPassword)
	limited.Post("/login", rt.Auth.Login)
	limited.Post("/admin/login", rt.Auth.AdminLogin)

	r.With(rt.Sessions.Authenticate).Delete("/logout", rt.Auth.Logout)
}

func (rt *Router) userRoutes(r chi.Router) {
	user := rt.signedIn(r)
	user.Get("/show-me", rt.Users.ShowMe)
	user.Post("/profile-image", rt.Users.UploadProfileImage)
	user.Delete("/profile-image", rt.Users.RemoveProfileImage)
	user.Patch("/", rt.Users.UpdateMe)
	user.Delete("/", rt.Users.DeleteMe)

	admin := rt.admin(r)
	admin.Get("/", rt.Users.List)
	admin.Patch("/{id}", rt.Users.UpdateStatus)
	admin.Delete("/{id}", rt.Users.Remove)
}

func (rt *Router) addressRoutes(r chi.Router) {
	basic := rt.basic(r)
	basic.Get("/", rt.Address.List)
	basic.Post("/", rt.Address.Create)
	basic.Get("/{id}", rt.Address.Get)
	basic.Patch("/{id}", rt.Address.Update)
	basic.Delete("/{id}", rt.Address.Delete)
}

func (rt *Router) catalogRoutes(list, create, update, remove http.HandlerFunc) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", list)

		admin := rt.admin(r)
		admin.Post("/", create)
		admin.Patch("/{id}", update)
		admin.Delete("/{id}", remove)
	}
}

func (rt *Router) productRoutes(r chi.Router) {
	public := r.With(rt.Sessions.OptionalAuth)
	public.Get("/", rt.Products.List)
	public.Get("/{id}", rt.Products.Get)

	admin := rt.admin(r)
	admin.Post("/", rt.Products.Create)
	admin.Patch("/{id}", rt.Products.Update)
	admin.Delete("/{id}", rt.Products.Delete)

	basic := rt.basic(r)
	basic.Get("/wishlist", rt.Products.Wishlist)
	basic.Post("/wishlist/{id}", rt.Products.AddToWishlist)
	basic.Delete("/wishlist/{id}", rt.Products.RemoveFromWishlist)
	basic.Post("/cart/{id}", rt.Products.AddToCart)
	basic.Delete("/cart/{id}", rt.Products.RemoveFromCart)
}

func (rt *Router) reviewRoutes(r chi.Router) {
	r.Get("/{id}", rt.Reviews.ListByProduct)

	basic := rt.basic(r)
	basic.Post("/{id}", rt.Reviews.Create)
	basic.Patch("/{id}", rt.Reviews.Update)

	rt.signedIn(r).With(middleware.RequireRole(models.RoleBasic, models.RoleAdmin)).
		Delete("/{id}", rt.Reviews.Delete)
}

func (rt *Router) couponRoutes(r chi.Router) {
	rt.signedIn(r).Get("/", rt.Coupons.List)

	admin := rt.admin(r)
	admin.Post("/", rt.Coupons.Create)
	admin.Patch("/{id}", rt.Coupons.Update)
	admin.Delete("/{id}", rt.Coupons.Delete)
}

func (rt *Router) orderRoutes(r chi.Router) {
	basic := rt.basic(r)
	basic.Get("/", rt.Orders.ListMine)
	basic.Post("/", rt.Orders.Create)
	basic.Post("/verify", rt.Orders.Verify)
	basic.Get("/cart", rt.Orders.Cart)
	basic.Get("/cart/price", rt.Orders.CartPrice)

	rt.admin(r).Get("/all", rt.Orders.ListAll)
}
