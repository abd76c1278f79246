package handlers

import (
	"net/http"

	"go-storefront/internal/auth"
	"go-storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Router groups every handler the server mounts.
type Router struct {
	Products          *ProductHandler
	Carts             *CartHandler
	Checkout          *CheckoutHandler
	Auth              *AuthHandler
	Admin             *AdminHandler
	AI                *AIHandler
	Sessions          middleware.SessionReader
	AllowRegistration bool
}

// Mount registers the storefront and admin routes on r.
func (rt Router) Mount(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })

	r.POST("/login", rt.Auth.Login)
	r.POST("/logout", rt.Auth.Logout)
	if rt.AllowRegistration {
		r.POST("/register", rt.Auth.Register)
	}

	// --- STOREFRONT (public) ---
	api := r.Group("/api")
	{
		api.GET("/products", rt.Products.List)
		api.POST("/carts", rt.Carts.Create)
		api.GET("/carts/:id", rt.Carts.Get)
		api.POST("/carts/:id/items", rt.Carts.AddItem)
		api.PATCH("/carts/:id/items/:key", rt.Carts.ChangeQuantity)
		api.POST("/carts/:id/checkout", rt.Checkout.Submit)
		api.GET("/checkout/options", rt.Checkout.Options)

		api.GET("/session", middleware.AuthMiddleware(rt.Sessions), rt.Auth.Session)
	}

	// --- ADMIN ONLY ---
	adm := api.Group("/admin")
	adm.Use(middleware.AuthMiddleware(rt.Sessions), middleware.RequireRole(auth.RoleAdmin))
	{
		adm.GET("/orders", rt.Admin.Orders)
		adm.GET("/filters", rt.Admin.Filters)
		adm.GET("/costs", rt.Admin.Costs)
		adm.PUT("/costs", rt.Admin.SetCost)

		adm.POST("/products", rt.Products.Add)
		adm.PUT("/products/:id", rt.Products.Update)
		adm.DELETE("/products/:id", rt.Products.Delete)
		adm.POST("/upload", rt.Products.UploadImage)

		adm.POST("/ask", rt.AI.Ask)
	}
}
