package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/middleware"
)

// Deps carries everything the route table needs.
type Deps struct {
	Auth          *middleware.Auth
	AuthH         *AuthHandler
	CartH         *CartHandler
	OrderH        *OrderHandler
	PayoutH       *PayoutHandler
	ProductH      *ProductHandler
	ReviewH       *ReviewHandler
	UserH         *UserHandler
	VendorH       *VendorHandler
	SearchH       *SearchHandler
	NotificationH *NotificationHandler
}

func Register(e *echo.Echo, d Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	api.POST("/register", d.AuthH.Register)
	api.POST("/login", d.AuthH.Login)
	api.POST("/refresh", d.AuthH.Refresh)
	api.POST("/logout", d.AuthH.Logout)

	api.GET("/products", d.ProductH.List)
	api.GET("/products/:id", d.ProductH.Get)
	api.GET("/categories", d.ProductH.Categories)
	api.GET("/products/:id/reviews", d.ReviewH.List)
	api.POST("/reviews/:id/helpful", d.ReviewH.MarkHelpful)
	if d.SearchH != nil {
		api.GET("/search", d.SearchH.Search)
	}

	auth := api.Group("", d.Auth.RequireLogin)

	auth.GET("/cart", d.CartH.GetCart)
	auth.POST("/cart", d.CartH.AddToCart)
	auth.DELETE("/cart/:id", d.CartH.RemoveOne)
	auth.DELETE("/cart/:id/all", d.CartH.RemoveAll)

	auth.POST("/orders", d.OrderH.Create)
	auth.GET("/orders", d.OrderH.List)
	auth.GET("/orders/:id", d.OrderH.Get)
	auth.PUT("/orders/:id/cancel", d.OrderH.Cancel)
	auth.GET("/vendor/orders", d.OrderH.VendorList)
	auth.PUT("/orders/:id/status", d.OrderH.VendorUpdateStatus)

	auth.POST("/payouts/calculate", d.PayoutH.Calculate)
	auth.POST("/payouts", d.PayoutH.Create)
	auth.GET("/payouts", d.PayoutH.List)
	auth.GET("/payouts/stats", d.PayoutH.Stats)
	auth.GET("/payouts/:id", d.PayoutH.Get)
	auth.PUT("/payouts/:id/cancel", d.PayoutH.Cancel)

	auth.POST("/products", d.ProductH.Create)
	auth.PATCH("/products/:id", d.ProductH.Update)
	auth.DELETE("/products/:id", d.ProductH.Delete)

	auth.POST("/products/:id/reviews", d.ReviewH.Create)
	auth.PUT("/reviews/:id", d.ReviewH.Update)
	auth.DELETE("/reviews/:id", d.ReviewH.Delete)

	auth.POST("/vendors", d.VendorH.Register)
	auth.GET("/vendors/me", d.VendorH.Profile)
	auth.POST("/bank-accounts", d.VendorH.AddBankAccount)
	auth.GET("/bank-accounts", d.VendorH.BankAccounts)

	auth.GET("/notifications", d.NotificationH.List)
	auth.PUT("/notifications/:id/read", d.NotificationH.MarkRead)

	admin := auth.Group("/admin", d.Auth.RequireAdmin)

	admin.GET("/orders", d.OrderH.AdminList)
	admin.PUT("/orders/:id/status", d.OrderH.AdminUpdateStatus)

	admin.GET("/payouts", d.PayoutH.AdminList)
	admin.PUT("/payouts/:id/status", d.PayoutH.AdminUpdateStatus)
	admin.POST("/payouts/:id/deductions", d.PayoutH.AdminAddDeductions)

	admin.GET("/users", d.UserH.AdminList)
	admin.GET("/users/:id", d.UserH.AdminGet)
	admin.PUT("/users/:id/status", d.UserH.AdminUpdateStatus)

	admin.POST("/categories", d.ProductH.CreateCategory)
	admin.PUT("/vendors/:id/commission", d.VendorH.AdminUpdateCommission)
	admin.PUT("/vendors/:id/status", d.VendorH.AdminUpdateStatus)
	admin.PUT("/bank-accounts/:id/verify", d.VendorH.AdminVerifyBankAccount)
}
