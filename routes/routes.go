package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/handlers"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/middleware"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menus & plans (no auth needed)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/plans", handlers.ListPlans)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)

		// Customer ordering (session token, premium restaurants only)
		public.GET("/restaurants/:id/cart", handlers.GetCart)
		public.POST("/restaurants/:id/cart/items", handlers.AddCartItem)
		public.DELETE("/restaurants/:id/cart/items/:itemId", handlers.RemoveCartItem)
		public.DELETE("/restaurants/:id/cart", handlers.ClearCart)
		public.POST("/restaurants/:id/checkout", handlers.Checkout)
		public.POST("/restaurants/:id/checkout/confirm", handlers.ConfirmOrder)
		public.POST("/restaurants/:id/checkout/back", handlers.CheckoutBack)

		// Billing callback hit by the payment gateway
		public.POST("/billing/callback", handlers.SubscribeCallback)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api/owner")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		// Restaurant management
		owner.POST("/restaurant", handlers.CreateRestaurant)
		owner.GET("/restaurant", handlers.GetMyRestaurant)
		owner.PUT("/restaurant", handlers.UpdateRestaurant)

		// Menu management
		owner.POST("/menu", handlers.AddMenuItem)
		owner.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		owner.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Order management
		owner.GET("/orders", handlers.GetRestaurantOrders)
		owner.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		// QR codes
		owner.GET("/qr/menu", handlers.GetMenuQR)
		owner.GET("/qr/review", handlers.GetReviewQR)
		owner.POST("/qr/review", handlers.CreateReviewQR)

		// Billing
		owner.POST("/subscribe", handlers.Subscribe)
		owner.GET("/subscription", handlers.GetMySubscription)

		// Support
		owner.POST("/tickets", handlers.CreateTicket)
		owner.GET("/tickets", handlers.GetMyTickets)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/stats", handlers.AdminGetStats)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.GET("/tickets", handlers.AdminGetAllTickets)
		admin.PUT("/tickets/:id/status", handlers.AdminUpdateTicketStatus)
	}
}
