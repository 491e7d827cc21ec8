package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"local-services-server/middleware"
	"local-services-server/models"
	ws "local-services-server/websocket"
)

var chatHub *ws.Hub

// SetupRouter builds the gin engine with the full middleware stack and
// route table. It also starts the chat WebSocket hub.
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Local Services Server is running",
			"time":    time.Now().UTC(),
		})
	})

	chatHub = ws.NewHub()
	go chatHub.Run()

	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		RegisterAuthRoutes(authRoutes)

		// Public catalog reads
		api.GET("/services", listServices)
		api.GET("/services/:id", getService)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Catalog management (providers only)
			protected.POST("/services", middleware.RequireRole(models.RoleProvider), createService)
			protected.POST("/services/:id/photo", middleware.RequireRole(models.RoleProvider), uploadServicePhoto)

			// Booking engine
			customerOnly := middleware.RequireRole(models.RoleCustomer)
			protected.POST("/services/:id/book", customerOnly, bookService)
			protected.POST("/services/:id/hire", customerOnly, hireService)
			protected.POST("/bookings/:id/accept", decideBooking("accept"))
			protected.POST("/bookings/:id/reject", decideBooking("reject"))
			protected.POST("/bookings/:id/rate", rateBooking)
			protected.GET("/customer/notifications", customerOnly, customerNotifications)
			protected.GET("/provider/notifications", middleware.RequireRole(models.RoleProvider), providerNotifications)

			// Chat
			protected.GET("/chat/:providerId", getChatMessages)
			protected.POST("/chat/:providerId", postChatMessage)

			// Complaints
			protected.POST("/complaints", createComplaint)
			protected.GET("/complaints", listMyComplaints)
		}

		// Chat WebSocket endpoint, token passed via query parameters
		api.GET("/ws/chat", middleware.WebSocketAuthMiddleware(), handleChatWebSocket)

		// Admin routes (admin role enforced, unauthorized callers get 403)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		{
			adminRoutes.GET("/dashboard", adminDashboard)
			adminRoutes.DELETE("/providers/:id", deleteProvider)
			adminRoutes.DELETE("/customers/:id", deleteCustomer)
			adminRoutes.DELETE("/services/:id", deleteService)
			adminRoutes.POST("/complaints/:id/resolve", resolveComplaint)
		}
	}

	return router
}
