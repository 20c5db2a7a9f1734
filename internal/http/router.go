package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carwash-service/internal/metrics"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.IncHTTP(route, strconv.Itoa(c.Writer.Status()))
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api/v1")
	{
		public.POST("/auth/register", handler.register)
		public.POST("/auth/login", handler.login)
		// Gateway callback authenticates by transaction id, not by user token.
		public.POST("/webhooks/payments", handler.paymentWebhook)
	}

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/auth/me", handler.me)

		protected.POST("/vehicles", handler.createVehicle)
		protected.GET("/vehicles", handler.listVehicles)
		protected.GET("/vehicles/:id", handler.getVehicle)
		protected.PUT("/vehicles/:id", handler.updateVehicle)
		protected.DELETE("/vehicles/:id", handler.deleteVehicle)

		protected.POST("/services", handler.createService)
		protected.GET("/services", handler.listServices)
		protected.GET("/services/:id", handler.getService)
		protected.PUT("/services/:id", handler.updateService)
		protected.DELETE("/services/:id", handler.deleteService)

		protected.POST("/reservations", handler.createReservation)
		protected.GET("/reservations", handler.listReservations)
		protected.GET("/reservations/:id", handler.getReservation)
		protected.POST("/reservations/:id/cancel", handler.cancelReservation)
		protected.PUT("/reservations/:id/schedule", handler.updateReservationSchedule)
		protected.DELETE("/reservations/:id", handler.deleteReservation)
		protected.GET("/reservations/:id/proof", handler.getProof)
		protected.GET("/reservations/:id/payments", handler.paymentSummary)

		protected.GET("/jobs/available", handler.listAvailableJobs)
		protected.GET("/jobs/mine", handler.listMyJobs)
		protected.POST("/jobs/:id/accept", handler.acceptJob)
		protected.POST("/jobs/:id/start", handler.startJob)
		protected.POST("/jobs/:id/complete", handler.completeJob)

		protected.GET("/washers/nearby", handler.nearbyWashers)
		protected.GET("/washers/:id/ratings", handler.washerRatings)
		protected.PUT("/washers/me/availability", handler.setAvailability)
		protected.PUT("/washers/me/location", handler.setLocation)

		protected.POST("/ratings", handler.createRating)

		protected.GET("/users", handler.listUsers)
		protected.GET("/users/:id", handler.getUser)
		protected.PUT("/users/:id/active", handler.setUserActive)

		protected.POST("/payments", handler.createPayment)
		protected.POST("/payments/verify", handler.verifyPayment)

		protected.GET("/notifications", handler.listNotifications)
		protected.PUT("/notifications/:id/read", handler.markNotificationRead)
		protected.PUT("/notifications/read-all", handler.markAllNotificationsRead)

		protected.GET("/chat/ws", handler.chatSocket)
		protected.GET("/chat/:peer_id/messages", handler.chatHistory)
		protected.POST("/chat/:peer_id/messages", handler.sendChatMessage)
	}

	return router
}
