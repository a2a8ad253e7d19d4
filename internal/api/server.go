// Package api exposes the marketplace actions over HTTP.
package api

import (
	"net/http"
	"time"

	"winespace/internal/actions"
	"winespace/internal/auth"
	"winespace/internal/config"
	"winespace/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	actions *actions.Actions
	tokens  auth.TokenIssuer
	cnf     config.HTTP
	now     func() time.Time
}

func New(a *actions.Actions, tokens auth.TokenIssuer, cnf config.HTTP) *Server {
	return &Server{
		actions: a,
		tokens:  tokens,
		cnf:     cnf,
		now:     time.Now,
	}
}

func (s *Server) corsConfig() cors.Config {
	cnf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: len(s.cnf.AllowedOrigins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(s.cnf.AllowedOrigins) > 0 {
		cnf.AllowOrigins = s.cnf.AllowedOrigins
	} else {
		cnf.AllowAllOrigins = true
	}
	return cnf
}

// Router wires every route. Reads of the public catalogue work without a
// session; everything else needs one.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), recovery(), cors.New(s.corsConfig()), s.authenticate())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": s.now().UTC()})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/logout", s.logout)
	}

	// public reads
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/providers/available", s.findProviders)
	api.GET("/bulk-wine", s.listBulkWine)

	private := api.Group("", requireSession())
	{
		private.GET("/me", s.me)
		private.PUT("/me", s.updateProfile)
		private.GET("/dashboard", s.dashboard)

		admin := private.Group("/admin", requireRole(model.RoleAdmin))
		admin.GET("/users", s.listUsers)
		admin.PUT("/users/:id/status", s.setUserStatus)

		private.POST("/products", s.createProduct)
		private.PUT("/products/:id", s.updateProduct)
		private.DELETE("/products/:id", s.deleteProduct)
		private.GET("/products/:id/price", s.priceFor)
		private.POST("/products/import", s.importCatalog)
		private.POST("/products/import/save", s.saveImport)
		private.PUT("/customers/:producerId/tier", s.setCustomerTier)

		private.GET("/orders", s.listOrders)
		private.POST("/orders/checkout", s.checkout)
		private.POST("/orders/parse-message", s.parseMessage)
		private.GET("/orders/:id", s.getOrder)
		private.PUT("/orders/:id/status", s.setOrderStatus)
		private.DELETE("/orders/:id", s.deleteOrder)

		private.GET("/availability", s.listAvailability)
		private.POST("/availability", s.addAvailability)
		private.DELETE("/availability/:id", s.removeAvailability)

		private.GET("/bookings", s.listBookings)
		private.POST("/bookings", s.createBooking)
		private.GET("/bookings/calendar", s.calendar)
		private.GET("/bookings/work-orders", s.workOrders)
		private.PUT("/bookings/:id/status", s.setBookingStatus)

		private.GET("/promotions", s.listPromotions)
		private.POST("/promotions", s.createPromotion)
		private.PUT("/promotions/:id/toggle", s.togglePromotion)
		private.DELETE("/promotions/:id", s.deletePromotion)

		private.GET("/sawis", s.listReturns)
		private.POST("/sawis", s.saveReturn)
		private.GET("/sawis/summary", s.periodSummary)
		private.POST("/sawis/:id/submit", s.submitReturn)

		private.GET("/offenders", s.listOffenders)
		private.POST("/offenders", s.reportOffender)
		private.DELETE("/offenders/:id", s.deleteOffender)

		private.POST("/bulk-wine", s.createListing)
		private.PUT("/bulk-wine/:id", s.updateListing)
		private.DELETE("/bulk-wine/:id", s.deleteListing)

		private.GET("/rfqs", s.listRFQs)
		private.POST("/rfqs", s.createRFQ)
		private.GET("/rfqs/:id/quotes", s.listQuotes)
		private.POST("/rfqs/:id/quotes", s.submitQuote)
		private.POST("/rfqs/:id/close", s.closeRFQ)
		private.POST("/quotes/:id/accept", s.acceptQuote)
	}

	return r
}
