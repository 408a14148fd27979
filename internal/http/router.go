package http

import (
	"smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/http/handlers"
	"smartride-backend/internal/http/middleware"
	"smartride-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(env config.Env, m *metrics.Metrics) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	handlers.Configure(env, m)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(env.CORSOrigins))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/db-check", handlers.DBCheck)

		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)

		api.GET("/trips", handlers.SearchTrips)
		api.GET("/trips/:id", handlers.GetTrip)
		api.GET("/trips/:id/seats", handlers.GetTripSeats)
		api.GET("/companies", handlers.ListCompanies)
		api.GET("/companies/:id", handlers.GetCompany)
	}

	auth := api.Group("")
	auth.Use(middleware.AuthRequired([]byte(env.JWTSecret)))
	{
		auth.GET("/auth/profile", handlers.Profile)

		auth.POST("/tickets", handlers.CreateTicket)
		auth.GET("/tickets", handlers.MyTickets)
		auth.GET("/tickets/:id", handlers.GetTicket)
		auth.DELETE("/tickets/:id", handlers.CancelTicket)
		auth.GET("/tickets/:id/e-ticket", handlers.ETicketPDF)
	}

	manager := auth.Group("/manager")
	manager.Use(middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin))
	{
		manager.GET("/trips", handlers.ManagerTrips)
		manager.GET("/trips/:id/passengers", handlers.TripPassengers)
		manager.POST("/tickets/:id/confirm-boarding", handlers.ConfirmBoarding)
		manager.POST("/search-by-qr", handlers.SearchByQR)
	}

	adminOnly := auth.Group("")
	adminOnly.Use(middleware.RequireRoles(domain.RoleAdmin))
	{
		adminOnly.POST("/trips", handlers.CreateTrip)
		adminOnly.PATCH("/trips/:id", handlers.UpdateTrip)
		adminOnly.DELETE("/trips/:id", handlers.DeleteTrip)

		adminOnly.POST("/companies", handlers.CreateCompany)
		adminOnly.PUT("/companies/:id", handlers.UpdateCompany)
		adminOnly.PATCH("/companies/:id/visibility", handlers.HideCompany)
		adminOnly.DELETE("/companies/:id", handlers.DeleteCompany)

		adminOnly.GET("/admin/stats", handlers.AdminStats)
		adminOnly.GET("/admin/users", handlers.AdminUsers)
		adminOnly.GET("/admin/trips", handlers.AdminTrips)
		adminOnly.GET("/admin/companies", handlers.AdminListCompanies)
	}

	return r
}
