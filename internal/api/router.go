// Package api wires the HTTP boundary: JSON handlers over the service
// layer, one route group per entity.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tickdesk/tickdesk/internal/metrics"
	"github.com/tickdesk/tickdesk/internal/middleware"
	"github.com/tickdesk/tickdesk/internal/service"
)

// Handlers bundles the services the HTTP layer calls into.
type Handlers struct {
	Auth      *service.AuthService
	Tickets   *service.TicketService
	Companies *service.CompanyService
	Users     *service.UserService
	Reports   *service.ReportService
	Log       zerolog.Logger
	LoginRate int // login attempts per hour per IP
}

// Register mounts all routes on the engine. Identity resolution runs on
// every request; write routes are additionally gated in the service
// layer, so a route added without a middleware guard still cannot skip
// authorization.
func (h *Handlers) Register(r *gin.Engine) {
	r.Use(metrics.Middleware())
	r.Use(middleware.ResolveIdentity(h.Auth))

	r.GET("/healthz", h.Health)
	r.GET("/metrics", metrics.Handler())

	limiter := middleware.NewRateLimiter()
	v1 := r.Group("/api/v1")

	v1.POST("/auth/login", limiter.RateLimitByIP(h.loginRate()), h.Login)

	tickets := v1.Group("/tickets", middleware.RequireAuthenticated())
	{
		tickets.GET("", h.ListTickets)
		tickets.POST("", h.CreateTicket)
		tickets.DELETE("", middleware.RequireAdmin(), h.ClearTickets)
		tickets.GET("/:id", h.GetTicket)
		tickets.PATCH("/:id", h.UpdateTicket)
		tickets.DELETE("/:id", middleware.RequireAdmin(), h.DeleteTicket)
	}

	companies := v1.Group("/companies", middleware.RequireAuthenticated())
	{
		companies.GET("", h.ListCompanies)
		companies.POST("", middleware.RequireAdmin(), h.CreateCompany)
		companies.PATCH("/:id", middleware.RequireAdmin(), h.UpdateCompany)
		companies.DELETE("/:id", middleware.RequireAdmin(), h.DeleteCompany)
	}

	users := v1.Group("/users", middleware.RequireAdmin())
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	reports := v1.Group("/reports", middleware.RequireAdmin())
	{
		reports.GET("/summary", h.ReportSummary)
		reports.GET("/export", h.ReportExport)
	}
}

func (h *Handlers) loginRate() int {
	if h.LoginRate > 0 {
		return h.LoginRate
	}
	return 30
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
