package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/madahotspot/voucher-console/internal/api/handler"
	"github.com/madahotspot/voucher-console/internal/api/middleware"
	"github.com/madahotspot/voucher-console/internal/core/domain"
	"github.com/madahotspot/voucher-console/internal/core/ports"
	"github.com/madahotspot/voucher-console/internal/core/service"
	"github.com/madahotspot/voucher-console/internal/core/store"
)

// Deps carries everything the router needs wired in main.
type Deps struct {
	Sessions *service.SessionService
	Registry *store.Registry
	Audit    ports.AuditRecorder
	Redis    *redis.Client
	Mongo    *mongo.Database
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))
	e.Use(middleware.Authenticate(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Registry, deps.Sessions.TTL())
	planHandler := handler.NewPlanHandler(deps.Registry, deps.Audit)
	posHandler := handler.NewPOSHandler(deps.Registry, deps.Audit)
	cashierHandler := handler.NewCashierHandler(deps.Registry, deps.Audit)
	salesHandler := handler.NewSalesHandler(deps.Registry)
	ticketHandler := handler.NewTicketHandler(deps.Registry, deps.Audit)

	superAdmin := middleware.RequireRole(domain.RoleSuperAdmin)
	cashierOnly := middleware.RequireRole(domain.RoleCashier)
	anyRole := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleCashier)

	// --- Landing and auth ---
	e.GET("/", authHandler.Landing)
	e.GET("/login", authHandler.Landing)
	e.GET("/unauthorized", authHandler.Unauthorized)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, anyRole)
	e.GET("/auth/profile", authHandler.Profile, anyRole)

	// --- Plan management (admin) and the cashier sell list ---
	plans := e.Group("/plans")
	plans.GET("/active", planHandler.ListActive, cashierOnly)
	plans.GET("", planHandler.List, superAdmin)
	plans.POST("", planHandler.Create, superAdmin)
	plans.PUT("/:id", planHandler.Update, superAdmin)
	plans.DELETE("/:id", planHandler.Delete, superAdmin)

	// --- Point of sale management ---
	pos := e.Group("/pos", superAdmin)
	pos.GET("", posHandler.List)
	pos.POST("", posHandler.Create)
	pos.PUT("/:id", posHandler.Update)
	pos.DELETE("/:id", posHandler.Delete)
	pos.GET("/:id/stats", posHandler.Stats)

	// --- Cashier management ---
	cashiers := e.Group("/cashier", superAdmin)
	cashiers.GET("", cashierHandler.List)
	cashiers.POST("", cashierHandler.Create)
	cashiers.PUT("/:id", cashierHandler.Update)
	cashiers.DELETE("/:id", cashierHandler.Delete)
	cashiers.GET("/:id/stats", cashierHandler.Stats)

	// --- Sales views ---
	sales := e.Group("/sales", anyRole)
	sales.GET("/history", salesHandler.History)
	sales.GET("/stats", salesHandler.Stats)

	// --- Sell flow ---
	tickets := e.Group("/tickets")
	tickets.POST("/purchase", ticketHandler.Purchase, cashierOnly)
	tickets.GET("/verify/:code", ticketHandler.Verify, anyRole)
	tickets.GET("/current", ticketHandler.Current, cashierOnly)
	tickets.DELETE("/current", ticketHandler.Clear, cashierOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis, deps.Mongo)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
