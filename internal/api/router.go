package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/credexa/session-gateway/internal/api/handler"
	"github.com/credexa/session-gateway/internal/api/metrics"
	"github.com/credexa/session-gateway/internal/api/middleware"
	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
	"github.com/credexa/session-gateway/internal/core/service"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Log      zerolog.Logger
	Store    ports.SessionStore
	Auth     *service.AuthController
	Activity middleware.ActivityEmitter

	Products   ports.ProductService
	Calculator ports.CalculatorService
	Customers  ports.CustomerService
	FDAccounts ports.FDAccountService
	Audit      handler.AuditReader
	Settings   handler.SettingsView

	Redis *redis.Client
	Mongo *mongo.Database
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("credexa_gateway"))

	// --- Operational endpoints (never count as user activity) ---
	metrics.RegisterSessionGauge(deps.Store.Authenticated)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis, deps.Mongo)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- User-facing routes: every request resets the idle deadline ---
	guard := middleware.NewGuard(deps.Store, deps.Auth)
	api := e.Group("/api", middleware.Activity(deps.Activity))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Store)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/oauth2/login", authHandler.OAuthLogin)
	auth.GET("/session", authHandler.Session)
	auth.POST("/logout", authHandler.Logout, guard.RequireAuth())

	// Beacon for pointer/key/scroll/touch events; the group's activity
	// middleware already reset the idle deadline by the time it runs.
	api.POST("/activity", authHandler.Activity, guard.RequireAuth())

	// --- Module routes: session plus module permission required ---
	dashboardHandler := handler.NewDashboardHandler(deps.Store)
	api.GET("/dashboard", dashboardHandler.Dashboard, guard.RequireModule(domain.ModuleDashboard))

	customerHandler := handler.NewCustomerHandler(deps.Customers)
	customers := api.Group("/customers", guard.RequireModule(domain.ModuleCustomers))
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/:id", customerHandler.Get)
	customers.GET("/:id/classification", customerHandler.Classification)

	productHandler := handler.NewProductHandler(deps.Products)
	products := api.Group("/products", guard.RequireModule(domain.ModuleProducts))
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.GET("/:id/applicable-rate", productHandler.ApplicableRate)

	calculatorHandler := handler.NewCalculatorHandler(deps.Calculator)
	calculator := api.Group("/calculator", guard.RequireModule(domain.ModuleCalculator))
	calculator.POST("/standalone", calculatorHandler.Standalone)
	calculator.POST("/product-based", calculatorHandler.ProductBased)
	calculator.GET("/quick", calculatorHandler.Quick)

	fdHandler := handler.NewFDAccountHandler(deps.FDAccounts)
	fdAccounts := api.Group("/fd-accounts", guard.RequireModule(domain.ModuleFDAccounts))
	fdAccounts.GET("", fdHandler.ByCustomer)
	fdAccounts.GET("/:id", fdHandler.Get)
	fdAccounts.GET("/:id/transactions", fdHandler.Transactions)

	reportHandler := handler.NewReportHandler(deps.Audit, deps.Store)
	api.GET("/reports/auth-activity", reportHandler.AuthActivity, guard.RequireModule(domain.ModuleReports))

	settingsHandler := handler.NewSettingsHandler(deps.Settings)
	api.GET("/settings", settingsHandler.Settings, guard.RequireModule(domain.ModuleSettings))

	return e
}
