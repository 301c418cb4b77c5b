package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/inventory-system/docs"
	"github.com/99minutos/inventory-system/internal/api/handler"
	"github.com/99minutos/inventory-system/internal/api/middleware"
	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
)

// Deps carries everything the router needs. Services are built by the caller.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Gate     ports.Authorizer
	Health   *handler.HealthHandler
	Log      zerolog.Logger

	// RBACEnabled guards the product routes with the gate. User routes are
	// always guarded.
	RBACEnabled bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// HTTP metrics live in a per-router registry; /metrics merges it with the
	// default registry holding the custom metrics.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "inventory",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational ---
	if d.Health != nil {
		e.GET("/health", d.Health.Liveness)
		e.GET("/health/ready", d.Health.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Users (always guarded) ---
	anyRole := middleware.RequireRole(d.Gate, domain.RoleAdmin, domain.RoleEditor, domain.RoleViewer)
	adminOnly := middleware.RequireRole(d.Gate, domain.RoleAdmin)

	userHandler := handler.NewUserHandler(d.Users)
	e.GET("/profile", userHandler.Profile, anyRole)
	e.GET("/users", userHandler.List, adminOnly)
	e.PUT("/users/:id/role", userHandler.ChangeRole, adminOnly)
	e.DELETE("/users/:id", userHandler.Delete, adminOnly)

	// --- Products ---
	read, write, admin := productGuards(d)

	productHandler := handler.NewProductHandler(d.Products)
	products := e.Group("/products")
	products.POST("", productHandler.Create, write...)
	products.GET("", productHandler.List, read...)
	products.GET("/category/:category", productHandler.ByCategory, read...)
	products.GET("/price", productHandler.ByPriceRange, read...)
	products.GET("/search", productHandler.Search, read...)
	products.GET("/paginated", productHandler.Paginated, read...)
	products.PATCH("/:id", productHandler.Update, write...)
	products.DELETE("/:id", productHandler.Delete, admin...)

	// --- Reports ---
	products.GET("/total-value", productHandler.TotalValue, read...)
	products.GET("/category-count", productHandler.CategoryCount, read...)
	products.GET("/average-price", productHandler.AveragePrice, read...)
	products.GET("/top-selling", productHandler.TopSelling, read...)
	products.GET("/low-stock", productHandler.LowStock, read...)
	products.GET("/group-by-category", productHandler.GroupByCategory, read...)

	e.GET("/setup-indexes", productHandler.SetupIndexes, admin...)

	return e
}

// productGuards returns the middleware for product reads, writes and admin
// operations. With RBAC disabled all three are empty.
func productGuards(d Deps) (read, write, admin []echo.MiddlewareFunc) {
	if !d.RBACEnabled {
		return nil, nil, nil
	}
	read = []echo.MiddlewareFunc{middleware.RequireRole(d.Gate, domain.RoleViewer)}
	write = []echo.MiddlewareFunc{middleware.RequireRole(d.Gate, domain.RoleEditor)}
	admin = []echo.MiddlewareFunc{middleware.RequireRole(d.Gate, domain.RoleAdmin)}
	return read, write, admin
}
