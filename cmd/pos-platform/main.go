package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pahanaedu/pos-platform/internal/api/handlers"
	"github.com/pahanaedu/pos-platform/internal/api/middleware"
	"github.com/pahanaedu/pos-platform/internal/cache"
	"github.com/pahanaedu/pos-platform/internal/config"
	"github.com/pahanaedu/pos-platform/internal/health"
	"github.com/pahanaedu/pos-platform/internal/metrics"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
	service "github.com/pahanaedu/pos-platform/internal/services"
	"github.com/pahanaedu/pos-platform/internal/telemetry"
	"github.com/pahanaedu/pos-platform/pkg/receipt"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, customerRepo, itemRepo, categoryRepo, staffRepo, saleRepo, analyticsRepo, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}

		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg)
	customerCache := cache.NewCustomerCache(redisClient)
	itemSearchCache := cache.NewItemSearchCache(redisClient)

	// The mailer is optional: without an API key sales still commit, they just
	// skip the back-office record copy.
	var mailer service.ReceiptMailer
	if cfg.SendGrid.APIKey != "" {
		mailer = receipt.NewMailer(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.RecordsEmail)
	}

	customerService := service.NewCustomerService(customerRepo, customerCache)
	itemService := service.NewItemService(itemRepo, categoryRepo, itemSearchCache)
	categoryService := service.NewCategoryService(categoryRepo)
	staffService := service.NewStaffService(staffRepo, rateLimiter, cfg.Security)
	saleService := service.NewSaleService(saleRepo, customerRepo, itemRepo, mailer)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	customerHandler := handlers.NewCustomerHandler(customerService, saleService, cfg.Billing.PhoneLookupMinLength)
	itemHandler := handlers.NewItemHandler(itemService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	staffHandler := handlers.NewStaffHandler(staffService)
	saleHandler := handlers.NewSaleHandler(saleService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/login", staffHandler.Login())

	routerMux.HandleFunc("POST /api/customers", authMiddleware.Authenticate(customerHandler.CreateCustomer()))
	routerMux.HandleFunc("GET /api/customers", authMiddleware.Authenticate(customerHandler.ListCustomers()))
	routerMux.HandleFunc("GET /api/customers/search", authMiddleware.Authenticate(customerHandler.SearchCustomers()))
	routerMux.HandleFunc("GET /api/customers/{id}", authMiddleware.Authenticate(customerHandler.GetCustomer()))
	routerMux.HandleFunc("PUT /api/customers/{id}", authMiddleware.Authenticate(customerHandler.UpdateCustomer()))
	routerMux.HandleFunc("DELETE /api/customers/{id}", authMiddleware.Authenticate(customerHandler.DeleteCustomer()))
	routerMux.HandleFunc("GET /api/customers/telephone", authMiddleware.Authenticate(customerHandler.GetCustomerByTelephone()))
	routerMux.HandleFunc("GET /api/customers/{id}/sales", authMiddleware.Authenticate(customerHandler.ListCustomerSales()))

	routerMux.HandleFunc("POST /api/items", authMiddleware.Authenticate(itemHandler.CreateItem()))
	routerMux.HandleFunc("GET /api/items", authMiddleware.Authenticate(itemHandler.ListItems()))
	routerMux.HandleFunc("GET /api/items/search", authMiddleware.Authenticate(itemHandler.SearchItems()))
	routerMux.HandleFunc("GET /api/items/low-stock", authMiddleware.Authenticate(itemHandler.ListLowStockItems()))
	routerMux.HandleFunc("GET /api/items/{id}", authMiddleware.Authenticate(itemHandler.GetItem()))
	routerMux.HandleFunc("PUT /api/items/{id}", authMiddleware.Authenticate(itemHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/items/{id}", authMiddleware.Authenticate(itemHandler.DeleteItem()))

	routerMux.HandleFunc("POST /api/categories", authMiddleware.Authenticate(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/categories", authMiddleware.Authenticate(categoryHandler.ListCategories()))
	routerMux.HandleFunc("PUT /api/categories", authMiddleware.Authenticate(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("GET /api/categories/{id}", authMiddleware.Authenticate(categoryHandler.GetCategory()))
	routerMux.HandleFunc("DELETE /api/categories/{id}", authMiddleware.Authenticate(categoryHandler.DeleteCategory()))
	routerMux.HandleFunc("GET /api/categories/{id}/items", authMiddleware.Authenticate(itemHandler.ListItemsByCategory()))

	routerMux.HandleFunc("POST /api/sales", authMiddleware.Authenticate(saleHandler.CreateSale()))
	routerMux.HandleFunc("GET /api/sales", authMiddleware.Authenticate(saleHandler.ListSales()))
	routerMux.HandleFunc("GET /api/sales/{id}", authMiddleware.Authenticate(saleHandler.GetSale()))
	routerMux.HandleFunc("PATCH /api/sales/{id}/payment", authMiddleware.Authenticate(saleHandler.UpdateSalePayment()))

	// Staff management and the dashboard are manager-only.
	routerMux.HandleFunc("POST /api/staff", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleManager, staffHandler.CreateStaff())))
	routerMux.HandleFunc("GET /api/staff", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleManager, staffHandler.ListStaff())))
	routerMux.HandleFunc("GET /api/staff/{id}", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleManager, staffHandler.GetStaff())))
	routerMux.HandleFunc("PUT /api/staff/{id}", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleManager, staffHandler.UpdateStaff())))
	routerMux.HandleFunc("DELETE /api/staff/{id}", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleManager, staffHandler.DeleteStaff())))
	routerMux.HandleFunc("GET /api/analytics/dashboard", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleManager, analyticsHandler.GetDashboardStats())))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "pos-platform")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
