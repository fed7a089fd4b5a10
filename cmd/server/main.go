package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountingapp "github.com/societyhub/backend/internal/application/accounting"
	billingapp "github.com/societyhub/backend/internal/application/billing"
	reportapp "github.com/societyhub/backend/internal/application/report"
	"github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/infrastructure/config"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"github.com/societyhub/backend/internal/infrastructure/persistence"
	"github.com/societyhub/backend/internal/interfaces/http/handler"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
	"github.com/societyhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	headRepo := persistence.NewGormAccountHeadRepository(db.DB)
	fundRepo := persistence.NewGormFundCategoryRepository(db.DB)
	entryRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	vendorPaymentRepo := persistence.NewGormVendorPaymentRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	cycleRepo := persistence.NewGormBillingCycleRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	billRepo := persistence.NewGormMaintenanceBillRepository(db.DB)
	txnRepo := persistence.NewGormGatewayTransactionRepository(db.DB)
	reportRepo := persistence.NewGormFinancialReportRepository(db.DB)
	auditRec := persistence.NewGormAuditRecorder(db.DB)

	// Application services
	headService := accountingapp.NewAccountHeadService(headRepo)
	fundService := accountingapp.NewFundCategoryService(fundRepo)
	ledgerService := accountingapp.NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)
	expenseService := accountingapp.NewExpenseService(expenseRepo, headRepo, fundRepo, vendorRepo, auditRec)
	vendorService := accountingapp.NewVendorService(vendorRepo)
	vendorPaymentService := accountingapp.NewVendorPaymentService(vendorPaymentRepo, vendorRepo, expenseRepo, auditRec)
	budgetService := accountingapp.NewBudgetService(budgetRepo, headRepo, expenseRepo)
	cycleService := billingapp.NewBillingCycleService(cycleRepo)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, cycleRepo, auditRec)
	paymentService := billingapp.NewPaymentService(paymentRepo, invoiceRepo, auditRec)
	billService := billingapp.NewMaintenanceBillService(billRepo, paymentRepo, auditRec)
	gatewayService := billingapp.NewGatewayService(txnRepo, billRepo, paymentRepo, auditRec)
	reportService := reportapp.NewReportService(reportRepo)

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	headHandler := handler.NewAccountHeadHandler(headService)
	fundHandler := handler.NewFundCategoryHandler(fundService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	vendorPaymentHandler := handler.NewVendorPaymentHandler(vendorPaymentService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	cycleHandler := handler.NewBillingCycleHandler(cycleService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	billHandler := handler.NewMaintenanceBillHandler(billService)
	gatewayHandler := handler.NewGatewayHandler(gatewayService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	if cfg.HTTP.CallbackRateLimitEnabled {
		callbackLimiter := middleware.NewRateLimiter(cfg.HTTP.CallbackRateLimitRequests, cfg.HTTP.CallbackRateLimitWindow)
		engine.Use(middleware.CallbackRateLimit(callbackLimiter, "/api/v1/gateway/callback"))
	}

	// Authentication applies to every API route except the public ones.
	// Gateway callbacks arrive from the payment provider without a JWT.
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/gateway/callback",
		},
		Logger: log,
	}))

	// Resolves the tenant from JWT claims or the X-Tenant-ID header and tags
	// the request logger with it. Not required here so that public routes
	// (health, gateway callbacks before header validation) still pass.
	engine.Use(middleware.OptionalTenantMiddleware())

	engine.GET("/health", healthHandler(db, log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(headHandler).
		Register(fundHandler).
		Register(ledgerHandler).
		Register(expenseHandler).
		Register(vendorHandler).
		Register(vendorPaymentHandler).
		Register(budgetHandler).
		Register(cycleHandler).
		Register(invoiceHandler).
		Register(paymentHandler).
		Register(billHandler).
		Register(gatewayHandler).
		Register(reportHandler).
		Register(systemHandler)
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// healthHandler reports process liveness and database connectivity.
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
