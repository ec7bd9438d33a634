package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	auditapp "github.com/maumaun30/CM-Pharmacy-API/internal/application/audit"
	catalogapp "github.com/maumaun30/CM-Pharmacy-API/internal/application/catalog"
	dashboardapp "github.com/maumaun30/CM-Pharmacy-API/internal/application/dashboard"
	identityapp "github.com/maumaun30/CM-Pharmacy-API/internal/application/identity"
	inventoryapp "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	salesapp "github.com/maumaun30/CM-Pharmacy-API/internal/application/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/auth"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/config"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/event"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/logger"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/notify"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/persistence"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/handler"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting pharmacy API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Redis backs the token blacklist and stock notifications. The server
	// still runs without it, with in-memory fallbacks.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisAvailable := true
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unavailable, using in-memory fallbacks", zap.Error(err))
			redisAvailable = false
		}
		cancel()
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Repositories
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormBranchStockRepository(db.DB)
	entryRepo := persistence.NewGormStockEntryRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	auditLogRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Transaction scopes
	stockScope := persistence.NewGormTransactionScope(db.DB)
	checkoutScope := persistence.NewGormCheckoutScope(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisAvailable {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Event bus with the low stock alert handler
	eventBus := event.NewInMemoryEventBus(log)
	lowStockHandler := inventoryapp.NewLowStockHandler(log)
	auditSink := persistence.NewGormAuditSink(db.DB, log)

	// Application services
	ledgerService := inventoryapp.NewLedgerService(stockRepo, entryRepo, productRepo, branchRepo, stockScope, log)
	ledgerService.SetAuditSink(auditSink)
	ledgerService.SetEventPublisher(eventBus)
	if redisAvailable {
		publisher := notify.NewRedisNotificationPublisherWithClient(redisClient)
		ledgerService.SetNotificationSink(publisher)
		lowStockHandler = lowStockHandler.WithNotifier(publisher)
	}
	eventBus.Subscribe(lowStockHandler)

	saleService := salesapp.NewSaleService(saleRepo, productRepo, branchRepo, ledgerService, checkoutScope, log)
	saleService.SetDiscountRepository(discountRepo)
	saleService.SetAuditSink(auditSink)
	if redisAvailable {
		saleService.SetNotificationSink(notify.NewRedisNotificationPublisherWithClient(redisClient))
	}

	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	discountService := catalogapp.NewDiscountService(discountRepo, productRepo)
	branchService := catalogapp.NewBranchService(branchRepo)
	userService := identityapp.NewUserService(userRepo, branchRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	auditService := auditapp.NewLogService(auditLogRepo)
	dashboardService := dashboardapp.NewService(saleRepo, stockRepo, productRepo, userRepo, log)

	// HTTP engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.RequestLogger(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(1 << 20))
	engine.Use(middleware.RateLimit(middleware.NewRateLimiter(300, time.Minute)))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Routes. Readiness only gates on redis when it is actually in use.
	var readinessRedis *redis.Client
	if redisAvailable {
		readinessRedis = redisClient
	}
	r := router.NewRouter(engine)
	r.Register(
		handler.NewSystemHandler(db, readinessRedis, version),
		handler.NewAuthHandler(authService).
			WithLoginRateLimiter(middleware.NewRateLimiter(10, time.Minute)),
		handler.NewUserHandler(userService),
		handler.NewBranchHandler(branchService),
		handler.NewCategoryHandler(categoryService),
		handler.NewProductHandler(productService),
		handler.NewDiscountHandler(discountService),
		handler.NewStockHandler(ledgerService),
		handler.NewSaleHandler(saleService),
		handler.NewAuditHandler(auditService),
		handler.NewDashboardHandler(dashboardService),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
