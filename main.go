// Package main provides the main entry point for the PPP rental quoting service
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/amirphl/ppp-rental/app/handlers"
	"github.com/amirphl/ppp-rental/app/logger"
	"github.com/amirphl/ppp-rental/app/middleware"
	"github.com/amirphl/ppp-rental/app/render"
	"github.com/amirphl/ppp-rental/app/router"
	"github.com/amirphl/ppp-rental/app/services"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	logger    *zap.Logger
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("Starting PPP rental service",
		zap.String("environment", cfg.Deployment.Environment),
		zap.String("version", cfg.Deployment.Version),
		zap.String("commit", cfg.Deployment.CommitHash),
	)

	app, err := initializeApplication(cfg, zl)
	if err != nil {
		zl.Fatal("Failed to initialize application", zap.Error(err))
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-sigChan
	zl.Info("Shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("Error during shutdown", zap.Error(err))
	}

	for _, fn := range app.stopFuncs {
		fn()
	}

	zl.Info("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, zl *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	slowThreshold := time.Duration(0)
	if cfg.SlowQueryLog {
		slowThreshold = cfg.SlowQueryTime
	}
	dbLogger := gormlogger.New(zap.NewStdLog(zl.Named("gorm")), gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
		NowFunc:        utils.UTCNow,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	zl.Info("Database connection established",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Bool("auto_migrate", cfg.AutoMigrate),
	)
	return db, nil
}

// initializeCache returns nil when the cache is disabled
func initializeCache(cfg config.CacheConfig, zl *zap.Logger) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	zl.Info("Redis connection established", zap.Int("db", cfg.RedisDB))
	return rc, nil
}

// startCacheHealthMonitor pings Redis periodically until the returned func is called.
func startCacheHealthMonitor(client *redis.Client, interval time.Duration, zl *zap.Logger) func() {
	monitorCtx, cancel := context.WithCancel(context.Background())
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					zl.Warn("Redis healthcheck failed", zap.Error(err))
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig, zl *zap.Logger) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database, zl)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		stopFuncs = append(stopFuncs, func() { _ = sqlDB.Close() })
	}

	rc, err := initializeCache(cfg.Cache, zl)
	if err != nil {
		return nil, err
	}

	var numberingLock businessflow.NumberingLock = businessflow.NoopNumberingLock{}
	var catalogCache businessflow.CatalogCache = businessflow.NoopCatalogCache{}
	if rc != nil {
		numberingLock = businessflow.NewRedisNumberingLock(rc, cfg.Cache.RedisPrefix, cfg.Quote.NumberingLockTTL)
		catalogCache = businessflow.NewRedisCatalogCache(rc, cfg.Cache.RedisPrefix, cfg.Cache.DefaultTTL)
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(rc, 30*time.Second, zl), func() { _ = rc.Close() })
	}

	// Repositories
	quoteRepos := businessflow.QuoteRepos{
		Equipment:     repository.NewEquipmentRepository(db),
		Pricing:       repository.NewEquipmentPricingRepository(db),
		Additional:    repository.NewEquipmentAdditionalRepository(db),
		Clients:       repository.NewClientRepository(db),
		Quotes:        repository.NewQuoteRepository(db),
		QuoteItems:    repository.NewQuoteItemRepository(db),
		PricingSchema: repository.NewPricingSchemaRepository(db),
	}
	catalogRepos := businessflow.CatalogRepos{
		Categories:   repository.NewEquipmentCategoryRepository(db),
		Equipment:    quoteRepos.Equipment,
		Pricing:      quoteRepos.Pricing,
		Additional:   quoteRepos.Additional,
		ServiceItems: repository.NewEquipmentServiceItemRepository(db),
		ServiceCosts: repository.NewEquipmentServiceCostsRepository(db),
		QuoteItems:   quoteRepos.QuoteItems,
	}
	questionRepo := repository.NewNeedsAssessmentQuestionRepository(db)
	responseRepo := repository.NewNeedsAssessmentResponseRepository(db)
	apiKeyRepo := repository.NewAPIKeyRepository(db)

	location := utils.LoadLocationOrUTC(cfg.Quote.Timezone)
	numberers, err := businessflow.NewNumberers(businessflow.NumberingDeps{
		DB:          db,
		Config:      cfg.Quote,
		Location:    location,
		Lock:        numberingLock,
		Counters:    repository.NewSequenceCounterRepository(db),
		Logger:      zl.Named("numbering"),
		QuoteCount:  quoteRepos.Quotes,
		AssessCount: responseRepo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize numbering: %w", err)
	}

	clock := businessflow.Clock(utils.UTCNow)
	renderer := render.NewRenderer()
	crew := businessflow.CrewDefaults{
		ServiceRatePerTechnician: cfg.Quote.DefaultServiceRatePerTechnician,
		TravelRatePerKm:          cfg.Quote.DefaultTravelRatePerKm,
	}
	documents := businessflow.DocumentSettings{
		CompanyName: cfg.Quote.CompanyName,
		VATRate:     cfg.Quote.VATRate,
		Location:    location,
	}

	// Flows
	quoteFlow := businessflow.NewQuoteFlow(db, quoteRepos, numberers, cfg.Quote.VATRate, crew, clock, zl)
	documentFlow := businessflow.NewQuoteDocumentFlow(quoteRepos.Quotes, catalogRepos.ServiceItems, quoteRepos.Additional, renderer, documents, clock, zl)
	equipmentFlow := businessflow.NewEquipmentFlow(db, catalogRepos, catalogCache, zl)
	assessmentFlow := businessflow.NewNeedsAssessmentFlow(db, questionRepo, responseRepo, numberers, renderer, documents, clock, zl)
	publicFlow := businessflow.NewPublicFlow(db, quoteRepos, numberers, assessmentFlow, catalogCache, cfg.Quote.VATRate, crew, cfg.Quote.DefaultPricingSchemaID, clock, zl)
	apiKeyFlow := businessflow.NewAPIKeyFlow(apiKeyRepo, clock, zl)
	schemaFlow := businessflow.NewPricingSchemaFlow(db, quoteRepos.PricingSchema, zl)
	clientFlow := businessflow.NewClientFlow(quoteRepos.Clients)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer seedCancel()
	if err := schemaFlow.EnsureDefault(seedCtx, cfg.Quote.DefaultPricingSchemaID); err != nil {
		return nil, fmt.Errorf("failed to ensure default pricing schema: %w", err)
	}
	bootstrapKeys, err := config.ParseBootstrapKeys(cfg.PublicAPI.BootstrapKeys)
	if err != nil {
		return nil, err
	}
	if err := apiKeyFlow.SeedBootstrapKeys(seedCtx, bootstrapKeys); err != nil {
		return nil, fmt.Errorf("failed to seed api keys: %w", err)
	}

	tokenService, err := services.NewTokenService(cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	zl.Info("Token service initialized", zap.String("issuer", cfg.JWT.Issuer), zap.String("audience", cfg.JWT.Audience))

	r := router.NewFiberRouter(cfg, router.Handlers{
		Equipment:       handlers.NewEquipmentHandler(equipmentFlow, zl),
		Quotes:          handlers.NewQuoteHandler(quoteFlow, documentFlow, zl),
		Clients:         handlers.NewClientHandler(clientFlow, zl),
		PricingSchemas:  handlers.NewPricingSchemaHandler(schemaFlow, zl),
		NeedsAssessment: handlers.NewNeedsAssessmentHandler(assessmentFlow, zl),
		Public:          handlers.NewPublicHandler(publicFlow, zl),
		APIKeys:         handlers.NewAPIKeyHandler(apiKeyFlow, zl),
	},
		middleware.NewAuthMiddleware(tokenService),
		middleware.NewAPIKeyMiddleware(apiKeyFlow, zl),
		zl,
	)

	return &Application{
		router:    r,
		config:    cfg,
		logger:    zl,
		stopFuncs: stopFuncs,
	}, nil
}
