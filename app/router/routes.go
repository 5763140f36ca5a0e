// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/app/handlers"
	"github.com/amirphl/ppp-rental/app/middleware"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers groups the HTTP handlers the router mounts
type Handlers struct {
	Equipment       handlers.EquipmentHandlerInterface
	Quotes          handlers.QuoteHandlerInterface
	Clients         handlers.ClientHandlerInterface
	PricingSchemas  handlers.PricingSchemaHandlerInterface
	NeedsAssessment handlers.NeedsAssessmentHandlerInterface
	Public          handlers.PublicHandlerInterface
	APIKeys         handlers.APIKeyHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      *config.ProductionConfig
	handlers Handlers
	auth     *middleware.AuthMiddleware
	apiKeys  *middleware.APIKeyMiddleware
	logger   *zap.Logger
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	h Handlers,
	auth *middleware.AuthMiddleware,
	apiKeys *middleware.APIKeyMiddleware,
	logger *zap.Logger,
) *FiberRouter {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &FiberRouter{
		cfg:      cfg,
		handlers: h,
		auth:     auth,
		apiKeys:  apiKeys,
		logger:   logger,
	}

	fiberCfg := fiber.Config{
		AppName:      "PPP Rental API",
		ServerHeader: "ppp-rental",
		ErrorHandler: r.errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	}
	if len(cfg.Server.TrustedProxies) > 0 {
		fiberCfg.TrustProxy = true
		fiberCfg.TrustProxyConfig = fiber.TrustProxyConfig{Proxies: cfg.Server.TrustedProxies}
		fiberCfg.ProxyHeader = cfg.Server.ProxyHeader
	}
	r.app = fiber.New(fiberCfg)

	return r
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")
	api.Get("/health", r.healthCheck)

	api.Use(r.rateLimiter(r.cfg.Security.GlobalRateLimit))

	h := r.handlers
	staff := r.auth.Authenticate()
	catalogWriters := middleware.RequireRoles(utils.RoleAdmin, utils.RoleKierownik)
	quoteStaff := middleware.RequireRoles(utils.RoleAdmin, utils.RoleEmployee)
	admins := middleware.RequireRoles(utils.RoleAdmin)

	// Guest quotes are unauthenticated and must be mounted before the /quotes group
	api.Post("/quotes/guest", h.Quotes.CreateGuestQuote)

	categories := api.Group("/equipment-categories", staff)
	categories.Get("/", h.Equipment.ListCategories)
	categories.Post("/", catalogWriters, h.Equipment.CreateCategory)
	categories.Delete("/:id", catalogWriters, h.Equipment.DeleteCategory)

	equipment := api.Group("/equipment", staff)
	equipment.Get("/", h.Equipment.ListEquipment)
	equipment.Get("/inactive", catalogWriters, h.Equipment.ListInactiveEquipment)
	equipment.Get("/:id", h.Equipment.GetEquipment)
	equipment.Post("/", catalogWriters, h.Equipment.CreateEquipment)
	equipment.Put("/:id", catalogWriters, h.Equipment.UpdateEquipment)
	equipment.Patch("/:id/quantity", catalogWriters, h.Equipment.UpdateQuantity)
	equipment.Delete("/:id", catalogWriters, h.Equipment.DeactivateEquipment)
	equipment.Delete("/:id/permanent", catalogWriters, h.Equipment.DeleteEquipment)
	equipment.Get("/:id/additional", h.Equipment.ListAdditional)
	equipment.Get("/:id/service-items", h.Equipment.ListServiceItems)
	equipment.Post("/:id/service-items", admins, h.Equipment.CreateServiceItem)
	equipment.Get("/:id/service-costs", h.Equipment.GetServiceCosts)
	equipment.Post("/:id/service-costs", admins, h.Equipment.UpsertServiceCosts)

	tiers := api.Group("/equipment-pricing", staff, catalogWriters)
	tiers.Post("/", h.Equipment.CreateTier)
	tiers.Patch("/:id", h.Equipment.UpdateTier)
	tiers.Delete("/:id", h.Equipment.DeleteTier)

	additional := api.Group("/equipment-additional", staff, catalogWriters)
	additional.Post("/", h.Equipment.CreateAdditional)
	additional.Patch("/:id", h.Equipment.UpdateAdditional)
	additional.Delete("/:id", h.Equipment.DeleteAdditional)

	serviceItems := api.Group("/equipment-service-items", staff, admins)
	serviceItems.Patch("/:id", h.Equipment.UpdateServiceItem)
	serviceItems.Delete("/:id", h.Equipment.DeleteServiceItem)

	schemas := api.Group("/pricing-schemas", staff)
	schemas.Get("/", h.PricingSchemas.ListSchemas)
	schemas.Get("/:id", h.PricingSchemas.GetSchema)
	schemas.Post("/", admins, h.PricingSchemas.CreateSchema)
	schemas.Patch("/:id", admins, h.PricingSchemas.UpdateSchema)
	schemas.Delete("/:id", admins, h.PricingSchemas.DeleteSchema)

	clients := api.Group("/clients", staff)
	clients.Get("/", h.Clients.ListClients)
	clients.Get("/:id", h.Clients.GetClient)
	clients.Post("/", h.Clients.CreateClient)
	clients.Put("/:id", h.Clients.UpdateClient)

	quotes := api.Group("/quotes", staff)
	quotes.Get("/", quoteStaff, h.Quotes.ListQuotes)
	quotes.Get("/export", quoteStaff, h.Quotes.ExportQuotes)
	quotes.Post("/", h.Quotes.CreateQuote)
	quotes.Get("/:id", quoteStaff, h.Quotes.GetQuote)
	quotes.Put("/:id", quoteStaff, h.Quotes.UpdateQuote)
	quotes.Delete("/:id", admins, h.Quotes.DeleteQuote)
	quotes.Get("/:id/print", quoteStaff, h.Quotes.PrintQuote)

	items := api.Group("/quote-items", staff, quoteStaff)
	items.Post("/", h.Quotes.AddItem)
	items.Put("/:id", h.Quotes.UpdateItem)
	items.Delete("/:id", h.Quotes.DeleteItem)

	assessment := api.Group("/needs-assessment", staff)
	assessment.Get("/questions", h.NeedsAssessment.ListQuestions)
	assessment.Post("/questions", admins, h.NeedsAssessment.CreateQuestion)
	assessment.Patch("/questions/:id", admins, h.NeedsAssessment.UpdateQuestion)
	assessment.Delete("/questions/:id", admins, h.NeedsAssessment.DeleteQuestion)
	assessment.Delete("/categories/:category", admins, h.NeedsAssessment.DeleteCategory)
	assessment.Get("/responses", h.NeedsAssessment.ListResponses)
	assessment.Post("/responses", h.NeedsAssessment.CreateResponse)
	assessment.Get("/responses/:id", h.NeedsAssessment.GetResponse)
	assessment.Delete("/responses/:id", admins, h.NeedsAssessment.DeleteResponse)
	assessment.Get("/responses/:id/print", h.NeedsAssessment.PrintResponse)

	apiKeys := api.Group("/admin/api-keys", staff, admins)
	apiKeys.Get("/", h.APIKeys.ListKeys)
	apiKeys.Post("/", h.APIKeys.CreateKey)
	apiKeys.Patch("/:id", h.APIKeys.UpdateKey)
	apiKeys.Delete("/:id", h.APIKeys.DeleteKey)

	public := r.app.Group("/api/public", r.rateLimiter(r.cfg.Security.PublicRateLimit))
	public.Get("/equipment", r.apiKeys.Require(utils.PermissionQuotesCreate), h.Public.ListEquipment)
	public.Post("/quotes", r.apiKeys.Require(utils.PermissionQuotesCreate), h.Public.CreateQuote)
	public.Get("/needs-assessment/questions", r.apiKeys.Require(utils.PermissionAssessmentsCreate), h.Public.ListQuestions)
	public.Post("/needs-assessment", r.apiKeys.Require(utils.PermissionAssessmentsCreate), h.Public.CreateAssessment)

	r.app.Use(r.notFoundHandler)

	r.logger.Info("Routes configured", zap.Int("routes", len(r.app.GetRoutes(true))))
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: generateRequestID,
	}))

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			r.logger.Error("Panic recovered",
				zap.String("request_id", requestid.FromContext(c)),
				zap.Any("error", e),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("ip", c.IP()),
			)
		},
	}))

	// Printable documents carry inline styles
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             r.cfg.Security.XFrameOptions,
		HSTSMaxAge:                31536000,
		ContentSecurityPolicy:     "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:; frame-ancestors 'self';",
		ReferrerPolicy:            r.cfg.Security.ReferrerPolicy,
		CrossOriginResourcePolicy: "cross-origin",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	origins := r.cfg.Security.AllowedOrigins
	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     r.cfg.Security.AllowedMethods,
		AllowHeaders:     r.cfg.Security.AllowedHeaders,
		ExposeHeaders:    []string{fiber.HeaderXRequestID, fiber.HeaderContentDisposition},
		AllowCredentials: r.cfg.Security.AllowCredentials && !slices.Contains(origins, "*"),
		MaxAge:           r.cfg.Security.CORSMaxAge,
	}))

	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
		}))
	}

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	if r.cfg.Logging.EnableAccessLog {
		r.app.Use(r.accessLog)
	}
}

// accessLog writes one structured line per request
func (r *FiberRouter) accessLog(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if c.Path() == "/api/v1/health" {
		return err
	}

	status := c.Response().StatusCode()
	if fe, ok := err.(*fiber.Error); ok {
		status = fe.Code
	}
	r.logger.Info("http request",
		zap.String("request_id", requestid.FromContext(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
		zap.String("ip", c.IP()),
		zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		zap.Int("bytes_out", len(c.Response().Body())),
	)
	return err
}

func (r *FiberRouter) rateLimiter(limit int) fiber.Handler {
	if limit <= 0 {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	window := r.cfg.Security.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
	})
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	r.logger.Info("Starting server", zap.String("address", address))
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":      "ok",
			"timestamp":   utils.UTCNow().Unix(),
			"version":     r.cfg.Deployment.Version,
			"environment": r.cfg.Deployment.Environment,
			"service":     "ppp-rental-api",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

// errorHandler renders errors escaping the handlers in the API envelope
func (r *FiberRouter) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"
	errorCode := "INTERNAL_ERROR"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		if code < fiber.StatusInternalServerError {
			message = e.Message
			errorCode = strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
		}
	}

	if code >= fiber.StatusInternalServerError {
		r.logger.Error("Unhandled error",
			zap.Int("status", code),
			zap.String("path", c.Path()),
			zap.String("request_id", requestid.FromContext(c)),
			zap.Error(err),
		)
	}

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errorCode,
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format("150405.000")))
	}
	return hex.EncodeToString(bytes)
}
