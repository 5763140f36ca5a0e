package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/utils"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const apiKeyLocal = "api_key_id"

// APIKeyMiddleware guards the public API with hashed API keys
type APIKeyMiddleware struct {
	flow   businessflow.APIKeyFlow
	logger *zap.Logger
}

// NewAPIKeyMiddleware creates a new API key middleware
func NewAPIKeyMiddleware(flow businessflow.APIKeyFlow, logger *zap.Logger) *APIKeyMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIKeyMiddleware{flow: flow, logger: logger}
}

// rawAPIKey reads the key from X-API-Key, falling back to a bearer token.
func rawAPIKey(c fiber.Ctx) string {
	if key := strings.TrimSpace(c.Get("X-API-Key")); key != "" {
		return key
	}
	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// Require authenticates the request key and checks it grants perm
func (m *APIKeyMiddleware) Require(perm string) fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := rawAPIKey(c)
		if raw == "" {
			return unauthorized(c, "API key is required", "MISSING_API_KEY")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
		ctx = context.WithValue(ctx, utils.EndpointKey, c.Path())

		key, err := m.flow.Authenticate(ctx, raw, perm)
		if err != nil {
			switch {
			case businessflow.IsAPIKeyNotFound(err):
				return unauthorized(c, "Invalid API key", "INVALID_API_KEY")
			case businessflow.IsAPIKeyInactive(err):
				return unauthorized(c, "API key is inactive", "API_KEY_INACTIVE")
			case businessflow.IsAPIKeyForbidden(err):
				return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
					Success: false,
					Message: "API key lacks permission " + perm,
					Error:   dto.ErrorDetail{Code: "API_KEY_FORBIDDEN"},
				})
			}
			m.logger.Error("API key authentication failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
				Success: false,
				Message: "API key authentication failed",
				Error:   dto.ErrorDetail{Code: "API_KEY_AUTH_FAILED"},
			})
		}

		c.Locals(apiKeyLocal, key.ID)
		return c.Next()
	}
}

// GetAPIKeyIDFromContext returns the id of the API key that authenticated the request
func GetAPIKeyIDFromContext(c fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(apiKeyLocal).(uint)
	return id, ok
}
