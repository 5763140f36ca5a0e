// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/app/services"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
)

const staffClaimsLocal = "staff_claims"

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

func unauthorized(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: code},
	})
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// It returns the error code to respond with when the header is unusable.
func bearerToken(c fiber.Ctx) (string, string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Authorization header is required", "MISSING_AUTHORIZATION_HEADER"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "Invalid authorization header format. Expected 'Bearer <token>'", "INVALID_AUTHORIZATION_FORMAT"
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", "Access token is required", "MISSING_ACCESS_TOKEN"
	}
	return token, "", ""
}

// Authenticate is the middleware function that validates staff JWT tokens
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, message, code := bearerToken(c)
		if code != "" {
			return unauthorized(c, message, code)
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return unauthorized(c, "Access token has expired", "TOKEN_EXPIRED")
			case errors.Is(err, services.ErrTokenInvalid):
				return unauthorized(c, "Invalid access token", "TOKEN_INVALID")
			default:
				return unauthorized(c, "Token validation failed", "TOKEN_VALIDATION_FAILED")
			}
		}

		c.Locals(staffClaimsLocal, claims)
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// RequireRoles rejects authenticated staff whose role is not in roles.
// It must run after Authenticate.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := GetStaffClaimsFromContext(c)
		if !ok {
			return unauthorized(c, "Authentication required", "AUTHENTICATION_REQUIRED")
		}
		if !slices.Contains(roles, claims.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Access denied. Required role: " + strings.Join(roles, " or "),
				Error:   dto.ErrorDetail{Code: "FORBIDDEN_ROLE"},
			})
		}
		return c.Next()
	}
}

// GetStaffClaimsFromContext extracts staff claims from the request context
func GetStaffClaimsFromContext(c fiber.Ctx) (*services.StaffClaims, bool) {
	claims, ok := c.Locals(staffClaimsLocal).(*services.StaffClaims)
	return claims, ok && claims != nil
}

// ActorFromContext returns the staff member the request runs as, or the zero Actor.
func ActorFromContext(c fiber.Ctx) businessflow.Actor {
	claims, ok := GetStaffClaimsFromContext(c)
	if !ok {
		return businessflow.Actor{}
	}
	return businessflow.Actor{ID: claims.UserID, Name: claims.Name, Role: claims.Role}
}
