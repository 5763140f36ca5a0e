package utils

import (
	"time"
)

// AccessTokenTTL is the time-to-live for staff access tokens (12 hours)
const AccessTokenTTL = 12 * time.Hour

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Pricing and quote constants
const (
	// VATRate is the default tax rate applied to quote net totals (23%)
	VATRate = 0.23

	// DefaultPricingSchemaID is assigned to quotes created through the public API
	DefaultPricingSchemaID = 3

	// DefaultTierPricePerDay is the price of the tier added to freshly created equipment
	DefaultTierPricePerDay = 100.00

	// DefaultServiceRatePerTechnician is used when a crew component omits its technician rate
	DefaultServiceRatePerTechnician = 150.00

	// DefaultTravelRatePerKm is used when a crew component omits its per-km rate
	DefaultTravelRatePerKm = 1.15

	// DefaultAdditionalName labels the placeholder additional equipment row
	DefaultAdditionalName = "Dodatkowe wyposażenie 1"

	// GuestQuotePrefix starts every guest quote number
	GuestQuotePrefix = "GUE"

	// NumberDateLayout formats the local day a daily-reset number belongs to
	NumberDateLayout = "2006-01-02"

	// APIKeyPrefix starts every issued public API key
	APIKeyPrefix = "ppp_"
)

// Roles supplied by the staff token
const (
	RoleAdmin     = "admin"
	RoleKierownik = "kierownik"
	RoleEmployee  = "employee"
)

// Public API permissions
const (
	PermissionQuotesCreate      = "quotes:create"
	PermissionAssessmentsCreate = "assessments:create"
	PermissionAll               = "*"
)

// Cache keys
const (
	PublicEquipmentCacheKey    = "public:equipment"
	QuoteNumberingLockKey      = "lock:numbering:quotes"
	GuestQuoteNumberingLockKey = "lock:numbering:guest_quotes"
	AssessmentNumberingLockKey = "lock:numbering:assessments"
)

type contextKey string

// Request-scoped context keys
const (
	RequestIDKey  contextKey = "request_id"
	UserAgentKey  contextKey = "user_agent"
	IPAddressKey  contextKey = "ip_address"
	EndpointKey   contextKey = "endpoint"
	TimeoutKey    contextKey = "timeout"
	CancelFuncKey contextKey = "cancel_func"
)
