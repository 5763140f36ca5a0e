package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/app/handlers"
	"github.com/amirphl/ppp-rental/app/middleware"
	"github.com/amirphl/ppp-rental/app/render"
	"github.com/amirphl/ppp-rental/app/services"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/repository"
	testingutil "github.com/amirphl/ppp-rental/testing"
	"github.com/amirphl/ppp-rental/utils"
)

const publicKey = "ppp_test_public_key"

// envelope decodes responses with a typed error detail
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    any             `json:"data"`
	Error   dto.ErrorDetail `json:"error"`
}

type testServer struct {
	app    *fiber.App
	tokens services.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := testingutil.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Teardown() })

	cfg := &config.ProductionConfig{
		Quote: config.QuoteConfig{
			VATRate:                0.23,
			DefaultPricingSchemaID: 3,
			NumberingMaxRetries:    3,
		},
		Deployment: config.DeploymentConfig{Environment: "test", Version: "1.2.3"},
	}

	repos := businessflow.QuoteRepos{
		Equipment:     repository.NewEquipmentRepository(db.DB),
		Pricing:       repository.NewEquipmentPricingRepository(db.DB),
		Additional:    repository.NewEquipmentAdditionalRepository(db.DB),
		Clients:       repository.NewClientRepository(db.DB),
		Quotes:        repository.NewQuoteRepository(db.DB),
		QuoteItems:    repository.NewQuoteItemRepository(db.DB),
		PricingSchema: repository.NewPricingSchemaRepository(db.DB),
	}
	catalog := businessflow.CatalogRepos{
		Categories:   repository.NewEquipmentCategoryRepository(db.DB),
		Equipment:    repos.Equipment,
		Pricing:      repos.Pricing,
		Additional:   repos.Additional,
		ServiceItems: repository.NewEquipmentServiceItemRepository(db.DB),
		ServiceCosts: repository.NewEquipmentServiceCostsRepository(db.DB),
		QuoteItems:   repos.QuoteItems,
	}
	responses := repository.NewNeedsAssessmentResponseRepository(db.DB)
	numberers, err := businessflow.NewNumberers(businessflow.NumberingDeps{
		DB:          db.DB,
		Config:      cfg.Quote,
		Counters:    repository.NewSequenceCounterRepository(db.DB),
		QuoteCount:  repos.Quotes,
		AssessCount: responses,
	})
	require.NoError(t, err)

	renderer := render.NewRenderer()
	settings := businessflow.DocumentSettings{CompanyName: "PPP Rental", VATRate: cfg.Quote.VATRate}
	assessments := businessflow.NewNeedsAssessmentFlow(db.DB, repository.NewNeedsAssessmentQuestionRepository(db.DB), responses, numberers, renderer, settings, nil, nil)
	apiKeys := businessflow.NewAPIKeyFlow(repository.NewAPIKeyRepository(db.DB), nil, nil)
	require.NoError(t, apiKeys.SeedBootstrapKeys(context.Background(), []config.BootstrapKey{
		{Name: "website", Key: publicKey, Permissions: []string{utils.PermissionQuotesCreate}},
	}))

	tokens, err := services.NewTokenService(time.Hour, "ppp-rental", "ppp-rental-api", "router-test-secret")
	require.NoError(t, err)

	h := Handlers{
		Equipment:       handlers.NewEquipmentHandler(businessflow.NewEquipmentFlow(db.DB, catalog, nil, nil), nil),
		Quotes:          handlers.NewQuoteHandler(businessflow.NewQuoteFlow(db.DB, repos, numberers, cfg.Quote.VATRate, businessflow.CrewDefaults{}, nil, nil), businessflow.NewQuoteDocumentFlow(repos.Quotes, catalog.ServiceItems, repos.Additional, renderer, settings, nil, nil), nil),
		Clients:         handlers.NewClientHandler(businessflow.NewClientFlow(repos.Clients), nil),
		PricingSchemas:  handlers.NewPricingSchemaHandler(businessflow.NewPricingSchemaFlow(db.DB, repos.PricingSchema, nil), nil),
		NeedsAssessment: handlers.NewNeedsAssessmentHandler(assessments, nil),
		Public:          handlers.NewPublicHandler(businessflow.NewPublicFlow(db.DB, repos, numberers, assessments, nil, cfg.Quote.VATRate, businessflow.CrewDefaults{}, cfg.Quote.DefaultPricingSchemaID, nil, nil), nil),
		APIKeys:         handlers.NewAPIKeyHandler(apiKeys, nil),
	}

	r := NewFiberRouter(cfg, h, middleware.NewAuthMiddleware(tokens), middleware.NewAPIKeyMiddleware(apiKeys, nil), nil)
	r.SetupRoutes()
	return &testServer{app: r.GetApp(), tokens: tokens}
}

func (s *testServer) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := s.tokens.GenerateToken("user-1", "Jan Kowalski", role)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	status, res := s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Success)
	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.Equal(t, "ppp-rental-api", data["service"])
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)

	status, res := s.do(t, http.MethodGet, "/api/v1/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, res.Success)
	assert.Equal(t, "NOT_FOUND", res.Error.Code)
}

func TestStaffRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	status, res := s.do(t, http.MethodGet, "/api/v1/quotes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_AUTHORIZATION_HEADER", res.Error.Code)

	status, res = s.do(t, http.MethodGet, "/api/v1/equipment", "", bearer("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_INVALID", res.Error.Code)
}

func TestRoleRestrictions(t *testing.T) {
	s := newTestServer(t)
	employee := bearer(s.token(t, utils.RoleEmployee))
	kierownik := bearer(s.token(t, utils.RoleKierownik))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		auth   map[string]string
		status int
	}{
		{"employee cannot create category", http.MethodPost, "/api/v1/equipment-categories", `{"name":"Generatory"}`, employee, http.StatusForbidden},
		{"kierownik creates category", http.MethodPost, "/api/v1/equipment-categories", `{"name":"Generatory"}`, kierownik, http.StatusCreated},
		{"employee lists categories", http.MethodGet, "/api/v1/equipment-categories", "", employee, http.StatusOK},
		{"kierownik cannot list quotes", http.MethodGet, "/api/v1/quotes", "", kierownik, http.StatusForbidden},
		{"employee cannot delete quote", http.MethodDelete, "/api/v1/quotes/1", "", employee, http.StatusForbidden},
		{"employee cannot manage api keys", http.MethodGet, "/api/v1/admin/api-keys", "", employee, http.StatusForbidden},
		{"employee cannot add service items", http.MethodPost, "/api/v1/equipment/1/service-items", `{"name":"Oil"}`, employee, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := s.do(t, tt.method, tt.path, tt.body, tt.auth)
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN_ROLE", res.Error.Code)
			}
		})
	}
}

func TestAdminQuoteLookup(t *testing.T) {
	s := newTestServer(t)
	admin := bearer(s.token(t, utils.RoleAdmin))

	status, res := s.do(t, http.MethodGet, "/api/v1/quotes/999", "", admin)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "QUOTE_NOT_FOUND", res.Error.Code)

	status, res = s.do(t, http.MethodGet, "/api/v1/quotes/abc", "", admin)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", res.Error.Code)
}

func TestGuestQuoteSkipsAuthentication(t *testing.T) {
	s := newTestServer(t)

	status, res := s.do(t, http.MethodPost, "/api/v1/quotes/guest", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
}

func TestPublicRoutesRequireAPIKey(t *testing.T) {
	s := newTestServer(t)

	status, res := s.do(t, http.MethodGet, "/api/public/equipment", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_API_KEY", res.Error.Code)

	status, res = s.do(t, http.MethodGet, "/api/public/equipment", "", map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_API_KEY", res.Error.Code)

	status, _ = s.do(t, http.MethodGet, "/api/public/equipment", "", map[string]string{"X-API-Key": publicKey})
	assert.Equal(t, http.StatusOK, status)

	status, res = s.do(t, http.MethodGet, "/api/public/needs-assessment/questions", "", map[string]string{"X-API-Key": publicKey})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "API_KEY_FORBIDDEN", res.Error.Code)
}
