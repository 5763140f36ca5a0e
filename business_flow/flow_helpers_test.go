package businessflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/app/render"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/repository"
	testingutil "github.com/amirphl/ppp-rental/testing"
)

var fixedNow = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

type harness struct {
	db        *testingutil.TestDB
	fx        *testingutil.TestFixtures
	repos     businessflow.QuoteRepos
	catalog   businessflow.CatalogRepos
	numberers *businessflow.Numberers
	// now is what every flow clock returns. Tests move it to cross days.
	now time.Time

	quotes      businessflow.QuoteFlow
	documents   businessflow.QuoteDocumentFlow
	equipment   businessflow.EquipmentFlow
	assessments businessflow.NeedsAssessmentFlow
	public      businessflow.PublicFlow
	apiKeys     businessflow.APIKeyFlow
	schemas     businessflow.PricingSchemaFlow
	clients     businessflow.ClientFlow
}

func newHarness(t *testing.T, cfg config.QuoteConfig) *harness {
	t.Helper()
	db, err := testingutil.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Teardown() })

	if cfg.NumberingMaxRetries == 0 {
		cfg.NumberingMaxRetries = 3
	}
	if cfg.VATRate == 0 {
		cfg.VATRate = 0.23
	}

	h := &harness{db: db, fx: testingutil.NewTestFixtures(db), now: fixedNow}
	h.repos = businessflow.QuoteRepos{
		Equipment:     repository.NewEquipmentRepository(db.DB),
		Pricing:       repository.NewEquipmentPricingRepository(db.DB),
		Additional:    repository.NewEquipmentAdditionalRepository(db.DB),
		Clients:       repository.NewClientRepository(db.DB),
		Quotes:        repository.NewQuoteRepository(db.DB),
		QuoteItems:    repository.NewQuoteItemRepository(db.DB),
		PricingSchema: repository.NewPricingSchemaRepository(db.DB),
	}
	h.catalog = businessflow.CatalogRepos{
		Categories:   repository.NewEquipmentCategoryRepository(db.DB),
		Equipment:    h.repos.Equipment,
		Pricing:      h.repos.Pricing,
		Additional:   h.repos.Additional,
		ServiceItems: repository.NewEquipmentServiceItemRepository(db.DB),
		ServiceCosts: repository.NewEquipmentServiceCostsRepository(db.DB),
		QuoteItems:   h.repos.QuoteItems,
	}
	questionRepo := repository.NewNeedsAssessmentQuestionRepository(db.DB)
	responseRepo := repository.NewNeedsAssessmentResponseRepository(db.DB)

	h.numberers, err = businessflow.NewNumberers(businessflow.NumberingDeps{
		DB:          db.DB,
		Config:      cfg,
		Location:    time.UTC,
		Counters:    repository.NewSequenceCounterRepository(db.DB),
		QuoteCount:  h.repos.Quotes,
		AssessCount: responseRepo,
	})
	require.NoError(t, err)

	clock := func() time.Time { return h.now }
	defaults := businessflow.CrewDefaults{}
	renderer := render.NewRenderer()
	settings := businessflow.DocumentSettings{CompanyName: "PPP Rental", VATRate: cfg.VATRate, Location: time.UTC}

	h.quotes = businessflow.NewQuoteFlow(db.DB, h.repos, h.numberers, cfg.VATRate, defaults, clock, nil)
	h.documents = businessflow.NewQuoteDocumentFlow(h.repos.Quotes, h.catalog.ServiceItems, h.repos.Additional, renderer, settings, clock, nil)
	h.equipment = businessflow.NewEquipmentFlow(db.DB, h.catalog, nil, nil)
	h.assessments = businessflow.NewNeedsAssessmentFlow(db.DB, questionRepo, responseRepo, h.numberers, renderer, settings, clock, nil)
	h.public = businessflow.NewPublicFlow(db.DB, h.repos, h.numberers, h.assessments, nil, cfg.VATRate, defaults, cfg.DefaultPricingSchemaID, clock, nil)
	h.apiKeys = businessflow.NewAPIKeyFlow(repository.NewAPIKeyRepository(db.DB), clock, nil)
	h.schemas = businessflow.NewPricingSchemaFlow(db.DB, h.repos.PricingSchema, nil)
	h.clients = businessflow.NewClientFlow(h.repos.Clients)
	return h
}

func (h *harness) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.DB.Model(model).Count(&n).Error)
	return n
}
