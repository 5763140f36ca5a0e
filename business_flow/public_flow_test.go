package businessflow_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/models"
	testingutil "github.com/amirphl/ppp-rental/testing"
	"github.com/amirphl/ppp-rental/utils"
)

func TestPublicCreateQuoteUpsertsClientByName(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)
	existing, err := h.fx.CreateTestClient("Budimex S.A.")
	require.NoError(t, err)

	res, err := h.public.CreateQuote(ctx, &dto.PublicQuoteRequest{
		ClientCompanyName: "Budimex S.A.",
		ClientPhone:       utils.ToPtr("+48 500 000 000"),
		ClientEmail:       utils.ToPtr("  "),
		Equipment:         []dto.PublicQuoteItemRequest{{EquipmentID: generator.ID, Quantity: 2, RentalPeriod: 30}},
	})
	require.NoError(t, err)

	assert.Equal(t, "01/10.2026", res.Quote.QuoteNumber)
	assert.Equal(t, existing.ID, res.Quote.ClientID)
	assert.False(t, res.Quote.IsGuestQuote)
	assert.InDelta(t, 15300.0, res.Quote.TotalNet, 0.001)
	assert.InDelta(t, 18819.0, res.Quote.TotalGross, 0.001)

	var client models.Client
	require.NoError(t, h.db.DB.First(&client, existing.ID).Error)
	require.NotNil(t, client.Phone)
	assert.Equal(t, "+48 500 000 000", *client.Phone)
	require.NotNil(t, client.Email)
	assert.Equal(t, "jan@example.com", *client.Email)
	assert.Equal(t, int64(1), h.countRows(t, &models.Client{}))
}

func TestPublicCreateQuoteAbortsOnMissingTier(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)
	mast, err := h.fx.CreateTestEquipment(generator.CategoryID, "Maszt LED", testingutil.TierSpec{Start: 1, End: 7, Price: 100})
	require.NoError(t, err)

	_, err = h.public.CreateQuote(ctx, &dto.PublicQuoteRequest{
		ClientCompanyName: "Nowy Klient",
		Equipment: []dto.PublicQuoteItemRequest{
			{EquipmentID: generator.ID, Quantity: 1, RentalPeriod: 14},
			{EquipmentID: mast.ID, Quantity: 1, RentalPeriod: 14},
		},
	})
	require.Error(t, err)
	assert.True(t, businessflow.IsNoPricingAvailable(err))

	assert.Zero(t, h.countRows(t, &models.Quote{}))
	assert.Zero(t, h.countRows(t, &models.QuoteItem{}))
	assert.Zero(t, h.countRows(t, &models.Client{}))
}

func TestPublicCreateQuoteUsesDefaultSchema(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{DefaultPricingSchemaID: 1})
	ctx := context.Background()

	_, err := h.fx.CreateTestPricingSchema(1, "Standardowy")
	require.NoError(t, err)
	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)

	res, err := h.public.CreateQuote(ctx, &dto.PublicQuoteRequest{
		ClientCompanyName: "Skanska",
		Equipment:         []dto.PublicQuoteItemRequest{{EquipmentID: generator.ID, Quantity: 1, RentalPeriod: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Quote.PricingSchemaID)
	assert.Equal(t, uint(1), *res.Quote.PricingSchemaID)
}

func TestPublicCreateAssessment(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	q, err := h.fx.CreateTestQuestion("Zasilanie", "Jaka moc jest potrzebna?", 1)
	require.NoError(t, err)

	grouped, err := h.public.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zasilanie"}, grouped.Categories)

	res, err := h.public.CreateAssessment(ctx, &dto.AssessmentRequest{
		Responses: map[string]string{strconv.FormatUint(uint64(q.ID), 10): "100 kW"},
	})
	require.NoError(t, err)
	assert.Equal(t, "01/10.2026", res.ResponseNumber)

	stored, err := h.assessments.GetResponse(ctx, res.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.UserID)
}
