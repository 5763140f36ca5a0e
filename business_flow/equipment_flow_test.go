package businessflow_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
)

// memoryCache is an in-process CatalogCache
type memoryCache struct {
	mu          sync.Mutex
	payload     []byte
	sets        int
	invalidated int
}

func (c *memoryCache) Get(context.Context) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload, c.payload != nil, nil
}

func (c *memoryCache) Set(_ context.Context, bs []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = bs
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
	c.invalidated++
	return nil
}

func TestCreateEquipmentAddsDefaultTier(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	category, err := h.equipment.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Agregaty"})
	require.NoError(t, err)

	res, err := h.equipment.CreateEquipment(ctx, &dto.EquipmentRequest{
		Name:              "Agregat 60kW",
		Model:             "AG-60",
		CategoryID:        category.ID,
		Quantity:          3,
		AvailableQuantity: 3,
	})
	require.NoError(t, err)

	assert.True(t, res.IsActive)
	require.NotNil(t, res.Category)
	assert.Equal(t, "Agregaty", res.Category.Name)
	require.Len(t, res.Pricing, 1)
	assert.Equal(t, 1, res.Pricing[0].PeriodStart)
	assert.Nil(t, res.Pricing[0].PeriodEnd)
	assert.Equal(t, utils.DefaultTierPricePerDay, res.Pricing[0].PricePerDay)
}

func TestCreateEquipmentValidation(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	_, err := h.equipment.CreateEquipment(ctx, &dto.EquipmentRequest{Name: "X", Model: "X", CategoryID: 1, Quantity: 2, AvailableQuantity: 3})
	require.Error(t, err)
	assert.True(t, businessflow.IsValidation(err))
	assert.True(t, businessflow.IsQuantityExceedsTotal(err))

	_, err = h.equipment.CreateEquipment(ctx, &dto.EquipmentRequest{Name: "X", Model: "X", CategoryID: 99, Quantity: 1, AvailableQuantity: 1})
	assert.True(t, businessflow.IsCategoryNotFound(err))
	assert.Zero(t, h.countRows(t, &models.Equipment{}))
}

func TestUpdateQuantityRejectsAvailableAboveTotal(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)

	_, err = h.equipment.UpdateQuantity(ctx, generator.ID, &dto.UpdateEquipmentQuantityRequest{Quantity: 4, AvailableQuantity: 6})
	require.Error(t, err)
	assert.True(t, businessflow.IsQuantityExceedsTotal(err))
	assert.Contains(t, businessflow.ValidationFields(err), "available_quantity")

	res, err := h.equipment.UpdateQuantity(ctx, generator.ID, &dto.UpdateEquipmentQuantityRequest{Quantity: 8, AvailableQuantity: 6})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Quantity)
	assert.Equal(t, 6, res.AvailableQuantity)

	_, err = h.equipment.UpdateQuantity(ctx, 999, &dto.UpdateEquipmentQuantityRequest{Quantity: 1, AvailableQuantity: 1})
	assert.True(t, businessflow.IsEquipmentNotFound(err))
}

func TestCreateCategoryRejectsDuplicate(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	_, err := h.equipment.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Oświetlenie"})
	require.NoError(t, err)
	_, err = h.equipment.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: " Oświetlenie "})
	assert.True(t, businessflow.IsCategoryAlreadyExists(err))
	assert.True(t, businessflow.IsConflict(err))
}

func TestCreateTierValidation(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)

	_, err = h.equipment.CreateTier(ctx, &dto.CreatePricingTierRequest{
		EquipmentID:     generator.ID,
		PeriodStart:     10,
		PeriodEnd:       utils.ToPtr(5),
		DiscountPercent: 120,
	})
	require.Error(t, err)
	fields := businessflow.ValidationFields(err)
	assert.Contains(t, fields, "period_end")
	assert.Contains(t, fields, "discount_percent")

	tier, err := h.equipment.CreateTier(ctx, &dto.CreatePricingTierRequest{
		EquipmentID: generator.ID,
		PeriodStart: 90,
		PricePerDay: 250.555,
	})
	require.NoError(t, err)
	assert.Equal(t, 250.56, tier.PricePerDay)

	require.NoError(t, h.equipment.DeleteTier(ctx, tier.ID))
	assert.True(t, businessflow.IsPricingTierNotFound(h.equipment.DeleteTier(ctx, tier.ID)))
}

func TestListAdditionalCreatesPlaceholderOnce(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)

	first, err := h.equipment.ListAdditional(ctx, generator.ID)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, utils.DefaultAdditionalName, first.Items[0].Name)
	assert.Equal(t, models.AdditionalTypeAdditional, first.Items[0].Type)
	assert.Zero(t, first.Items[0].Price)

	second, err := h.equipment.ListAdditional(ctx, generator.ID)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, first.Items[0].ID, second.Items[0].ID)

	_, err = h.equipment.ListAdditional(ctx, 999)
	assert.True(t, businessflow.IsEquipmentNotFound(err))
}

func TestDeleteEquipmentInUse(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)
	_, err = h.quotes.CreateQuote(ctx, &dto.CreateQuoteRequest{
		Client: &dto.ClientRequest{CompanyName: "Budimex S.A."},
		Items:  []dto.QuoteItemRequest{{EquipmentID: generator.ID, Quantity: 1, RentalPeriodDays: 3}},
	}, businessflow.Actor{})
	require.NoError(t, err)

	err = h.equipment.DeleteEquipment(ctx, generator.ID)
	assert.True(t, businessflow.IsEquipmentInUse(err))
	assert.True(t, businessflow.IsConflict(err))

	require.NoError(t, h.equipment.DeactivateEquipment(ctx, generator.ID))
	res, err := h.equipment.GetEquipment(ctx, generator.ID)
	require.NoError(t, err)
	assert.False(t, res.IsActive)
}

func TestDeleteEquipmentRemovesCatalogRows(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)
	_, err = h.fx.CreateTestAdditional(generator.ID, models.AdditionalTypeAccessories, "Kabel", 20, 1)
	require.NoError(t, err)
	_, err = h.fx.CreateTestServiceItem(generator.ID, "Przegląd", 300, 1)
	require.NoError(t, err)

	require.NoError(t, h.equipment.DeleteEquipment(ctx, generator.ID))
	assert.Zero(t, h.countRows(t, &models.Equipment{}))
	assert.Zero(t, h.countRows(t, &models.EquipmentPricing{}))
	assert.Zero(t, h.countRows(t, &models.EquipmentAdditional{}))
	assert.Zero(t, h.countRows(t, &models.EquipmentServiceItem{}))

	assert.True(t, businessflow.IsEquipmentNotFound(h.equipment.DeleteEquipment(ctx, generator.ID)))
}

func TestServiceCostsUpsert(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)

	_, err = h.equipment.GetServiceCosts(ctx, generator.ID)
	assert.True(t, businessflow.IsNotFound(err))

	req := &dto.UpsertServiceCostsRequest{ServiceIntervalMonths: 6, WorkerHours: 4, WorkerCostPerHour: 120}
	_, err = h.equipment.UpsertServiceCosts(ctx, generator.ID, req)
	require.NoError(t, err)

	req.ServiceIntervalMonths = 12
	res, err := h.equipment.UpsertServiceCosts(ctx, generator.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 12, res.ServiceIntervalMonths)
	assert.Equal(t, int64(1), h.countRows(t, &models.EquipmentServiceCosts{}))
}

func TestCatalogWritesInvalidatePublicCache(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()
	cache := &memoryCache{}

	equipment := businessflow.NewEquipmentFlow(h.db.DB, h.catalog, cache, nil)
	public := businessflow.NewPublicFlow(h.db.DB, h.repos, h.numberers, h.assessments, cache, 0.23, businessflow.CrewDefaults{}, 0, nil, nil)

	generator, err := h.fx.CreateGenerator()
	require.NoError(t, err)

	listed, err := public.ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, 1, cache.sets)

	again, err := public.ListEquipment(ctx)
	require.NoError(t, err)
	assert.Equal(t, listed.Items, again.Items)
	assert.Equal(t, 1, cache.sets)

	_, err = equipment.UpdateQuantity(ctx, generator.ID, &dto.UpdateEquipmentQuantityRequest{Quantity: 5, AvailableQuantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	empty, err := public.ListEquipment(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}
