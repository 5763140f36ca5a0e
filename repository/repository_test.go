package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/repository"
	testingutil "github.com/amirphl/ppp-rental/testing"
	"github.com/amirphl/ppp-rental/utils"
)

func setup(t *testing.T) (*testingutil.TestDB, *testingutil.TestFixtures) {
	t.Helper()
	db, err := testingutil.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Teardown() })
	return db, testingutil.NewTestFixtures(db)
}

func TestEquipmentRepositoryListPublic(t *testing.T) {
	db, fx := setup(t)
	ctx := context.Background()

	lighting, err := fx.CreateTestCategory("Oświetlenie")
	require.NoError(t, err)
	generators, err := fx.CreateTestCategory("Agregaty")
	require.NoError(t, err)

	_, err = fx.CreateTestEquipment(lighting.ID, "Maszt LED", testingutil.TierSpec{Start: 8, Price: 80}, testingutil.TierSpec{Start: 1, End: 7, Price: 100})
	require.NoError(t, err)
	big, err := fx.CreateTestEquipment(generators.ID, "Agregat 200kW", testingutil.TierSpec{Start: 1, Price: 500})
	require.NoError(t, err)
	_, err = fx.CreateTestEquipment(generators.ID, "Agregat 100kW", testingutil.TierSpec{Start: 1, Price: 350})
	require.NoError(t, err)
	outOfStock, err := fx.CreateTestEquipment(generators.ID, "Agregat 20kW")
	require.NoError(t, err)

	repo := repository.NewEquipmentRepository(db.DB)
	require.NoError(t, repo.UpdateQuantities(ctx, outOfStock.ID, 2, 0))
	require.NoError(t, repo.SetActive(ctx, big.ID, false))

	rows, err := repo.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Agregat 100kW", rows[0].Name)
	assert.Equal(t, "Maszt LED", rows[1].Name)
	require.NotNil(t, rows[1].Category)
	assert.Equal(t, "Oświetlenie", rows[1].Category.Name)
	require.Len(t, rows[1].Pricing, 2)
	assert.Equal(t, 1, rows[1].Pricing[0].PeriodStart)
	assert.Equal(t, 8, rows[1].Pricing[1].PeriodStart)

	inactive, err := repo.ListWithDetails(ctx, false)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, big.ID, inactive[0].ID)
}

func TestEquipmentRepositoryDeleteWithCatalog(t *testing.T) {
	db, fx := setup(t)
	ctx := context.Background()

	eq, err := fx.CreateGenerator()
	require.NoError(t, err)
	_, err = fx.CreateTestAdditional(eq.ID, models.AdditionalTypeAccessories, "Kabel", 50, 1)
	require.NoError(t, err)
	_, err = fx.CreateTestServiceItem(eq.ID, "Przegląd", 200, 0)
	require.NoError(t, err)

	repo := repository.NewEquipmentRepository(db.DB)
	deleted, err := repo.DeleteWithCatalog(ctx, eq.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var tiers int64
	require.NoError(t, db.DB.Model(&models.EquipmentPricing{}).Where("equipment_id = ?", eq.ID).Count(&tiers).Error)
	assert.Zero(t, tiers)

	extras, err := repository.NewEquipmentAdditionalRepository(db.DB).ListByEquipment(ctx, eq.ID, "")
	require.NoError(t, err)
	assert.Empty(t, extras)

	got, err := repo.ByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.DeleteWithCatalog(ctx, eq.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestQuoteRepositoryCountCreatedBetween(t *testing.T) {
	db, fx := setup(t)
	ctx := context.Background()

	client, err := fx.CreateTestClient("Budimex")
	require.NoError(t, err)

	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	_, err = fx.CreateTestQuote(client.ID, "01/10.2026", day.Add(-time.Second))
	require.NoError(t, err)
	_, err = fx.CreateTestQuote(client.ID, "02/10.2026", day)
	require.NoError(t, err)
	_, err = fx.CreateTestQuote(client.ID, "03/10.2026", day.Add(23*time.Hour+59*time.Minute))
	require.NoError(t, err)
	_, err = fx.CreateTestQuote(client.ID, "04/10.2026", day.Add(24*time.Hour))
	require.NoError(t, err)

	repo := repository.NewQuoteRepository(db.DB)
	n, err := repo.CountCreatedBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestQuoteRepositoryDuplicateNumber(t *testing.T) {
	db, fx := setup(t)
	ctx := context.Background()

	client, err := fx.CreateTestClient("Budimex")
	require.NoError(t, err)

	repo := repository.NewQuoteRepository(db.DB)
	first := &models.Quote{UUID: uuid.New(), QuoteNumber: "01/10.2026", ClientID: client.ID, Status: models.QuoteStatusDraft}
	require.NoError(t, repo.Save(ctx, first))

	second := &models.Quote{UUID: uuid.New(), QuoteNumber: "01/10.2026", ClientID: client.ID, Status: models.QuoteStatusDraft}
	err = repo.Save(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestQuoteRepositoryNumberUniquePerDay(t *testing.T) {
	db, fx := setup(t)
	ctx := context.Background()

	client, err := fx.CreateTestClient("Budimex")
	require.NoError(t, err)

	repo := repository.NewQuoteRepository(db.DB)
	oct14 := &models.Quote{UUID: uuid.New(), QuoteNumber: "01/10.2026", NumberDate: "2026-10-14", ClientID: client.ID, Status: models.QuoteStatusDraft}
	require.NoError(t, repo.Save(ctx, oct14))
	oct15 := &models.Quote{UUID: uuid.New(), QuoteNumber: "01/10.2026", NumberDate: "2026-10-15", ClientID: client.ID, Status: models.QuoteStatusDraft}
	require.NoError(t, repo.Save(ctx, oct15))

	again := &models.Quote{UUID: uuid.New(), QuoteNumber: "01/10.2026", NumberDate: "2026-10-15", ClientID: client.ID, Status: models.QuoteStatusDraft}
	err = repo.Save(ctx, again)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestQuoteRepositoryDetailsAndDelete(t *testing.T) {
	db, fx := setup(t)
	ctx := context.Background()

	client, err := fx.CreateTestClient("Budimex")
	require.NoError(t, err)
	eq, err := fx.CreateGenerator()
	require.NoError(t, err)
	quote, err := fx.CreateTestQuote(client.ID, "01/10.2026", utils.UTCNow())
	require.NoError(t, err)

	items := repository.NewQuoteItemRepository(db.DB)
	for _, total := range []float64{100, 250.5} {
		require.NoError(t, items.Save(ctx, &models.QuoteItem{
			QuoteID:          quote.ID,
			EquipmentID:      eq.ID,
			Quantity:         1,
			RentalPeriodDays: 1,
			PricePerDay:      total,
			TotalPrice:       total,
		}))
	}

	totals, err := items.LineTotals(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 250.5}, totals)

	repo := repository.NewQuoteRepository(db.DB)
	require.NoError(t, repo.UpdateTotals(ctx, quote.ID, 350.5, 431.12))

	got, err := repo.ByIDWithDetails(ctx, quote.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 350.5, got.TotalNet)
	assert.Equal(t, "Budimex", got.Client.CompanyName)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Equipment)
	assert.Equal(t, "Agregat 100kW", got.Items[0].Equipment.Name)

	deleted, err := repo.DeleteWithItems(ctx, quote.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	left, err := items.ListByQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestWithTransactionRollsBack(t *testing.T) {
	db, _ := setup(t)
	ctx := context.Background()
	repo := repository.NewClientRepository(db.DB)

	err := repository.WithTransaction(ctx, db.DB, func(txCtx context.Context) error {
		if err := repo.Save(txCtx, &models.Client{CompanyName: "Tymczasowa"}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	got, err := repo.ByCompanyName(ctx, "Tymczasowa")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repository.WithTransaction(ctx, db.DB, func(txCtx context.Context) error {
		return repo.Save(txCtx, &models.Client{CompanyName: "Stała"})
	})
	require.NoError(t, err)

	got, err = repo.ByCompanyName(ctx, "Stała")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestSequenceCounterIncrement(t *testing.T) {
	db, _ := setup(t)
	ctx := context.Background()
	repo := repository.NewSequenceCounterRepository(db.DB)

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Increment(ctx, "quotes:2026-10-14")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := repo.Increment(ctx, "quotes:2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)

	counter, err := repo.ByName(ctx, "quotes:2026-10-14")
	require.NoError(t, err)
	require.NotNil(t, counter)
	assert.Equal(t, int64(3), counter.LastValue)
}

func TestServiceCostsUpsert(t *testing.T) {
	db, fx := setup(t)
	ctx := context.Background()

	eq, err := fx.CreateGenerator()
	require.NoError(t, err)

	repo := repository.NewEquipmentServiceCostsRepository(db.DB)
	require.NoError(t, repo.Upsert(ctx, &models.EquipmentServiceCosts{EquipmentID: eq.ID, ServiceIntervalMonths: 12, WorkerHours: 2}))
	require.NoError(t, repo.Upsert(ctx, &models.EquipmentServiceCosts{EquipmentID: eq.ID, ServiceIntervalMonths: 6, WorkerHours: 3}))

	got, err := repo.ByEquipmentID(ctx, eq.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 6, got.ServiceIntervalMonths)
	assert.Equal(t, 3.0, got.WorkerHours)

	n, err := repo.Count(ctx, models.EquipmentServiceCostsFilter{EquipmentID: &eq.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAPIKeyRepository(t *testing.T) {
	db, _ := setup(t)
	ctx := context.Background()
	repo := repository.NewAPIKeyRepository(db.DB)

	key := &models.APIKey{Name: "partner", KeyHash: "abc123", Prefix: "ppp_abcd", Permissions: []string{utils.PermissionQuotesCreate}}
	require.NoError(t, repo.Save(ctx, key))

	got, err := repo.ByKeyHash(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{utils.PermissionQuotesCreate}, got.Permissions)
	assert.True(t, utils.IsTrue(got.IsActive))
	assert.Nil(t, got.LastUsedAt)

	at := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchLastUsed(ctx, key.ID, at))
	got, err = repo.ByKeyHash(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, got.LastUsedAt)
	assert.True(t, at.Equal(*got.LastUsedAt))

	missing, err := repo.ByKeyHash(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
