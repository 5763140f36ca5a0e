package businessflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
)

func TestEnsureDefaultSchema(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	require.NoError(t, h.schemas.EnsureDefault(ctx, 1))
	require.NoError(t, h.schemas.EnsureDefault(ctx, 1))
	assert.Equal(t, int64(1), h.countRows(t, &models.PricingSchema{}))

	schema, err := h.schemas.GetSchema(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Standardowy", schema.Name)
	assert.True(t, schema.IsDefault)

	require.NoError(t, h.schemas.EnsureDefault(ctx, 0))
	assert.Equal(t, int64(1), h.countRows(t, &models.PricingSchema{}))
}

func TestSchemaDefaultIsExclusive(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	first, err := h.schemas.CreateSchema(ctx, &dto.CreatePricingSchemaRequest{Name: "Standardowy", IsDefault: true})
	require.NoError(t, err)
	second, err := h.schemas.CreateSchema(ctx, &dto.CreatePricingSchemaRequest{Name: "Eventowy", IsDefault: true})
	require.NoError(t, err)

	old, err := h.schemas.GetSchema(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsDefault)

	_, err = h.schemas.UpdateSchema(ctx, first.ID, &dto.UpdatePricingSchemaRequest{IsDefault: utils.ToPtr(true)})
	require.NoError(t, err)
	demoted, err := h.schemas.GetSchema(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsDefault)

	_, err = h.schemas.UpdateSchema(ctx, first.ID, &dto.UpdatePricingSchemaRequest{Name: utils.ToPtr(" ")})
	assert.True(t, businessflow.IsValidation(err))

	require.NoError(t, h.schemas.DeleteSchema(ctx, second.ID))
	assert.True(t, businessflow.IsPricingSchemaNotFound(h.schemas.DeleteSchema(ctx, second.ID)))

	list, err := h.schemas.ListSchemas(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestClientFlow(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	_, err := h.clients.CreateClient(ctx, &dto.ClientRequest{CompanyName: "  "})
	assert.True(t, businessflow.IsValidation(err))

	created, err := h.clients.CreateClient(ctx, &dto.ClientRequest{CompanyName: "Skanska", NIP: utils.ToPtr("5260001246")})
	require.NoError(t, err)

	updated, err := h.clients.UpdateClient(ctx, created.ID, &dto.ClientRequest{CompanyName: "Skanska S.A.", Email: utils.ToPtr("biuro@skanska.pl")})
	require.NoError(t, err)
	assert.Equal(t, "Skanska S.A.", updated.CompanyName)
	require.NotNil(t, updated.Email)

	_, err = h.clients.GetClient(ctx, 999)
	assert.True(t, businessflow.IsClientNotFound(err))

	list, err := h.clients.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
