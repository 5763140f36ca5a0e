package businessflow_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
)

func TestAPIKeyLifecycle(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	created, err := h.apiKeys.CreateKey(ctx, &dto.CreateAPIKeyRequest{
		Name:        "Formularz WWW",
		Permissions: []string{utils.PermissionQuotesCreate},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Key, "ppp_"))
	assert.Equal(t, created.Key[:12], created.APIKey.Prefix)
	assert.True(t, created.APIKey.IsActive)

	var stored models.APIKey
	require.NoError(t, h.db.DB.First(&stored, created.APIKey.ID).Error)
	assert.Equal(t, businessflow.HashAPIKey(created.Key), stored.KeyHash)
	assert.NotContains(t, stored.KeyHash, created.Key)

	key, err := h.apiKeys.Authenticate(ctx, created.Key, utils.PermissionQuotesCreate)
	require.NoError(t, err)
	assert.Equal(t, created.APIKey.ID, key.ID)
	require.NotNil(t, key.LastUsedAt)
	assert.True(t, key.LastUsedAt.Equal(fixedNow))

	_, err = h.apiKeys.Authenticate(ctx, created.Key, utils.PermissionAssessmentsCreate)
	assert.True(t, businessflow.IsAPIKeyForbidden(err))

	_, err = h.apiKeys.Authenticate(ctx, "ppp_unknown", utils.PermissionQuotesCreate)
	assert.True(t, businessflow.IsAPIKeyNotFound(err))
	_, err = h.apiKeys.Authenticate(ctx, "  ", "")
	assert.True(t, businessflow.IsAPIKeyNotFound(err))

	updated, err := h.apiKeys.SetActive(ctx, created.APIKey.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	_, err = h.apiKeys.Authenticate(ctx, created.Key, utils.PermissionQuotesCreate)
	assert.True(t, businessflow.IsAPIKeyInactive(err))

	require.NoError(t, h.apiKeys.DeleteKey(ctx, created.APIKey.ID))
	assert.True(t, businessflow.IsAPIKeyNotFound(h.apiKeys.DeleteKey(ctx, created.APIKey.ID)))
}

func TestCreateAPIKeyRejectsUnknownPermission(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})

	_, err := h.apiKeys.CreateKey(context.Background(), &dto.CreateAPIKeyRequest{Name: "x", Permissions: []string{"quotes:delete"}})
	assert.True(t, businessflow.IsValidation(err))
	assert.Zero(t, h.countRows(t, &models.APIKey{}))
}

func TestSeedBootstrapKeysIsIdempotent(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	keys := []config.BootstrapKey{{Name: "partner", Key: "ppp_bootstrap_secret", Permissions: []string{utils.PermissionAll}}}
	require.NoError(t, h.apiKeys.SeedBootstrapKeys(ctx, keys))
	require.NoError(t, h.apiKeys.SeedBootstrapKeys(ctx, keys))
	assert.Equal(t, int64(1), h.countRows(t, &models.APIKey{}))

	key, err := h.apiKeys.Authenticate(ctx, "ppp_bootstrap_secret", utils.PermissionAssessmentsCreate)
	require.NoError(t, err)
	assert.Equal(t, "partner", key.Name)

	list, err := h.apiKeys.ListKeys(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "ppp_bootstra", list.Items[0].Prefix)
}
