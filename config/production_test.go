package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadProductionConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.23, cfg.Quote.VATRate)
	assert.Equal(t, uint(3), cfg.Quote.DefaultPricingSchemaID)
	assert.Equal(t, "Europe/Warsaw", cfg.Quote.Timezone)
	assert.Equal(t, "count", cfg.Quote.NumberingStrategy)
	assert.Equal(t, 3, cfg.Quote.NumberingMaxRetries)
	assert.Equal(t, "GUE", cfg.Quote.GuestPrefix)
	assert.Equal(t, 150.0, cfg.Quote.DefaultServiceRatePerTechnician)
	assert.Equal(t, 1.15, cfg.Quote.DefaultTravelRatePerKm)
	assert.Empty(t, cfg.PublicAPI.BootstrapKeys)
}

func TestLoadProductionConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)
	t.Setenv("QUOTE_VAT_RATE", "0.08")
	t.Setenv("QUOTE_NUMBERING_STRATEGY", "counter")
	t.Setenv("PUBLIC_API_BOOTSTRAP_KEYS", "crm:secret:quotes:create|assessments:create")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.08, cfg.Quote.VATRate)
	assert.Equal(t, "counter", cfg.Quote.NumberingStrategy)
	assert.Equal(t, []string{"crm:secret:quotes:create|assessments:create"}, cfg.PublicAPI.BootstrapKeys)
}

func TestValidateProductionConfigCollectsErrors(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "short")
	t.Setenv("QUOTE_VAT_RATE", "1.5")
	t.Setenv("QUOTE_NUMBERING_STRATEGY", "random")
	t.Setenv("LOG_LEVEL", "trace")

	_, err := LoadProductionConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
	assert.Contains(t, err.Error(), "QUOTE_VAT_RATE")
	assert.Contains(t, err.Error(), "QUOTE_NUMBERING_STRATEGY")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestParseBootstrapKeys(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		keys, err := ParseBootstrapKeys([]string{"crm:ppp_abc:quotes:create|*"})
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, "crm", keys[0].Name)
		assert.Equal(t, "ppp_abc", keys[0].Key)
		assert.Equal(t, []string{"quotes:create", "*"}, keys[0].Permissions)
	})

	t.Run("missing permissions", func(t *testing.T) {
		_, err := ParseBootstrapKeys([]string{"crm:ppp_abc"})
		assert.Error(t, err)
	})
}

func TestLoadEnvFileKeepsProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PPP_TEST_FROM_FILE=file\nPPP_TEST_KEEP=file\n"), 0o600))
	t.Setenv("PPP_TEST_KEEP", "process")
	t.Setenv("PPP_TEST_FROM_FILE", "")
	os.Unsetenv("PPP_TEST_FROM_FILE")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "file", os.Getenv("PPP_TEST_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("PPP_TEST_KEEP"))

	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}
