package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/utils"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

func createTestTokenService(t *testing.T) *TokenServiceImpl {
	t.Helper()
	service, err := NewTokenService(15*time.Minute, "test-issuer", "test-audience", testSecret)
	require.NoError(t, err)
	return service.(*TokenServiceImpl)
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		ttl         time.Duration
		secretKey   string
		expectError bool
	}{
		{name: "valid configuration", ttl: time.Hour, secretKey: testSecret},
		{name: "missing secret key", ttl: time.Hour, expectError: true},
		{name: "zero ttl falls back to default", secretKey: testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewTokenService(tt.ttl, "", "", tt.secretKey)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, service)
				return
			}
			require.NoError(t, err)
			impl := service.(*TokenServiceImpl)
			if tt.ttl == 0 {
				assert.Equal(t, utils.AccessTokenTTL, impl.accessTokenTTL)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := createTestTokenService(t)

	token, err := service.GenerateToken("user-42", "Anna Nowak", utils.RoleKierownik)
	require.NoError(t, err)
	assert.Contains(t, token, "eyJ")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "Anna Nowak", claims.Name)
	assert.Equal(t, utils.RoleKierownik, claims.Role)
	assert.Len(t, claims.TokenID, 32)
	assert.WithinDuration(t, claims.IssuedAt.Add(15*time.Minute), claims.ExpiresAt, time.Second)
}

func TestGenerateTokenRejectsUnknownRole(t *testing.T) {
	service := createTestTokenService(t)

	_, err := service.GenerateToken("user-1", "", "guest")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = service.GenerateToken("", "", utils.RoleAdmin)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	service := createTestTokenService(t)
	issued := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken("user-1", "", utils.RoleEmployee)
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenInvalid(t *testing.T) {
	service := createTestTokenService(t)

	other, err := NewTokenService(time.Hour, "test-issuer", "test-audience", "another-secret")
	require.NoError(t, err)
	foreign, err := other.GenerateToken("user-1", "", utils.RoleAdmin)
	require.NoError(t, err)

	wrongAudience, err := NewTokenService(time.Hour, "test-issuer", "elsewhere", testSecret)
	require.NoError(t, err)
	misdirected, err := wrongAudience.GenerateToken("user-1", "", utils.RoleAdmin)
	require.NoError(t, err)

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": "superuser",
		"jti":  "abc",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iss":  "test-issuer",
		"aud":  "test-audience",
	})
	badRoleToken, err := badRole.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not-a-token",
		"foreign secret": foreign,
		"wrong audience": misdirected,
		"unknown role":   badRoleToken,
		"none algorithm": noneToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.ValidateToken(token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}
