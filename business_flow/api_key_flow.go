package businessflow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

const (
	apiKeyRandomBytes = 24
	apiKeyPrefixLen   = 12
)

var knownPermissions = map[string]struct{}{
	utils.PermissionQuotesCreate:      {},
	utils.PermissionAssessmentsCreate: {},
	utils.PermissionAll:               {},
}

// APIKeyFlow issues, manages and authenticates public API keys
type APIKeyFlow interface {
	ListKeys(ctx context.Context) (*dto.ListAPIKeysResponse, error)
	CreateKey(ctx context.Context, req *dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error)
	SetActive(ctx context.Context, id uint, active bool) (*dto.APIKeyResponse, error)
	DeleteKey(ctx context.Context, id uint) error
	SeedBootstrapKeys(ctx context.Context, keys []config.BootstrapKey) error
	// Authenticate resolves a raw key and checks it carries perm.
	Authenticate(ctx context.Context, rawKey, perm string) (*models.APIKey, error)
}

type APIKeyFlowImpl struct {
	keyRepo repository.APIKeyRepository
	clock   Clock
	logger  *zap.Logger
}

func NewAPIKeyFlow(keyRepo repository.APIKeyRepository, clock Clock, logger *zap.Logger) APIKeyFlow {
	return &APIKeyFlowImpl{keyRepo: keyRepo, clock: clockOrDefault(clock), logger: loggerOrNop(logger)}
}

// HashAPIKey returns the hex BLAKE2b-256 digest keys are stored and looked up by.
func HashAPIKey(rawKey string) string {
	sum := blake2b.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

func generateAPIKey() (string, error) {
	buf := make([]byte, apiKeyRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return utils.APIKeyPrefix + hex.EncodeToString(buf), nil
}

func keyPrefix(rawKey string) string {
	if len(rawKey) <= apiKeyPrefixLen {
		return rawKey
	}
	return rawKey[:apiKeyPrefixLen]
}

func validatePermissions(perms []string) error {
	if len(perms) == 0 {
		return newValidationError("permissions", "at least one permission is required")
	}
	for _, p := range perms {
		if _, ok := knownPermissions[p]; !ok {
			return newValidationError("permissions", "unknown permission "+p)
		}
	}
	return nil
}

func (f *APIKeyFlowImpl) ListKeys(ctx context.Context) (*dto.ListAPIKeysResponse, error) {
	rows, err := f.keyRepo.ByFilter(ctx, models.APIKeyFilter{}, "", 0, 0)
	if err != nil {
		return nil, NewBusinessError("API_KEY_LIST_FAILED", "Failed to list api keys", err)
	}
	items := make([]dto.APIKeyResponse, 0, len(rows))
	for _, k := range rows {
		items = append(items, toAPIKeyResponse(k))
	}
	return &dto.ListAPIKeysResponse{Message: "API keys retrieved successfully", Items: items}, nil
}

func (f *APIKeyFlowImpl) CreateKey(ctx context.Context, req *dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, newValidationError("name", "is required")
	}
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}

	raw, err := generateAPIKey()
	if err != nil {
		return nil, NewBusinessError("API_KEY_GENERATION_FAILED", "Failed to generate api key", err)
	}
	key := &models.APIKey{
		Name:        name,
		KeyHash:     HashAPIKey(raw),
		Prefix:      keyPrefix(raw),
		Permissions: req.Permissions,
		IsActive:    utils.ToPtr(true),
	}
	if err := f.keyRepo.Save(ctx, key); err != nil {
		return nil, NewBusinessError("API_KEY_SAVE_FAILED", "Failed to save api key", err)
	}

	f.logger.Info("API key created", append(requestFields(ctx), zap.Uint("api_key_id", key.ID), zap.String("prefix", key.Prefix))...)
	return &dto.CreateAPIKeyResponse{
		Message: "API key created successfully",
		Key:     raw,
		APIKey:  toAPIKeyResponse(key),
	}, nil
}

func (f *APIKeyFlowImpl) SetActive(ctx context.Context, id uint, active bool) (*dto.APIKeyResponse, error) {
	key, err := f.keyRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("API_KEY_LOOKUP_FAILED", "Failed to load api key", err)
	}
	if key == nil {
		return nil, ErrAPIKeyNotFound
	}
	key.IsActive = utils.ToPtr(active)
	if err := f.keyRepo.Update(ctx, key); err != nil {
		return nil, NewBusinessError("API_KEY_UPDATE_FAILED", "Failed to update api key", err)
	}
	res := toAPIKeyResponse(key)
	return &res, nil
}

func (f *APIKeyFlowImpl) DeleteKey(ctx context.Context, id uint) error {
	deleted, err := f.keyRepo.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("API_KEY_DELETE_FAILED", "Failed to delete api key", err)
	}
	if !deleted {
		return ErrAPIKeyNotFound
	}
	return nil
}

// SeedBootstrapKeys stores the configured keys that are not present yet.
func (f *APIKeyFlowImpl) SeedBootstrapKeys(ctx context.Context, keys []config.BootstrapKey) error {
	for _, k := range keys {
		hash := HashAPIKey(k.Key)
		existing, err := f.keyRepo.ByKeyHash(ctx, hash)
		if err != nil {
			return NewBusinessError("API_KEY_LOOKUP_FAILED", "Failed to look up bootstrap key", err)
		}
		if existing != nil {
			continue
		}
		if err := validatePermissions(k.Permissions); err != nil {
			return err
		}

		key := &models.APIKey{
			Name:        k.Name,
			KeyHash:     hash,
			Prefix:      keyPrefix(k.Key),
			Permissions: k.Permissions,
			IsActive:    utils.ToPtr(true),
		}
		if err := f.keyRepo.Save(ctx, key); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return NewBusinessError("API_KEY_SAVE_FAILED", "Failed to seed bootstrap key", err)
		}
		f.logger.Info("Bootstrap API key seeded", zap.String("name", k.Name), zap.String("prefix", key.Prefix))
	}
	return nil
}

func (f *APIKeyFlowImpl) Authenticate(ctx context.Context, rawKey, perm string) (*models.APIKey, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return nil, ErrAPIKeyNotFound
	}

	key, err := f.keyRepo.ByKeyHash(ctx, HashAPIKey(rawKey))
	if err != nil {
		return nil, NewBusinessError("API_KEY_LOOKUP_FAILED", "Failed to look up api key", err)
	}
	if key == nil {
		return nil, ErrAPIKeyNotFound
	}
	if !utils.IsTrue(key.IsActive) {
		return nil, ErrAPIKeyInactive
	}
	if perm != "" && !key.HasPermission(perm) {
		return nil, ErrAPIKeyForbidden
	}

	now := f.clock()
	if err := f.keyRepo.TouchLastUsed(ctx, key.ID, now); err != nil {
		f.logger.Warn("Failed to record api key use", append(requestFields(ctx), zap.Uint("api_key_id", key.ID), zap.Error(err))...)
	} else {
		key.LastUsedAt = &now
	}
	return key, nil
}
