package handlers

import (
	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// APIKeyHandlerInterface defines the contract for API key administration
type APIKeyHandlerInterface interface {
	ListKeys(c fiber.Ctx) error
	CreateKey(c fiber.Ctx) error
	UpdateKey(c fiber.Ctx) error
	DeleteKey(c fiber.Ctx) error
}

// APIKeyHandler manages public API keys
type APIKeyHandler struct {
	baseHandler
	flow businessflow.APIKeyFlow
}

// NewAPIKeyHandler creates a new API key handler
func NewAPIKeyHandler(flow businessflow.APIKeyFlow, logger *zap.Logger) *APIKeyHandler {
	return &APIKeyHandler{baseHandler: newBaseHandler(logger), flow: flow}
}

func (h *APIKeyHandler) ListKeys(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/api-keys")
	defer cancel()

	res, err := h.flow.ListKeys(ctx)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list API keys", "LIST_API_KEYS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "API keys retrieved successfully", res)
}

// CreateKey
// @Summary Issue an API key
// @Description The raw key is returned once and only its fingerprint is stored
// @Tags API Keys
// @Param request body dto.CreateAPIKeyRequest true "Key"
// @Success 201 {object} dto.APIResponse{data=dto.CreateAPIKeyResponse}
// @Router /api/v1/admin/api-keys [post]
func (h *APIKeyHandler) CreateKey(c fiber.Ctx) error {
	var req dto.CreateAPIKeyRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/api-keys")
	defer cancel()

	res, err := h.flow.CreateKey(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create API key", "CREATE_API_KEY_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "API key created successfully", res)
}

// UpdateKey toggles whether the key is accepted
func (h *APIKeyHandler) UpdateKey(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpdateAPIKeyRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/api-keys/:id")
	defer cancel()

	res, err := h.flow.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update API key", "UPDATE_API_KEY_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "API key updated successfully", res)
}

func (h *APIKeyHandler) DeleteKey(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/api-keys/:id")
	defer cancel()

	if err := h.flow.DeleteKey(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete API key", "DELETE_API_KEY_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "API key deleted successfully", nil)
}
