package handlers

import (
	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// PricingSchemaHandlerInterface defines the contract for pricing schema handlers
type PricingSchemaHandlerInterface interface {
	ListSchemas(c fiber.Ctx) error
	GetSchema(c fiber.Ctx) error
	CreateSchema(c fiber.Ctx) error
	UpdateSchema(c fiber.Ctx) error
	DeleteSchema(c fiber.Ctx) error
}

// PricingSchemaHandler handles pricing schema HTTP requests
type PricingSchemaHandler struct {
	baseHandler
	flow businessflow.PricingSchemaFlow
}

// NewPricingSchemaHandler creates a new pricing schema handler
func NewPricingSchemaHandler(flow businessflow.PricingSchemaFlow, logger *zap.Logger) *PricingSchemaHandler {
	return &PricingSchemaHandler{baseHandler: newBaseHandler(logger), flow: flow}
}

// ListSchemas
// @Summary List pricing schemas
// @Tags Pricing Schemas
// @Success 200 {object} dto.APIResponse{data=dto.ListPricingSchemasResponse}
// @Router /api/v1/pricing-schemas [get]
func (h *PricingSchemaHandler) ListSchemas(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/pricing-schemas")
	defer cancel()

	res, err := h.flow.ListSchemas(ctx)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list pricing schemas", "LIST_PRICING_SCHEMAS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing schemas retrieved successfully", res)
}

func (h *PricingSchemaHandler) GetSchema(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/pricing-schemas/:id")
	defer cancel()

	res, err := h.flow.GetSchema(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to get pricing schema", "GET_PRICING_SCHEMA_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing schema retrieved successfully", res)
}

// CreateSchema
// @Summary Create pricing schema
// @Description Marking the schema as default clears the flag on every other schema
// @Tags Pricing Schemas
// @Param request body dto.CreatePricingSchemaRequest true "Schema"
// @Success 201 {object} dto.APIResponse{data=dto.PricingSchemaResponse}
// @Router /api/v1/pricing-schemas [post]
func (h *PricingSchemaHandler) CreateSchema(c fiber.Ctx) error {
	var req dto.CreatePricingSchemaRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/pricing-schemas")
	defer cancel()

	res, err := h.flow.CreateSchema(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create pricing schema", "CREATE_PRICING_SCHEMA_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Pricing schema created successfully", res)
}

func (h *PricingSchemaHandler) UpdateSchema(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpdatePricingSchemaRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/pricing-schemas/:id")
	defer cancel()

	res, err := h.flow.UpdateSchema(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update pricing schema", "UPDATE_PRICING_SCHEMA_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing schema updated successfully", res)
}

func (h *PricingSchemaHandler) DeleteSchema(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/pricing-schemas/:id")
	defer cancel()

	if err := h.flow.DeleteSchema(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete pricing schema", "DELETE_PRICING_SCHEMA_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing schema deleted successfully", nil)
}
