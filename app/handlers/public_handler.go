package handlers

import (
	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// PublicHandlerInterface defines the contract for the API key protected public API
type PublicHandlerInterface interface {
	ListEquipment(c fiber.Ctx) error
	CreateQuote(c fiber.Ctx) error
	ListQuestions(c fiber.Ctx) error
	CreateAssessment(c fiber.Ctx) error
}

// PublicHandler serves partner integrations authenticated by API key
type PublicHandler struct {
	baseHandler
	flow businessflow.PublicFlow
}

// NewPublicHandler creates a new public API handler
func NewPublicHandler(flow businessflow.PublicFlow, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{baseHandler: newBaseHandler(logger), flow: flow}
}

// ListEquipment
// @Summary Available equipment with pricing tiers
// @Tags Public API
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.PublicEquipmentListResponse}
// @Failure 401 {object} dto.APIResponse "Missing or invalid API key"
// @Failure 403 {object} dto.APIResponse "API key lacks quotes:create"
// @Router /api/public/equipment [get]
func (h *PublicHandler) ListEquipment(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/public/equipment")
	defer cancel()

	res, err := h.flow.ListEquipment(ctx)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list equipment", "PUBLIC_LIST_EQUIPMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Equipment retrieved successfully", res)
}

// CreateQuote
// @Summary Request a quote
// @Description The client is matched by company name. Any item without a pricing tier aborts the request.
// @Tags Public API
// @Security ApiKeyAuth
// @Param request body dto.PublicQuoteRequest true "Quote request"
// @Success 201 {object} dto.APIResponse{data=dto.PublicQuoteResponse}
// @Failure 422 {object} dto.APIResponse "No pricing tier for an item"
// @Router /api/public/quotes [post]
func (h *PublicHandler) CreateQuote(c fiber.Ctx) error {
	var req dto.PublicQuoteRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/public/quotes")
	defer cancel()

	res, err := h.flow.CreateQuote(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create quote", "PUBLIC_CREATE_QUOTE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Quote created successfully", res)
}

// ListQuestions
// @Summary Questionnaire grouped by category
// @Tags Public API
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.GroupedQuestionsResponse}
// @Router /api/public/needs-assessment/questions [get]
func (h *PublicHandler) ListQuestions(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/public/needs-assessment/questions")
	defer cancel()

	res, err := h.flow.ListQuestions(ctx)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list questions", "PUBLIC_LIST_QUESTIONS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Questions retrieved successfully", res)
}

// CreateAssessment
// @Summary Submit a needs assessment
// @Tags Public API
// @Security ApiKeyAuth
// @Param request body dto.AssessmentRequest true "Answers"
// @Success 201 {object} dto.APIResponse{data=dto.PublicAssessmentResponse}
// @Router /api/public/needs-assessment [post]
func (h *PublicHandler) CreateAssessment(c fiber.Ctx) error {
	var req dto.AssessmentRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/public/needs-assessment")
	defer cancel()

	res, err := h.flow.CreateAssessment(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to save needs assessment", "PUBLIC_CREATE_ASSESSMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Needs assessment saved successfully", res)
}
