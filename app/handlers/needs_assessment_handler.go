package handlers

import (
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/app/middleware"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// NeedsAssessmentHandlerInterface defines the contract for needs assessment handlers
type NeedsAssessmentHandlerInterface interface {
	ListQuestions(c fiber.Ctx) error
	CreateQuestion(c fiber.Ctx) error
	UpdateQuestion(c fiber.Ctx) error
	DeleteQuestion(c fiber.Ctx) error
	DeleteCategory(c fiber.Ctx) error

	CreateResponse(c fiber.Ctx) error
	ListResponses(c fiber.Ctx) error
	GetResponse(c fiber.Ctx) error
	DeleteResponse(c fiber.Ctx) error
	PrintResponse(c fiber.Ctx) error
}

// NeedsAssessmentHandler handles questionnaire and response HTTP requests
type NeedsAssessmentHandler struct {
	baseHandler
	flow businessflow.NeedsAssessmentFlow
}

// NewNeedsAssessmentHandler creates a new needs assessment handler
func NewNeedsAssessmentHandler(flow businessflow.NeedsAssessmentFlow, logger *zap.Logger) *NeedsAssessmentHandler {
	return &NeedsAssessmentHandler{baseHandler: newBaseHandler(logger), flow: flow}
}

// ListQuestions
// @Summary List questionnaire questions
// @Description Active questions ordered by category and position. all=true includes inactive ones.
// @Tags Needs Assessment
// @Param all query bool false "Include inactive questions"
// @Success 200 {object} dto.APIResponse{data=dto.ListQuestionsResponse}
// @Router /api/v1/needs-assessment/questions [get]
func (h *NeedsAssessmentHandler) ListQuestions(c fiber.Ctx) error {
	activeOnly := !strings.EqualFold(c.Query("all"), "true")

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/questions")
	defer cancel()

	res, err := h.flow.ListQuestions(ctx, activeOnly)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list questions", "LIST_QUESTIONS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Questions retrieved successfully", res)
}

// CreateQuestion
// @Summary Create question
// @Tags Needs Assessment
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse}
// @Router /api/v1/needs-assessment/questions [post]
func (h *NeedsAssessmentHandler) CreateQuestion(c fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/questions")
	defer cancel()

	res, err := h.flow.CreateQuestion(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create question", "CREATE_QUESTION_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Question created successfully", res)
}

func (h *NeedsAssessmentHandler) UpdateQuestion(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpdateQuestionRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/questions/:id")
	defer cancel()

	res, err := h.flow.UpdateQuestion(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update question", "UPDATE_QUESTION_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Question updated successfully", res)
}

func (h *NeedsAssessmentHandler) DeleteQuestion(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/questions/:id")
	defer cancel()

	if err := h.flow.DeleteQuestion(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete question", "DELETE_QUESTION_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Question deleted successfully", nil)
}

// DeleteCategory
// @Summary Delete every question of a category
// @Tags Needs Assessment
// @Param category path string true "Category name"
// @Success 200 {object} dto.APIResponse
// @Router /api/v1/needs-assessment/categories/{category} [delete]
func (h *NeedsAssessmentHandler) DeleteCategory(c fiber.Ctx) error {
	category := c.Params("category")

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/categories/:category")
	defer cancel()

	deleted, err := h.flow.DeleteCategory(ctx, category)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to delete category", "DELETE_QUESTION_CATEGORY_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Category deleted successfully", fiber.Map{"deleted": deleted})
}

// CreateResponse
// @Summary Record a needs assessment
// @Tags Needs Assessment
// @Param request body dto.AssessmentRequest true "Answers"
// @Success 201 {object} dto.APIResponse{data=dto.AssessmentResponse}
// @Router /api/v1/needs-assessment/responses [post]
func (h *NeedsAssessmentHandler) CreateResponse(c fiber.Ctx) error {
	var req dto.AssessmentRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	var userID *string
	if actor := middleware.ActorFromContext(c); actor.ID != "" {
		userID = &actor.ID
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/responses")
	defer cancel()

	res, err := h.flow.CreateResponse(ctx, &req, userID)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to save needs assessment", "CREATE_ASSESSMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Needs assessment saved successfully", res)
}

func (h *NeedsAssessmentHandler) ListResponses(c fiber.Ctx) error {
	var req dto.PaginationRequest
	if ok, err := h.bindQuery(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/responses")
	defer cancel()

	res, err := h.flow.ListResponses(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list needs assessments", "LIST_ASSESSMENTS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Needs assessments retrieved successfully", res)
}

func (h *NeedsAssessmentHandler) GetResponse(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/responses/:id")
	defer cancel()

	res, err := h.flow.GetResponse(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to get needs assessment", "GET_ASSESSMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Needs assessment retrieved successfully", res)
}

func (h *NeedsAssessmentHandler) DeleteResponse(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/responses/:id")
	defer cancel()

	if err := h.flow.DeleteResponse(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete needs assessment", "DELETE_ASSESSMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Needs assessment deleted successfully", nil)
}

// PrintResponse
// @Summary Render the printable needs assessment
// @Tags Needs Assessment
// @Produce html
// @Param id path int true "Response ID"
// @Router /api/v1/needs-assessment/responses/{id}/print [get]
func (h *NeedsAssessmentHandler) PrintResponse(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/needs-assessment/responses/:id/print")
	defer cancel()

	html, err := h.flow.PrintResponse(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to render needs assessment", "PRINT_ASSESSMENT_FAILED")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(html)
}
