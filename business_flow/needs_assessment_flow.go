package businessflow

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/app/render"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/pricing"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NeedsAssessmentFlow manages the questionnaire and the numbered responses to it
type NeedsAssessmentFlow interface {
	ListQuestions(ctx context.Context, activeOnly bool) (*dto.ListQuestionsResponse, error)
	GroupedQuestions(ctx context.Context) (*dto.GroupedQuestionsResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id uint, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id uint) error
	DeleteCategory(ctx context.Context, category string) (int, error)

	CreateResponse(ctx context.Context, req *dto.AssessmentRequest, userID *string) (*dto.AssessmentResponse, error)
	ListResponses(ctx context.Context, req *dto.PaginationRequest) (*dto.ListAssessmentsResponse, error)
	GetResponse(ctx context.Context, id uint) (*dto.AssessmentResponse, error)
	DeleteResponse(ctx context.Context, id uint) error
	PrintResponse(ctx context.Context, id uint) (string, error)
}

type NeedsAssessmentFlowImpl struct {
	db           *gorm.DB
	questionRepo repository.NeedsAssessmentQuestionRepository
	responseRepo repository.NeedsAssessmentResponseRepository
	numberer     *Numberer
	renderer     *render.Renderer
	settings     DocumentSettings
	clock        Clock
	logger       *zap.Logger
}

func NewNeedsAssessmentFlow(
	db *gorm.DB,
	questionRepo repository.NeedsAssessmentQuestionRepository,
	responseRepo repository.NeedsAssessmentResponseRepository,
	numberers *Numberers,
	renderer *render.Renderer,
	settings DocumentSettings,
	clock Clock,
	logger *zap.Logger,
) NeedsAssessmentFlow {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &NeedsAssessmentFlowImpl{
		db:           db,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		numberer:     numberers.Assessments,
		renderer:     renderer,
		settings:     settings,
		clock:        clockOrDefault(clock),
		logger:       loggerOrNop(logger),
	}
}

func (f *NeedsAssessmentFlowImpl) ListQuestions(ctx context.Context, activeOnly bool) (*dto.ListQuestionsResponse, error) {
	rows, err := f.questionRepo.ListOrdered(ctx, activeOnly)
	if err != nil {
		return nil, NewBusinessError("QUESTION_LIST_FAILED", "Failed to list questions", err)
	}
	items := make([]dto.QuestionResponse, 0, len(rows))
	for _, q := range rows {
		items = append(items, toQuestionResponse(q))
	}
	return &dto.ListQuestionsResponse{Message: "Questions retrieved successfully", Items: items}, nil
}

// GroupedQuestions groups the active questions by category, categories in name order.
func (f *NeedsAssessmentFlowImpl) GroupedQuestions(ctx context.Context) (*dto.GroupedQuestionsResponse, error) {
	rows, err := f.questionRepo.ListOrdered(ctx, true)
	if err != nil {
		return nil, NewBusinessError("QUESTION_LIST_FAILED", "Failed to list questions", err)
	}

	res := &dto.GroupedQuestionsResponse{
		Message:    "Questions retrieved successfully",
		Categories: []string{},
		Questions:  map[string][]dto.QuestionResponse{},
	}
	for _, q := range rows {
		if _, ok := res.Questions[q.Category]; !ok {
			res.Categories = append(res.Categories, q.Category)
		}
		res.Questions[q.Category] = append(res.Questions[q.Category], toQuestionResponse(q))
	}
	return res, nil
}

func validateQuestionType(kind string, options []string) error {
	switch kind {
	case models.QuestionTypeText, models.QuestionTypeTextarea, models.QuestionTypeNumber, models.QuestionTypeCheckbox:
		return nil
	case models.QuestionTypeSelect:
		if len(options) == 0 {
			return newValidationError("options", "select questions need at least one option")
		}
		return nil
	default:
		return newValidationError("type", "must be one of text, textarea, select, checkbox, number")
	}
}

func (f *NeedsAssessmentFlowImpl) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	category := strings.TrimSpace(req.Category)
	text := strings.TrimSpace(req.Question)
	if category == "" {
		return nil, newValidationError("category", "is required")
	}
	if text == "" {
		return nil, newValidationError("question", "is required")
	}
	if err := validateQuestionType(req.Type, req.Options); err != nil {
		return nil, err
	}

	q := &models.NeedsAssessmentQuestion{
		Category:   category,
		Question:   text,
		Type:       req.Type,
		Options:    req.Options,
		IsRequired: req.IsRequired,
		Position:   req.Position,
		IsActive:   utils.ToPtr(true),
	}
	if err := f.questionRepo.Save(ctx, q); err != nil {
		return nil, NewBusinessError("QUESTION_SAVE_FAILED", "Failed to save question", err)
	}
	res := toQuestionResponse(q)
	return &res, nil
}

func (f *NeedsAssessmentFlowImpl) UpdateQuestion(ctx context.Context, id uint, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	q, err := f.questionRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUESTION_LOOKUP_FAILED", "Failed to load question", err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}

	if req.Category != nil {
		q.Category = strings.TrimSpace(*req.Category)
	}
	if req.Question != nil {
		q.Question = strings.TrimSpace(*req.Question)
	}
	if req.Type != nil {
		q.Type = *req.Type
	}
	if req.Options != nil {
		q.Options = req.Options
	}
	if req.IsRequired != nil {
		q.IsRequired = *req.IsRequired
	}
	if req.Position != nil {
		q.Position = *req.Position
	}
	if req.IsActive != nil {
		q.IsActive = utils.ToPtr(*req.IsActive)
	}
	if q.Category == "" {
		return nil, newValidationError("category", "must not be empty")
	}
	if q.Question == "" {
		return nil, newValidationError("question", "must not be empty")
	}
	if err := validateQuestionType(q.Type, q.Options); err != nil {
		return nil, err
	}

	if err := f.questionRepo.Update(ctx, q); err != nil {
		return nil, NewBusinessError("QUESTION_UPDATE_FAILED", "Failed to update question", err)
	}
	res := toQuestionResponse(q)
	return &res, nil
}

func (f *NeedsAssessmentFlowImpl) DeleteQuestion(ctx context.Context, id uint) error {
	deleted, err := f.questionRepo.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("QUESTION_DELETE_FAILED", "Failed to delete question", err)
	}
	if !deleted {
		return ErrQuestionNotFound
	}
	return nil
}

// DeleteCategory removes every question of category and returns how many went.
func (f *NeedsAssessmentFlowImpl) DeleteCategory(ctx context.Context, category string) (int, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return 0, newValidationError("category", "is required")
	}

	var removed int
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		rows, err := f.questionRepo.ByFilter(txCtx, models.NeedsAssessmentQuestionFilter{Category: &category}, "", 0, 0)
		if err != nil {
			return NewBusinessError("QUESTION_LIST_FAILED", "Failed to list questions", err)
		}
		if len(rows) == 0 {
			return ErrQuestionNotFound
		}
		for _, q := range rows {
			if _, err := f.questionRepo.Delete(txCtx, q.ID); err != nil {
				return NewBusinessError("QUESTION_DELETE_FAILED", "Failed to delete question", err)
			}
		}
		removed = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// missingAnswers lists the required active questions left blank in responses.
func missingAnswers(questions []*models.NeedsAssessmentQuestion, responses map[string]string) error {
	v := &pricing.ValidationError{}
	for _, q := range questions {
		if !q.IsRequired {
			continue
		}
		key := strconv.FormatUint(uint64(q.ID), 10)
		if strings.TrimSpace(responses[key]) == "" {
			if v.Fields == nil {
				v.Fields = map[string]string{}
			}
			v.Fields["responses."+key] = "answer is required"
		}
	}
	if len(v.Fields) > 0 {
		return NewBusinessError("VALIDATION_ERROR", "Validation failed", v)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (f *NeedsAssessmentFlowImpl) CreateResponse(ctx context.Context, req *dto.AssessmentRequest, userID *string) (*dto.AssessmentResponse, error) {
	if req.Responses == nil {
		return nil, newValidationError("responses", "is required")
	}

	now := f.clock()
	response := &models.NeedsAssessmentResponse{
		ClientCompanyName:   trimmedOrNil(req.ClientCompanyName),
		ClientContactPerson: trimmedOrNil(req.ClientContactPerson),
		ClientPhone:         trimmedOrNil(req.ClientPhone),
		ClientEmail:         trimmedOrNil(req.ClientEmail),
		ClientAddress:       trimmedOrNil(req.ClientAddress),
		Responses:           req.Responses,
		UserID:              userID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	number, err := f.numberer.Run(ctx, now, func(txCtx context.Context, number string) error {
		questions, err := f.questionRepo.ListOrdered(txCtx, true)
		if err != nil {
			return NewBusinessError("QUESTION_LIST_FAILED", "Failed to list questions", err)
		}
		if err := missingAnswers(questions, req.Responses); err != nil {
			return err
		}
		response.ID = 0
		response.ResponseNumber = number
		response.NumberDate = f.numberer.Day(now)
		if err := f.responseRepo.Save(txCtx, response); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("Needs assessment recorded",
		append(requestFields(ctx), zap.String("response_number", number), zap.Uint("response_id", response.ID))...,
	)
	res := toAssessmentResponse(response)
	return &res, nil
}

func (f *NeedsAssessmentFlowImpl) ListResponses(ctx context.Context, req *dto.PaginationRequest) (*dto.ListAssessmentsResponse, error) {
	limit, offset := defaultListLimit, 0
	if req != nil {
		if req.Limit > 0 {
			limit = req.Limit
		}
		offset = req.Offset
	}
	rows, err := f.responseRepo.ByFilter(ctx, models.NeedsAssessmentResponseFilter{}, "", limit, offset)
	if err != nil {
		return nil, NewBusinessError("ASSESSMENT_LIST_FAILED", "Failed to list needs assessments", err)
	}
	items := make([]dto.AssessmentResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toAssessmentResponse(r))
	}
	return &dto.ListAssessmentsResponse{Message: "Needs assessments retrieved successfully", Items: items}, nil
}

func (f *NeedsAssessmentFlowImpl) load(ctx context.Context, id uint) (*models.NeedsAssessmentResponse, error) {
	r, err := f.responseRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ASSESSMENT_LOOKUP_FAILED", "Failed to load needs assessment", err)
	}
	if r == nil {
		return nil, ErrAssessmentNotFound
	}
	return r, nil
}

func (f *NeedsAssessmentFlowImpl) GetResponse(ctx context.Context, id uint) (*dto.AssessmentResponse, error) {
	r, err := f.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toAssessmentResponse(r)
	return &res, nil
}

func (f *NeedsAssessmentFlowImpl) DeleteResponse(ctx context.Context, id uint) error {
	deleted, err := f.responseRepo.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("ASSESSMENT_DELETE_FAILED", "Failed to delete needs assessment", err)
	}
	if !deleted {
		return ErrAssessmentNotFound
	}
	return nil
}

func (f *NeedsAssessmentFlowImpl) PrintResponse(ctx context.Context, id uint) (string, error) {
	r, err := f.load(ctx, id)
	if err != nil {
		return "", err
	}
	questions, err := f.questionRepo.ListOrdered(ctx, false)
	if err != nil {
		return "", NewBusinessError("QUESTION_LIST_FAILED", "Failed to list questions", err)
	}
	html, err := f.renderer.RenderAssessment(render.AssessmentDocument{
		Response:    *r,
		Questions:   deref(questions),
		CompanyName: f.settings.CompanyName,
		GeneratedAt: f.clock(),
		Location:    f.settings.Location,
	})
	if err != nil {
		return "", NewBusinessError("ASSESSMENT_RENDER_FAILED", "Failed to render needs assessment", err)
	}
	documentsRenderedTotal.WithLabelValues("assessment").Inc()
	return html, nil
}
