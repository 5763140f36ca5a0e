package businessflow_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
)

func TestCreateQuestionSelectNeedsOptions(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	_, err := h.assessments.CreateQuestion(ctx, &dto.CreateQuestionRequest{
		Category: "Zasilanie",
		Question: "Rodzaj gniazda",
		Type:     models.QuestionTypeSelect,
	})
	require.Error(t, err)
	assert.Contains(t, businessflow.ValidationFields(err), "options")

	q, err := h.assessments.CreateQuestion(ctx, &dto.CreateQuestionRequest{
		Category: " Zasilanie ",
		Question: "Rodzaj gniazda",
		Type:     models.QuestionTypeSelect,
		Options:  []string{"16A", "32A", "63A"},
		Position: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Zasilanie", q.Category)
	assert.True(t, q.IsActive)
	assert.Equal(t, []string{"16A", "32A", "63A"}, q.Options)
}

func TestGroupedQuestionsKeepCategoryOrder(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	_, err := h.fx.CreateTestQuestion("Lokalizacja", "Adres", 1)
	require.NoError(t, err)
	_, err = h.fx.CreateTestQuestion("Zasilanie", "Moc", 2)
	require.NoError(t, err)
	_, err = h.fx.CreateTestQuestion("Zasilanie", "Napięcie", 1)
	require.NoError(t, err)
	hidden, err := h.fx.CreateTestQuestion("Zasilanie", "Ukryte", 3)
	require.NoError(t, err)
	_, err = h.assessments.UpdateQuestion(ctx, hidden.ID, &dto.UpdateQuestionRequest{IsActive: utils.ToPtr(false)})
	require.NoError(t, err)

	res, err := h.assessments.GroupedQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, res.Questions["Zasilanie"], 2)
	assert.Equal(t, "Napięcie", res.Questions["Zasilanie"][0].Question)
	assert.Len(t, res.Questions["Lokalizacja"], 1)
	assert.Len(t, res.Categories, 2)

	all, err := h.assessments.ListQuestions(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
}

func TestDeleteQuestionCategory(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	for i, text := range []string{"Moc", "Napięcie"} {
		_, err := h.fx.CreateTestQuestion("Zasilanie", text, i+1)
		require.NoError(t, err)
	}
	_, err := h.fx.CreateTestQuestion("Lokalizacja", "Adres", 1)
	require.NoError(t, err)

	removed, err := h.assessments.DeleteCategory(ctx, "Zasilanie")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, int64(1), h.countRows(t, &models.NeedsAssessmentQuestion{}))

	_, err = h.assessments.DeleteCategory(ctx, " ")
	assert.True(t, businessflow.IsValidation(err))
}

func TestCreateResponseNumbersAndValidates(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	required, err := h.assessments.CreateQuestion(ctx, &dto.CreateQuestionRequest{
		Category:   "Zasilanie",
		Question:   "Jaka moc jest potrzebna?",
		Type:       models.QuestionTypeText,
		IsRequired: true,
	})
	require.NoError(t, err)
	key := strconv.FormatUint(uint64(required.ID), 10)

	_, err = h.assessments.CreateResponse(ctx, &dto.AssessmentRequest{Responses: map[string]string{key: "   "}}, nil)
	require.Error(t, err)
	assert.True(t, businessflow.IsValidation(err))
	assert.Contains(t, businessflow.ValidationFields(err), "responses."+key)
	assert.Zero(t, h.countRows(t, &models.NeedsAssessmentResponse{}))

	first, err := h.assessments.CreateResponse(ctx, &dto.AssessmentRequest{
		ClientCompanyName: utils.ToPtr("  Budimex S.A. "),
		ClientPhone:       utils.ToPtr(" "),
		Responses:         map[string]string{key: "100 kW"},
	}, utils.ToPtr("u-7"))
	require.NoError(t, err)
	assert.Equal(t, "01/10.2026", first.ResponseNumber)
	require.NotNil(t, first.ClientCompanyName)
	assert.Equal(t, "Budimex S.A.", *first.ClientCompanyName)
	assert.Nil(t, first.ClientPhone)
	require.NotNil(t, first.UserID)
	assert.Equal(t, "u-7", *first.UserID)

	second, err := h.assessments.CreateResponse(ctx, &dto.AssessmentRequest{Responses: map[string]string{key: "60 kW"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "02/10.2026", second.ResponseNumber)

	list, err := h.assessments.ListResponses(ctx, &dto.PaginationRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestPrintAndDeleteResponse(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()

	q, err := h.fx.CreateTestQuestion("Zasilanie", "Jaka moc jest potrzebna?", 1)
	require.NoError(t, err)
	res, err := h.assessments.CreateResponse(ctx, &dto.AssessmentRequest{
		Responses: map[string]string{strconv.FormatUint(uint64(q.ID), 10): "100 kW"},
	}, nil)
	require.NoError(t, err)

	html, err := h.assessments.PrintResponse(ctx, res.ID)
	require.NoError(t, err)
	assert.Contains(t, html, "Badanie Potrzeb #01/10.2026")
	assert.Contains(t, html, "Jaka moc jest potrzebna?")
	assert.Contains(t, html, "100 kW")

	require.NoError(t, h.assessments.DeleteResponse(ctx, res.ID))
	_, err = h.assessments.PrintResponse(ctx, res.ID)
	assert.True(t, businessflow.IsAssessmentNotFound(err))
}

func TestCreateResponseNumberingRestartsNextDay(t *testing.T) {
	h := newHarness(t, config.QuoteConfig{})
	ctx := context.Background()
	req := &dto.AssessmentRequest{Responses: map[string]string{}}

	for _, want := range []string{"01/10.2026", "02/10.2026"} {
		res, err := h.assessments.CreateResponse(ctx, req, nil)
		require.NoError(t, err)
		assert.Equal(t, want, res.ResponseNumber)
	}

	h.now = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	res, err := h.assessments.CreateResponse(ctx, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "01/10.2026", res.ResponseNumber)

	var sameNumber int64
	require.NoError(t, h.db.DB.Model(&models.NeedsAssessmentResponse{}).Where("response_number = ?", "01/10.2026").Count(&sameNumber).Error)
	assert.Equal(t, int64(2), sameNumber)
}
