package businessflow

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PublicFlow serves the API key gated endpoints for external integrations
type PublicFlow interface {
	ListEquipment(ctx context.Context) (*dto.PublicEquipmentListResponse, error)
	CreateQuote(ctx context.Context, req *dto.PublicQuoteRequest) (*dto.PublicQuoteResponse, error)
	ListQuestions(ctx context.Context) (*dto.GroupedQuestionsResponse, error)
	CreateAssessment(ctx context.Context, req *dto.AssessmentRequest) (*dto.PublicAssessmentResponse, error)
}

type PublicFlowImpl struct {
	writer          *quoteWriter
	numberers       *Numberers
	assessments     NeedsAssessmentFlow
	cache           CatalogCache
	defaultSchemaID uint
	clock           Clock
	logger          *zap.Logger
}

func NewPublicFlow(
	db *gorm.DB,
	repos QuoteRepos,
	numberers *Numberers,
	assessments NeedsAssessmentFlow,
	cache CatalogCache,
	vatRate float64,
	defaults CrewDefaults,
	defaultSchemaID uint,
	clock Clock,
	logger *zap.Logger,
) PublicFlow {
	if cache == nil {
		cache = NoopCatalogCache{}
	}
	return &PublicFlowImpl{
		writer:          newQuoteWriter(db, repos, vatRate, defaults),
		numberers:       numberers,
		assessments:     assessments,
		cache:           cache,
		defaultSchemaID: defaultSchemaID,
		clock:           clockOrDefault(clock),
		logger:          loggerOrNop(logger),
	}
}

// ListEquipment returns active equipment in stock, served from the cache when warm.
func (f *PublicFlowImpl) ListEquipment(ctx context.Context) (*dto.PublicEquipmentListResponse, error) {
	if bs, ok, err := f.cache.Get(ctx); err != nil {
		f.logger.Warn("Catalog cache read failed", append(requestFields(ctx), zap.Error(err))...)
	} else if ok {
		var cached dto.PublicEquipmentListResponse
		if err := json.Unmarshal(bs, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := f.writer.repos.Equipment.ListPublic(ctx)
	if err != nil {
		return nil, NewBusinessError("EQUIPMENT_LIST_FAILED", "Failed to list equipment", err)
	}

	res := &dto.PublicEquipmentListResponse{
		Message: "Equipment retrieved successfully",
		Items:   make([]dto.PublicEquipmentResponse, 0, len(rows)),
	}
	for _, e := range rows {
		item := dto.PublicEquipmentResponse{
			ID:                e.ID,
			Name:              e.Name,
			CategoryID:        e.CategoryID,
			Description:       e.Description,
			Model:             e.Model,
			Power:             e.Power,
			AvailableQuantity: e.AvailableQuantity,
			ImageURL:          e.ImageURL,
			Pricing:           toPricingTierResponses(e.Pricing),
		}
		if e.Category != nil {
			item.Category = e.Category.Name
		}
		res.Items = append(res.Items, item)
	}

	if bs, err := json.Marshal(res); err == nil {
		if err := f.cache.Set(ctx, bs); err != nil {
			f.logger.Warn("Catalog cache write failed", append(requestFields(ctx), zap.Error(err))...)
		}
	}
	return res, nil
}

// upsertClient returns the client with req's company name, creating it or
// refreshing the contact details that were sent.
func (f *PublicFlowImpl) upsertClient(ctx context.Context, req *dto.PublicQuoteRequest) (uint, error) {
	name := strings.TrimSpace(req.ClientCompanyName)
	if name == "" {
		return 0, newValidationError("client_company_name", "is required")
	}

	client, err := f.writer.repos.Clients.ByCompanyName(ctx, name)
	if err != nil {
		return 0, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to look up client", err)
	}
	if client == nil {
		return f.writer.createClient(ctx, &dto.ClientRequest{
			CompanyName:   name,
			ContactPerson: req.ClientContactPerson,
			Email:         req.ClientEmail,
			Phone:         req.ClientPhone,
			Address:       req.ClientAddress,
		})
	}

	changed := false
	for _, field := range []struct {
		dst **string
		src *string
	}{
		{&client.ContactPerson, req.ClientContactPerson},
		{&client.Email, req.ClientEmail},
		{&client.Phone, req.ClientPhone},
		{&client.Address, req.ClientAddress},
	} {
		if field.src != nil && strings.TrimSpace(*field.src) != "" {
			*field.dst = field.src
			changed = true
		}
	}
	if changed {
		if err := f.writer.repos.Clients.Update(ctx, client); err != nil {
			return 0, NewBusinessError("CLIENT_UPDATE_FAILED", "Failed to update client", err)
		}
	}
	return client.ID, nil
}

// CreateQuote prices every requested line; any line without a tier aborts the whole quote.
func (f *PublicFlowImpl) CreateQuote(ctx context.Context, req *dto.PublicQuoteRequest) (*dto.PublicQuoteResponse, error) {
	if len(req.Equipment) == 0 {
		return nil, newValidationError("equipment", "at least one item is required")
	}

	items := make([]dto.QuoteItemRequest, 0, len(req.Equipment))
	for _, e := range req.Equipment {
		items = append(items, dto.QuoteItemRequest{
			EquipmentID:      e.EquipmentID,
			Quantity:         e.Quantity,
			RentalPeriodDays: e.RentalPeriod,
		})
	}

	now := f.clock()
	quote := &models.Quote{
		Status:    models.QuoteStatusDraft,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if f.defaultSchemaID != 0 {
		id := f.defaultSchemaID
		quote.PricingSchemaID = &id
	}

	quote.NumberDate = f.numberers.Quotes.Day(now)

	number, err := f.numberers.Quotes.Run(ctx, now, func(txCtx context.Context, number string) error {
		clientID, err := f.upsertClient(txCtx, req)
		if err != nil {
			return err
		}
		quote.ClientID = clientID
		return f.writer.insert(txCtx, quote, number, items)
	})
	if err != nil {
		f.logger.Warn("Public quote creation failed", append(requestFields(ctx), zap.Error(err))...)
		return nil, err
	}

	quotesCreatedTotal.WithLabelValues(channelPublic).Inc()
	f.logger.Info("Public quote created",
		append(requestFields(ctx), zap.String("quote_number", number), zap.Uint("quote_id", quote.ID))...,
	)

	full, err := f.writer.loadQuote(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	return &dto.PublicQuoteResponse{Message: "Quote created successfully", Quote: *full}, nil
}

func (f *PublicFlowImpl) ListQuestions(ctx context.Context) (*dto.GroupedQuestionsResponse, error) {
	return f.assessments.GroupedQuestions(ctx)
}

func (f *PublicFlowImpl) CreateAssessment(ctx context.Context, req *dto.AssessmentRequest) (*dto.PublicAssessmentResponse, error) {
	res, err := f.assessments.CreateResponse(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	return &dto.PublicAssessmentResponse{
		Message:        "Needs assessment submitted successfully",
		ID:             res.ID,
		ResponseNumber: res.ResponseNumber,
	}, nil
}
