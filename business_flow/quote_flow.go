package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/pricing"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 100

// QuoteFlow handles staff and guest quotes and their priced lines
type QuoteFlow interface {
	ListQuotes(ctx context.Context, req *dto.PaginationRequest) (*dto.ListQuotesResponse, error)
	GetQuote(ctx context.Context, id uint) (*dto.QuoteResponse, error)
	CreateQuote(ctx context.Context, req *dto.CreateQuoteRequest, actor Actor) (*dto.QuoteResponse, error)
	CreateGuestQuote(ctx context.Context, req *dto.CreateGuestQuoteRequest) (*dto.QuoteResponse, error)
	UpdateQuote(ctx context.Context, id uint, req *dto.UpdateQuoteRequest) (*dto.QuoteResponse, error)
	DeleteQuote(ctx context.Context, id uint) error

	AddItem(ctx context.Context, req *dto.AddQuoteItemRequest) (*dto.QuoteItemMutationResponse, error)
	UpdateItem(ctx context.Context, itemID uint, req *dto.QuoteItemRequest) (*dto.QuoteItemMutationResponse, error)
	DeleteItem(ctx context.Context, itemID uint) (*dto.QuoteItemMutationResponse, error)
}

// QuoteRepos groups the repositories quote pricing reads and writes
type QuoteRepos struct {
	Equipment     repository.EquipmentRepository
	Pricing       repository.EquipmentPricingRepository
	Additional    repository.EquipmentAdditionalRepository
	Clients       repository.ClientRepository
	Quotes        repository.QuoteRepository
	QuoteItems    repository.QuoteItemRepository
	PricingSchema repository.PricingSchemaRepository
}

// quoteWriter persists numbered quotes together with their priced lines
type quoteWriter struct {
	db     *gorm.DB
	repos  QuoteRepos
	pricer *linePricer
	totals quoteTotals
}

func newQuoteWriter(db *gorm.DB, repos QuoteRepos, vatRate float64, defaults CrewDefaults) *quoteWriter {
	return &quoteWriter{
		db:     db,
		repos:  repos,
		pricer: newLinePricer(repos.Equipment, repos.Pricing, repos.Additional, defaults),
		totals: quoteTotals{
			quoteRepo:     repos.Quotes,
			quoteItemRepo: repos.QuoteItems,
			engine:        pricing.NewTotalsEngine(vatRate),
		},
	}
}

// insert stores quote under number with every item priced, then re-sums the
// totals. It must run inside the numbering transaction.
func (w *quoteWriter) insert(ctx context.Context, quote *models.Quote, number string, items []dto.QuoteItemRequest) error {
	quote.ID = 0
	quote.QuoteNumber = number
	quote.UUID = uuid.New()
	if err := w.repos.Quotes.Save(ctx, quote); err != nil {
		return err
	}

	for i := range items {
		item, _, err := w.pricer.price(ctx, &items[i], nil)
		if err != nil {
			return err
		}
		item.QuoteID = quote.ID
		if err := w.repos.QuoteItems.Save(ctx, item); err != nil {
			return NewBusinessError("QUOTE_ITEM_SAVE_FAILED", "Failed to save quote item", err)
		}
	}

	totals, err := w.totals.recalculate(ctx, quote.ID)
	if err != nil {
		return err
	}
	quote.TotalNet = totals.Net
	quote.TotalGross = totals.Gross
	return nil
}

// createClient validates and stores inline client data
func (w *quoteWriter) createClient(ctx context.Context, req *dto.ClientRequest) (uint, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return 0, newValidationError("company_name", "is required")
	}
	client := clientFromRequest(req)
	if err := w.repos.Clients.Save(ctx, client); err != nil {
		return 0, NewBusinessError("CLIENT_SAVE_FAILED", "Failed to save client", err)
	}
	return client.ID, nil
}

func (w *quoteWriter) loadQuote(ctx context.Context, id uint) (*dto.QuoteResponse, error) {
	quote, err := w.repos.Quotes.ByIDWithDetails(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUOTE_LOOKUP_FAILED", "Failed to load quote", err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}
	res := toQuoteResponse(quote)
	return &res, nil
}

// QuoteFlowImpl implements QuoteFlow
type QuoteFlowImpl struct {
	writer    *quoteWriter
	numberers *Numberers
	clock     Clock
	logger    *zap.Logger
}

func NewQuoteFlow(db *gorm.DB, repos QuoteRepos, numberers *Numberers, vatRate float64, defaults CrewDefaults, clock Clock, logger *zap.Logger) QuoteFlow {
	return &QuoteFlowImpl{
		writer:    newQuoteWriter(db, repos, vatRate, defaults),
		numberers: numberers,
		clock:     clockOrDefault(clock),
		logger:    loggerOrNop(logger),
	}
}

func (f *QuoteFlowImpl) ListQuotes(ctx context.Context, req *dto.PaginationRequest) (*dto.ListQuotesResponse, error) {
	limit, offset := defaultListLimit, 0
	if req != nil {
		if req.Limit > 0 {
			limit = req.Limit
		}
		offset = req.Offset
	}

	quotes, err := f.writer.repos.Quotes.ListWithClient(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("QUOTE_LIST_FAILED", "Failed to list quotes", err)
	}

	items := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, toQuoteResponse(q))
	}
	return &dto.ListQuotesResponse{Message: "Quotes retrieved successfully", Items: items}, nil
}

func (f *QuoteFlowImpl) GetQuote(ctx context.Context, id uint) (*dto.QuoteResponse, error) {
	return f.writer.loadQuote(ctx, id)
}

func (f *QuoteFlowImpl) CreateQuote(ctx context.Context, req *dto.CreateQuoteRequest, actor Actor) (*dto.QuoteResponse, error) {
	if req.ClientID == nil && req.Client == nil {
		return nil, newValidationError("client_id", ErrClientRequired.Error())
	}

	status := req.Status
	if status == "" {
		status = models.QuoteStatusDraft
	}
	now := f.clock()

	quote := &models.Quote{
		PricingSchemaID: req.PricingSchemaID,
		Status:          status,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		NumberDate:      f.numberers.Quotes.Day(now),
	}
	if actor.ID != "" {
		quote.CreatedByID = utils.ToPtr(actor.ID)
	}
	if actor.Name != "" {
		quote.CreatedByName = utils.ToPtr(actor.Name)
	}

	number, err := f.numberers.Quotes.Run(ctx, now, func(txCtx context.Context, number string) error {
		clientID, err := f.resolveClient(txCtx, req)
		if err != nil {
			return err
		}
		if err := f.checkPricingSchema(txCtx, req.PricingSchemaID); err != nil {
			return err
		}
		quote.ClientID = clientID
		return f.writer.insert(txCtx, quote, number, req.Items)
	})
	if err != nil {
		f.logger.Warn("Quote creation failed", append(requestFields(ctx), zap.Error(err))...)
		return nil, err
	}

	quotesCreatedTotal.WithLabelValues(channelStaff).Inc()
	f.logger.Info("Quote created",
		append(requestFields(ctx),
			zap.String("quote_number", number),
			zap.Uint("quote_id", quote.ID),
			zap.Int("items", len(req.Items)),
			zap.Float64("total_gross", quote.TotalGross),
		)...,
	)
	return f.writer.loadQuote(ctx, quote.ID)
}

func (f *QuoteFlowImpl) resolveClient(ctx context.Context, req *dto.CreateQuoteRequest) (uint, error) {
	if req.ClientID == nil {
		return f.writer.createClient(ctx, req.Client)
	}
	client, err := f.writer.repos.Clients.ByID(ctx, *req.ClientID)
	if err != nil {
		return 0, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to load client", err)
	}
	if client == nil {
		return 0, ErrClientNotFound
	}
	return client.ID, nil
}

func (f *QuoteFlowImpl) checkPricingSchema(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	schema, err := f.writer.repos.PricingSchema.ByID(ctx, *id)
	if err != nil {
		return NewBusinessError("PRICING_SCHEMA_LOOKUP_FAILED", "Failed to load pricing schema", err)
	}
	if schema == nil {
		return ErrPricingSchemaNotFound
	}
	return nil
}

func (f *QuoteFlowImpl) CreateGuestQuote(ctx context.Context, req *dto.CreateGuestQuoteRequest) (*dto.QuoteResponse, error) {
	if len(req.Items) == 0 {
		return nil, newValidationError("items", "at least one item is required")
	}

	now := f.clock()
	quote := &models.Quote{
		IsGuestQuote: true,
		GuestEmail:   utils.ToPtr(req.GuestEmail),
		Status:       models.QuoteStatusDraft,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		NumberDate:   f.numberers.GuestQuotes.Day(now),
	}

	number, err := f.numberers.GuestQuotes.Run(ctx, now, func(txCtx context.Context, number string) error {
		clientID, err := f.writer.createClient(txCtx, &req.Client)
		if err != nil {
			return err
		}
		quote.ClientID = clientID
		return f.writer.insert(txCtx, quote, number, req.Items)
	})
	if err != nil {
		f.logger.Warn("Guest quote creation failed", append(requestFields(ctx), zap.Error(err))...)
		return nil, err
	}

	quotesCreatedTotal.WithLabelValues(channelGuest).Inc()
	f.logger.Info("Guest quote created",
		append(requestFields(ctx), zap.String("quote_number", number), zap.Uint("quote_id", quote.ID))...,
	)
	return f.writer.loadQuote(ctx, quote.ID)
}

func (f *QuoteFlowImpl) UpdateQuote(ctx context.Context, id uint, req *dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	err := repository.WithTransaction(ctx, f.writer.db, func(txCtx context.Context) error {
		quote, err := f.writer.repos.Quotes.ByID(txCtx, id)
		if err != nil {
			return NewBusinessError("QUOTE_LOOKUP_FAILED", "Failed to load quote", err)
		}
		if quote == nil {
			return ErrQuoteNotFound
		}

		if req.ClientID != nil {
			client, err := f.writer.repos.Clients.ByID(txCtx, *req.ClientID)
			if err != nil {
				return NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to load client", err)
			}
			if client == nil {
				return ErrClientNotFound
			}
			quote.ClientID = client.ID
		}
		if req.PricingSchemaID != nil {
			if err := f.checkPricingSchema(txCtx, req.PricingSchemaID); err != nil {
				return err
			}
			quote.PricingSchemaID = req.PricingSchemaID
		}
		if req.Status != nil {
			quote.Status = *req.Status
		}
		if req.Notes != nil {
			quote.Notes = req.Notes
		}
		quote.UpdatedAt = f.clock()

		if err := f.writer.repos.Quotes.Update(txCtx, quote); err != nil {
			return NewBusinessError("QUOTE_UPDATE_FAILED", "Failed to update quote", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f.writer.loadQuote(ctx, id)
}

func (f *QuoteFlowImpl) DeleteQuote(ctx context.Context, id uint) error {
	deleted, err := f.writer.repos.Quotes.DeleteWithItems(ctx, id)
	if err != nil {
		return NewBusinessError("QUOTE_DELETE_FAILED", "Failed to delete quote", err)
	}
	if !deleted {
		return ErrQuoteNotFound
	}
	f.logger.Info("Quote deleted", append(requestFields(ctx), zap.Uint("quote_id", id))...)
	return nil
}

func (f *QuoteFlowImpl) AddItem(ctx context.Context, req *dto.AddQuoteItemRequest) (*dto.QuoteItemMutationResponse, error) {
	var res dto.QuoteItemMutationResponse
	err := repository.WithTransaction(ctx, f.writer.db, func(txCtx context.Context) error {
		quote, err := f.writer.repos.Quotes.ByID(txCtx, req.QuoteID)
		if err != nil {
			return NewBusinessError("QUOTE_LOOKUP_FAILED", "Failed to load quote", err)
		}
		if quote == nil {
			return ErrQuoteNotFound
		}

		item, equipmentName, err := f.writer.pricer.price(txCtx, &req.QuoteItemRequest, nil)
		if err != nil {
			return err
		}
		item.QuoteID = quote.ID
		if err := f.writer.repos.QuoteItems.Save(txCtx, item); err != nil {
			return NewBusinessError("QUOTE_ITEM_SAVE_FAILED", "Failed to save quote item", err)
		}

		return f.fillMutation(txCtx, &res, quote.ID, item, equipmentName)
	})
	if err != nil {
		return nil, err
	}
	res.Message = "Quote item added successfully"
	return &res, nil
}

func (f *QuoteFlowImpl) UpdateItem(ctx context.Context, itemID uint, req *dto.QuoteItemRequest) (*dto.QuoteItemMutationResponse, error) {
	var res dto.QuoteItemMutationResponse
	err := repository.WithTransaction(ctx, f.writer.db, func(txCtx context.Context) error {
		existing, err := f.writer.repos.QuoteItems.ByID(txCtx, itemID)
		if err != nil {
			return NewBusinessError("QUOTE_ITEM_LOOKUP_FAILED", "Failed to load quote item", err)
		}
		if existing == nil {
			return ErrQuoteItemNotFound
		}

		var snapshot *pricing.Snapshot
		if existing.EquipmentID == req.EquipmentID && existing.RentalPeriodDays == req.RentalPeriodDays {
			snapshot = &pricing.Snapshot{PricePerDay: existing.PricePerDay, DiscountPercent: existing.DiscountPercent}
		}

		item, equipmentName, err := f.writer.pricer.price(txCtx, req, snapshot)
		if err != nil {
			return err
		}
		item.ID = existing.ID
		item.QuoteID = existing.QuoteID
		item.CreatedAt = existing.CreatedAt
		if err := f.writer.repos.QuoteItems.Update(txCtx, item); err != nil {
			return NewBusinessError("QUOTE_ITEM_UPDATE_FAILED", "Failed to update quote item", err)
		}

		return f.fillMutation(txCtx, &res, existing.QuoteID, item, equipmentName)
	})
	if err != nil {
		return nil, err
	}
	res.Message = "Quote item updated successfully"
	return &res, nil
}

func (f *QuoteFlowImpl) DeleteItem(ctx context.Context, itemID uint) (*dto.QuoteItemMutationResponse, error) {
	var res dto.QuoteItemMutationResponse
	err := repository.WithTransaction(ctx, f.writer.db, func(txCtx context.Context) error {
		existing, err := f.writer.repos.QuoteItems.ByID(txCtx, itemID)
		if err != nil {
			return NewBusinessError("QUOTE_ITEM_LOOKUP_FAILED", "Failed to load quote item", err)
		}
		if existing == nil {
			return ErrQuoteItemNotFound
		}
		if _, err := f.writer.repos.QuoteItems.Delete(txCtx, itemID); err != nil {
			return NewBusinessError("QUOTE_ITEM_DELETE_FAILED", "Failed to delete quote item", err)
		}
		return f.fillMutation(txCtx, &res, existing.QuoteID, nil, "")
	})
	if err != nil {
		return nil, err
	}
	res.Message = "Quote item deleted successfully"
	return &res, nil
}

// fillMutation re-sums the quote and writes the result into res
func (f *QuoteFlowImpl) fillMutation(ctx context.Context, res *dto.QuoteItemMutationResponse, quoteID uint, item *models.QuoteItem, equipmentName string) error {
	totals, err := f.writer.totals.recalculate(ctx, quoteID)
	if err != nil {
		return err
	}
	res.TotalNet = totals.Net
	res.TotalGross = totals.Gross
	if item != nil {
		r := toQuoteItemResponse(item)
		r.EquipmentName = equipmentName
		res.Item = &r
	}
	return nil
}
