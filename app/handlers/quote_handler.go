package handlers

import (
	"fmt"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/app/middleware"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuoteHandlerInterface defines the contract for quote handlers
type QuoteHandlerInterface interface {
	ListQuotes(c fiber.Ctx) error
	GetQuote(c fiber.Ctx) error
	CreateQuote(c fiber.Ctx) error
	CreateGuestQuote(c fiber.Ctx) error
	UpdateQuote(c fiber.Ctx) error
	DeleteQuote(c fiber.Ctx) error
	PrintQuote(c fiber.Ctx) error
	ExportQuotes(c fiber.Ctx) error

	AddItem(c fiber.Ctx) error
	UpdateItem(c fiber.Ctx) error
	DeleteItem(c fiber.Ctx) error
}

// QuoteHandler handles quote and quote item HTTP requests
type QuoteHandler struct {
	baseHandler
	flow      businessflow.QuoteFlow
	documents businessflow.QuoteDocumentFlow
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(flow businessflow.QuoteFlow, documents businessflow.QuoteDocumentFlow, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{baseHandler: newBaseHandler(logger), flow: flow, documents: documents}
}

// ListQuotes
// @Summary List quotes, newest first
// @Tags Quotes
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.APIResponse{data=dto.ListQuotesResponse}
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c fiber.Ctx) error {
	var req dto.PaginationRequest
	if ok, err := h.bindQuery(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes")
	defer cancel()

	res, err := h.flow.ListQuotes(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list quotes", "LIST_QUOTES_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Quotes retrieved successfully", res)
}

// GetQuote
// @Summary Get quote with client and items
// @Tags Quotes
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuoteResponse}
// @Failure 404 {object} dto.APIResponse "Quote not found"
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes/:id")
	defer cancel()

	res, err := h.flow.GetQuote(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to get quote", "GET_QUOTE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Quote retrieved successfully", res)
}

// CreateQuote
// @Summary Create quote
// @Description Creates a numbered quote for an existing client id or inline client data. Items are optional.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.APIResponse{data=dto.QuoteResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Numbering collision"
// @Failure 422 {object} dto.APIResponse "No pricing tier for an item"
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(c fiber.Ctx) error {
	var req dto.CreateQuoteRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes")
	defer cancel()

	res, err := h.flow.CreateQuote(ctx, &req, middleware.ActorFromContext(c))
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create quote", "CREATE_QUOTE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Quote created successfully", res)
}

// CreateGuestQuote
// @Summary Create guest quote
// @Description Unauthenticated quote request numbered in the guest stream
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestQuoteRequest true "Guest quote"
// @Success 201 {object} dto.APIResponse{data=dto.QuoteResponse}
// @Router /api/v1/quotes/guest [post]
func (h *QuoteHandler) CreateGuestQuote(c fiber.Ctx) error {
	var req dto.CreateGuestQuoteRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes/guest")
	defer cancel()

	res, err := h.flow.CreateGuestQuote(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create guest quote", "CREATE_GUEST_QUOTE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Guest quote created successfully", res)
}

// UpdateQuote
// @Summary Update quote header
// @Tags Quotes
// @Param id path int true "Quote ID"
// @Param request body dto.UpdateQuoteRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=dto.QuoteResponse}
// @Router /api/v1/quotes/{id} [put]
func (h *QuoteHandler) UpdateQuote(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpdateQuoteRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes/:id")
	defer cancel()

	res, err := h.flow.UpdateQuote(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update quote", "UPDATE_QUOTE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Quote updated successfully", res)
}

// DeleteQuote
// @Summary Delete quote and its items
// @Tags Quotes
// @Param id path int true "Quote ID"
// @Router /api/v1/quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes/:id")
	defer cancel()

	if err := h.flow.DeleteQuote(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete quote", "DELETE_QUOTE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Quote deleted successfully", nil)
}

// PrintQuote
// @Summary Render the printable quote document
// @Tags Quotes
// @Produce html
// @Param id path int true "Quote ID"
// @Success 200 {string} string "HTML document"
// @Router /api/v1/quotes/{id}/print [get]
func (h *QuoteHandler) PrintQuote(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes/:id/print")
	defer cancel()

	html, err := h.documents.PrintQuote(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to render quote", "PRINT_QUOTE_FAILED")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(html)
}

// ExportQuotes
// @Summary Export all quotes as an XLSX workbook
// @Tags Quotes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Workbook"
// @Router /api/v1/quotes/export [get]
func (h *QuoteHandler) ExportQuotes(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/quotes/export")
	defer cancel()

	filename, data, err := h.documents.ExportQuotes(ctx)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to export quotes", "EXPORT_QUOTES_FAILED")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(data)
}

// AddItem
// @Summary Add a priced line to a quote
// @Tags Quote Items
// @Accept json
// @Param request body dto.AddQuoteItemRequest true "Item"
// @Success 201 {object} dto.APIResponse{data=dto.QuoteItemMutationResponse}
// @Failure 422 {object} dto.APIResponse "No pricing tier covers the rental period"
// @Router /api/v1/quote-items [post]
func (h *QuoteHandler) AddItem(c fiber.Ctx) error {
	var req dto.AddQuoteItemRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quote-items")
	defer cancel()

	res, err := h.flow.AddItem(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to add quote item", "ADD_QUOTE_ITEM_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Quote item added successfully", res)
}

// UpdateItem
// @Summary Update a quote line and re-total the quote
// @Tags Quote Items
// @Param id path int true "Quote item ID"
// @Param request body dto.QuoteItemRequest true "Item"
// @Success 200 {object} dto.APIResponse{data=dto.QuoteItemMutationResponse}
// @Router /api/v1/quote-items/{id} [put]
func (h *QuoteHandler) UpdateItem(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.QuoteItemRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quote-items/:id")
	defer cancel()

	res, err := h.flow.UpdateItem(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update quote item", "UPDATE_QUOTE_ITEM_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Quote item updated successfully", res)
}

// DeleteItem
// @Summary Remove a quote line and re-total the quote
// @Tags Quote Items
// @Param id path int true "Quote item ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuoteItemMutationResponse}
// @Router /api/v1/quote-items/{id} [delete]
func (h *QuoteHandler) DeleteItem(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/quote-items/:id")
	defer cancel()

	res, err := h.flow.DeleteItem(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to delete quote item", "DELETE_QUOTE_ITEM_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Quote item deleted successfully", res)
}
