// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/amirphl/ppp-rental/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		switch err.Kind() {
		case reflect.String:
			return err.Field() + " must be at least " + err.Param() + " characters"
		case reflect.Slice:
			return err.Field() + " must contain at least " + err.Param() + " elements"
		}
		return err.Field() + " must be at least " + err.Param()
	case "max":
		if err.Kind() == reflect.String {
			return err.Field() + " must be at most " + err.Param() + " characters"
		}
		return err.Field() + " must be at most " + err.Param()
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// baseHandler carries what every handler shares: validation, envelopes and error mapping
type baseHandler struct {
	validator *validator.Validate
	logger    *zap.Logger
}

func newBaseHandler(logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{validator: newValidator(), logger: logger}
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *baseHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	requestID := requestid.FromContext(c)
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}
	ctx = context.WithValue(ctx, utils.RequestIDKey, requestID)
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, requestTimeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx, cancel
}

// validate runs struct validation and writes the 400 response on failure.
// ok is false when a response has been written.
func (h *baseHandler) validate(c fiber.Ctx, req any) (bool, error) {
	if err := h.validator.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
		}
		details := make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			details[validationKey(fe)] = getValidationErrorMessage(fe)
		}
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
	}
	return true, nil
}

// validationKey turns "CreateQuoteRequest.items[0].quantity" into "items[0].quantity".
func validationKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// bindJSON decodes and validates the request body into req.
func (h *baseHandler) bindJSON(c fiber.Ctx, req any) (bool, error) {
	if err := c.Bind().JSON(req); err != nil {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	return h.validate(c, req)
}

// bindQuery decodes and validates query parameters into req.
func (h *baseHandler) bindQuery(c fiber.Ctx, req any) (bool, error) {
	if err := c.Bind().Query(req); err != nil {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY", err.Error())
	}
	return h.validate(c, req)
}

// paramID parses a positive numeric path parameter.
func (h *baseHandler) paramID(c fiber.Ctx, name string) (uint, bool, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+name, "INVALID_ID", raw)
	}
	return uint(id), true, nil
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var flowErrorMappings = []errorMapping{
	{businessflow.ErrCategoryNotFound, fiber.StatusNotFound, "CATEGORY_NOT_FOUND", "Equipment category not found"},
	{businessflow.ErrEquipmentNotFound, fiber.StatusNotFound, "EQUIPMENT_NOT_FOUND", "Equipment not found"},
	{businessflow.ErrEquipmentAdditionalNotFound, fiber.StatusNotFound, "EQUIPMENT_ADDITIONAL_NOT_FOUND", "Equipment additional not found"},
	{businessflow.ErrPricingTierNotFound, fiber.StatusNotFound, "PRICING_TIER_NOT_FOUND", "Pricing tier not found"},
	{businessflow.ErrServiceItemNotFound, fiber.StatusNotFound, "SERVICE_ITEM_NOT_FOUND", "Service item not found"},
	{businessflow.ErrServiceCostsNotFound, fiber.StatusNotFound, "SERVICE_COSTS_NOT_FOUND", "Service costs not found"},
	{businessflow.ErrPricingSchemaNotFound, fiber.StatusNotFound, "PRICING_SCHEMA_NOT_FOUND", "Pricing schema not found"},
	{businessflow.ErrQuoteNotFound, fiber.StatusNotFound, "QUOTE_NOT_FOUND", "Quote not found"},
	{businessflow.ErrQuoteItemNotFound, fiber.StatusNotFound, "QUOTE_ITEM_NOT_FOUND", "Quote item not found"},
	{businessflow.ErrClientNotFound, fiber.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found"},
	{businessflow.ErrAssessmentNotFound, fiber.StatusNotFound, "ASSESSMENT_NOT_FOUND", "Needs assessment not found"},
	{businessflow.ErrQuestionNotFound, fiber.StatusNotFound, "QUESTION_NOT_FOUND", "Needs assessment question not found"},
	{businessflow.ErrAPIKeyNotFound, fiber.StatusNotFound, "API_KEY_NOT_FOUND", "API key not found"},

	{businessflow.ErrConcurrentNumberingCollision, fiber.StatusConflict, "QUOTE_NUMBER_COLLISION", "Could not allocate a unique number, please retry"},
	{businessflow.ErrNumberingLockBusy, fiber.StatusConflict, "NUMBERING_LOCK_BUSY", "Numbering is busy, please retry"},
	{businessflow.ErrCategoryAlreadyExists, fiber.StatusConflict, "CATEGORY_ALREADY_EXISTS", "Equipment category already exists"},
	{businessflow.ErrEquipmentInUse, fiber.StatusConflict, "EQUIPMENT_IN_USE", "Equipment is used by quotes, deactivate it instead"},

	{businessflow.ErrNoPricingAvailable, fiber.StatusUnprocessableEntity, "NO_PRICING_AVAILABLE", "No pricing tier covers the requested rental period"},
}

// handleFlowError maps a business flow error onto the API envelope.
func (h *baseHandler) handleFlowError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsValidation(err) {
		var details any = err.Error()
		if fields := businessflow.ValidationFields(err); len(fields) > 0 {
			details = fields
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", details)
	}
	for _, m := range flowErrorMappings {
		if errors.Is(err, m.target) {
			var details any
			if m.status == fiber.StatusUnprocessableEntity {
				details = err.Error()
			}
			return h.ErrorResponse(c, m.status, m.message, m.code, details)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return h.ErrorResponse(c, fiber.StatusGatewayTimeout, "Request timed out", "REQUEST_TIMEOUT", nil)
	}

	code := fallbackCode
	var be *businessflow.BusinessError
	if errors.As(err, &be) && be.Code != "" {
		code = be.Code
	}
	h.logger.Error(fallbackMessage,
		zap.String("code", code),
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.Error(err),
	)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, code, nil)
}
