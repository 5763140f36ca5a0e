package handlers

import (
	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ClientHandlerInterface defines the contract for client handlers
type ClientHandlerInterface interface {
	ListClients(c fiber.Ctx) error
	GetClient(c fiber.Ctx) error
	CreateClient(c fiber.Ctx) error
	UpdateClient(c fiber.Ctx) error
}

// ClientHandler handles client HTTP requests
type ClientHandler struct {
	baseHandler
	flow businessflow.ClientFlow
}

// NewClientHandler creates a new client handler
func NewClientHandler(flow businessflow.ClientFlow, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{baseHandler: newBaseHandler(logger), flow: flow}
}

// ListClients
// @Summary List clients
// @Tags Clients
// @Success 200 {object} dto.APIResponse{data=dto.ListClientsResponse}
// @Router /api/v1/clients [get]
func (h *ClientHandler) ListClients(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/clients")
	defer cancel()

	res, err := h.flow.ListClients(ctx)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list clients", "LIST_CLIENTS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Clients retrieved successfully", res)
}

func (h *ClientHandler) GetClient(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/clients/:id")
	defer cancel()

	res, err := h.flow.GetClient(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to get client", "GET_CLIENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Client retrieved successfully", res)
}

// CreateClient
// @Summary Create client
// @Tags Clients
// @Param request body dto.ClientRequest true "Client"
// @Success 201 {object} dto.APIResponse{data=dto.ClientResponse}
// @Router /api/v1/clients [post]
func (h *ClientHandler) CreateClient(c fiber.Ctx) error {
	var req dto.ClientRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/clients")
	defer cancel()

	res, err := h.flow.CreateClient(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create client", "CREATE_CLIENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Client created successfully", res)
}

func (h *ClientHandler) UpdateClient(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.ClientRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/clients/:id")
	defer cancel()

	res, err := h.flow.UpdateClient(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update client", "UPDATE_CLIENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Client updated successfully", res)
}
