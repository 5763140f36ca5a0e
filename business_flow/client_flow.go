package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/repository"
)

// ClientFlow manages the clients quotes are addressed to
type ClientFlow interface {
	ListClients(ctx context.Context) (*dto.ListClientsResponse, error)
	GetClient(ctx context.Context, id uint) (*dto.ClientResponse, error)
	CreateClient(ctx context.Context, req *dto.ClientRequest) (*dto.ClientResponse, error)
	UpdateClient(ctx context.Context, id uint, req *dto.ClientRequest) (*dto.ClientResponse, error)
}

type ClientFlowImpl struct {
	clientRepo repository.ClientRepository
}

func NewClientFlow(clientRepo repository.ClientRepository) ClientFlow {
	return &ClientFlowImpl{clientRepo: clientRepo}
}

func (f *ClientFlowImpl) ListClients(ctx context.Context) (*dto.ListClientsResponse, error) {
	rows, err := f.clientRepo.ByFilter(ctx, models.ClientFilter{}, "", 0, 0)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LIST_FAILED", "Failed to list clients", err)
	}
	items := make([]dto.ClientResponse, 0, len(rows))
	for _, c := range rows {
		items = append(items, toClientResponse(c))
	}
	return &dto.ListClientsResponse{Message: "Clients retrieved successfully", Items: items}, nil
}

func (f *ClientFlowImpl) GetClient(ctx context.Context, id uint) (*dto.ClientResponse, error) {
	client, err := f.clientRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to load client", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	res := toClientResponse(client)
	return &res, nil
}

func (f *ClientFlowImpl) CreateClient(ctx context.Context, req *dto.ClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, newValidationError("company_name", "is required")
	}
	client := clientFromRequest(req)
	client.CompanyName = strings.TrimSpace(req.CompanyName)
	if err := f.clientRepo.Save(ctx, client); err != nil {
		return nil, NewBusinessError("CLIENT_SAVE_FAILED", "Failed to save client", err)
	}
	res := toClientResponse(client)
	return &res, nil
}

func (f *ClientFlowImpl) UpdateClient(ctx context.Context, id uint, req *dto.ClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, newValidationError("company_name", "is required")
	}
	client, err := f.clientRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to load client", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	updated := clientFromRequest(req)
	updated.ID = client.ID
	updated.CompanyName = strings.TrimSpace(req.CompanyName)
	updated.CreatedAt = client.CreatedAt
	if err := f.clientRepo.Update(ctx, updated); err != nil {
		return nil, NewBusinessError("CLIENT_UPDATE_FAILED", "Failed to update client", err)
	}
	res := toClientResponse(updated)
	return &res, nil
}
