package dto

type APIKeyResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Prefix      string   `json:"prefix"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
	LastUsedAt  *string  `json:"last_used_at,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

type CreateAPIKeyRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,oneof=quotes:create assessments:create *"`
}

// CreateAPIKeyResponse is the only place the raw key is ever returned
type CreateAPIKeyResponse struct {
	Message string         `json:"message"`
	Key     string         `json:"key"`
	APIKey  APIKeyResponse `json:"api_key"`
}

type UpdateAPIKeyRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ListAPIKeysResponse struct {
	Message string           `json:"message"`
	Items   []APIKeyResponse `json:"items"`
}
