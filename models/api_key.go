package models

import "time"

// APIKey grants a third party access to the public endpoints. Only the
// BLAKE2b-256 hex digest of the raw key is stored.
// Table: api_keys
type APIKey struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	KeyHash     string     `gorm:"size:64;not null;uniqueIndex:uk_api_keys_key_hash" json:"-"`
	Prefix      string     `gorm:"size:16;not null" json:"prefix"`
	Permissions []string   `gorm:"serializer:json;type:text;not null" json:"permissions"`
	IsActive    *bool      `gorm:"not null;default:true" json:"is_active"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

// HasPermission reports whether the key carries perm or the wildcard permission.
func (k APIKey) HasPermission(perm string) bool {
	for _, p := range k.Permissions {
		if p == perm || p == "*" {
			return true
		}
	}
	return false
}

type APIKeyFilter struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
