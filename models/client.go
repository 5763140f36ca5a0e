package models

import "time"

// Client is the company a quote is addressed to.
// Table: clients
type Client struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CompanyName   string    `gorm:"size:255;not null;index:idx_clients_company_name" json:"company_name"`
	ContactPerson *string   `gorm:"size:255" json:"contact_person,omitempty"`
	Email         *string   `gorm:"size:255" json:"email,omitempty"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	Address       *string   `gorm:"type:text" json:"address,omitempty"`
	NIP           *string   `gorm:"column:nip;size:20" json:"nip,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

type ClientFilter struct {
	CompanyName *string `json:"company_name,omitempty"`
}
