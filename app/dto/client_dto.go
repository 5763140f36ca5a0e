package dto

// ClientRequest is the payload of client create and update, and the inline
// client data of quote creation
type ClientRequest struct {
	CompanyName   string  `json:"company_name" validate:"required,max=255"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,max=255"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address       *string `json:"address,omitempty"`
	NIP           *string `json:"nip,omitempty" validate:"omitempty,max=20"`
}

type ClientResponse struct {
	ID            uint    `json:"id"`
	CompanyName   string  `json:"company_name"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	NIP           *string `json:"nip,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type ListClientsResponse struct {
	Message string           `json:"message"`
	Items   []ClientResponse `json:"items"`
}
