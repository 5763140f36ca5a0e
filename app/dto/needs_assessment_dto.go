package dto

type QuestionResponse struct {
	ID         uint     `json:"id"`
	Category   string   `json:"category"`
	Question   string   `json:"question"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	IsRequired bool     `json:"is_required"`
	Position   int      `json:"position"`
	IsActive   bool     `json:"is_active"`
}

type CreateQuestionRequest struct {
	Category   string   `json:"category" validate:"required,max=255"`
	Question   string   `json:"question" validate:"required,max=2000"`
	Type       string   `json:"type" validate:"required,oneof=text textarea select checkbox number"`
	Options    []string `json:"options,omitempty" validate:"omitempty,dive,max=255"`
	IsRequired bool     `json:"is_required"`
	Position   int      `json:"position" validate:"gte=0"`
}

type UpdateQuestionRequest struct {
	Category   *string  `json:"category,omitempty" validate:"omitempty,min=1,max=255"`
	Question   *string  `json:"question,omitempty" validate:"omitempty,min=1,max=2000"`
	Type       *string  `json:"type,omitempty" validate:"omitempty,oneof=text textarea select checkbox number"`
	Options    []string `json:"options,omitempty" validate:"omitempty,dive,max=255"`
	IsRequired *bool    `json:"is_required,omitempty"`
	Position   *int     `json:"position,omitempty" validate:"omitempty,gte=0"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

type ListQuestionsResponse struct {
	Message string             `json:"message"`
	Items   []QuestionResponse `json:"items"`
}

// GroupedQuestionsResponse lists the questions per category in category order
type GroupedQuestionsResponse struct {
	Message    string                        `json:"message"`
	Categories []string                      `json:"categories"`
	Questions  map[string][]QuestionResponse `json:"questions"`
}

// AssessmentRequest carries the answers keyed by question id
type AssessmentRequest struct {
	ClientCompanyName   *string           `json:"client_company_name,omitempty" validate:"omitempty,max=255"`
	ClientContactPerson *string           `json:"client_contact_person,omitempty" validate:"omitempty,max=255"`
	ClientPhone         *string           `json:"client_phone,omitempty" validate:"omitempty,max=50"`
	ClientEmail         *string           `json:"client_email,omitempty" validate:"omitempty,email,max=255"`
	ClientAddress       *string           `json:"client_address,omitempty"`
	Responses           map[string]string `json:"responses" validate:"required"`
}

type AssessmentResponse struct {
	ID                  uint              `json:"id"`
	ResponseNumber      string            `json:"response_number"`
	ClientCompanyName   *string           `json:"client_company_name,omitempty"`
	ClientContactPerson *string           `json:"client_contact_person,omitempty"`
	ClientPhone         *string           `json:"client_phone,omitempty"`
	ClientEmail         *string           `json:"client_email,omitempty"`
	ClientAddress       *string           `json:"client_address,omitempty"`
	Responses           map[string]string `json:"responses"`
	UserID              *string           `json:"user_id,omitempty"`
	CreatedAt           string            `json:"created_at"`
}

type ListAssessmentsResponse struct {
	Message string               `json:"message"`
	Items   []AssessmentResponse `json:"items"`
}
