package models

import "time"

// Question answer types
const (
	QuestionTypeText     = "text"
	QuestionTypeTextarea = "textarea"
	QuestionTypeSelect   = "select"
	QuestionTypeCheckbox = "checkbox"
	QuestionTypeNumber   = "number"
)

// NeedsAssessmentQuestion is one entry of the needs assessment questionnaire.
// Table: needs_assessment_questions
type NeedsAssessmentQuestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Category   string    `gorm:"size:255;not null;index:idx_needs_assessment_questions_category" json:"category"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Type       string    `gorm:"size:20;not null;default:'text'" json:"type"`
	Options    []string  `gorm:"serializer:json;type:text" json:"options,omitempty"`
	IsRequired bool      `gorm:"not null;default:false" json:"is_required"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (NeedsAssessmentQuestion) TableName() string {
	return "needs_assessment_questions"
}

type NeedsAssessmentQuestionFilter struct {
	Category *string `json:"category,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// NeedsAssessmentResponse stores the answers of one questionnaire, keyed by question id.
// Table: needs_assessment_responses
type NeedsAssessmentResponse struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	ResponseNumber      string            `gorm:"size:50;not null;uniqueIndex:uk_needs_assessment_responses_number_day,priority:1" json:"response_number"`
	NumberDate          string            `gorm:"size:10;not null;default:'';uniqueIndex:uk_needs_assessment_responses_number_day,priority:2" json:"-"`
	ClientCompanyName   *string           `gorm:"size:255" json:"client_company_name,omitempty"`
	ClientContactPerson *string           `gorm:"size:255" json:"client_contact_person,omitempty"`
	ClientPhone         *string           `gorm:"size:50" json:"client_phone,omitempty"`
	ClientEmail         *string           `gorm:"size:255" json:"client_email,omitempty"`
	ClientAddress       *string           `gorm:"type:text" json:"client_address,omitempty"`
	Responses           map[string]string `gorm:"serializer:json;type:text;not null" json:"responses"`
	UserID              *string           `gorm:"size:64;index:idx_needs_assessment_responses_user_id" json:"user_id,omitempty"`
	CreatedAt           time.Time         `gorm:"index:idx_needs_assessment_responses_created_at" json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func (NeedsAssessmentResponse) TableName() string {
	return "needs_assessment_responses"
}

type NeedsAssessmentResponseFilter struct {
	UserID        *string    `json:"user_id,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
