package render

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
)

// AssessmentDocument is a needs assessment response with the questionnaire
// it answers. Questions are expected in position order.
type AssessmentDocument struct {
	Response    models.NeedsAssessmentResponse
	Questions   []models.NeedsAssessmentQuestion
	CompanyName string
	GeneratedAt time.Time
	Location    *time.Location
}

type assessmentView struct {
	Title       string
	CompanyName string
	Number      string
	CreatedAt   string
	GeneratedAt string
	Client      *assessmentClientView
	Categories  []categoryView
}

type assessmentClientView struct {
	CompanyName   string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}

type categoryView struct {
	Name    string
	Answers []answerView
}

type answerView struct {
	Question string
	Answer   string
}

// RenderAssessment renders the print view of a needs assessment response.
// Unanswered questions and categories without answers are left out.
func (r *Renderer) RenderAssessment(doc AssessmentDocument) (string, error) {
	var buf bytes.Buffer
	if err := r.assessment.Execute(&buf, buildAssessmentView(doc)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildAssessmentView(doc AssessmentDocument) assessmentView {
	resp := doc.Response
	v := assessmentView{
		Title:       "Badanie Potrzeb #" + resp.ResponseNumber,
		CompanyName: doc.CompanyName,
		Number:      resp.ResponseNumber,
		CreatedAt:   "Nieznana",
		GeneratedAt: FormatDateTime(doc.GeneratedAt, doc.Location),
	}
	if v.CompanyName == "" {
		v.CompanyName = "Sebastian Popiel :: PPP :: Program"
	}
	if !resp.CreatedAt.IsZero() {
		v.CreatedAt = FormatShortDate(resp.CreatedAt, doc.Location)
	}
	if company := utils.Deref(resp.ClientCompanyName); company != "" {
		v.Client = &assessmentClientView{
			CompanyName:   company,
			ContactPerson: utils.Deref(resp.ClientContactPerson),
			Phone:         utils.Deref(resp.ClientPhone),
			Email:         utils.Deref(resp.ClientEmail),
			Address:       utils.Deref(resp.ClientAddress),
		}
	}

	var categories []categoryView
	index := make(map[string]int)
	for _, q := range doc.Questions {
		i, ok := index[q.Category]
		if !ok {
			i = len(categories)
			index[q.Category] = i
			categories = append(categories, categoryView{Name: q.Category})
		}
		answer := resp.Responses[strconv.FormatUint(uint64(q.ID), 10)]
		if strings.TrimSpace(answer) == "" {
			continue
		}
		categories[i].Answers = append(categories[i].Answers, answerView{Question: q.Question, Answer: answer})
	}
	for _, c := range categories {
		if len(c.Answers) > 0 {
			v.Categories = append(v.Categories, c)
		}
	}
	return v
}
