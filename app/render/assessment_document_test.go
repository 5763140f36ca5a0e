package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
)

func TestRenderAssessment(t *testing.T) {
	doc := AssessmentDocument{
		Response: models.NeedsAssessmentResponse{
			ResponseNumber:      "02/10.2026",
			ClientCompanyName:   utils.ToPtr("Eventy Sp. z o.o."),
			ClientContactPerson: utils.ToPtr("Piotr"),
			Responses: map[string]string{
				"1": "Koncert plenerowy",
				"2": "  ",
				"4": "400 kW",
			},
			CreatedAt: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC),
		},
		Questions: []models.NeedsAssessmentQuestion{
			{ID: 1, Category: "Wydarzenie", Question: "Rodzaj wydarzenia?"},
			{ID: 2, Category: "Wydarzenie", Question: "Liczba uczestników?"},
			{ID: 3, Category: "Logistyka", Question: "Dojazd?"},
			{ID: 4, Category: "Zasilanie", Question: "Wymagana moc?"},
		},
		GeneratedAt: time.Date(2026, 10, 14, 12, 15, 30, 0, time.UTC),
		Location:    time.UTC,
	}

	r := NewRenderer()
	html, err := r.RenderAssessment(doc)
	require.NoError(t, err)

	again, err := r.RenderAssessment(doc)
	require.NoError(t, err)
	assert.Equal(t, html, again)

	assert.Contains(t, html, "<title>Badanie Potrzeb #02/10.2026</title>")
	assert.Contains(t, html, "Nr: 02/10.2026")
	assert.Contains(t, html, "Data utworzenia: 14.10.2026")
	assert.Contains(t, html, "<strong>Firma:</strong> Eventy Sp. z o.o.")
	assert.Contains(t, html, "<strong>Osoba kontaktowa:</strong> Piotr")
	assert.NotContains(t, html, "Telefon:")
	assert.Contains(t, html, "Rodzaj wydarzenia?")
	assert.NotContains(t, html, "Liczba uczestników?")
	assert.NotContains(t, html, "Logistyka")
	assert.Contains(t, html, "Zasilanie")
	assert.Contains(t, html, "Wygenerowano: 14.10.2026, 12:15:30")
}

func TestRenderAssessmentWithoutClient(t *testing.T) {
	html, err := NewRenderer().RenderAssessment(AssessmentDocument{
		Response: models.NeedsAssessmentResponse{ResponseNumber: "01/10.2026"},
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "Informacje o kliencie")
	assert.Contains(t, html, "Data utworzenia: Nieznana")
}
