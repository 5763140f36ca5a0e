package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
)

func sampleQuoteDocument() QuoteDocument {
	created := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	notes := `{"selectedAdditional":[],"selectedAccessories":[11],"userNotes":"Dostawa <rano>"}`
	return QuoteDocument{
		Quote: models.Quote{
			ID:            1,
			QuoteNumber:   "01/10.2026",
			CreatedByID:   utils.ToPtr("u-1"),
			CreatedByName: utils.ToPtr("Jan Kowalski"),
			Client: &models.Client{
				CompanyName:   "Budimex S.A.",
				ContactPerson: utils.ToPtr("Anna Nowak"),
				Email:         utils.ToPtr("anna@example.com"),
				NIP:           utils.ToPtr("5260001246"),
			},
			TotalNet:   25806,
			TotalGross: 31741.38,
			CreatedAt:  created,
		},
		Lines: []LineDocument{
			{
				EquipmentName: "Agregat 100kW",
				Item: models.QuoteItem{
					Quantity:            2,
					RentalPeriodDays:    10,
					PricePerDay:         350,
					TotalPrice:          25806,
					IncludeFuelCost:     true,
					FuelCalculationType: models.FuelCalculationHourly,
					FuelConsumptionLH:   utils.ToPtr(35.3),
					HoursPerDay:         utils.ToPtr(8.0),
					FuelPricePerLiter:   utils.ToPtr(6.5),
					TotalFuelCost:       18356,
					AccessoriesCost:     450,
					Notes:               &notes,
				},
				Accessories: []models.EquipmentAdditional{
					{ID: 11, Type: models.AdditionalTypeAccessories, Name: "Kabel 25m", Price: 225},
				},
			},
		},
		CompanyName: "Sebastian Popiel :: PPP :: Program",
		VATRate:     0.23,
		GeneratedAt: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
		Location:    time.UTC,
	}
}

func TestRenderQuoteIsDeterministic(t *testing.T) {
	r := NewRenderer()
	doc := sampleQuoteDocument()

	first, err := r.RenderQuote(doc)
	require.NoError(t, err)
	second, err := r.RenderQuote(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderQuoteContent(t *testing.T) {
	html, err := NewRenderer().RenderQuote(sampleQuoteDocument())
	require.NoError(t, err)

	for _, want := range []string{
		"<title>Wycena 01/10.2026</title>",
		"Sebastian Popiel :: PPP :: Program",
		"Osoba kontaktowa: Anna Nowak",
		"NIP: 5260001246",
		"<strong>Data utworzenia:</strong> 14 października 2026",
		"<strong>Utworzył:</strong> Jan Kowalski",
		"Agregat 100kW",
		"10 dni",
		"350,00\u00a0zł",
		"0.00%",
		"Uwzględniono koszt paliwa:</strong> 18\u00a0356,00\u00a0zł",
		"• Zużycie: 35.3 l/h",
		"• Godziny pracy dziennie: 8 h",
		"• Całkowite zużycie: 2824.0 l",
		"• Cena paliwa: 6,50\u00a0zł/l",
		"<strong>Akcesoria:</strong>",
		"• Kabel 25m: 225,00\u00a0zł × 2 = 450,00\u00a0zł",
		"Suma akcesoriów: 450,00\u00a0zł",
		"Uwagi:</strong> Dostawa &lt;rano&gt;",
		"Wartość netto:",
		"25\u00a0806,00\u00a0zł",
		"Wartość brutto (VAT 23%):",
		"31\u00a0741,38\u00a0zł",
		"Wycena wygenerowana: 15 października 2026",
	} {
		assert.Contains(t, html, want)
	}

	assert.NotContains(t, html, "Uwzględniono koszt montażu")
	assert.NotContains(t, html, "selectedAccessories")
	assert.NotContains(t, html, "Wyposażenie dodatkowe:")
}

func TestRenderQuoteGuestAndFallbacks(t *testing.T) {
	doc := sampleQuoteDocument()
	doc.Quote.CreatedByID = nil
	doc.Quote.IsGuestQuote = true
	doc.Lines[0].Accessories = nil
	doc.Lines[0].Item.Notes = utils.ToPtr("zwykła notatka")
	doc.Lines[0].Item.IncludeServiceItems = true
	doc.Lines[0].Item.ServiceItem1Cost = 120
	doc.Lines[0].Item.ServiceItem3Cost = 30
	doc.Lines[0].Item.TotalServiceItemsCost = 150

	html, err := NewRenderer().RenderQuote(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>Utworzył:</strong> Wycena gościnna")
	assert.Contains(t, html, "• Akcesoria: 450,00\u00a0zł")
	assert.Contains(t, html, "Uwagi:</strong> zwykła notatka")
	assert.Contains(t, html, "Uwzględniono koszty serwisowe:</strong> 150,00\u00a0zł")
	assert.Contains(t, html, "• Pozycja serwisowa 1: 120,00\u00a0zł")
	assert.Contains(t, html, "• Pozycja serwisowa 3: 30,00\u00a0zł")
	assert.NotContains(t, html, "Pozycja serwisowa 2")
}

func TestRenderQuoteNamedServiceItemsAndCrew(t *testing.T) {
	doc := sampleQuoteDocument()
	item := &doc.Lines[0].Item
	item.IncludeFuelCost = false
	item.IncludeServiceItems = true
	item.ServiceItem2Cost = 80
	item.TotalServiceItemsCost = 80
	item.IncludeInstallationCost = true
	item.InstallationDistanceKm = utils.ToPtr(120.0)
	item.NumberOfTechnicians = utils.ToPtr(2)
	item.ServiceRatePerTechnician = utils.ToPtr(150.0)
	item.TravelRatePerKm = utils.ToPtr(1.15)
	item.TotalInstallationCost = 438
	item.IncludeTravelServiceCost = true
	item.TravelServiceNumberOfTrips = utils.ToPtr(3)
	item.TotalTravelServiceCost = 450
	doc.Lines[0].ServiceItems = []models.EquipmentServiceItem{
		{ItemName: "Przegląd"},
		{ItemName: "Wymiana oleju"},
	}

	html, err := NewRenderer().RenderQuote(doc)
	require.NoError(t, err)

	assert.NotContains(t, html, "Uwzględniono koszt paliwa")
	assert.Contains(t, html, "• Wymiana oleju: 80,00\u00a0zł")
	assert.NotContains(t, html, "Przegląd:")
	assert.Contains(t, html, "🔧 Uwzględniono koszt montażu:</strong> 438,00\u00a0zł")
	assert.Contains(t, html, "• Dystans (tam i z powrotem): 120 km")
	assert.Contains(t, html, "• Liczba techników: 2")
	assert.Contains(t, html, "• Stawka za km: 1,15\u00a0zł/km")
	assert.Contains(t, html, "• Ilość wyjazdów: 3")
	assert.Equal(t, 1, strings.Count(html, "Ilość wyjazdów"))
}

func TestRenderQuoteCrewShowsStoredValues(t *testing.T) {
	doc := sampleQuoteDocument()
	item := &doc.Lines[0].Item
	item.IncludeFuelCost = false
	item.IncludeInstallationCost = true
	item.InstallationDistanceKm = utils.ToPtr(100.0)
	item.NumberOfTechnicians = utils.ToPtr(0)
	item.ServiceRatePerTechnician = utils.ToPtr(0.0)
	item.TravelRatePerKm = utils.ToPtr(2.0)
	item.TotalInstallationCost = 200

	html, err := NewRenderer().RenderQuote(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "🔧 Uwzględniono koszt montażu:</strong> 200,00\u00a0zł")
	assert.Contains(t, html, "• Liczba techników: 0")
	assert.Contains(t, html, "• Stawka za technika: 0,00\u00a0zł")
	assert.Contains(t, html, "• Stawka za km: 2,00\u00a0zł/km")
	assert.NotContains(t, html, "Stawka za technika: 150")
}

func TestRenderQuoteKilometerFuel(t *testing.T) {
	doc := sampleQuoteDocument()
	item := &doc.Lines[0].Item
	item.FuelCalculationType = models.FuelCalculationKilometers
	item.FuelConsumptionPer100km = utils.ToPtr(12.0)
	item.KilometersPerDay = utils.ToPtr(150.0)
	item.TotalFuelCost = 7020

	html, err := NewRenderer().RenderQuote(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "• Zużycie: 12 l/100km")
	assert.Contains(t, html, "• Kilometry dziennie: 150 km")
	assert.Contains(t, html, "• Całkowite kilometry: 1500 km")
	assert.Contains(t, html, "• Całkowite zużycie: 180.0 l")
}

func TestRenderQuoteEmpty(t *testing.T) {
	html, err := NewRenderer().RenderQuote(QuoteDocument{})
	require.NoError(t, err)
	assert.Contains(t, html, "Wartość netto:")
	assert.Contains(t, html, "0,00\u00a0zł")
}
