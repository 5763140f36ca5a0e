// Package render turns persisted quotes and assessments into printable HTML.
// Rendering is a pure function of its input documents.
package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/pricing"
	"github.com/amirphl/ppp-rental/utils"
)

// QuoteDocument is a fully resolved quote ready to be rendered.
type QuoteDocument struct {
	Quote       models.Quote
	Lines       []LineDocument
	CompanyName string
	VATRate     float64
	GeneratedAt time.Time
	Location    *time.Location
}

// LineDocument joins a quote item with the catalog rows it refers to.
type LineDocument struct {
	Item          models.QuoteItem
	EquipmentName string
	// ServiceItems label serviceItem1..4 by position.
	ServiceItems []models.EquipmentServiceItem
	Additional   []models.EquipmentAdditional
	Accessories  []models.EquipmentAdditional
}

type quoteView struct {
	Title       string
	CompanyName string
	Number      string
	CreatedAt   string
	CreatedBy   string
	GeneratedAt string
	VATLabel    string
	TotalNet    string
	TotalGross  string
	Client      clientView
	Lines       []lineView
}

type clientView struct {
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	NIP           string
}

type lineView struct {
	Name          string
	Quantity      int
	Period        string
	PricePerDay   string
	Discount      string
	Total         string
	Fuel          *fuelView
	Installation  *crewView
	Disassembly   *crewView
	TravelService *crewView
	ServiceItems  *serviceItemsView
	Extras        *extrasView
	Notes         string
}

type fuelView struct {
	Cost                string
	Kilometers          bool
	ConsumptionPer100km string
	KilometersPerDay    string
	TotalKilometers     string
	ConsumptionLH       string
	HoursPerDay         string
	TotalConsumption    string
	PricePerLiter       string
}

type crewView struct {
	Heading           string
	Class             string
	Cost              string
	Distance          string
	Technicians       int
	RatePerTechnician string
	RatePerKm         string
	Trips             int
}

type serviceItemsView struct {
	Cost  string
	Lines []namedAmount
}

type namedAmount struct {
	Name   string
	Amount string
}

type extrasView struct {
	Total              string
	Additional         *extraGroupView
	AdditionalSummary  string
	Accessories        *extraGroupView
	AccessoriesSummary string
}

type extraGroupView struct {
	Lines []extraLineView
	Sum   string
}

type extraLineView struct {
	Name     string
	Price    string
	Quantity int
	Cost     string
}

// Renderer renders quote and assessment documents.
type Renderer struct {
	quote      *template.Template
	assessment *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		quote:      template.Must(template.New("quote").Parse(quoteTemplate)),
		assessment: template.Must(template.New("assessment").Parse(assessmentTemplate)),
	}
}

// RenderQuote renders doc as a complete HTML page. The same document always
// produces the same bytes.
func (r *Renderer) RenderQuote(doc QuoteDocument) (string, error) {
	var buf bytes.Buffer
	if err := r.quote.Execute(&buf, buildQuoteView(doc)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CrewBlocks lists the enabled technician cost blocks in print order.
func (l lineView) CrewBlocks() []*crewView {
	var blocks []*crewView
	for _, c := range []*crewView{l.Installation, l.Disassembly, l.TravelService} {
		if c != nil {
			blocks = append(blocks, c)
		}
	}
	return blocks
}

func buildQuoteView(doc QuoteDocument) quoteView {
	q := doc.Quote
	v := quoteView{
		Title:       "Wycena " + q.QuoteNumber,
		CompanyName: doc.CompanyName,
		Number:      q.QuoteNumber,
		CreatedAt:   FormatLongDate(q.CreatedAt, doc.Location),
		CreatedBy:   createdByLabel(q),
		GeneratedAt: FormatLongDate(doc.GeneratedAt, doc.Location),
		VATLabel:    "Wartość brutto (VAT " + vatPercent(doc.VATRate) + "%):",
		TotalNet:    FormatPLN(q.TotalNet),
		TotalGross:  FormatPLN(q.TotalGross),
	}
	if v.CompanyName == "" {
		v.CompanyName = "Sebastian Popiel :: PPP :: Program"
	}
	if q.Client != nil {
		v.Client = clientView{
			CompanyName:   q.Client.CompanyName,
			ContactPerson: utils.Deref(q.Client.ContactPerson),
			Email:         utils.Deref(q.Client.Email),
			Phone:         utils.Deref(q.Client.Phone),
			Address:       utils.Deref(q.Client.Address),
			NIP:           utils.Deref(q.Client.NIP),
		}
	}
	for _, line := range doc.Lines {
		v.Lines = append(v.Lines, buildLineView(line))
	}
	return v
}

func createdByLabel(q models.Quote) string {
	if q.CreatedByID == nil || q.IsGuestQuote {
		return "Wycena gościnna"
	}
	if name := strings.TrimSpace(utils.Deref(q.CreatedByName)); name != "" {
		return name
	}
	return "Nieznany użytkownik"
}

func vatPercent(rate float64) string {
	return strconv.FormatFloat(utils.RoundMoney(rate*100), 'f', -1, 64)
}

func buildLineView(line LineDocument) lineView {
	it := line.Item
	v := lineView{
		Name:        line.EquipmentName,
		Quantity:    it.Quantity,
		Period:      FormatRentalPeriod(it.RentalPeriodDays),
		PricePerDay: FormatPLN(it.PricePerDay),
		Discount:    formatPercent(it.DiscountPercent),
		Total:       FormatPLN(it.TotalPrice),
	}
	if v.Name == "" && it.Equipment != nil {
		v.Name = it.Equipment.Name
	}

	if it.IncludeFuelCost && it.TotalFuelCost > 0 {
		v.Fuel = buildFuelView(it)
	}
	if it.IncludeInstallationCost {
		v.Installation = &crewView{
			Heading:           "🔧 Uwzględniono koszt montażu:",
			Class:             "detail-installation",
			Cost:              FormatPLN(it.TotalInstallationCost),
			Distance:          formatNumber(utils.Deref(it.InstallationDistanceKm)),
			Technicians:       utils.Deref(it.NumberOfTechnicians),
			RatePerTechnician: FormatPLN(utils.Deref(it.ServiceRatePerTechnician)),
			RatePerKm:         FormatPLN(utils.Deref(it.TravelRatePerKm)),
		}
	}
	if it.IncludeDisassemblyCost {
		v.Disassembly = &crewView{
			Heading:           "🔨 Uwzględniono koszt demontażu:",
			Class:             "detail-disassembly",
			Cost:              FormatPLN(it.TotalDisassemblyCost),
			Distance:          formatNumber(utils.Deref(it.DisassemblyDistanceKm)),
			Technicians:       utils.Deref(it.DisassemblyNumberOfTechnicians),
			RatePerTechnician: FormatPLN(utils.Deref(it.DisassemblyServiceRatePerTechnician)),
			RatePerKm:         FormatPLN(utils.Deref(it.DisassemblyTravelRatePerKm)),
		}
	}
	if it.IncludeTravelServiceCost {
		v.TravelService = &crewView{
			Heading:           "🚚 Uwzględniono koszt dojazdu / serwis:",
			Class:             "detail-travel",
			Cost:              FormatPLN(it.TotalTravelServiceCost),
			Distance:          formatNumber(utils.Deref(it.TravelServiceDistanceKm)),
			Technicians:       utils.Deref(it.TravelServiceNumberOfTechnicians),
			RatePerTechnician: FormatPLN(utils.Deref(it.TravelServiceServiceRatePerTechnician)),
			RatePerKm:         FormatPLN(utils.Deref(it.TravelServiceTravelRatePerKm)),
			Trips:             utils.Deref(it.TravelServiceNumberOfTrips),
		}
	}
	if it.IncludeServiceItems {
		v.ServiceItems = buildServiceItemsView(it, line.ServiceItems)
	}
	if it.AdditionalCost > 0 || it.AccessoriesCost > 0 {
		v.Extras = buildExtrasView(it, line.Additional, line.Accessories)
	}
	if notes := pricing.ParseNotes(utils.Deref(it.Notes)).UserText(); strings.TrimSpace(notes) != "" {
		v.Notes = notes
	}
	return v
}

func buildFuelView(it models.QuoteItem) *fuelView {
	days := float64(it.RentalPeriodDays)
	f := &fuelView{
		Cost:          FormatPLN(it.TotalFuelCost),
		PricePerLiter: FormatPLN(utils.Deref(it.FuelPricePerLiter)),
	}
	if it.FuelCalculationType == models.FuelCalculationKilometers {
		perDay := utils.Deref(it.KilometersPerDay)
		per100 := utils.Deref(it.FuelConsumptionPer100km)
		totalKm := perDay * days
		f.Kilometers = true
		f.ConsumptionPer100km = formatNumber(per100)
		f.KilometersPerDay = formatNumber(perDay)
		f.TotalKilometers = formatNumber(totalKm)
		f.TotalConsumption = strconv.FormatFloat(totalKm/100*per100, 'f', 1, 64)
		return f
	}
	lh := utils.Deref(it.FuelConsumptionLH)
	hours := utils.Deref(it.HoursPerDay)
	f.ConsumptionLH = formatNumber(lh)
	f.HoursPerDay = formatNumber(hours)
	f.TotalConsumption = strconv.FormatFloat(lh*hours*days, 'f', 1, 64)
	return f
}

func buildServiceItemsView(it models.QuoteItem, named []models.EquipmentServiceItem) *serviceItemsView {
	v := &serviceItemsView{Cost: FormatPLN(it.TotalServiceItemsCost)}
	for i, cost := range it.ServiceItemCosts() {
		if cost <= 0 {
			continue
		}
		switch {
		case len(named) == 0:
			v.Lines = append(v.Lines, namedAmount{Name: "Pozycja serwisowa " + strconv.Itoa(i+1), Amount: FormatPLN(cost)})
		case i < len(named):
			v.Lines = append(v.Lines, namedAmount{Name: named[i].ItemName, Amount: FormatPLN(cost)})
		}
	}
	return v
}

func buildExtrasView(it models.QuoteItem, additional, accessories []models.EquipmentAdditional) *extrasView {
	v := &extrasView{Total: FormatPLN(it.AdditionalCost + it.AccessoriesCost)}
	if it.AdditionalCost > 0 {
		if len(additional) > 0 {
			v.Additional = buildExtraGroup(additional, it.Quantity, it.AdditionalCost)
		} else {
			v.AdditionalSummary = FormatPLN(it.AdditionalCost)
		}
	}
	if it.AccessoriesCost > 0 {
		if len(accessories) > 0 {
			v.Accessories = buildExtraGroup(accessories, it.Quantity, it.AccessoriesCost)
		} else {
			v.AccessoriesSummary = FormatPLN(it.AccessoriesCost)
		}
	}
	return v
}

func buildExtraGroup(rows []models.EquipmentAdditional, quantity int, sum float64) *extraGroupView {
	g := &extraGroupView{Sum: FormatPLN(sum)}
	for _, r := range rows {
		g.Lines = append(g.Lines, extraLineView{
			Name:     r.Name,
			Price:    FormatPLN(r.Price),
			Quantity: quantity,
			Cost:     FormatPLN(r.Price * float64(quantity)),
		})
	}
	return g
}

