package testing

import (
	"fmt"
	"time"

	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
	"github.com/google/uuid"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// TierSpec describes one pricing tier; End 0 means unbounded
type TierSpec struct {
	Start    int
	End      int
	Price    float64
	Discount float64
}

func (tf *TestFixtures) CreateTestCategory(name string) (*models.EquipmentCategory, error) {
	category := &models.EquipmentCategory{Name: name}
	if err := tf.DB.DB.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create test category: %w", err)
	}
	return category, nil
}

// CreateTestEquipment creates active equipment with the given tiers
func (tf *TestFixtures) CreateTestEquipment(categoryID uint, name string, tiers ...TierSpec) (*models.Equipment, error) {
	equipment := &models.Equipment{
		Name:              name,
		Model:             name + " model",
		CategoryID:        categoryID,
		Quantity:          5,
		AvailableQuantity: 5,
		IsActive:          utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(equipment).Error; err != nil {
		return nil, fmt.Errorf("failed to create test equipment: %w", err)
	}

	for _, t := range tiers {
		tier := &models.EquipmentPricing{
			EquipmentID:     equipment.ID,
			PeriodStart:     t.Start,
			PricePerDay:     t.Price,
			DiscountPercent: t.Discount,
		}
		if t.End > 0 {
			tier.PeriodEnd = utils.ToPtr(t.End)
		}
		if err := tf.DB.DB.Create(tier).Error; err != nil {
			return nil, fmt.Errorf("failed to create test tier: %w", err)
		}
		equipment.Pricing = append(equipment.Pricing, *tier)
	}

	return equipment, nil
}

// CreateGenerator creates the "Agregat 100kW" generator with a monthly discount tier
func (tf *TestFixtures) CreateGenerator() (*models.Equipment, error) {
	category, err := tf.CreateTestCategory("Agregaty prądotwórcze")
	if err != nil {
		return nil, err
	}
	return tf.CreateTestEquipment(category.ID, "Agregat 100kW",
		TierSpec{Start: 1, End: 29, Price: 350},
		TierSpec{Start: 30, Price: 300, Discount: 15},
	)
}

func (tf *TestFixtures) CreateTestAdditional(equipmentID uint, kind, name string, price float64, position int) (*models.EquipmentAdditional, error) {
	row := &models.EquipmentAdditional{
		EquipmentID: equipmentID,
		Type:        kind,
		Name:        name,
		Price:       price,
		Position:    position,
	}
	if err := tf.DB.DB.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create test additional: %w", err)
	}
	return row, nil
}

func (tf *TestFixtures) CreateTestServiceItem(equipmentID uint, name string, cost float64, sortOrder int) (*models.EquipmentServiceItem, error) {
	item := &models.EquipmentServiceItem{
		EquipmentID: equipmentID,
		ItemName:    name,
		ItemCost:    cost,
		SortOrder:   sortOrder,
	}
	if err := tf.DB.DB.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create test service item: %w", err)
	}
	return item, nil
}

func (tf *TestFixtures) CreateTestClient(companyName string) (*models.Client, error) {
	client := &models.Client{
		CompanyName:   companyName,
		ContactPerson: utils.ToPtr("Jan Kowalski"),
		Email:         utils.ToPtr("jan@example.com"),
		Phone:         utils.ToPtr("+48 600 100 200"),
	}
	if err := tf.DB.DB.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create test client: %w", err)
	}
	return client, nil
}

func (tf *TestFixtures) CreateTestPricingSchema(id uint, name string) (*models.PricingSchema, error) {
	schema := &models.PricingSchema{ID: id, Name: name, IsDefault: true, IsActive: utils.ToPtr(true)}
	if err := tf.DB.DB.Create(schema).Error; err != nil {
		return nil, fmt.Errorf("failed to create test pricing schema: %w", err)
	}
	return schema, nil
}

// CreateTestQuote inserts a bare quote row with the given number and creation
// time. The number is scoped to the UTC day of createdAt.
func (tf *TestFixtures) CreateTestQuote(clientID uint, number string, createdAt time.Time) (*models.Quote, error) {
	return tf.CreateTestQuoteOnDay(clientID, number, createdAt.UTC().Format(utils.NumberDateLayout), createdAt)
}

// CreateTestQuoteOnDay is CreateTestQuote with an explicit number day.
func (tf *TestFixtures) CreateTestQuoteOnDay(clientID uint, number, numberDate string, createdAt time.Time) (*models.Quote, error) {
	quote := &models.Quote{
		UUID:        uuid.New(),
		QuoteNumber: number,
		NumberDate:  numberDate,
		ClientID:    clientID,
		Status:      models.QuoteStatusDraft,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}
	if err := tf.DB.DB.Create(quote).Error; err != nil {
		return nil, fmt.Errorf("failed to create test quote: %w", err)
	}
	return quote, nil
}

func (tf *TestFixtures) CreateTestQuestion(category, question string, position int) (*models.NeedsAssessmentQuestion, error) {
	q := &models.NeedsAssessmentQuestion{
		Category: category,
		Question: question,
		Type:     models.QuestionTypeText,
		Position: position,
		IsActive: utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(q).Error; err != nil {
		return nil, fmt.Errorf("failed to create test question: %w", err)
	}
	return q, nil
}
