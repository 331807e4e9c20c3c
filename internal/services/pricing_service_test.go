package services_test

import (
	"fmt"
	"testing"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(category, search string) ([]models.Product, error) {
	args := m.Called(category, search)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetVariantByID(id string) (*models.ProductVariant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestPricingResolveProductOnly(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewPricingService(mockRepo)

	mockRepo.On("GetByID", "prod-1").
		Return(&models.Product{ID: "prod-1", Name: "Americano", Price: decimal.RequireFromString("95.00")}, nil).Once()

	quote, err := service.Resolve("prod-1", nil)

	assert.NoError(t, err)
	assert.Equal(t, "95.00", quote.UnitPrice.StringFixed(2))
	assert.True(t, quote.PriceDelta.IsZero())
	assert.Nil(t, quote.VariantName)
	mockRepo.AssertExpectations(t)
}

func TestPricingResolveWithVariant(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewPricingService(mockRepo)

	variantID := "var-1"
	mockRepo.On("GetByID", "prod-1").
		Return(&models.Product{ID: "prod-1", Price: decimal.RequireFromString("95.00")}, nil).Once()
	mockRepo.On("GetVariantByID", "var-1").
		Return(&models.ProductVariant{
			ID:         "var-1",
			ProductID:  "prod-1",
			GroupName:  "Size",
			Name:       "Large",
			PriceDelta: decimal.RequireFromString("15.00"),
		}, nil).Once()

	quote, err := service.Resolve("prod-1", &variantID)

	assert.NoError(t, err)
	assert.Equal(t, "95.00", quote.UnitPrice.StringFixed(2))
	assert.Equal(t, "15.00", quote.PriceDelta.StringFixed(2))
	assert.NotNil(t, quote.VariantName)
	assert.Equal(t, "Size: Large", *quote.VariantName)
	mockRepo.AssertExpectations(t)
}

func TestPricingResolveProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewPricingService(mockRepo)

	mockRepo.On("GetByID", "missing").
		Return(nil, fmt.Errorf("product missing: %w", models.ErrNotFound)).Once()

	quote, err := service.Resolve("missing", nil)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, quote)
	mockRepo.AssertExpectations(t)
}

func TestPricingResolveVariantOfDifferentProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewPricingService(mockRepo)

	variantID := "var-1"
	mockRepo.On("GetByID", "prod-1").
		Return(&models.Product{ID: "prod-1", Price: decimal.RequireFromString("95.00")}, nil).Once()
	mockRepo.On("GetVariantByID", "var-1").
		Return(&models.ProductVariant{ID: "var-1", ProductID: "prod-2"}, nil).Once()

	quote, err := service.Resolve("prod-1", &variantID)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, quote)
	mockRepo.AssertExpectations(t)
}
