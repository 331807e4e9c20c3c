package models_test

import (
	"testing"

	"kedai/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCartItemLineTotal(t *testing.T) {
	item := models.CartItem{
		UnitPrice:  dec("80.00"),
		PriceDelta: dec("15.00"),
		Quantity:   1,
	}
	assert.Equal(t, "95.00", item.LineTotal().StringFixed(2))

	item = models.CartItem{
		UnitPrice:  dec("95.00"),
		PriceDelta: decimal.Zero,
		Quantity:   2,
	}
	assert.Equal(t, "190.00", item.LineTotal().StringFixed(2))

	// Negative deltas reduce the line total.
	item = models.CartItem{
		UnitPrice:  dec("100.00"),
		PriceDelta: dec("-20.00"),
		Quantity:   3,
	}
	assert.Equal(t, "240.00", item.LineTotal().StringFixed(2))
}

func TestOrderCalculateTotals(t *testing.T) {
	order := &models.Order{
		DeliveryFee: decimal.Zero,
		TaxRate:     dec("0.08"),
		Items: []models.OrderItem{
			{LineTotal: dec("190.00")},
			{LineTotal: dec("95.00")},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, "285.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "22.80", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "307.80", order.Total.StringFixed(2))
}

func TestOrderCalculateTotalsWithDeliveryFee(t *testing.T) {
	order := &models.Order{
		DeliveryFee: dec("50.00"),
		TaxRate:     dec("0.08"),
		Items: []models.OrderItem{
			{LineTotal: dec("100.00")},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, "100.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "8.00", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "158.00", order.Total.StringFixed(2))
}

func TestOrderCalculateTotalsEmptyAndZeroRate(t *testing.T) {
	order := &models.Order{
		DeliveryFee: decimal.Zero,
		TaxRate:     decimal.Zero,
	}
	order.CalculateTotals()
	assert.True(t, order.Total.IsZero())

	// Tax is rounded to the currency's 2 decimal places.
	order = &models.Order{
		DeliveryFee: decimal.Zero,
		TaxRate:     dec("0.0825"),
		Items: []models.OrderItem{
			{LineTotal: dec("19.99")},
		},
	}
	order.CalculateTotals()
	assert.Equal(t, "1.65", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "21.64", order.Total.StringFixed(2))
}

func TestNewOrderFromCartFreezesCartPrices(t *testing.T) {
	variantID := "var-1"
	variantName := "Size: Large"
	cart := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Status: models.CartStatusActive,
		Items: []models.CartItem{
			{
				ID:        "item-1",
				ProductID: "prod-1",
				Quantity:  2,
				UnitPrice: dec("95.00"),
				// Live catalog price differs; the captured price wins.
				Product: &models.Product{ID: "prod-1", Name: "Americano", Price: dec("999.00")},
			},
			{
				ID:          "item-2",
				ProductID:   "prod-2",
				VariantID:   &variantID,
				VariantName: &variantName,
				Quantity:    1,
				UnitPrice:   dec("80.00"),
				PriceDelta:  dec("15.00"),
				Product:     &models.Product{ID: "prod-2", Name: "Cinnamon Roll", Price: dec("80.00")},
			},
		},
	}

	order := models.NewOrderFromCart(cart, decimal.Zero, dec("0.08"))

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)

	first := order.Items[0]
	assert.Equal(t, order.ID, first.OrderID)
	assert.Equal(t, "Americano", first.ProductName)
	assert.Equal(t, "95.00", first.UnitPrice.StringFixed(2))
	assert.Equal(t, "190.00", first.LineTotal.StringFixed(2))

	second := order.Items[1]
	assert.Equal(t, &variantID, second.VariantID)
	assert.Equal(t, &variantName, second.VariantName)
	assert.Equal(t, "95.00", second.LineTotal.StringFixed(2))

	assert.Equal(t, "285.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "22.80", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "307.80", order.Total.StringFixed(2))
}

func TestNewOrderFromCartMissingProductRow(t *testing.T) {
	cart := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []models.CartItem{
			{ID: "item-1", ProductID: "prod-gone", Quantity: 1, UnitPrice: dec("10.00")},
		},
	}

	order := models.NewOrderFromCart(cart, decimal.Zero, decimal.Zero)

	assert.Equal(t, "Unknown Product", order.Items[0].ProductName)
	assert.Equal(t, "10.00", order.Total.StringFixed(2))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, models.ValidOrderStatus(models.OrderStatusPending))
	assert.True(t, models.ValidOrderStatus(models.OrderStatusPaid))
	assert.True(t, models.ValidOrderStatus(models.OrderStatusCancelled))
	assert.False(t, models.ValidOrderStatus("shipped"))
	assert.False(t, models.ValidOrderStatus(""))
}
