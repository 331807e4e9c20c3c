package services_test

import (
	"errors"
	"sync"
	"testing"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (*services.OrderService, *services.CartService, *gorm.DB, seededCatalog) {
	t.Helper()
	db := setupTestDB(t)
	catalog := seedCatalog(t, db)
	pricing := services.NewPricingService(repositories.NewGORMProductRepository(db))
	cartService := services.NewCartService(repositories.NewGORMCartRepository(db), pricing)
	orderService := services.NewOrderService(repositories.NewGORMOrderRepository(db), nil)
	return orderService, cartService, db, catalog
}

func TestCreateOrderFromCart(t *testing.T) {
	orderService, cartService, db, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.Americano, nil, 2)
	assert.NoError(t, err)
	_, err = cartService.AddItem("user-1", catalog.Americano, &catalog.LargeVariant, 1)
	assert.NoError(t, err)

	order, err := orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.RequireFromString("0.08"))
	assert.NoError(t, err)

	// 2 x 95.00 + 1 x (95.00 + 15.00) = 300.00
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "300.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "24.00", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "324.00", order.Total.StringFixed(2))
	assert.Len(t, order.Items, 2)

	// Item snapshots carry the display name and stored line totals.
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.Equal(t, "Americano", item.ProductName)
		assert.Equal(t, item.UnitPrice.Add(item.PriceDelta).Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2),
			item.LineTotal.StringFixed(2))
	}

	// The consumed cart is now converted.
	var cart models.Cart
	assert.NoError(t, db.Where("user_id = ?", "user-1").First(&cart).Error)
	assert.Equal(t, models.CartStatusConverted, cart.Status)

	// The next cart access starts a fresh, empty active cart.
	fresh, err := cartService.GetOrCreateActiveCart("user-1")
	assert.NoError(t, err)
	assert.NotEqual(t, cart.ID, fresh.ID)
	count, err := cartService.Count("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCreateOrderPricesAtCartTime(t *testing.T) {
	orderService, cartService, db, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.Americano, nil, 1)
	assert.NoError(t, err)

	// The catalog changes after the item is carted. Checkout must not care.
	err = db.Model(&models.Product{}).Where("id = ?", catalog.Americano).
		Update("price", decimal.RequireFromString("999.00")).Error
	assert.NoError(t, err)

	order, err := orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
	assert.NoError(t, err)
	assert.Equal(t, "95.00", order.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "95.00", order.Total.StringFixed(2))
}

func TestCreateOrderAppliesChargesAndFees(t *testing.T) {
	orderService, cartService, _, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.CinnamonRoll, nil, 1)
	assert.NoError(t, err)

	order, err := orderService.CreateOrderFromCart("user-1",
		decimal.RequireFromString("50.00"), decimal.RequireFromString("0.10"))
	assert.NoError(t, err)

	assert.Equal(t, "80.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "8.00", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "50.00", order.DeliveryFee.StringFixed(2))
	assert.Equal(t, "138.00", order.Total.StringFixed(2))
}

func TestCreateOrderRejectsInvalidCharges(t *testing.T) {
	orderService, cartService, _, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.Americano, nil, 1)
	assert.NoError(t, err)

	_, err = orderService.CreateOrderFromCart("user-1", decimal.RequireFromString("-1.00"), decimal.Zero)
	assert.ErrorIs(t, err, models.ErrInvalidCharge)

	_, err = orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.RequireFromString("1.5"))
	assert.ErrorIs(t, err, models.ErrInvalidCharge)

	// The cart is untouched by rejected conversions.
	count, err := cartService.Count("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	orderService, cartService, db, _ := newOrderService(t)

	// No cart at all.
	_, err := orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	// An existing cart with zero lines is just as empty.
	_, err = cartService.GetOrCreateActiveCart("user-1")
	assert.NoError(t, err)
	_, err = orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	var orderCount int64
	assert.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	// The failed conversion leaves the cart active.
	var cart models.Cart
	assert.NoError(t, db.Where("user_id = ?", "user-1").First(&cart).Error)
	assert.Equal(t, models.CartStatusActive, cart.Status)
}

func TestCreateOrderTwiceOnlyConvertsOnce(t *testing.T) {
	orderService, cartService, db, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.Americano, nil, 1)
	assert.NoError(t, err)

	_, err = orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
	assert.NoError(t, err)

	// The cart was consumed, so a second checkout finds nothing to convert.
	_, err = orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	var orderCount int64
	assert.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)
}

func TestConcurrentConvertProducesOneOrder(t *testing.T) {
	orderService, cartService, db, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.Americano, nil, 1)
	assert.NoError(t, err)

	// Both conversions race for the same active cart. The guarded status
	// flip lets exactly one through; the loser rolls back and observes an
	// empty cart.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
		}(i)
	}
	wg.Wait()

	var converted, empty int
	for _, convErr := range errs {
		switch {
		case convErr == nil:
			converted++
		case errors.Is(convErr, models.ErrEmptyCart):
			empty++
		default:
			t.Fatalf("unexpected conversion error: %v", convErr)
		}
	}
	assert.Equal(t, 1, converted)
	assert.Equal(t, 1, empty)

	var orderCount int64
	assert.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)

	var cart models.Cart
	assert.NoError(t, db.Where("user_id = ?", "user-1").First(&cart).Error)
	assert.Equal(t, models.CartStatusConverted, cart.Status)
}

func TestGetOrdersIsUserScoped(t *testing.T) {
	orderService, cartService, _, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.Americano, nil, 1)
	assert.NoError(t, err)
	mine, err := orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
	assert.NoError(t, err)

	_, err = cartService.AddItem("user-2", catalog.CinnamonRoll, nil, 1)
	assert.NoError(t, err)
	_, err = orderService.CreateOrderFromCart("user-2", decimal.Zero, decimal.Zero)
	assert.NoError(t, err)

	orders, err := orderService.GetOrders("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)

	// Reading another user's order by ID is a not-found, not a leak.
	_, err = orderService.GetOrderByID(mine.ID, "user-2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	found, err := orderService.GetOrderByID(mine.ID, "user-1")
	assert.NoError(t, err)
	assert.Len(t, found.Items, 1)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	orderService, cartService, _, catalog := newOrderService(t)

	_, err := cartService.AddItem("user-1", catalog.Americano, nil, 1)
	assert.NoError(t, err)
	order, err := orderService.CreateOrderFromCart("user-1", decimal.Zero, decimal.Zero)
	assert.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(order.ID, "user-1", "shipped")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	_, err = orderService.UpdateOrderStatus("no-such-order", "user-1", models.OrderStatusPaid)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Re-asserting the current status is a no-op success.
	same, err := orderService.UpdateOrderStatus(order.ID, "user-1", models.OrderStatusPending)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, same.Status)

	paid, err := orderService.UpdateOrderStatus(order.ID, "user-1", models.OrderStatusPaid)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)

	// Paid is terminal.
	_, err = orderService.UpdateOrderStatus(order.ID, "user-1", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, models.ErrStatusFinal)

	reread, err := orderService.GetOrderByID(order.ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, reread.Status)
}
