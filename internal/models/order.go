package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. An order starts pending; paid and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the order status set.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusPaid || s == OrderStatusCancelled
}

// Order is the immutable financial record produced from a cart at checkout.
// All monetary fields are frozen at creation; only Status changes afterwards.
type Order struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `json:"user_id" gorm:"type:varchar(36);index:idx_orders_user_status,priority:1"`
	Status      string          `json:"status" gorm:"type:varchar(16);default:'pending';index:idx_orders_user_status,priority:2"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
	DeliveryFee decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2)"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:decimal(6,4)"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:decimal(10,2)"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	Items       []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem is a point-in-time snapshot of a cart line. Unlike CartItem its
// line total is stored, and the product name is denormalized so the order
// stays readable after catalog renames or deletions.
type OrderItem struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string          `json:"order_id" gorm:"type:varchar(36);index:idx_order_items_order"`
	ProductID   string          `json:"product_id" gorm:"type:varchar(36)"`
	VariantID   *string         `json:"variant_id" gorm:"type:varchar(36)"`
	VariantName *string         `json:"variant_name"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	PriceDelta  decimal.Decimal `json:"price_delta" gorm:"type:decimal(10,2);default:0"`
	Quantity    int             `json:"quantity" gorm:"default:1"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:decimal(10,2)"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CalculateTotals computes subtotal, tax amount and grand total from the
// order's items and its delivery fee / tax rate. Pure decimal arithmetic;
// the tax amount is rounded to the currency's 2 decimal places.
func (o *Order) CalculateTotals() {
	subtotal := decimal.Zero
	for i := range o.Items {
		subtotal = subtotal.Add(o.Items[i].LineTotal)
	}
	o.Subtotal = subtotal
	o.TaxAmount = subtotal.Mul(o.TaxRate).Round(2)
	o.Total = subtotal.Add(o.TaxAmount).Add(o.DeliveryFee)
}

// NewOrderFromCart builds a pending order with frozen line snapshots and
// computed totals from the cart's lines. Prices come from the values captured
// on the cart lines, never from the live catalog. The cart must be loaded
// with its items and their products.
func NewOrderFromCart(cart *Cart, deliveryFee, taxRate decimal.Decimal) *Order {
	order := &Order{
		ID:          uuid.New().String(),
		UserID:      cart.UserID,
		Status:      OrderStatusPending,
		DeliveryFee: deliveryFee,
		TaxRate:     taxRate,
		Items:       make([]OrderItem, 0, len(cart.Items)),
	}

	for i := range cart.Items {
		ci := &cart.Items[i]
		productName := "Unknown Product"
		if ci.Product != nil {
			productName = ci.Product.Name
		}
		order.Items = append(order.Items, OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   ci.ProductID,
			VariantID:   ci.VariantID,
			VariantName: ci.VariantName,
			ProductName: productName,
			UnitPrice:   ci.UnitPrice,
			PriceDelta:  ci.PriceDelta,
			Quantity:    ci.Quantity,
			LineTotal:   ci.LineTotal(),
		})
	}

	order.CalculateTotals()
	return order
}
