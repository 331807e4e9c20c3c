package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart lifecycle states. A cart is mutable while active and becomes
// immutable history once converted into an order.
const (
	CartStatusActive    = "active"
	CartStatusConverted = "converted"
)

// Cart is a user's pre-checkout basket. At most one active cart exists per
// user, enforced by a partial unique index on (user_id) where status='active'.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"type:varchar(36);uniqueIndex:uniq_user_active_cart,where:status = 'active'"`
	Status    string     `json:"status" gorm:"type:varchar(16);default:'active'"`
	Items     []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one (product, optional variant, quantity) line within a cart.
// UnitPrice and PriceDelta are captured when the line is first added and are
// never re-resolved against the catalog, so later price changes do not touch
// existing lines.
type CartItem struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID      string          `json:"cart_id" gorm:"type:varchar(36);uniqueIndex:uniq_cart_product_variant,priority:1"`
	ProductID   string          `json:"product_id" gorm:"type:varchar(36);uniqueIndex:uniq_cart_product_variant,priority:2"`
	VariantID   *string         `json:"variant_id" gorm:"type:varchar(36);uniqueIndex:uniq_cart_product_variant,priority:3"`
	VariantName *string         `json:"variant_name"`
	Quantity    int             `json:"quantity" gorm:"default:1"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	PriceDelta  decimal.Decimal `json:"price_delta" gorm:"type:decimal(10,2);default:0"`
	Product     *Product        `json:"-" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LineTotal is (unit price + price delta) x quantity, computed on read and
// never stored on the cart line.
func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.UnitPrice.Add(ci.PriceDelta).Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// CartItemView is the read model returned by GET /cart: the stored line plus
// display data joined from the product row.
type CartItemView struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	VariantID   *string         `json:"variant_id"`
	VariantName *string         `json:"variant_name"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    *string         `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	PriceDelta  decimal.Decimal `json:"price_delta"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}
