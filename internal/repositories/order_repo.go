package repositories

import (
	"kedai/internal/models"

	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order data access. All reads are
// scoped to the owning user.
type OrderRepository interface {
	GetAllByUser(userID string) ([]models.Order, error)
	GetByID(id, userID string) (*models.Order, error)
	// ConvertCart atomically turns the user's active cart into a pending
	// order: frozen line snapshots, computed totals, cart marked converted.
	// Fails with models.ErrEmptyCart when no active cart with lines exists;
	// any storage failure rolls the whole transaction back.
	ConvertCart(userID string, deliveryFee, taxRate decimal.Decimal) (*models.Order, error)
	UpdateStatus(id, userID, status string) error
}
