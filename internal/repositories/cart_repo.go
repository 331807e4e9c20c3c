package repositories

import (
	"kedai/internal/models"
)

// CartRepository defines the interface for cart data access. All methods
// operate on a single user's cart; cross-user sharing does not exist.
type CartRepository interface {
	// GetActiveByUser returns the user's active cart with its items and
	// their products preloaded, or models.ErrNotFound if absent.
	GetActiveByUser(userID string) (*models.Cart, error)
	// FirstOrCreateActive returns the user's active cart, creating one if
	// absent. Never creates a second active cart for the same user.
	FirstOrCreateActive(userID string) (*models.Cart, error)
	GetItem(cartID, itemID string) (*models.CartItem, error)
	// MergeOrCreateItem adds a line, incrementing the quantity of an existing
	// (product, variant) line instead of duplicating it. Captured prices on an
	// existing line are never overwritten.
	MergeOrCreateItem(item *models.CartItem) (*models.CartItem, error)
	UpdateItemQuantity(itemID string, quantity int) error
	// DeleteItem removes a line if present; deleting an absent line is a
	// no-op success.
	DeleteItem(cartID, itemID string) error
	ClearItems(cartID string) error
	// SumQuantities returns the sum of line quantities in the cart.
	SumQuantities(cartID string) (int, error)
}
