package repositories

import (
	"errors"
	"fmt"

	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetActiveByUser retrieves the user's active cart with items and products.
func (r *GORMCartRepository) GetActiveByUser(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items.Product").
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active cart for user %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get active cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// FirstOrCreateActive returns the user's active cart, creating one if absent.
// The partial unique index on carts(user_id) where status='active' makes the
// create side race-safe: the loser of a concurrent create re-reads the
// winner's row.
func (r *GORMCartRepository) FirstOrCreateActive(userID string) (*models.Cart, error) {
	cart := models.Cart{UserID: userID, Status: models.CartStatusActive}
	err := r.db.Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		Attrs(models.Cart{ID: uuid.New().String()}).
		FirstOrCreate(&cart).Error
	if err == nil {
		return &cart, nil
	}

	// Unique violation from a concurrent create; the row exists now.
	var existing models.Cart
	retryErr := r.db.Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&existing).Error
	if retryErr != nil {
		return nil, fmt.Errorf("failed to get or create active cart for user %s: %w", userID, err)
	}
	return &existing, nil
}

// GetItem retrieves a cart line scoped to the given cart.
func (r *GORMCartRepository) GetItem(cartID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", itemID, err)
	}
	return &item, nil
}

// MergeOrCreateItem adds a line to the cart. When the (product, variant) pair
// already has a line its quantity is incremented and the captured prices stay
// untouched; otherwise the given line is inserted. Find and write run in one
// transaction, and an insert that loses a concurrent race against the unique
// line index is retried as a merge into the winner's row.
func (r *GORMCartRepository) MergeOrCreateItem(item *models.CartItem) (*models.CartItem, error) {
	line, err := r.mergeOrCreate(item)
	if err == nil {
		return line, nil
	}
	line, retryErr := r.mergeOrCreate(item)
	if retryErr == nil {
		return line, nil
	}
	return nil, err
}

func (r *GORMCartRepository) mergeOrCreate(item *models.CartItem) (*models.CartItem, error) {
	var line *models.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findLine(tx, item.CartID, item.ProductID, item.VariantID)
		if err != nil {
			return err
		}
		if existing != nil {
			quantity := existing.Quantity + item.Quantity
			res := tx.Model(&models.CartItem{}).Where("id = ?", existing.ID).Update("quantity", quantity)
			if res.Error != nil {
				return res.Error
			}
			existing.Quantity = quantity
			line = existing
			return nil
		}

		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		line = item
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cart line for product %s: %w", item.ProductID, err)
	}
	return line, nil
}

// findLine returns the cart's line for a (product, variant) pair, or nil when
// no such line exists.
func findLine(tx *gorm.DB, cartID, productID string, variantID *string) (*models.CartItem, error) {
	query := tx.Where("cart_id = ? AND product_id = ?", cartID, productID)
	if variantID == nil {
		query = query.Where("variant_id IS NULL")
	} else {
		query = query.Where("variant_id = ?", *variantID)
	}

	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity sets the quantity of an existing line.
func (r *GORMCartRepository) UpdateItemQuantity(itemID string, quantity int) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}

// DeleteItem removes a line from the cart. Matching zero rows is success, so
// repeated removal of the same line is safe.
func (r *GORMCartRepository) DeleteItem(cartID, itemID string) error {
	err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", itemID, err)
	}
	return nil
}

// ClearItems removes all lines from the cart.
func (r *GORMCartRepository) ClearItems(cartID string) error {
	err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}

// SumQuantities returns the sum of line quantities in the cart.
func (r *GORMCartRepository) SumQuantities(cartID string) (int, error) {
	var count int
	err := r.db.Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cart %s: %w", cartID, err)
	}
	return count, nil
}
