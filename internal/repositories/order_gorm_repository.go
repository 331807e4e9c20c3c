package repositories

import (
	"errors"
	"fmt"

	"kedai/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAllByUser retrieves the user's orders, newest first, with their items.
func (r *GORMOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order scoped to the owning user, with its items.
func (r *GORMOrderRepository) GetByID(id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// ConvertCart turns the user's active cart into a pending order inside a
// single transaction. The cart is loaded with its lines, the order and its
// frozen line snapshots are inserted with totals computed from the
// cart-captured prices, and the cart is flipped to converted. The guarded
// status flip is the concurrency barrier: of two transactions converting the
// same cart, the loser's UPDATE matches zero rows and its whole transaction
// rolls back with ErrEmptyCart.
func (r *GORMOrderRepository) ConvertCart(userID string, deliveryFee, taxRate decimal.Decimal) (*models.Order, error) {
	var order *models.Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Preload("Items.Product").
			Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
			First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrEmptyCart
			}
			return fmt.Errorf("failed to load active cart: %w", err)
		}
		if len(cart.Items) == 0 {
			return models.ErrEmptyCart
		}

		res := tx.Model(&models.Cart{}).
			Where("id = ? AND status = ?", cart.ID, models.CartStatusActive).
			Update("status", models.CartStatusConverted)
		if res.Error != nil {
			return fmt.Errorf("failed to mark cart converted: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Another conversion won the race.
			return models.ErrEmptyCart
		}

		order = models.NewOrderFromCart(&cart, deliveryFee, taxRate)
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus sets the status of an order scoped to the owning user.
func (r *GORMOrderRepository) UpdateStatus(id, userID, status string) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return nil
}
