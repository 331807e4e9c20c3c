package repositories

import (
	"kedai/internal/models"
)

// ProductRepository defines the interface for catalog data access. The cart
// and order core consumes only the read side (GetByID, GetVariantByID).
type ProductRepository interface {
	GetAll(category, search string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetVariantByID(id string) (*models.ProductVariant, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
