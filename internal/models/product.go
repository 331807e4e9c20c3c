package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalog.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Category    string           `json:"category" gorm:"type:varchar(50);index" validate:"required,max=50"`
	Name        string           `json:"name" gorm:"type:varchar(160)" validate:"required,min=3,max=160"`
	Description string           `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(10,2)" validate:"required"`
	ImageURL    *string          `json:"image_url,omitempty"`
	IsActive    bool             `json:"is_active" gorm:"default:true;index"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	gorm.Model                   // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductVariant represents a named product option (e.g. "Size: Large")
// carrying a signed price adjustment relative to the base product price.
type ProductVariant struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID  string          `json:"product_id" gorm:"type:varchar(36);index" validate:"required"`
	GroupName  string          `json:"group_name" gorm:"type:varchar(120)" validate:"required,max=120"`
	Name       string          `json:"name" gorm:"type:varchar(120)" validate:"required,max=120"`
	PriceDelta decimal.Decimal `json:"price_delta" gorm:"type:decimal(10,2)"`
	IsActive   bool            `json:"is_active" gorm:"default:true"`
	gorm.Model                 // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Label returns the denormalized display label captured on cart and order
// lines, e.g. "Size: Large".
func (v *ProductVariant) Label() string {
	return v.GroupName + ": " + v.Name
}
