package services

import (
	"fmt"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/shopspring/decimal"
)

// PriceQuote is the result of resolving a (product, optional variant) pair
// against the catalog at one moment in time. Callers capture these values;
// later catalog price changes do not retroactively affect captured lines.
type PriceQuote struct {
	UnitPrice   decimal.Decimal
	PriceDelta  decimal.Decimal
	VariantName *string
}

// PricingService resolves unit prices and variant deltas. Pure read, no side
// effects.
type PricingService struct {
	catalog repositories.ProductRepository
}

// NewPricingService creates a new PricingService.
func NewPricingService(catalog repositories.ProductRepository) *PricingService {
	return &PricingService{
		catalog: catalog,
	}
}

// Resolve returns the product's current price and, when a variant is given,
// the variant's current delta and display label ("Group: Name"). Fails with
// models.ErrNotFound if the product does not exist, or the variant does not
// exist or belongs to a different product.
func (s *PricingService) Resolve(productID string, variantID *string) (*PriceQuote, error) {
	product, err := s.catalog.GetByID(productID)
	if err != nil {
		return nil, err
	}

	quote := &PriceQuote{
		UnitPrice:  product.Price,
		PriceDelta: decimal.Zero,
	}
	if variantID == nil {
		return quote, nil
	}

	variant, err := s.catalog.GetVariantByID(*variantID)
	if err != nil {
		return nil, err
	}
	if variant.ProductID != productID {
		return nil, fmt.Errorf("variant %s does not belong to product %s: %w", *variantID, productID, models.ErrNotFound)
	}

	label := variant.Label()
	quote.PriceDelta = variant.PriceDelta
	quote.VariantName = &label
	return quote, nil
}
