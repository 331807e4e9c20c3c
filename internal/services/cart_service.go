package services

import (
	"errors"
	"fmt"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/pkg/metrics"
)

// CartService handles business logic for the mutable pre-checkout cart.
// Every operation takes the acting user's ID explicitly.
type CartService struct {
	cartRepo repositories.CartRepository
	pricing  *PricingService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, pricing *PricingService) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		pricing:  pricing,
	}
}

// GetOrCreateActiveCart returns the user's active cart, creating one lazily.
func (s *CartService) GetOrCreateActiveCart(userID string) (*models.Cart, error) {
	return s.cartRepo.FirstOrCreateActive(userID)
}

// AddItem adds a (product, optional variant) line to the user's active cart.
// If the combination already exists its quantity is incremented and the
// captured prices are left unchanged; otherwise a new line is created with
// the currently resolved price and delta.
func (s *CartService) AddItem(userID, productID string, variantID *string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity %d: %w", quantity, models.ErrInvalidQuantity)
	}

	// Resolve pricing before any mutation so a bad product/variant leaves
	// the cart untouched.
	quote, err := s.pricing.Resolve(productID, variantID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.FirstOrCreateActive(userID)
	if err != nil {
		return nil, err
	}

	// The repository merges into an existing (product, variant) line, so the
	// quote only applies to a brand new line; merged lines keep the prices
	// captured by their first add.
	line, err := s.cartRepo.MergeOrCreateItem(&models.CartItem{
		CartID:      cart.ID,
		ProductID:   productID,
		VariantID:   variantID,
		VariantName: quote.VariantName,
		Quantity:    quantity,
		UnitPrice:   quote.UnitPrice,
		PriceDelta:  quote.PriceDelta,
	})
	if err != nil {
		return nil, err
	}
	metrics.CartItemsAddedTotal.Inc()
	return line, nil
}

// UpdateItemQuantity sets the quantity of an existing line in the user's
// active cart.
func (s *CartService) UpdateItemQuantity(userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity %d: %w", quantity, models.ErrInvalidQuantity)
	}

	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem removes a line from the user's active cart. Removing a line
// that is already gone is a no-op success; only a missing cart is an error.
func (s *CartService) RemoveItem(userID, itemID string) error {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteItem(cart.ID, itemID)
}

// Clear removes all lines from the user's active cart. A missing cart is
// treated as already clear.
func (s *CartService) Clear(userID string) error {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.ClearItems(cart.ID)
}

// Count returns the sum of line quantities in the user's active cart, or 0
// when no cart exists.
func (s *CartService) Count(userID string) (int, error) {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.cartRepo.SumQuantities(cart.ID)
}

// ListItems returns the user's cart lines joined with product display data.
// A missing cart yields an empty list.
func (s *CartService) ListItems(userID string) ([]models.CartItemView, error) {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return []models.CartItemView{}, nil
		}
		return nil, err
	}

	views := make([]models.CartItemView, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		view := models.CartItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			VariantName: item.VariantName,
			Name:        "Unknown Product",
			UnitPrice:   item.UnitPrice,
			PriceDelta:  item.PriceDelta,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
		}
		if item.Product != nil {
			view.Name = item.Product.Name
			view.Description = item.Product.Description
			view.ImageURL = item.Product.ImageURL
		}
		views = append(views, view)
	}
	return views, nil
}
