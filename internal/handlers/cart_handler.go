package handlers

import (
	"errors"
	"log"

	"kedai/internal/middleware"
	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/count", h.HandleCount)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Put("/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClear)
}

// HandleCount returns the sum of line quantities in the user's active cart.
func (h *CartHandler) HandleCount(c *fiber.Ctx) error {
	count, err := h.service.Count(middleware.UserID(c))
	if err != nil {
		log.Printf("Error counting cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleGetCart returns the user's cart lines with product display data.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.ListItems(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"items": items})
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	VariantID *string `json:"variant_id" validate:"omitempty"`
}

// HandleAddItem adds a line to the cart, merging quantities when the
// (product, variant) pair already exists.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	item, err := h.service.AddItem(middleware.UserID(c), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		return cartErrorResponse(c, "Could not add item to cart", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart",
		"item":    item,
	})
}

// UpdateItemRequest represents the request body for a quantity change.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// HandleUpdateItem sets the quantity of an existing cart line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	item, err := h.service.UpdateItemQuantity(middleware.UserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		return cartErrorResponse(c, "Could not update cart item", err)
	}

	return c.JSON(fiber.Map{
		"message": "Cart item updated",
		"item":    item,
	})
}

// HandleRemoveItem removes a line from the cart. Removing an absent line is
// a success; only a missing cart yields 404.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	err := h.service.RemoveItem(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return cartErrorResponse(c, "Could not remove item from cart", err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClear removes all lines from the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.service.Clear(middleware.UserID(c)); err != nil {
		return cartErrorResponse(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

// cartErrorResponse maps domain errors onto HTTP statuses.
func cartErrorResponse(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	default:
		log.Printf("Cart operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}
