package handlers

import (
	"errors"
	"log"

	"kedai/internal/middleware"
	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// defaultTaxRate applies when checkout does not specify one.
var defaultTaxRate = decimal.NewFromFloat(0.08)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders retrieves the authenticated user's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// HandleGetOrderByID retrieves a single order owned by the user.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"order": order})
}

// CreateOrderRequest represents the checkout request body. Absent fields use
// the defaults: delivery fee 0, tax rate 0.08.
type CreateOrderRequest struct {
	DeliveryFee *decimal.Decimal `json:"delivery_fee"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// HandleCreateOrder converts the user's active cart into an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	req := CreateOrderRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing checkout request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	deliveryFee := decimal.Zero
	if req.DeliveryFee != nil {
		deliveryFee = *req.DeliveryFee
	}
	taxRate := defaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	order, err := h.service.CreateOrderFromCart(middleware.UserID(c), deliveryFee, taxRate)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		case errors.Is(err, models.ErrInvalidCharge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid delivery fee or tax rate",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error creating order: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create order",
				"error":   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// UpdateStatusRequest represents the status patch body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateOrderStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	}

	order, err := h.service.UpdateOrderStatus(orderID, middleware.UserID(c), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, models.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order status",
				"error":   err.Error(),
			})
		case errors.Is(err, models.ErrStatusFinal):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order status can no longer change",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error updating status of order %s: %v", orderID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not update order status",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}
