package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/pkg/metrics"
	"kedai/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// Routing keys for order lifecycle events.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status.updated"
)

// OrderEvent is the message published to the order events queue.
type OrderEvent struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
	Total   string `json:"total,omitempty"`
}

// OrderService handles order reads, status updates and the cart-to-order
// conversion.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetOrders retrieves the user's orders, newest first.
func (s *OrderService) GetOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllByUser(userID)
}

// GetOrderByID retrieves a single order owned by the user.
func (s *OrderService) GetOrderByID(id, userID string) (*models.Order, error) {
	return s.orderRepo.GetByID(id, userID)
}

// CreateOrderFromCart converts the user's active cart into a pending order.
// The conversion is all-or-nothing: on any failure no order exists and the
// cart keeps its lines. Checkout always prices at cart-time; the catalog is
// not consulted.
func (s *OrderService) CreateOrderFromCart(userID string, deliveryFee, taxRate decimal.Decimal) (*models.Order, error) {
	if deliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee %s: %w", deliveryFee, models.ErrInvalidCharge)
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("tax rate %s: %w", taxRate, models.ErrInvalidCharge)
	}

	order, err := s.orderRepo.ConvertCart(userID, deliveryFee, taxRate)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			metrics.OrderConversionFailuresTotal.WithLabelValues("empty_cart").Inc()
		} else {
			metrics.OrderConversionFailuresTotal.WithLabelValues("transaction").Inc()
		}
		return nil, err
	}
	metrics.OrdersCreatedTotal.Inc()

	s.publishEvent(EventOrderCreated, OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Total:   order.Total.String(),
	})

	return order, nil
}

// UpdateOrderStatus moves an order to a new status. Paid and cancelled are
// terminal: only pending orders may transition, and re-asserting the current
// status is a no-op success.
func (s *OrderService) UpdateOrderStatus(id, userID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, models.ErrInvalidStatus)
	}

	order, err := s.orderRepo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %s is %s: %w", id, order.Status, models.ErrStatusFinal)
	}

	if err := s.orderRepo.UpdateStatus(id, userID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.publishEvent(EventOrderStatusUpdated, OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
	})

	return order, nil
}

// publishEvent sends an order event to RabbitMQ. Publishing is best effort:
// a broker failure is logged and never fails the request.
func (s *OrderService) publishEvent(routingKey string, event OrderEvent) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, event.OrderID, err)
	}
}
