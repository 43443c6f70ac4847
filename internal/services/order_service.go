package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gamehub/internal/models"
	"gamehub/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes order events. Satisfied by the RabbitMQ client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService handles business logic related to checkout and orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetOrdersByUser retrieves the user's orders.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// Checkout turns the given cart line items into a pending order. The cart
// items carry the price cached at add time, which is the price the order is
// placed at. Checkout failures surface to the caller; only the event
// publication afterwards is best-effort.
func (s *OrderService) Checkout(userID string, items []models.CartItem) (*models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("a user is required for checkout")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot check out an empty cart")
	}

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
		totalAmount += item.Subtotal()
	}

	newOrder := &models.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       orderItems,
		TotalAmount: totalAmount,
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(newOrder)
	return newOrder, nil
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping order event.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish("", "order_events", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:    true,
		models.OrderStatusProcessing: true,
		models.OrderStatusCompleted:  true,
		models.OrderStatusFailed:     true,
		models.OrderStatusRefunded:   true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
