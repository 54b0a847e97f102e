package services

import (
	"errors"
	"log"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
	"github.com/KhuramMirza/e-commerce-backend-api/pkg/rabbitmq"
)

// OrderService handles business logic related to orders: snapshotting a
// cart into an immutable order, stock decrements and status updates.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	mqClient    rabbitmq.Publisher
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case event publication is skipped.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	mqClient rabbitmq.Publisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		mqClient:    mqClient,
	}
}

// CreateOrder snapshots the user's cart into a new pending order, clears
// the cart and decrements stock per item. Name, price and image are copied
// at this instant so later catalog edits never change the order.
//
// The cart clear and the per-product stock decrements are independent
// writes with no shared transaction; concurrent orders against the same
// product can drive stock negative. The conflict policy is an open product
// decision and deliberately not guessed here.
func (s *OrderService) CreateOrder(userID, address, paymentMethod string) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.BadRequest("cart is empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperr.BadRequest("cart is empty")
	}

	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := item.Product
		if product == nil {
			product, err = s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Image:     product.Image,
		})
	}

	order := &models.Order{
		UserID:        userID,
		Items:         orderItems,
		TotalPrice:    cart.TotalPrice,
		Status:        models.OrderStatusPending,
		Address:       address,
		PaymentMethod: paymentMethod,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	// The cart is cleared, not deleted: the next add reuses it.
	cart.Items = []models.CartItem{}
	cart.TotalPrice = 0
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	for _, item := range orderItems {
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	s.publishEvent(rabbitmq.RoutingKeyOrderCreated, order)

	return order, nil
}

// GetOrder retrieves a single order.
func (s *OrderService) GetOrder(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	return order, nil
}

// GetMyOrders retrieves the user's orders newest-first.
func (s *OrderService) GetMyOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetAllOrders retrieves every order newest-first with the owning user's
// name and email resolved. Admin-only at the route level.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus overwrites the order's status. Any valid status may
// replace any other; there is no forward-only transition check.
func (s *OrderService) UpdateOrderStatus(orderID, status string) (*models.Order, error) {
	if !models.ValidOrderStatuses[status] {
		return nil, apperr.BadRequest("invalid order status: " + status)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.RoutingKeyOrderStatusUpdated, order)

	return order, nil
}

// publishEvent emits an order lifecycle event. Publish failures are logged
// and never fail the request.
func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.mqClient == nil {
		return
	}

	event := rabbitmq.OrderEvent{
		Event:      eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
	}
	if order.User != nil {
		event.UserEmail = order.User.Email
	} else if user, err := s.userRepo.GetByID(order.UserID); err == nil {
		event.UserEmail = user.Email
	}

	if err := s.mqClient.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
