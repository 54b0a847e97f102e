package services_test

import (
	"testing"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"
	"github.com/KhuramMirza/e-commerce-backend-api/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of rabbitmq.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(event rabbitmq.OrderEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

type orderFixture struct {
	service     *services.OrderService
	cartService *services.CartService
	orderRepo   *repositories.MockOrderRepository
	productRepo *repositories.MockProductRepository
	cartRepo    *repositories.MockCartRepository
	publisher   *MockPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository()
	userRepo := repositories.NewMockUserRepository()
	publisher := new(MockPublisher)
	publisher.On("PublishOrderEvent", mock.Anything).Return(nil)

	require.NoError(t, userRepo.Create(&models.User{
		ID: "user-1", Name: "Test User", Email: "test@example.com", Role: models.RoleUser,
	}))
	require.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-a", Name: "Product A", Price: 10.0, Stock: 10, SKU: "SKU-A",
		Image: "https://img.example.com/a.png", IsActive: true,
	}))
	require.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-b", Name: "Product B", Price: 5.0, Stock: 5, SKU: "SKU-B", IsActive: true,
	}))

	return &orderFixture{
		service:     services.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, publisher),
		cartService: services.NewCartService(cartRepo, productRepo),
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		publisher:   publisher,
	}
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.CreateOrder("user-1", "12 Main Street, Springfield", models.PaymentMethodCash)
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.cartService.AddItem("user-1", "prod-a", 2)
	require.NoError(t, err)
	_, err = f.cartService.AddItem("user-1", "prod-b", 1)
	require.NoError(t, err)

	order, err := f.service.CreateOrder("user-1", "12 Main Street, Springfield", models.PaymentMethodCash)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Len(t, order.Items, 2)

	// Items carry a snapshot of the product at checkout time.
	byProduct := map[string]models.OrderItem{}
	for _, item := range order.Items {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, "Product A", byProduct["prod-a"].Name)
	assert.Equal(t, 10.0, byProduct["prod-a"].Price)
	assert.Equal(t, 2, byProduct["prod-a"].Quantity)
	assert.Equal(t, "https://img.example.com/a.png", byProduct["prod-a"].Image)

	// The cart is cleared, not deleted.
	cart, err := f.cartService.GetCart("user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)

	// Stock is decremented per ordered quantity.
	prodA, err := f.productRepo.GetByID("prod-a")
	require.NoError(t, err)
	assert.Equal(t, 8, prodA.Stock)
	prodB, err := f.productRepo.GetByID("prod-b")
	require.NoError(t, err)
	assert.Equal(t, 4, prodB.Stock)

	f.publisher.AssertCalled(t, "PublishOrderEvent", mock.Anything)
}

func TestOrderService_CreateOrder_SnapshotImmuneToPriceEdits(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.cartService.AddItem("user-1", "prod-a", 1)
	require.NoError(t, err)

	order, err := f.service.CreateOrder("user-1", "12 Main Street, Springfield", "")
	require.NoError(t, err)

	// A later price edit must not leak into the stored order.
	product, err := f.productRepo.GetByID("prod-a")
	require.NoError(t, err)
	product.Price = 99.0
	require.NoError(t, f.productRepo.Update(product))

	stored, err := f.service.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stored.Items[0].Price)
	assert.Equal(t, 10.0, stored.TotalPrice)

	// Empty payment method defaults to cash.
	assert.Equal(t, models.PaymentMethodCash, stored.PaymentMethod)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.cartService.AddItem("user-1", "prod-a", 1)
	require.NoError(t, err)
	order, err := f.service.CreateOrder("user-1", "12 Main Street, Springfield", models.PaymentMethodCash)
	require.NoError(t, err)

	updated, err := f.service.UpdateOrderStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	// Any valid status may replace any other; no forward-only check.
	updated, err = f.service.UpdateOrderStatus(order.ID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestOrderService_UpdateOrderStatus_Invalid(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.UpdateOrderStatus("order-x", "teleported")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)

	_, err = f.service.UpdateOrderStatus("order-missing", models.OrderStatusPaid)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestOrderService_GetMyOrders_NewestFirst(t *testing.T) {
	f := newOrderFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.cartService.AddItem("user-1", "prod-a", 1)
		require.NoError(t, err)
		_, err = f.service.CreateOrder("user-1", "12 Main Street, Springfield", models.PaymentMethodCash)
		require.NoError(t, err)
	}

	orders, err := f.service.GetMyOrders("user-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i-1].CreatedAt.Before(orders[i].CreatedAt))
	}
}
