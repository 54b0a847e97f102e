package services_test

import (
	"testing"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockProductRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()

	require.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-a", Name: "Product A", Price: 10.0, Stock: 100, SKU: "SKU-A", IsActive: true,
	}))
	require.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-b", Name: "Product B", Price: 5.0, Stock: 50, SKU: "SKU-B", IsActive: true,
	}))

	return services.NewCartService(cartRepo, productRepo), productRepo
}

func TestCartService_AddItem(t *testing.T) {
	service, _ := newCartFixture(t)

	// First add creates the cart lazily.
	cart, err := service.AddItem("user-1", "prod-a", 2)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 20.0, cart.TotalPrice)

	// Adding a second product appends a line: A (10 x 2) + B (5 x 1) = 25.
	cart, err = service.AddItem("user-1", "prod-b", 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 25.0, cart.TotalPrice)

	// Adding an existing product increments its quantity, no duplicate line.
	cart, err = service.AddItem("user-1", "prod-a", 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 35.0, cart.TotalPrice)
	for _, item := range cart.Items {
		if item.ProductID == "prod-a" {
			assert.Equal(t, 3, item.Quantity)
		}
	}
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	service, _ := newCartFixture(t)

	_, err := service.AddItem("user-1", "prod-missing", 1)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCartService_TotalTracksCurrentPrices(t *testing.T) {
	service, productRepo := newCartFixture(t)

	_, err := service.AddItem("user-1", "prod-a", 2)
	require.NoError(t, err)

	// A price edit in the catalog must be reflected by the next mutation.
	product, err := productRepo.GetByID("prod-a")
	require.NoError(t, err)
	product.Price = 12.0
	require.NoError(t, productRepo.Update(product))

	cart, err := service.AddItem("user-1", "prod-b", 1)
	require.NoError(t, err)
	assert.Equal(t, 12.0*2+5.0, cart.TotalPrice)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	service, _ := newCartFixture(t)

	_, err := service.AddItem("user-1", "prod-a", 2)
	require.NoError(t, err)

	cart, err := service.UpdateQuantity("user-1", "prod-a", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.0, cart.TotalPrice)

	// Quantity below 1 removes the line entirely.
	cart, err = service.UpdateQuantity("user-1", "prod-a", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartService_UpdateQuantity_NotFound(t *testing.T) {
	service, _ := newCartFixture(t)

	// No cart at all.
	_, err := service.UpdateQuantity("user-1", "prod-a", 2)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Cart exists but the product is not in it.
	_, err = service.AddItem("user-1", "prod-a", 1)
	require.NoError(t, err)
	_, err = service.UpdateQuantity("user-1", "prod-b", 2)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCartService_RemoveItem(t *testing.T) {
	service, _ := newCartFixture(t)

	_, err := service.AddItem("user-1", "prod-a", 2)
	require.NoError(t, err)
	_, err = service.AddItem("user-1", "prod-b", 1)
	require.NoError(t, err)

	cart, err := service.RemoveItem("user-1", "prod-a")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5.0, cart.TotalPrice)

	// Removing the last item yields an empty cart, not an error.
	cart, err = service.RemoveItem("user-1", "prod-b")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartService_RemoveItem_NoCart(t *testing.T) {
	service, _ := newCartFixture(t)

	cart, err := service.RemoveItem("user-without-cart", "prod-a")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartService_GetCart_Empty(t *testing.T) {
	service, _ := newCartFixture(t)

	cart, err := service.GetCart("user-without-cart")
	require.NoError(t, err)
	assert.Equal(t, "user-without-cart", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}
