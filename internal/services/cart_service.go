package services

import (
	"errors"
	"fmt"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
)

// CartService handles business logic for the per-user shopping cart. The
// cart total is never trusted from the client: after every mutation it is
// recomputed from the current catalog price of each item.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem adds a product to the user's cart, creating the cart lazily on
// first use. Adding a product already in the cart increments its quantity
// instead of duplicating the line.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperr.BadRequest("quantity must be at least 1")
	}

	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	if err := s.recomputeTotal(cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// RemoveItem removes a product line from the cart. Removing from a missing
// cart, or removing the last item, yields an empty cart rather than an
// error.
func (s *CartService) RemoveItem(userID, productID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return emptyCart(userID), nil
		}
		return nil, err
	}

	remaining := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			remaining = append(remaining, item)
		}
	}
	cart.Items = remaining

	if err := s.recomputeTotal(cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// UpdateQuantity sets the quantity of a cart line. A quantity below 1
// removes the line entirely.
func (s *CartService) UpdateQuantity(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(userID, productID)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("cart not found")
		}
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("item not found in cart")
	}

	if err := s.recomputeTotal(cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// GetCart returns the user's cart with product details resolved. A user who
// never added anything gets an empty cart, not an error.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return emptyCart(userID), nil
		}
		return nil, err
	}
	return cart, nil
}

// recomputeTotal rereads the current price of every product in the cart and
// sums price times quantity. Stale client-side prices never enter the total.
func (s *CartService) recomputeTotal(cart *models.Cart) error {
	var total float64
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to price cart item %s: %w", item.ProductID, err)
		}
		total += product.Price * float64(item.Quantity)
	}
	cart.TotalPrice = total
	return nil
}

func emptyCart(userID string) *models.Cart {
	return &models.Cart{
		UserID:     userID,
		Items:      []models.CartItem{},
		TotalPrice: 0,
	}
}
