package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyCart is returned when checkout is attempted with no items.
var ErrEmptyCart = errors.New("Cart is empty")

// CartItem is a single line of the client's cart.
type CartItem struct {
	ProductID int     `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderConfirmation acknowledges a simulated checkout. No payment is taken
// and no order is persisted.
type OrderConfirmation struct {
	OrderID   string `json:"orderId"`
	ItemCount int    `json:"itemCount"`
	Total     string `json:"total"`
}

// CheckoutService simulates order placement for the storefront.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID uint, items []CartItem) (*OrderConfirmation, error)
}

type checkoutService struct{}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService() CheckoutService {
	return &checkoutService{}
}

// PlaceOrder totals the cart and returns a confirmation with a generated
// order id.
func (s *checkoutService) PlaceOrder(_ context.Context, _ uint, items []CartItem) (*OrderConfirmation, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	itemCount := 0
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		itemCount += item.Quantity
	}

	return &OrderConfirmation{
		OrderID:   uuid.NewString(),
		ItemCount: itemCount,
		Total:     total.StringFixed(2),
	}, nil
}
