package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutService_PlaceOrder(t *testing.T) {
	svc := NewCheckoutService()

	items := []CartItem{
		{ProductID: 1, Title: "Keyboard", Price: 59.99, Quantity: 2},
		{ProductID: 2, Title: "Mouse", Price: 19.90, Quantity: 1},
	}

	confirmation, err := svc.PlaceOrder(context.Background(), 1, items)
	require.NoError(t, err)

	assert.Equal(t, 3, confirmation.ItemCount)
	assert.Equal(t, "139.88", confirmation.Total)

	_, err = uuid.Parse(confirmation.OrderID)
	assert.NoError(t, err)
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	svc := NewCheckoutService()

	confirmation, err := svc.PlaceOrder(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, confirmation)
}

func TestCheckoutService_OrderIDsAreUnique(t *testing.T) {
	svc := NewCheckoutService()
	items := []CartItem{{ProductID: 1, Title: "Keyboard", Price: 10, Quantity: 1}}

	first, err := svc.PlaceOrder(context.Background(), 1, items)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(context.Background(), 1, items)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
}
