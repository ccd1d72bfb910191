package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
)

func TestCancelOrder(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()

	keyboard := seedItem(t, store, "keyboard", 50000, 10)
	mouse := seedItem(t, store, "mouse", 15000, 20)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items: []domain.OrderItemRequest{
			{ItemID: keyboard.ID, Quantity: 2},
			{ItemID: mouse.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	receipt, err := svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, receipt.OrderID)
	require.Len(t, receipt.Items, 2)

	require.Equal(t, keyboard.ID, receipt.Items[0].ItemID)
	require.Equal(t, "keyboard", receipt.Items[0].ItemName)
	require.Equal(t, 2, receipt.Items[0].Quantity)
	require.Equal(t, 10, receipt.Items[0].StockAfter)

	require.Equal(t, mouse.ID, receipt.Items[1].ItemID)
	require.Equal(t, 1, receipt.Items[1].Quantity)
	require.Equal(t, 20, receipt.Items[1].StockAfter)

	require.Equal(t, 10, fetchItem(t, store, keyboard.ID).StockQuantity)
	require.Equal(t, 20, fetchItem(t, store, mouse.ID).StockQuantity)

	cancelled := fetchOrder(t, store, order.ID)
	require.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	// Cancellation keeps the historical total.
	require.Equal(t, int64(115000), cancelled.TotalPrice)
}

func TestCancelOrderTwice(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	item := seedItem(t, store, "keyboard", 50000, 10)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, order.ID)
	requireCode(t, err, apperr.CodeAlreadyCancelled)

	// Stock is restored exactly once.
	require.Equal(t, 10, fetchItem(t, store, item.ID).StockQuantity)
}

func TestCancelOrderNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newOrderService(t)

	_, err := svc.CancelOrder(context.Background(), 42)
	requireCode(t, err, apperr.CodeOrderNotFound)
}

func TestCancelOrderWithoutLines(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()

	order := &domain.Order{UserID: 1, Status: domain.OrderStatusNew}
	require.NoError(t, store.Orders().Save(ctx, order))

	_, err := svc.CancelOrder(ctx, order.ID)
	requireCode(t, err, apperr.CodeOrderItemNotFound)
}

func TestCancelOrderMissingItemRollsBack(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()

	keyboard := seedItem(t, store, "keyboard", 50000, 10)
	mouse := seedItem(t, store, "mouse", 15000, 20)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items: []domain.OrderItemRequest{
			{ItemID: keyboard.ID, Quantity: 2},
			{ItemID: mouse.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	rows, err := store.Items().Delete(ctx, mouse.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	_, err = svc.CancelOrder(ctx, order.ID)
	requireCode(t, err, apperr.CodeItemNotFound)

	// The keyboard restoration must not survive the failed cancellation.
	require.Equal(t, 8, fetchItem(t, store, keyboard.ID).StockQuantity)
	require.Equal(t, domain.OrderStatusNew, fetchOrder(t, store, order.ID).Status)
}
