package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
)

func TestModifyOrderIncreaseQuantity(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	item := seedItem(t, store, "keyboard", 10000, 10)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, 9, fetchItem(t, store, item.ID).StockQuantity)

	updated, err := svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: item.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)

	require.Equal(t, int64(50000), updated.TotalPrice)
	require.Equal(t, 5, updated.Items[0].Quantity)
	require.Equal(t, 5, fetchItem(t, store, item.ID).StockQuantity)
}

func TestModifyOrderDecreaseQuantity(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	item := seedItem(t, store, "keyboard", 10000, 10)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, 5, fetchItem(t, store, item.ID).StockQuantity)

	updated, err := svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: item.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Equal(t, int64(20000), updated.TotalPrice)
	require.Equal(t, 8, fetchItem(t, store, item.ID).StockQuantity)
}

func TestModifyOrderSwapItem(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	keyboard := seedItem(t, store, "keyboard", 10000, 10)
	mouse := seedItem(t, store, "mouse", 5000, 20)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: keyboard.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, fetchItem(t, store, keyboard.ID).StockQuantity)

	updated, err := svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: mouse.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	require.Equal(t, int64(20000), updated.TotalPrice)
	require.Equal(t, mouse.ID, updated.Items[0].ItemID)
	require.Equal(t, 4, updated.Items[0].Quantity)

	// The old item gets its full reservation back, the new one is decremented.
	require.Equal(t, 10, fetchItem(t, store, keyboard.ID).StockQuantity)
	require.Equal(t, 16, fetchItem(t, store, mouse.ID).StockQuantity)
}

func TestModifyOrderKeepsUneditedLinesInTotal(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	keyboard := seedItem(t, store, "keyboard", 10000, 10)
	mouse := seedItem(t, store, "mouse", 5000, 20)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items: []domain.OrderItemRequest{
			{ItemID: keyboard.ID, Quantity: 2},
			{ItemID: mouse.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(35000), order.TotalPrice)

	updated, err := svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: keyboard.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	// 4 keyboards plus the untouched 3 mice.
	require.Equal(t, int64(55000), updated.TotalPrice)
	require.Equal(t, 6, fetchItem(t, store, keyboard.ID).StockQuantity)
	require.Equal(t, 17, fetchItem(t, store, mouse.ID).StockQuantity)
}

func TestModifyOrderOutOfStockRollsBack(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	keyboard := seedItem(t, store, "keyboard", 10000, 10)
	mouse := seedItem(t, store, "mouse", 5000, 3)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items: []domain.OrderItemRequest{
			{ItemID: keyboard.ID, Quantity: 2},
			{ItemID: mouse.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: keyboard.ID, Quantity: 5},
			{OrderItemID: order.Items[1].ID, ItemID: mouse.ID, Quantity: 10},
		},
	})
	requireCode(t, err, apperr.CodeOutOfStock)

	// The first edit must not survive the failed second one.
	require.Equal(t, 8, fetchItem(t, store, keyboard.ID).StockQuantity)
	require.Equal(t, 2, fetchItem(t, store, mouse.ID).StockQuantity)

	unchanged := fetchOrder(t, store, order.ID)
	require.Equal(t, int64(25000), unchanged.TotalPrice)
	require.Equal(t, 2, unchanged.Items[0].Quantity)
	require.Equal(t, 1, unchanged.Items[1].Quantity)
}

func TestModifyOrderEmptyRequest(t *testing.T) {
	t.Parallel()

	svc, _ := newOrderService(t)

	_, err := svc.ModifyOrder(context.Background(), 1, domain.ModifyOrderRequest{})
	requireCode(t, err, apperr.CodeInvalidRequest)
}

func TestModifyOrderNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newOrderService(t)

	_, err := svc.ModifyOrder(context.Background(), 42, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{{OrderItemID: 1, ItemID: 1, Quantity: 1}},
	})
	requireCode(t, err, apperr.CodeOrderNotFound)
}

func TestModifyOrderCompleted(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	item := seedItem(t, store, "keyboard", 10000, 10)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, string(domain.OrderStatusCompleted))
	require.NoError(t, err)

	_, err = svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: item.ID, Quantity: 2},
		},
	})
	requireCode(t, err, apperr.CodeCannotModifyCompleted)
}

func TestModifyOrderUnknownLine(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	item := seedItem(t, store, "keyboard", 10000, 10)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{{OrderItemID: 999, ItemID: item.ID, Quantity: 2}},
	})
	requireCode(t, err, apperr.CodeOrderItemNotFound)
}

func TestModifyOrderInvalidQuantity(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	item := seedItem(t, store, "keyboard", 10000, 10)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: item.ID, Quantity: 0},
		},
	})
	requireCode(t, err, apperr.CodeInvalidQuantity)

	require.Equal(t, 8, fetchItem(t, store, item.ID).StockQuantity)
}

func TestModifyOrderSwapToMissingItem(t *testing.T) {
	t.Parallel()

	svc, store := newOrderService(t)
	ctx := context.Background()
	item := seedItem(t, store, "keyboard", 10000, 10)

	order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.ModifyOrder(ctx, order.ID, domain.ModifyOrderRequest{
		Items: []domain.ModifyOrderItem{
			{OrderItemID: order.Items[0].ID, ItemID: 999, Quantity: 1},
		},
	})
	requireCode(t, err, apperr.CodeItemNotFound)

	require.Equal(t, 8, fetchItem(t, store, item.ID).StockQuantity)
}
