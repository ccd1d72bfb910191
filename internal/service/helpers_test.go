package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository/memory"
	"github.com/park-seok-hoon/minishop/internal/service"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
)

func newOrderService(t *testing.T) (*service.OrderService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return service.NewOrderService(store, nil, nil, nil), store
}

func seedItem(t *testing.T, store *memory.Store, name string, price int64, stock int) *domain.Item {
	t.Helper()
	item := &domain.Item{Name: name, Price: price, StockQuantity: stock}
	require.NoError(t, store.Items().Save(context.Background(), item))
	return item
}

func fetchItem(t *testing.T, store *memory.Store, id int64) *domain.Item {
	t.Helper()
	item, err := store.Items().Get(context.Background(), id)
	require.NoError(t, err)
	return item
}

func fetchOrder(t *testing.T, store *memory.Store, id int64) *domain.Order {
	t.Helper()
	order, err := store.Orders().Get(context.Background(), id)
	require.NoError(t, err)
	return order
}

func requireCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperr.CodeOf(err))
}
