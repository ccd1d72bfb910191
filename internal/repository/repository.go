// Package repository defines the storage contracts the services operate
// against. Implementations live in the postgres and memory subpackages.
package repository

import (
	"context"
	"errors"

	"github.com/park-seok-hoon/minishop/internal/domain"
)

// ErrNotFound is returned by stores when the requested row does not exist.
// Services translate it into the appropriate taxonomy code.
var ErrNotFound = errors.New("repository: not found")

type ItemStore interface {
	Get(ctx context.Context, id int64) (*domain.Item, error)
	// GetForUpdate reads an item while taking a row-level lock when called
	// inside WithinTx, serializing concurrent read-then-write sequences.
	GetForUpdate(ctx context.Context, id int64) (*domain.Item, error)
	GetByName(ctx context.Context, name string) (*domain.Item, error)
	Save(ctx context.Context, item *domain.Item) error
	// Update writes price, stock and name, predicated on the item's version,
	// and reports the number of affected rows. Zero rows means the target is
	// gone or was changed concurrently.
	Update(ctx context.Context, item *domain.Item) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]domain.Item, error)
}

type OrderStore interface {
	// Save inserts the order and its line items, assigning their ids.
	Save(ctx context.Context, order *domain.Order) error
	// Get returns the order with its line items populated; the line slice is
	// empty, never nil, when the order has no items.
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	UpdateTotalPrice(ctx context.Context, id int64, total int64) error
	UpdateLineItems(ctx context.Context, orderID int64, lines []domain.OrderLineItem) error
}

type UserStore interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]domain.User, error)
}

// Store is the unit-of-work boundary. Each mutating service operation runs
// inside WithinTx: every store call made through the Store handed to fn is
// committed together or rolled back together.
type Store interface {
	Items() ItemStore
	Orders() OrderStore
	Users() UserStore
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
