// Package memory is an in-memory implementation of the repository contracts.
// WithinTx snapshots the whole data set and restores it when the callback
// fails, giving tests the same all-or-nothing semantics as the postgres store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
)

type data struct {
	items  map[int64]domain.Item
	users  map[int64]domain.User
	orders map[int64]domain.Order

	nextItemID  int64
	nextUserID  int64
	nextOrderID int64
	nextLineID  int64
}

func (d *data) clone() *data {
	c := &data{
		items:       make(map[int64]domain.Item, len(d.items)),
		users:       make(map[int64]domain.User, len(d.users)),
		orders:      make(map[int64]domain.Order, len(d.orders)),
		nextItemID:  d.nextItemID,
		nextUserID:  d.nextUserID,
		nextOrderID: d.nextOrderID,
		nextLineID:  d.nextLineID,
	}
	for id, item := range d.items {
		c.items[id] = item
	}
	for id, user := range d.users {
		c.users[id] = user
	}
	for id, order := range d.orders {
		c.orders[id] = cloneOrder(order)
	}
	return c
}

func cloneOrder(order domain.Order) domain.Order {
	lines := make([]domain.OrderLineItem, len(order.Items))
	copy(lines, order.Items)
	order.Items = lines
	return order
}

type Store struct {
	mu   sync.Mutex
	data *data
	inTx bool
}

func NewStore() *Store {
	return &Store{data: &data{
		items:       map[int64]domain.Item{},
		users:       map[int64]domain.User{},
		orders:      map[int64]domain.Order{},
		nextItemID:  1,
		nextUserID:  1,
		nextOrderID: 1,
		nextLineID:  1,
	}}
}

func (s *Store) Items() repository.ItemStore   { return &itemStore{s} }
func (s *Store) Orders() repository.OrderStore { return &orderStore{s} }
func (s *Store) Users() repository.UserStore   { return &userStore{s} }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{data: s.data, inTx: true}
	if err := fn(ctx, tx); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

type itemStore struct{ s *Store }

func (r *itemStore) Get(ctx context.Context, id int64) (*domain.Item, error) {
	item, ok := r.s.data.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *itemStore) GetForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	// No row locks in memory; WithinTx already serializes writers.
	return r.Get(ctx, id)
}

func (r *itemStore) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	for _, item := range r.s.data.items {
		if item.Name == name {
			item := item
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *itemStore) Save(ctx context.Context, item *domain.Item) error {
	item.ID = r.s.data.nextItemID
	r.s.data.nextItemID++
	item.Version = 0
	r.s.data.items[item.ID] = *item
	return nil
}

func (r *itemStore) Update(ctx context.Context, item *domain.Item) (int64, error) {
	existing, ok := r.s.data.items[item.ID]
	if !ok || existing.Version != item.Version {
		return 0, nil
	}
	item.Version++
	r.s.data.items[item.ID] = *item
	return 1, nil
}

func (r *itemStore) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := r.s.data.items[id]; !ok {
		return 0, nil
	}
	delete(r.s.data.items, id)
	return 1, nil
}

func (r *itemStore) List(ctx context.Context) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(r.s.data.items))
	for _, item := range r.s.data.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

type orderStore struct{ s *Store }

func (r *orderStore) Save(ctx context.Context, order *domain.Order) error {
	order.ID = r.s.data.nextOrderID
	r.s.data.nextOrderID++
	for i := range order.Items {
		order.Items[i].ID = r.s.data.nextLineID
		r.s.data.nextLineID++
		order.Items[i].OrderID = order.ID
	}
	r.s.data.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *orderStore) Get(ctx context.Context, id int64) (*domain.Order, error) {
	order, ok := r.s.data.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	order = cloneOrder(order)
	return &order, nil
}

func (r *orderStore) List(ctx context.Context) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(r.s.data.orders))
	for _, order := range r.s.data.orders {
		orders = append(orders, cloneOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *orderStore) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	order, ok := r.s.data.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.Status = status
	r.s.data.orders[id] = order
	return nil
}

func (r *orderStore) UpdateTotalPrice(ctx context.Context, id int64, total int64) error {
	order, ok := r.s.data.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.TotalPrice = total
	r.s.data.orders[id] = order
	return nil
}

func (r *orderStore) UpdateLineItems(ctx context.Context, orderID int64, lines []domain.OrderLineItem) error {
	order, ok := r.s.data.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, line := range lines {
		updated := false
		for i := range order.Items {
			if order.Items[i].ID == line.ID {
				order.Items[i].ItemID = line.ItemID
				order.Items[i].Quantity = line.Quantity
				updated = true
				break
			}
		}
		if !updated {
			return repository.ErrNotFound
		}
	}
	r.s.data.orders[orderID] = order
	return nil
}

type userStore struct{ s *Store }

func (r *userStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.s.data.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.s.data.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userStore) Save(ctx context.Context, user *domain.User) error {
	user.ID = r.s.data.nextUserID
	r.s.data.nextUserID++
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *userStore) Update(ctx context.Context, user *domain.User) (int64, error) {
	if _, ok := r.s.data.users[user.ID]; !ok {
		return 0, nil
	}
	r.s.data.users[user.ID] = *user
	return 1, nil
}

func (r *userStore) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := r.s.data.users[id]; !ok {
		return 0, nil
	}
	delete(r.s.data.users, id)
	return 1, nil
}

func (r *userStore) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.s.data.users))
	for _, user := range r.s.data.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
