package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
)

type ItemRepository struct {
	q queryer
}

const itemColumns = "id, name, price, stock_quantity, version"

func (r *ItemRepository) Get(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanItem(r.q.QueryRowContext(ctx, query, id))
}

func (r *ItemRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	// The row lock only takes effect when r.q is a transaction; callers go
	// through Store.WithinTx for every mutating operation.
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanItem(r.q.QueryRowContext(ctx, query, id))
}

func (r *ItemRepository) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`
	return r.scanItem(r.q.QueryRowContext(ctx, query, name))
}

func (r *ItemRepository) scanItem(row *sql.Row) (*domain.Item, error) {
	item := &domain.Item{}
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.StockQuantity, &item.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("item scan error: %v", err)
	}
	return item, nil
}

func (r *ItemRepository) Save(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (name, price, stock_quantity, version)
		VALUES ($1, $2, $3, 0)
		RETURNING id
	`
	if err := r.q.QueryRowContext(ctx, query, item.Name, item.Price, item.StockQuantity).Scan(&item.ID); err != nil {
		return fmt.Errorf("item insert error: %v", err)
	}
	item.Version = 0
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (int64, error) {
	query := `
		UPDATE items
		SET name = $2, price = $3, stock_quantity = $4, version = version + 1
		WHERE id = $1 AND version = $5
	`
	result, err := r.q.ExecContext(ctx, query,
		item.ID, item.Name, item.Price, item.StockQuantity, item.Version)
	if err != nil {
		return 0, fmt.Errorf("item update error: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected > 0 {
		item.Version++
	}
	return rowsAffected, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("item delete error: %v", err)
	}
	return result.RowsAffected()
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("items retrieval error: %v", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.StockQuantity, &item.Version); err != nil {
			return nil, fmt.Errorf("item scan error: %v", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
