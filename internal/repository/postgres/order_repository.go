package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
)

type OrderRepository struct {
	q queryer
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (user_id, order_date, total_price, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.q.QueryRowContext(ctx, query,
		order.UserID, order.OrderDate, order.TotalPrice, order.Status).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("order insert error: %v", err)
	}

	for i := range order.Items {
		line := &order.Items[i]
		line.OrderID = order.ID

		lineQuery := `
			INSERT INTO order_items (order_id, item_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := r.q.QueryRowContext(ctx, lineQuery, line.OrderID, line.ItemID, line.Quantity).Scan(&line.ID); err != nil {
			return fmt.Errorf("order item insert error: %v", err)
		}
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, user_id, order_date, total_price, status
		FROM orders
		WHERE id = $1
	`
	order := &domain.Order{}
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.OrderDate, &order.TotalPrice, &order.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("order retrieval error: %v", err)
	}

	lines, err := r.linesFor(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = lines
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, user_id, order_date, total_price, status
		FROM orders
		ORDER BY id
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("orders retrieval error: %v", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.TotalPrice, &order.Status); err != nil {
			return nil, fmt.Errorf("order scan error: %v", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := r.linesFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = lines
	}
	return orders, nil
}

func (r *OrderRepository) linesFor(ctx context.Context, orderID int64) ([]domain.OrderLineItem, error) {
	query := `
		SELECT id, order_id, item_id, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("order items retrieval error: %v", err)
	}
	defer rows.Close()

	lines := []domain.OrderLineItem{}
	for rows.Next() {
		var line domain.OrderLineItem
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ItemID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("order item scan error: %v", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("order status update error: %v", err)
	}
	return r.requireRow(result)
}

func (r *OrderRepository) UpdateTotalPrice(ctx context.Context, id int64, total int64) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE orders SET total_price = $2 WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("order total update error: %v", err)
	}
	return r.requireRow(result)
}

func (r *OrderRepository) UpdateLineItems(ctx context.Context, orderID int64, lines []domain.OrderLineItem) error {
	query := `
		UPDATE order_items
		SET item_id = $3, quantity = $4
		WHERE id = $1 AND order_id = $2
	`
	for _, line := range lines {
		result, err := r.q.ExecContext(ctx, query, line.ID, orderID, line.ItemID, line.Quantity)
		if err != nil {
			return fmt.Errorf("order item update error: %v", err)
		}
		if err := r.requireRow(result); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
