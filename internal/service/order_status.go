package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
	"github.com/park-seok-hoon/minishop/pkg/events"
)

// UpdateOrderStatus moves an order through the status state machine. A legal
// transition to CANCELLED restores stock for every line item before the status
// is persisted.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int64, rawStatus string) (*domain.Order, error) {
	var order *domain.Order
	var previous domain.OrderStatus

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		order, err = tx.Orders().Get(ctx, orderID)
		if err != nil {
			return mapNotFound(err, apperr.CodeOrderNotFound)
		}
		previous = order.Status

		next, err := domain.ParseOrderStatus(rawStatus)
		if err != nil {
			return err
		}
		if err := domain.ValidateStatusTransition(order.Status, next); err != nil {
			return err
		}

		if next == domain.OrderStatusCancelled {
			if _, err := s.restoreStock(ctx, tx, order); err != nil {
				return err
			}
		}

		if err := tx.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return mapNotFound(err, apperr.CodeOrderNotFound)
		}
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(previous)),
		zap.String("to", string(order.Status)))
	s.publish(events.OrderStatusChangedEvent, orderID, events.OrderStatusChangedPayload{
		From: string(previous),
		To:   string(order.Status),
	})
	return order, nil
}

// restoreStock returns every line item's quantity to its item and reports the
// per-item result.
func (s *OrderService) restoreStock(ctx context.Context, tx repository.Store, order *domain.Order) ([]domain.RestoredLineItem, error) {
	restored := make([]domain.RestoredLineItem, 0, len(order.Items))

	for _, line := range order.Items {
		item, err := tx.Items().GetForUpdate(ctx, line.ItemID)
		if err != nil {
			return nil, mapNotFound(err, apperr.CodeItemNotFound)
		}

		item.StockQuantity += line.Quantity
		if err := updateItem(ctx, tx, item); err != nil {
			return nil, err
		}

		restored = append(restored, domain.RestoredLineItem{
			ItemID:     item.ID,
			ItemName:   item.Name,
			Quantity:   line.Quantity,
			StockAfter: item.StockQuantity,
		})
	}
	return restored, nil
}
