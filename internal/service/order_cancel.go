package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
	"github.com/park-seok-hoon/minishop/pkg/events"
)

// CancelOrder restores stock for every line item, marks the order CANCELLED
// and returns a receipt of what was restored. The order's total price is left
// unchanged: cancellation never rewrites historical pricing. Cancelling twice
// fails on the second attempt.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) (*domain.CancellationReceipt, error) {
	var receipt *domain.CancellationReceipt

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		order, err := tx.Orders().Get(ctx, orderID)
		if err != nil {
			return mapNotFound(err, apperr.CodeOrderNotFound)
		}
		if order.Status == domain.OrderStatusCancelled {
			return apperr.New(apperr.CodeAlreadyCancelled)
		}
		if len(order.Items) == 0 {
			return apperr.New(apperr.CodeOrderItemNotFound)
		}

		restored, err := s.restoreStock(ctx, tx, order)
		if err != nil {
			return err
		}

		if err := tx.Orders().UpdateStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
			return mapNotFound(err, apperr.CodeOrderNotFound)
		}

		receipt = &domain.CancellationReceipt{OrderID: orderID, Items: restored}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncCancelled()
	s.logger.Info("order cancelled",
		zap.Int64("order_id", orderID),
		zap.Int("restored_lines", len(receipt.Items)))
	s.publish(events.OrderCancelledEvent, orderID, events.OrderCancelledPayload{
		RestoredLines: len(receipt.Items),
	})
	return receipt, nil
}
