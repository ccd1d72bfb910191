package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
	"github.com/park-seok-hoon/minishop/pkg/events"
)

// ModifyOrder rewrites existing line items. A pure quantity change adjusts the
// item's stock by the delta; an item swap fully restores the old item and
// reserves the new quantity on the new one. After all edits the order total is
// recomputed from the complete current line set, so unedited lines keep
// contributing to the total. One transaction covers every edit.
func (s *OrderService) ModifyOrder(ctx context.Context, orderID int64, req domain.ModifyOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.New(apperr.CodeInvalidRequest)
	}

	var updated *domain.Order
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		order, err := tx.Orders().Get(ctx, orderID)
		if err != nil {
			return mapNotFound(err, apperr.CodeOrderNotFound)
		}
		if order.Status == domain.OrderStatusCompleted {
			return apperr.New(apperr.CodeCannotModifyCompleted)
		}
		if len(order.Items) == 0 {
			return apperr.New(apperr.CodeOrderItemNotFound)
		}

		for _, edit := range req.Items {
			line := order.LineByID(edit.OrderItemID)
			if line == nil {
				return apperr.Newf(apperr.CodeOrderItemNotFound,
					"order %d has no line item %d", orderID, edit.OrderItemID)
			}
			if edit.Quantity <= 0 {
				return apperr.New(apperr.CodeInvalidQuantity)
			}

			if line.ItemID == edit.ItemID {
				if err := s.adjustQuantity(ctx, tx, line, edit.Quantity); err != nil {
					return err
				}
			} else {
				if err := s.swapItem(ctx, tx, line, edit.ItemID, edit.Quantity); err != nil {
					return err
				}
			}

			line.ItemID = edit.ItemID
			line.Quantity = edit.Quantity
		}

		if err := tx.Orders().UpdateLineItems(ctx, orderID, order.Items); err != nil {
			return mapNotFound(err, apperr.CodeOrderItemNotFound)
		}

		total, err := s.recomputeTotal(ctx, tx, order)
		if err != nil {
			return err
		}
		if err := tx.Orders().UpdateTotalPrice(ctx, orderID, total); err != nil {
			return mapNotFound(err, apperr.CodeOrderNotFound)
		}

		updated, err = tx.Orders().Get(ctx, orderID)
		if err != nil {
			return mapNotFound(err, apperr.CodeOrderNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncModified()
	s.logger.Info("order modified",
		zap.Int64("order_id", orderID),
		zap.Int("edits", len(req.Items)),
		zap.Int64("total_price", updated.TotalPrice))
	s.publish(events.OrderModifiedEvent, orderID, events.OrderModifiedPayload{
		TotalPrice: updated.TotalPrice,
		EditCount:  len(req.Items),
	})
	return updated, nil
}

// adjustQuantity reconciles stock for a quantity-only edit on the line's item.
func (s *OrderService) adjustQuantity(ctx context.Context, tx repository.Store, line *domain.OrderLineItem, newQuantity int) error {
	item, err := tx.Items().GetForUpdate(ctx, line.ItemID)
	if err != nil {
		return mapNotFound(err, apperr.CodeItemNotFound)
	}

	delta := newQuantity - line.Quantity
	if delta > 0 {
		if !item.InStock(delta) {
			s.metrics.IncStockConflict()
			return apperr.Newf(apperr.CodeOutOfStock,
				"item %d has %d in stock, needs %d more", item.ID, item.StockQuantity, delta)
		}
		item.StockQuantity -= delta
	} else if delta < 0 {
		item.StockQuantity -= delta
	}

	return updateItem(ctx, tx, item)
}

// swapItem releases the old item's reserved quantity and reserves the new
// quantity on the new item.
func (s *OrderService) swapItem(ctx context.Context, tx repository.Store, line *domain.OrderLineItem, newItemID int64, newQuantity int) error {
	oldItem, err := tx.Items().GetForUpdate(ctx, line.ItemID)
	if err != nil {
		return mapNotFound(err, apperr.CodeItemNotFound)
	}
	newItem, err := tx.Items().GetForUpdate(ctx, newItemID)
	if err != nil {
		return mapNotFound(err, apperr.CodeItemNotFound)
	}

	oldItem.StockQuantity += line.Quantity
	if err := updateItem(ctx, tx, oldItem); err != nil {
		return err
	}

	if !newItem.InStock(newQuantity) {
		s.metrics.IncStockConflict()
		return apperr.Newf(apperr.CodeOutOfStock,
			"item %d has %d in stock, requested %d", newItem.ID, newItem.StockQuantity, newQuantity)
	}
	newItem.StockQuantity -= newQuantity
	return updateItem(ctx, tx, newItem)
}

// recomputeTotal prices the complete current line set with the overflow guard.
func (s *OrderService) recomputeTotal(ctx context.Context, tx repository.Store, order *domain.Order) (int64, error) {
	var total int64
	for _, line := range order.Items {
		item, err := tx.Items().Get(ctx, line.ItemID)
		if err != nil {
			return 0, mapNotFound(err, apperr.CodeItemNotFound)
		}
		price, err := linePrice(item.Price, line.Quantity)
		if err != nil {
			return 0, err
		}
		total, err = addPrice(total, price)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}
