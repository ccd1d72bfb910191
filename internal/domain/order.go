package domain

import (
	"time"

	"github.com/park-seok-hoon/minishop/pkg/apperr"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a raw status value coming from a request.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case OrderStatusNew, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(raw), nil
	default:
		return "", apperr.New(apperr.CodeInvalidStatus)
	}
}

// ValidateStatusTransition enforces the order state machine:
// NEW may move to SHIPPED, COMPLETED or CANCELLED; SHIPPED only to COMPLETED;
// COMPLETED and CANCELLED are terminal.
func ValidateStatusTransition(current, next OrderStatus) error {
	if current == OrderStatusCancelled {
		return apperr.New(apperr.CodeAlreadyCancelled)
	}
	if current == OrderStatusCompleted {
		return apperr.New(apperr.CodeCannotModifyCompleted)
	}
	if current == OrderStatusShipped && (next == OrderStatusNew || next == OrderStatusCancelled) {
		return apperr.Newf(apperr.CodeInvalidStatusTransition,
			"order cannot move from %s to %s", current, next)
	}
	return nil
}

type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	OrderDate  time.Time       `json:"order_date"`
	TotalPrice int64           `json:"total_price"`
	Status     OrderStatus     `json:"status"`
	Items      []OrderLineItem `json:"items"`
}

// OrderLineItem is one (item, quantity) row of an order. Lines are replaced in
// place by modification, never deleted individually.
type OrderLineItem struct {
	ID       int64 `json:"id"`
	OrderID  int64 `json:"order_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// LineByID resolves a line item belonging to this order.
func (o *Order) LineByID(lineID int64) *OrderLineItem {
	for i := range o.Items {
		if o.Items[i].ID == lineID {
			return &o.Items[i]
		}
	}
	return nil
}

type CreateOrderRequest struct {
	UserID int64              `json:"user_id"`
	Items  []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type ModifyOrderRequest struct {
	Items []ModifyOrderItem `json:"items"`
}

// ModifyOrderItem rewrites one existing line: the referenced item may stay the
// same (quantity change) or switch to another item.
type ModifyOrderItem struct {
	OrderItemID int64 `json:"order_item_id"`
	ItemID      int64 `json:"item_id"`
	Quantity    int   `json:"quantity"`
}

// CancellationReceipt reports, per line item, the stock restored by a
// cancellation. It is returned to the caller and never persisted.
type CancellationReceipt struct {
	OrderID int64              `json:"order_id"`
	Items   []RestoredLineItem `json:"items"`
}

type RestoredLineItem struct {
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	StockAfter int    `json:"stock_after"`
}
