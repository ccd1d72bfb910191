package handlers

import (
	"time"

	"github.com/park-seok-hoon/minishop/internal/domain"
)

type OrderResponse struct {
	ID         int64               `json:"id"`
	UserID     int64               `json:"user_id"`
	OrderDate  time.Time           `json:"order_date"`
	TotalPrice int64               `json:"total_price"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ID       int64 `json:"id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type CancelResponse struct {
	OrderID int64                `json:"order_id"`
	Items   []CancelItemResponse `json:"items"`
}

type CancelItemResponse struct {
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	StockAfter int    `json:"stock_after"`
}

type ItemRequest struct {
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func mapOrder(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, line := range order.Items {
		items[i] = OrderItemResponse{
			ID:       line.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
	}
	return OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		OrderDate:  order.OrderDate,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		Items:      items,
	}
}

func mapOrders(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = mapOrder(&orders[i])
	}
	return responses
}

func mapReceipt(receipt *domain.CancellationReceipt) CancelResponse {
	items := make([]CancelItemResponse, len(receipt.Items))
	for i, restored := range receipt.Items {
		items[i] = CancelItemResponse{
			ItemID:     restored.ItemID,
			ItemName:   restored.ItemName,
			Quantity:   restored.Quantity,
			StockAfter: restored.StockAfter,
		}
	}
	return CancelResponse{OrderID: receipt.OrderID, Items: items}
}
