package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
	"github.com/park-seok-hoon/minishop/pkg/events"
	"github.com/park-seok-hoon/minishop/pkg/metrics"
)

const serviceName = "order-service"

type OrderService struct {
	store     repository.Store
	publisher EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *zap.Logger
}

func NewOrderService(store repository.Store, publisher EventPublisher, m *metrics.OrderMetrics, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// CreateOrder reserves stock for every requested line, prices the order with
// an overflow guard, and persists it with status NEW. The whole creation is
// one transaction: a failure on any line rolls back earlier stock decrements.
func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.New(apperr.CodeInvalidRequest)
	}

	var order *domain.Order
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var totalPrice int64
		lines := make([]domain.OrderLineItem, 0, len(req.Items))

		for _, lineReq := range req.Items {
			item, err := tx.Items().GetForUpdate(ctx, lineReq.ItemID)
			if err != nil {
				return mapNotFound(err, apperr.CodeItemNotFound)
			}
			if item.Price < 0 {
				return apperr.New(apperr.CodeInvalidPrice)
			}
			if lineReq.Quantity <= 0 {
				return apperr.New(apperr.CodeInvalidQuantity)
			}
			if !item.InStock(lineReq.Quantity) {
				s.metrics.IncStockConflict()
				return apperr.Newf(apperr.CodeOutOfStock,
					"item %d has %d in stock, requested %d", item.ID, item.StockQuantity, lineReq.Quantity)
			}

			item.StockQuantity -= lineReq.Quantity
			if err := updateItem(ctx, tx, item); err != nil {
				return err
			}

			line, err := linePrice(item.Price, lineReq.Quantity)
			if err != nil {
				return err
			}
			totalPrice, err = addPrice(totalPrice, line)
			if err != nil {
				return err
			}

			lines = append(lines, domain.OrderLineItem{
				ItemID:   item.ID,
				Quantity: lineReq.Quantity,
			})
		}

		order = &domain.Order{
			UserID:     req.UserID,
			OrderDate:  time.Now(),
			TotalPrice: totalPrice,
			Status:     domain.OrderStatusNew,
			Items:      lines,
		}
		return wrapDB(tx.Orders().Save(ctx, order))
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncCreated()
	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int64("total_price", order.TotalPrice))
	s.publish(events.OrderCreatedEvent, order.ID, events.OrderCreatedPayload{
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		LineCount:  len(order.Items),
		Status:     string(order.Status),
	})
	return order, nil
}

// FindOrder returns the order with its line items populated.
func (s *OrderService) FindOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.store.Orders().Get(ctx, orderID)
	if err != nil {
		return nil, mapNotFound(err, apperr.CodeOrderNotFound)
	}
	return order, nil
}

// FindAllOrders returns every order; the result is empty, never nil, when no
// orders exist.
func (s *OrderService) FindAllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.store.Orders().List(ctx)
	if err != nil {
		return nil, wrapDB(err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) publish(eventType events.EventType, orderID int64, payload interface{}) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderEvent(events.OrderEvent{
		OrderID:   orderID,
		EventType: eventType,
		Payload:   payload,
		Service:   serviceName,
	})
	if err != nil {
		s.logger.Warn("event publish failed",
			zap.String("event_type", string(eventType)),
			zap.Int64("order_id", orderID),
			zap.Error(err))
	}
}
