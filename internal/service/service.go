// Package service implements the order-processing core: order creation against
// finite stock, status transitions, cancellation with stock restoration, and
// line-item modification with stock reconciliation. Every mutating operation
// runs inside a single store transaction and either commits completely or
// leaves stored state untouched.
package service

import (
	"context"
	"errors"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
	"github.com/park-seok-hoon/minishop/pkg/events"
)

// EventPublisher emits lifecycle events after successful operations. A nil
// publisher disables publishing.
type EventPublisher interface {
	PublishOrderEvent(event events.OrderEvent) error
}

// mapNotFound translates a store miss into the taxonomy code for the entity
// being looked up; any other store failure becomes a database error.
func mapNotFound(err error, code apperr.Code) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.New(code)
	}
	return apperr.Wrap(apperr.CodeDatabaseError, err)
}

func wrapDB(err error) error {
	if err == nil {
		return nil
	}
	return apperr.Wrap(apperr.CodeDatabaseError, err)
}

// updateItem persists an item mutation. Item rows are read with row locks
// inside the enclosing transaction, so zero affected rows means the row is
// gone, not that it changed underneath us.
func updateItem(ctx context.Context, tx repository.Store, item *domain.Item) error {
	rows, err := tx.Items().Update(ctx, item)
	if err != nil {
		return wrapDB(err)
	}
	if rows == 0 {
		return apperr.New(apperr.CodeItemNotFound)
	}
	return nil
}
