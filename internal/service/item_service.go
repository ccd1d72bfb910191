package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
)

// ItemService manages the item catalog. Stock movements caused by orders are
// handled by OrderService; this service only covers catalog CRUD.
type ItemService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewItemService(store repository.Store, logger *zap.Logger) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemService{store: store, logger: logger}
}

func validateItem(item *domain.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return apperr.Newf(apperr.CodeInvalidRequest, "item name must not be blank")
	}
	if item.Price < 0 {
		return apperr.New(apperr.CodeInvalidPrice)
	}
	if item.StockQuantity < 0 {
		return apperr.New(apperr.CodeInvalidStock)
	}
	return nil
}

// Create registers a new catalog item. Item names are unique.
func (s *ItemService) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		_, err := tx.Items().GetByName(ctx, item.Name)
		if err == nil {
			return apperr.New(apperr.CodeDuplicateItem)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return wrapDB(err)
		}
		return wrapDB(tx.Items().Save(ctx, item))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.Int64("item_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// Update rewrites name, price and stock of an existing item.
func (s *ItemService) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	var updated *domain.Item
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		existing, err := tx.Items().GetForUpdate(ctx, item.ID)
		if err != nil {
			return mapNotFound(err, apperr.CodeItemNotFound)
		}

		if existing.Name != item.Name {
			duplicate, err := tx.Items().GetByName(ctx, item.Name)
			if err == nil && duplicate.ID != item.ID {
				return apperr.New(apperr.CodeDuplicateItem)
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return wrapDB(err)
			}
		}

		existing.Name = item.Name
		existing.Price = item.Price
		existing.StockQuantity = item.StockQuantity
		if err := updateItem(ctx, tx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.Int64("item_id", updated.ID))
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, itemID int64) error {
	rows, err := s.store.Items().Delete(ctx, itemID)
	if err != nil {
		return wrapDB(err)
	}
	if rows == 0 {
		return apperr.New(apperr.CodeItemNotFound)
	}
	s.logger.Info("item deleted", zap.Int64("item_id", itemID))
	return nil
}

func (s *ItemService) Find(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := s.store.Items().Get(ctx, itemID)
	if err != nil {
		return nil, mapNotFound(err, apperr.CodeItemNotFound)
	}
	return item, nil
}

func (s *ItemService) FindAll(ctx context.Context) ([]domain.Item, error) {
	items, err := s.store.Items().List(ctx)
	if err != nil {
		return nil, wrapDB(err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}
