package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
	"github.com/park-seok-hoon/minishop/pkg/apperr"
)

const minPasswordLength = 8

type UserService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewUserService(store repository.Store, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, logger: logger}
}

// Create registers a user. Emails are unique across users.
func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		_, err := tx.Users().GetByEmail(ctx, req.Email)
		if err == nil {
			return apperr.New(apperr.CodeDuplicateEmail)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return wrapDB(err)
		}

		if len(req.Password) < minPasswordLength {
			return apperr.Newf(apperr.CodeInvalidUserData,
				"password must be at least %d characters", minPasswordLength)
		}

		return wrapDB(tx.Users().Save(ctx, user))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

// Update applies the non-nil fields of req. A new email must not belong to a
// different user.
func (s *UserService) Update(ctx context.Context, userID int64, req domain.UpdateUserRequest) (*domain.User, error) {
	var updated *domain.User

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		existing, err := tx.Users().Get(ctx, userID)
		if err != nil {
			return mapNotFound(err, apperr.CodeUserNotFound)
		}

		if req.Username != nil {
			existing.Username = *req.Username
		}
		if req.Password != nil {
			if len(*req.Password) < minPasswordLength {
				return apperr.Newf(apperr.CodeInvalidUserData,
					"password must be at least %d characters", minPasswordLength)
			}
			existing.Password = *req.Password
		}
		if req.Email != nil {
			duplicate, err := tx.Users().GetByEmail(ctx, *req.Email)
			if err == nil && duplicate.ID != userID {
				return apperr.New(apperr.CodeDuplicateEmail)
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return wrapDB(err)
			}
			existing.Email = *req.Email
		}

		rows, err := tx.Users().Update(ctx, existing)
		if err != nil {
			return wrapDB(err)
		}
		if rows == 0 {
			return apperr.New(apperr.CodeUserNotFound)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Int64("user_id", userID))
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	rows, err := s.store.Users().Delete(ctx, userID)
	if err != nil {
		return wrapDB(err)
	}
	if rows == 0 {
		return apperr.New(apperr.CodeUserNotFound)
	}
	s.logger.Info("user deleted", zap.Int64("user_id", userID))
	return nil
}

func (s *UserService) Find(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, apperr.CodeUserNotFound)
	}
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, wrapDB(err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
