package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/repository"
)

type UserRepository struct {
	q queryer
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, username, password, email FROM users WHERE id = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, username, password, email FROM users WHERE email = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("user scan error: %v", err)
	}
	return user, nil
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.q.QueryRowContext(ctx, query, user.Username, user.Password, user.Email).Scan(&user.ID); err != nil {
		return fmt.Errorf("user insert error: %v", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (int64, error) {
	query := `
		UPDATE users
		SET username = $2, password = $3, email = $4
		WHERE id = $1
	`
	result, err := r.q.ExecContext(ctx, query, user.ID, user.Username, user.Password, user.Email)
	if err != nil {
		return 0, fmt.Errorf("user update error: %v", err)
	}
	return result.RowsAffected()
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("user delete error: %v", err)
	}
	return result.RowsAffected()
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, username, password, email FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("users retrieval error: %v", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &user.Email); err != nil {
			return nil, fmt.Errorf("user scan error: %v", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
