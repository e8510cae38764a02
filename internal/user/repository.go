package user

import (
	"context"
	"database/sql"
	"errors"

	"resto-app/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Create(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, id int, patch Patch) (*User, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

// NewRepository returns the PostgreSQL backed repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]User, error) {
	query := "SELECT id, name, email, password, role FROM users"
	var args []any
	if filter.Email != "" {
		query += " WHERE LOWER(email) = LOWER($1)"
		args = append(args, filter.Email)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password, role FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u User) (*User, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id",
		u.Name, u.Email, u.Password, string(u.Role),
	).Scan(&u.ID)

	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
		return nil, err
	}

	return &u, nil
}

func (r *repository) Update(ctx context.Context, id int, patch Patch) (*User, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u := patch.Apply(*current)
	_, err = r.db.ExecContext(ctx,
		"UPDATE users SET name = $1, email = $2, password = $3, role = $4 WHERE id = $5",
		u.Name, u.Email, u.Password, string(u.Role), id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update user", zap.Int("user_id", id), zap.Error(err))
		return nil, err
	}

	return &u, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
