package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resto-app/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Order, error)
	GetByID(ctx context.Context, id int) (*Order, error)
	Create(ctx context.Context, o Order) (*Order, error)
	Update(ctx context.Context, id int, patch Patch) (*Order, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectOrders = "SELECT id, user_id, user_info, items, total, status, created_at FROM orders"

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var (
		o        Order
		userInfo []byte
		items    []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &userInfo, &items, &o.Total, &o.Status, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(userInfo, &o.User); err != nil {
		return Order{}, fmt.Errorf("decode user_info of order %d: %w", o.ID, err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, fmt.Errorf("decode items of order %d: %w", o.ID, err)
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Order, error) {
	var (
		where []string
		args  []any
	)
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := selectOrders
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o Order) (*Order, error) {
	log := logger.FromCtx(ctx)

	if o.Items == nil {
		o.Items = []Item{}
	}
	userInfo, err := json.Marshal(o.User)
	if err != nil {
		return nil, err
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, user_info, items, total, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		o.UserID, userInfo, items, o.Total, o.Status, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		log.Error("db: failed to insert order", zap.Int("user_id", o.UserID), zap.Error(err))
		return nil, err
	}

	return &o, nil
}

func (r *repository) Update(ctx context.Context, id int, patch Patch) (*Order, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o := patch.Apply(*current)
	if _, err := r.db.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", o.Status, id); err != nil {
		logger.FromCtx(ctx).Error("db: failed to update order", zap.Int("order_id", id), zap.Error(err))
		return nil, err
	}

	return &o, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
