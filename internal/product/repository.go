package product

import (
	"context"
	"database/sql"
	"errors"

	"resto-app/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id int, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectProducts = "SELECT id, name, price, category, img, description, stock FROM products"

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Img, &p.Description, &p.Stock)
	return p, err
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Product, error) {
	query := selectProducts
	var args []any
	if filter.Category != "" {
		query += " WHERE LOWER(category) = LOWER($1)"
		args = append(args, filter.Category)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProducts+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (*Product, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, price, category, img, description, stock)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.Name, p.Price, p.Category, p.Img, p.Description, p.Stock,
	).Scan(&p.ID)

	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("name", p.Name),
			zap.Error(err),
		)
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, id int, patch Patch) (*Product, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := patch.Apply(*current)
	_, err = r.db.ExecContext(ctx,
		`UPDATE products
		 SET name = $1, price = $2, category = $3, img = $4, description = $5, stock = $6
		 WHERE id = $7`,
		p.Name, p.Price, p.Category, p.Img, p.Description, p.Stock, id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update product", zap.Int("product_id", id), zap.Error(err))
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
