package jsondb

import (
	"context"

	"resto-app/internal/order"
	"resto-app/internal/product"
	"resto-app/internal/user"
)

type userRepository struct {
	t table[user.User]
}

func (r *userRepository) List(_ context.Context, f user.Filter) ([]user.User, error) {
	return r.t.list(f.Match), nil
}

func (r *userRepository) GetByID(_ context.Context, id int) (*user.User, error) {
	return r.t.get(id)
}

func (r *userRepository) Create(_ context.Context, u user.User) (*user.User, error) {
	return r.t.create(u)
}

func (r *userRepository) Update(_ context.Context, id int, p user.Patch) (*user.User, error) {
	return r.t.update(id, p.Apply)
}

func (r *userRepository) Delete(_ context.Context, id int) error {
	return r.t.delete(id)
}

type productRepository struct {
	t table[product.Product]
}

func (r *productRepository) List(_ context.Context, f product.Filter) ([]product.Product, error) {
	return r.t.list(f.Match), nil
}

func (r *productRepository) GetByID(_ context.Context, id int) (*product.Product, error) {
	return r.t.get(id)
}

func (r *productRepository) Create(_ context.Context, p product.Product) (*product.Product, error) {
	return r.t.create(p)
}

func (r *productRepository) Update(_ context.Context, id int, p product.Patch) (*product.Product, error) {
	return r.t.update(id, p.Apply)
}

func (r *productRepository) Delete(_ context.Context, id int) error {
	return r.t.delete(id)
}

type orderRepository struct {
	t table[order.Order]
}

func (r *orderRepository) List(_ context.Context, f order.Filter) ([]order.Order, error) {
	return r.t.list(f.Match), nil
}

func (r *orderRepository) GetByID(_ context.Context, id int) (*order.Order, error) {
	return r.t.get(id)
}

func (r *orderRepository) Create(_ context.Context, o order.Order) (*order.Order, error) {
	if o.Items == nil {
		o.Items = []order.Item{}
	}
	return r.t.create(o)
}

func (r *orderRepository) Update(_ context.Context, id int, p order.Patch) (*order.Order, error) {
	return r.t.update(id, p.Apply)
}

func (r *orderRepository) Delete(_ context.Context, id int) error {
	return r.t.delete(id)
}
