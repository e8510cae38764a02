package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"resto-app/internal/order"
)

func (c *Client) ListOrders(ctx context.Context, f order.Filter) ([]order.Order, error) {
	query := url.Values{}
	if f.UserID > 0 {
		query.Set("userId", strconv.Itoa(f.UserID))
	}
	if f.Status != "" {
		query.Set("status", f.Status)
	}

	var orders []order.Order
	err := c.do(ctx, http.MethodGet, "/orders", query, nil, &orders)
	return orders, err
}

func (c *Client) CreateOrder(ctx context.Context, o order.Order) (*order.Order, error) {
	var created order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, o, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status string) (*order.Order, error) {
	var updated order.Order
	patch := order.Patch{Status: &status}
	if err := c.do(ctx, http.MethodPatch, "/orders/"+strconv.Itoa(id), nil, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
