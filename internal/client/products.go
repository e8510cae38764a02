package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"resto-app/internal/product"
)

// ListProducts returns all products, or only those in category when it is set.
func (c *Client) ListProducts(ctx context.Context, category string) ([]product.Product, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": {category}}
	}

	var products []product.Product
	err := c.do(ctx, http.MethodGet, "/products", query, nil, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id int) (*product.Product, error) {
	var p product.Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	var created product.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, patch product.Patch) (*product.Product, error) {
	var updated product.Product
	if err := c.do(ctx, http.MethodPatch, productPath(id), nil, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}

func productPath(id int) string {
	return "/products/" + strconv.Itoa(id)
}
