package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"resto-app/internal/user"
)

func (c *Client) FindUsersByEmail(ctx context.Context, email string) ([]user.User, error) {
	var users []user.User
	err := c.do(ctx, http.MethodGet, "/users", url.Values{"email": {email}}, nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id int) (*user.User, error) {
	var u user.User
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, u user.User) (*user.User, error) {
	var created user.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
