package web

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resto-app/internal/auth"
	"resto-app/internal/cart"
	"resto-app/internal/client"

	"github.com/stretchr/testify/assert"
)

func TestHashFromPath(t *testing.T) {
	tests := []struct {
		path string
		hash string
	}{
		{"", "#/"},
		{"/", "#/"},
		{"/menu", "#/menu"},
		{"/menu/", "#/menu"},
		{"orders", "#/orders"},
		{"/admin/extra", "#/admin/extra"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.hash, HashFromPath(tt.path))
		})
	}
}

func TestPathFromHash(t *testing.T) {
	assert.Equal(t, "/", PathFromHash("#/"))
	assert.Equal(t, "/", PathFromHash("#"))
	assert.Equal(t, "/cart", PathFromHash("#/cart"))
	assert.Equal(t, "/menu?category=Pasta", PathFromHash("#/menu?category=Pasta"))
}

func TestRouterLookup(t *testing.T) {
	rt := NewRouter()
	view := func(context.Context, *Request) (*Content, error) { return &Content{Template: "home"}, nil }
	rt.Handle(HashHome, Route{View: view})

	route, ok := rt.Lookup("#/")
	assert.True(t, ok)
	assert.NotNil(t, route.View)
	assert.Nil(t, route.Action)

	_, ok = rt.Lookup("#/menu")
	assert.False(t, ok)
}

func TestRedirectError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", redirectTo(HashLogin))

	var rd redirect
	assert.True(t, errors.As(err, &rd))
	assert.Equal(t, HashLogin, rd.hash)
}

func TestMessageFor(t *testing.T) {
	assert.Equal(t, "Invalid email or password.", messageFor(auth.ErrInvalidCredentials))
	assert.Equal(t, "Email already registered.", messageFor(fmt.Errorf("register: %w", auth.ErrEmailExists)))
	assert.Equal(t, "Your cart is empty.", messageFor(cart.ErrCartEmpty))
	assert.Equal(t, "Access denied.", messageFor(errAccessDenied))

	// backend failures all read the same
	assert.Equal(t, msgUnavailable, messageFor(client.ErrUnavailable))
	assert.Equal(t, msgUnavailable, messageFor(&client.StatusError{Status: 500, Message: "internal server error"}))
	assert.Equal(t, msgUnavailable, messageFor(errors.New("anything else")))
}

func TestProductForm(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		f := productForm{ID: 4, Name: " Calzone ", Price: "10.5", Category: "Pizza", Stock: "3"}
		p, err := f.Product()
		assert.NoError(t, err)
		assert.Equal(t, "Calzone", p.Name)
		assert.Equal(t, 10.5, p.Price)
		assert.Equal(t, 3, p.Stock)
		assert.Equal(t, 4, p.ID)
	})

	t.Run("Blank Stock Is Zero", func(t *testing.T) {
		p, err := productForm{Name: "Water", Price: "1", Category: "Drinks"}.Product()
		assert.NoError(t, err)
		assert.Zero(t, p.Stock)
	})

	invalid := map[string]productForm{
		"missing name":   {Price: "1", Category: "Pizza"},
		"negative price": {Name: "x", Price: "-1", Category: "Pizza"},
		"bad price":      {Name: "x", Price: "abc", Category: "Pizza"},
		"bad stock":      {Name: "x", Price: "1", Category: "Pizza", Stock: "-2"},
	}
	for name, f := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := f.Product()
			assert.ErrorIs(t, err, errInvalidProduct)
		})
	}
}
