package seed

import (
	"context"
	"fmt"

	"resto-app/internal/logger"
	"resto-app/internal/product"
	"resto-app/internal/user"

	"go.uber.org/zap"
)

type account struct {
	name     string
	email    string
	password string
	role     user.Role
}

var accounts = []account{
	{"Admin", "admin@resto.local", "admin123", user.RoleAdmin},
	{"Demo Customer", "demo@resto.local", "demo123", user.RoleCustomer},
}

var Menu = []product.Product{
	{Name: "Margherita", Price: 9.5, Category: "Pizza", Img: "/static/img/pizza.svg", Description: "Tomato, mozzarella, basil", Stock: 25},
	{Name: "Diavola", Price: 11, Category: "Pizza", Img: "/static/img/pizza.svg", Description: "Spicy salami, chili oil", Stock: 20},
	{Name: "Carbonara", Price: 12.5, Category: "Pasta", Img: "/static/img/pasta.svg", Description: "Guanciale, egg yolk, pecorino", Stock: 15},
	{Name: "Lasagna", Price: 13, Category: "Pasta", Img: "/static/img/pasta.svg", Description: "Slow-cooked ragu, bechamel", Stock: 10},
	{Name: "Caesar Salad", Price: 8, Category: "Salads", Img: "/static/img/salad.svg", Description: "Romaine, parmesan, croutons", Stock: 18},
	{Name: "Tiramisu", Price: 6.5, Category: "Desserts", Img: "/static/img/dessert.svg", Description: "Mascarpone, espresso, cocoa", Stock: 12},
	{Name: "Lemonade", Price: 3.5, Category: "Drinks", Img: "/static/img/drink.svg", Description: "Fresh squeezed", Stock: 40},
}

// Run fills empty collections with the default accounts and menu. Collections
// that already hold records are left alone.
func Run(ctx context.Context, users user.Repository, products product.Repository) error {
	log := logger.FromCtx(ctx)

	existingUsers, err := users.List(ctx, user.Filter{})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(existingUsers) == 0 {
		for _, a := range accounts {
			hashed, err := user.HashPassword(a.password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", a.email, err)
			}
			if _, err := users.Create(ctx, user.User{Name: a.name, Email: a.email, Password: hashed, Role: a.role}); err != nil {
				return fmt.Errorf("create user %s: %w", a.email, err)
			}
		}
		log.Info("seeded users", zap.Int("count", len(accounts)))
	}

	existingProducts, err := products.List(ctx, product.Filter{})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existingProducts) == 0 {
		for _, p := range Menu {
			if _, err := products.Create(ctx, p); err != nil {
				return fmt.Errorf("create product %s: %w", p.Name, err)
			}
		}
		log.Info("seeded menu", zap.Int("count", len(Menu)))
	}

	return nil
}
