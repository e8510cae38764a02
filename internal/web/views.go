package web

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"resto-app/internal/cart"
	"resto-app/internal/client"
	"resto-app/internal/logger"
	"resto-app/internal/order"
	"resto-app/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const featuredCount = 3

// fetchFailed logs a backend failure inside a view and returns the message
// the view shows instead.
func fetchFailed(ctx context.Context, view string, err error) string {
	logger.FromCtx(ctx).Warn("view fetch failed", zap.String("view", view), zap.Error(err))
	return msgUnavailable
}

type homeData struct {
	Featured []product.Product
	Error    string
}

func (a *App) homeView(ctx context.Context, req *Request) (*Content, error) {
	var data homeData

	products, err := a.products.ListProducts(ctx, "")
	if err != nil {
		data.Error = fetchFailed(ctx, "home", err)
	} else {
		data.Featured = products[:min(featuredCount, len(products))]
	}

	return &Content{Title: "Welcome", Template: "home", Data: data}, nil
}

type menuData struct {
	Products   []product.Product
	Categories []string
	Category   string
	IsAdmin    bool
	Error      string
}

func (a *App) menuView(ctx context.Context, req *Request) (*Content, error) {
	data := menuData{
		Category: req.Query.Get("category"),
		IsAdmin:  req.IsAdmin(),
		Error:    req.Error,
	}

	all, err := a.products.ListProducts(ctx, "")
	if err != nil {
		data.Error = fetchFailed(ctx, "menu", err)
		return &Content{Title: "Menu", Template: "menu", Data: data}, nil
	}

	filter := product.Filter{Category: data.Category}
	for _, p := range all {
		if filter.Match(p) {
			data.Products = append(data.Products, p)
		}
	}
	data.Categories = product.Categories(all)

	return &Content{Title: "Menu", Template: "menu", Data: data}, nil
}

func (a *App) menuAction(ctx context.Context, req *Request) (string, error) {
	id, err := formInt(req.Form, "product_id")
	if err != nil {
		return "", err
	}

	switch req.Form.Get("op") {
	case "add":
		qty := 1
		if req.Form.Get("quantity") != "" {
			if qty, err = formInt(req.Form, "quantity"); err != nil {
				return "", err
			}
		}

		p, err := a.products.GetProduct(ctx, id)
		if err != nil {
			return "", err
		}
		if _, err := a.carts.Update(ctx, req.ClientID, func(c *cart.Cart) { c.Add(*p, qty) }); err != nil {
			return "", err
		}

	case "delete":
		if !req.IsAdmin() {
			return "", errAccessDenied
		}
		if err := a.products.DeleteProduct(ctx, id); err != nil {
			return "", err
		}

	default:
		return "", errInvalidForm
	}

	if category := req.Form.Get("category"); category != "" {
		return HashMenu + "?category=" + url.QueryEscape(category), nil
	}
	return HashMenu, nil
}

type loginData struct {
	Email string
	Error string
}

func (a *App) loginView(_ context.Context, req *Request) (*Content, error) {
	data := loginData{Email: req.Form.Get("email"), Error: req.Error}
	return &Content{Title: "Log in", Template: "login", Data: data}, nil
}

func (a *App) loginAction(ctx context.Context, req *Request) (string, error) {
	if _, err := a.auth.Login(ctx, req.ClientID, req.Form.Get("email"), req.Form.Get("password")); err != nil {
		return "", err
	}
	return HashHome, nil
}

type registerData struct {
	Name  string
	Email string
	Error string
}

func (a *App) registerView(_ context.Context, req *Request) (*Content, error) {
	data := registerData{Name: req.Form.Get("name"), Email: req.Form.Get("email"), Error: req.Error}
	return &Content{Title: "Register", Template: "register", Data: data}, nil
}

func (a *App) registerAction(ctx context.Context, req *Request) (string, error) {
	_, err := a.auth.Register(ctx, req.ClientID,
		req.Form.Get("name"), req.Form.Get("email"), req.Form.Get("password"))
	if err != nil {
		return "", err
	}
	return HashHome, nil
}

// logoutView only asks for confirmation. Logging out is a POST.
func (a *App) logoutView(_ context.Context, req *Request) (*Content, error) {
	if req.Session == nil {
		return nil, redirectTo(HashHome)
	}
	return &Content{Title: "Log out", Template: "logout"}, nil
}

func (a *App) logoutAction(ctx context.Context, req *Request) (string, error) {
	if req.ClientID != "" {
		if err := a.auth.Logout(ctx, req.ClientID); err != nil {
			logger.FromCtx(ctx).Error("logout failed", zap.Error(err))
		}
	}
	return HashHome, nil
}

type cartData struct {
	Lines    cart.Cart
	Count    int
	Total    decimal.Decimal
	LoggedIn bool
	Error    string
}

func (a *App) cartView(_ context.Context, req *Request) (*Content, error) {
	data := cartData{
		Lines:    req.Cart,
		Count:    req.Cart.Count(),
		Total:    req.Cart.Total(),
		LoggedIn: req.Session != nil,
		Error:    req.Error,
	}
	return &Content{Title: "Cart", Template: "cart", Data: data}, nil
}

func (a *App) cartAction(ctx context.Context, req *Request) (string, error) {
	op := req.Form.Get("op")

	if op == "checkout" {
		if _, err := a.carts.Checkout(ctx, req.ClientID, req.Session); err != nil {
			return "", err
		}
		return HashOrders, nil
	}

	if op == "clear" {
		_, err := a.carts.Update(ctx, req.ClientID, func(c *cart.Cart) { c.Clear() })
		return HashCart, err
	}

	id, err := formInt(req.Form, "product_id")
	if err != nil {
		return "", err
	}

	var change func(*cart.Cart)
	switch op {
	case "inc":
		change = func(c *cart.Cart) { c.Increment(id) }
	case "dec":
		change = func(c *cart.Cart) { c.Decrement(id) }
	case "remove":
		change = func(c *cart.Cart) { c.Remove(id) }
	case "set":
		n, err := formInt(req.Form, "quantity")
		if err != nil {
			return "", err
		}
		change = func(c *cart.Cart) { c.SetQuantity(id, n) }
	default:
		return "", errInvalidForm
	}

	if _, err := a.carts.Update(ctx, req.ClientID, change); err != nil {
		return "", err
	}
	return HashCart, nil
}

type ordersData struct {
	Orders   []order.Order
	IsAdmin  bool
	Statuses []string
	Status   string
	Error    string
}

func (a *App) ordersView(ctx context.Context, req *Request) (*Content, error) {
	if req.Session == nil {
		return nil, redirectTo(HashLogin)
	}

	data := ordersData{
		IsAdmin:  req.IsAdmin(),
		Statuses: order.Statuses,
		Error:    req.Error,
	}

	filter := order.Filter{UserID: req.Session.ID}
	if data.IsAdmin {
		filter.UserID = 0
		if s := req.Query.Get("status"); order.ValidStatus(s) {
			filter.Status = s
			data.Status = s
		}
	}

	orders, err := a.orders.ListOrders(ctx, filter)
	if err != nil {
		data.Error = fetchFailed(ctx, "orders", err)
	}

	// newest first
	slices.SortStableFunc(orders, func(x, y order.Order) int {
		return y.CreatedAt.Compare(x.CreatedAt)
	})
	data.Orders = orders

	return &Content{Title: "Orders", Template: "orders", Data: data}, nil
}

func (a *App) ordersAction(ctx context.Context, req *Request) (string, error) {
	if req.Session == nil {
		return "", redirectTo(HashLogin)
	}
	if !req.IsAdmin() {
		return "", errAccessDenied
	}

	id, err := formInt(req.Form, "order_id")
	if err != nil {
		return "", err
	}
	status := req.Form.Get("status")
	if !order.ValidStatus(status) {
		return "", errInvalidStatus
	}

	if _, err := a.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		return "", err
	}
	return HashOrders, nil
}

type adminData struct {
	Products []product.Product
	Form     productForm
	Editing  bool
	Error    string
}

func (a *App) adminView(ctx context.Context, req *Request) (*Content, error) {
	if !req.IsAdmin() {
		return &Content{Title: "Access denied", Template: "denied", Status: http.StatusForbidden}, nil
	}

	data := adminData{Error: req.Error}

	op := req.Form.Get("op")

	switch {
	case req.Error != "" && (op == "create" || op == "update"):
		// keep what the user typed
		data.Form = productFormFromValues(req.Form)
		data.Editing = op == "update"
	case req.Query.Get("id") != "":
		id, err := strconv.Atoi(req.Query.Get("id"))
		if err != nil {
			return nil, err
		}
		p, err := a.products.GetProduct(ctx, id)
		if client.IsNotFound(err) {
			return nil, err
		}
		if err != nil {
			data.Error = fetchFailed(ctx, "admin", err)
		} else {
			data.Form = productFormFrom(*p)
			data.Editing = true
		}
	}

	products, err := a.products.ListProducts(ctx, "")
	if err != nil {
		data.Error = fetchFailed(ctx, "admin", err)
	}
	data.Products = products

	return &Content{Title: "Admin", Template: "admin", Data: data}, nil
}

func (a *App) adminAction(ctx context.Context, req *Request) (string, error) {
	if !req.IsAdmin() {
		return "", errAccessDenied
	}

	switch req.Form.Get("op") {
	case "create":
		p, err := productFormFromValues(req.Form).Product()
		if err != nil {
			return "", err
		}
		if _, err := a.products.CreateProduct(ctx, p); err != nil {
			return "", err
		}

	case "update":
		p, err := productFormFromValues(req.Form).Product()
		if err != nil {
			return "", err
		}
		if p.ID <= 0 {
			return "", errInvalidForm
		}
		if _, err := a.products.UpdateProduct(ctx, p.ID, product.PatchFrom(p)); err != nil {
			return "", err
		}

	case "delete":
		id, err := formInt(req.Form, "id")
		if err != nil {
			return "", err
		}
		if err := a.products.DeleteProduct(ctx, id); err != nil {
			return "", err
		}

	default:
		return "", errInvalidForm
	}

	return HashAdmin, nil
}
