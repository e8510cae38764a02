// Package web is the server-rendered storefront: a hash-keyed router, a
// render step that writes the page layout, and one view per route.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"resto-app/internal/auth"
	"resto-app/internal/cart"
	"resto-app/internal/logger"
	"resto-app/internal/order"
	"resto-app/internal/product"
	"resto-app/internal/state"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type ProductAPI interface {
	ListProducts(ctx context.Context, category string) ([]product.Product, error)
	GetProduct(ctx context.Context, id int) (*product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	UpdateProduct(ctx context.Context, id int, patch product.Patch) (*product.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type OrderAPI interface {
	ListOrders(ctx context.Context, f order.Filter) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) (*order.Order, error)
}

type App struct {
	router   *Router
	tmpl     *template.Template
	auth     auth.Service
	carts    cart.Service
	products ProductAPI
	orders   OrderAPI
}

func NewApp(authSvc auth.Service, carts cart.Service, products ProductAPI, orders OrderAPI) (*App, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	a := &App{
		router:   NewRouter(),
		tmpl:     tmpl,
		auth:     authSvc,
		carts:    carts,
		products: products,
		orders:   orders,
	}

	a.router.Handle(HashHome, Route{View: a.homeView})
	a.router.Handle(HashMenu, Route{View: a.menuView, Action: a.menuAction})
	a.router.Handle(HashLogin, Route{View: a.loginView, Action: a.loginAction})
	a.router.Handle(HashRegister, Route{View: a.registerView, Action: a.registerAction})
	a.router.Handle(HashLogout, Route{View: a.logoutView, Action: a.logoutAction})
	a.router.Handle(HashCart, Route{View: a.cartView, Action: a.cartAction})
	a.router.Handle(HashOrders, Route{View: a.ordersView, Action: a.ordersAction})
	a.router.Handle(HashAdmin, Route{View: a.adminView, Action: a.adminAction})

	return a, nil
}

// Handler serves the static assets and sends every other GET or POST through
// the hash router.
func (a *App) Handler(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/*", a.ServeHTTP)
	r.Post("/*", a.ServeHTTP)
	return r
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash := HashFromPath(r.URL.Path)

	route, ok := a.router.Lookup(hash)
	if !ok {
		a.renderNotFound(w, r, a.newRequest(ctx, hash, r))
		return
	}

	req := a.newRequest(ctx, hash, r)

	status := http.StatusOK
	if r.Method == http.MethodPost {
		if route.Action == nil {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		req.Form = r.PostForm

		next, err := route.Action(ctx, req)
		if err == nil {
			http.Redirect(w, r, PathFromHash(next), http.StatusSeeOther)
			return
		}

		var rd redirect
		if errors.As(err, &rd) {
			http.Redirect(w, r, PathFromHash(rd.hash), http.StatusSeeOther)
			return
		}

		logger.FromCtx(ctx).Info("action failed", zap.String("route", hash), zap.Error(err))
		req.Error = messageFor(err)
		status = http.StatusUnprocessableEntity

		// the action may have changed who is logged in or what is in the cart
		req.Session, req.Cart = a.loadClientState(ctx, req.ClientID)
	}

	content, err := route.View(ctx, req)
	if err != nil {
		var rd redirect
		if errors.As(err, &rd) {
			http.Redirect(w, r, PathFromHash(rd.hash), http.StatusFound)
			return
		}
		logger.FromCtx(ctx).Info("view failed", zap.String("route", hash), zap.Error(err))
		a.renderNotFound(w, r, req)
		return
	}

	a.render(w, r, req, content, status)
}

func (a *App) newRequest(ctx context.Context, hash string, r *http.Request) *Request {
	clientID, _ := state.ClientIDFrom(ctx)
	req := &Request{
		Hash:     hash,
		ClientID: clientID,
		Query:    r.URL.Query(),
		Form:     map[string][]string{},
	}
	req.Session, req.Cart = a.loadClientState(ctx, clientID)
	return req
}

// loadClientState reads the session and cart, treating failures as a logged
// out client with an empty cart.
func (a *App) loadClientState(ctx context.Context, clientID string) (*auth.Session, cart.Cart) {
	if clientID == "" {
		return nil, cart.Cart{}
	}

	session, err := a.auth.Current(ctx, clientID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load session", zap.Error(err))
		session = nil
	}

	c, err := a.carts.Load(ctx, clientID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load cart", zap.Error(err))
		c = cart.Cart{}
	}
	return session, c
}
