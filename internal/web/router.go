package web

import (
	"context"
	"net/url"
	"strings"

	"resto-app/internal/auth"
	"resto-app/internal/cart"
)

const (
	HashHome     = "#/"
	HashMenu     = "#/menu"
	HashLogin    = "#/login"
	HashRegister = "#/register"
	HashLogout   = "#/logout"
	HashCart     = "#/cart"
	HashOrders   = "#/orders"
	HashAdmin    = "#/admin"
)

// noHeader lists the routes rendered without the navigation header.
var noHeader = map[string]bool{
	HashLogin:    true,
	HashRegister: true,
}

// Request is what a view or action sees of the incoming request.
type Request struct {
	Hash     string
	ClientID string
	Session  *auth.Session
	Cart     cart.Cart
	Query    url.Values
	Form     url.Values
	// Error is set when a failed action re-renders its view.
	Error    string
}

func (r *Request) IsAdmin() bool {
	return auth.IsAdmin(r.Session)
}

// Content is a rendered view body: a template name and its data.
type Content struct {
	Title    string
	Template string
	Data     any
	// Status, when set, replaces the response status.
	Status   int
}

type ViewFunc func(ctx context.Context, req *Request) (*Content, error)

// ActionFunc handles a form post and returns the hash to redirect to.
type ActionFunc func(ctx context.Context, req *Request) (string, error)

type Route struct {
	View   ViewFunc
	Action ActionFunc
}

// Router is a static table from hash string to route. Keys carry no
// parameters.
type Router struct {
	routes map[string]Route
}

func NewRouter() *Router {
	return &Router{routes: make(map[string]Route)}
}

func (rt *Router) Handle(hash string, route Route) {
	rt.routes[hash] = route
}

func (rt *Router) Lookup(hash string) (Route, bool) {
	route, ok := rt.routes[hash]
	return route, ok
}

// HashFromPath maps an HTTP path to its route hash: "/" is "#/" and "/x" is
// "#/x".
func HashFromPath(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return HashHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "#" + path
}

func PathFromHash(hash string) string {
	path := strings.TrimPrefix(hash, "#")
	if path == "" {
		return "/"
	}
	return path
}

// redirect is returned by a view to send the browser elsewhere.
type redirect struct {
	hash string
}

func (r redirect) Error() string {
	return "redirect to " + r.hash
}

func redirectTo(hash string) error {
	return redirect{hash: hash}
}
