package order

import "time"

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Statuses lists the values offered to admins, in workflow order.
var Statuses = []string{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Customer is the denormalized copy of the ordering user.
type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Item is a product copied by value at checkout time.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	User      Customer  `json:"user"`
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Patch struct {
	Status *string `json:"status,omitempty"`
}

func (p Patch) Apply(o Order) Order {
	if p.Status != nil {
		o.Status = *p.Status
	}
	return o
}

type Filter struct {
	UserID int
	Status string
}

func (f Filter) Match(o Order) bool {
	if f.UserID != 0 && o.UserID != f.UserID {
		return false
	}
	return f.Status == "" || o.Status == f.Status
}
