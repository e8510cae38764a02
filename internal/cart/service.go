package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resto-app/internal/auth"
	"resto-app/internal/logger"
	"resto-app/internal/order"
	"resto-app/internal/state"

	"go.uber.org/zap"
)

// OrderAPI is the part of the backend client checkout needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, o order.Order) (*order.Order, error)
}

type Service interface {
	Load(ctx context.Context, clientID string) (Cart, error)
	Save(ctx context.Context, clientID string, c Cart) error
	Update(ctx context.Context, clientID string, fn func(*Cart)) (Cart, error)
	Checkout(ctx context.Context, clientID string, session *auth.Session) (*order.Order, error)
}

type service struct {
	store  state.Store
	orders OrderAPI
	now    func() time.Time
}

func NewService(store state.Store, orders OrderAPI) Service {
	return &service{store: store, orders: orders, now: time.Now}
}

// Load reads the cart for clientID. A missing or unreadable blob is an
// empty cart.
func (s *service) Load(ctx context.Context, clientID string) (Cart, error) {
	data, err := s.store.Get(ctx, clientID, state.KeyCart)
	if errors.Is(err, state.ErrNotFound) {
		return Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		logger.FromCtx(ctx).Warn("discarding unreadable cart", zap.Error(err))
		return Cart{}, nil
	}

	// drop lines a hand-edited blob may carry
	valid := c[:0]
	for _, l := range c {
		if l.Quantity > 0 {
			l.Quantity = min(l.Quantity, MaxQuantity)
			valid = append(valid, l)
		}
	}
	return valid, nil
}

func (s *service) Save(ctx context.Context, clientID string, c Cart) error {
	if c == nil {
		c = Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, clientID, state.KeyCart, data)
}

// Update loads the cart, applies fn and saves the result.
func (s *service) Update(ctx context.Context, clientID string, fn func(*Cart)) (Cart, error) {
	c, err := s.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	fn(&c)
	if err := s.Save(ctx, clientID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Checkout places the cart as a pending order for session. The cart is only
// cleared once the backend has accepted the order.
func (s *service) Checkout(ctx context.Context, clientID string, session *auth.Session) (*order.Order, error) {
	if session == nil {
		return nil, ErrNotLoggedIn
	}

	c, err := s.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(c) == 0 {
		return nil, ErrCartEmpty
	}

	created, err := s.orders.CreateOrder(ctx, order.Order{
		UserID: session.ID,
		User: order.Customer{
			ID:    session.ID,
			Name:  session.Name,
			Email: session.Email,
		},
		Items:     c.Items(),
		Total:     c.Total().InexactFloat64(),
		Status:    order.StatusPending,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return nil, err
	}

	if err := s.Save(ctx, clientID, Cart{}); err != nil {
		// order is already placed
		logger.FromCtx(ctx).Error("failed to clear cart after checkout",
			zap.Int("order_id", created.ID),
			zap.Error(err),
		)
	}

	logger.FromCtx(ctx).Info("order placed",
		zap.Int("order_id", created.ID),
		zap.Int("user_id", session.ID),
		zap.Int("items", c.Count()),
	)
	return created, nil
}
