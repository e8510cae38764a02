// Package state keeps per-browser client state on the server: the session user
// and the cart, each stored as an opaque JSON blob under its own key.
package state

import (
	"context"
	"errors"
)

const (
	KeySession = "session"
	KeyCart    = "cart"
)

var ErrNotFound = errors.New("state: key not found")

// Store is a key/value store scoped by client id. Keys are independent; there
// is no atomicity across them.
type Store interface {
	Get(ctx context.Context, clientID, key string) ([]byte, error)
	Set(ctx context.Context, clientID, key string, value []byte) error
	Delete(ctx context.Context, clientID, key string) error
}
