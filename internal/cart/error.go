package cart

import "errors"

var (
	ErrCartEmpty   = errors.New("your cart is empty")
	ErrNotLoggedIn = errors.New("please log in to place an order")
)
