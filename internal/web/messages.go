package web

import (
	"errors"
	"strings"
	"unicode"

	"resto-app/internal/auth"
	"resto-app/internal/cart"
)

const msgUnavailable = "Could not connect to the server."

var (
	errAccessDenied   = errors.New("access denied")
	errInvalidForm    = errors.New("invalid form input")
	errInvalidProduct = errors.New("name, category and a non-negative price are required")
	errInvalidStatus  = errors.New("unknown order status")
)

// userErrors are shown to the user as they are. Anything else is treated
// as a backend failure.
var userErrors = []error{
	auth.ErrInvalidCredentials,
	auth.ErrEmailExists,
	auth.ErrMissingFields,
	cart.ErrCartEmpty,
	cart.ErrNotLoggedIn,
	errAccessDenied,
	errInvalidForm,
	errInvalidProduct,
	errInvalidStatus,
}

func messageFor(err error) string {
	for _, known := range userErrors {
		if errors.Is(err, known) {
			return sentence(known.Error())
		}
	}
	return msgUnavailable
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	out := string(r)
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}
