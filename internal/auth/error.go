package auth

import (
	"errors"

	"resto-app/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrEmailExists        = user.ErrEmailExists
)
