package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resto-app/internal/logger"
	"resto-app/internal/state"
	"resto-app/internal/user"

	"go.uber.org/zap"
)

// UserAPI is the part of the backend client auth needs.
type UserAPI interface {
	FindUsersByEmail(ctx context.Context, email string) ([]user.User, error)
	CreateUser(ctx context.Context, u user.User) (*user.User, error)
}

type Service interface {
	Login(ctx context.Context, clientID, email, password string) (*Session, error)
	Register(ctx context.Context, clientID, name, email, password string) (*Session, error)
	Logout(ctx context.Context, clientID string) error
	Current(ctx context.Context, clientID string) (*Session, error)
}

type service struct {
	users UserAPI
	store state.Store
}

func NewService(users UserAPI, store state.Store) Service {
	return &service{users: users, store: store}
}

// Login succeeds only when a user with that email exists and the password
// matches its hash. The session is stored for clientID.
func (s *service) Login(ctx context.Context, clientID, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	users, err := s.users.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if !strings.EqualFold(u.Email, email) || !user.CheckPasswordHash(password, u.Password) {
			continue
		}

		session := NewSession(u)
		if err := s.save(ctx, clientID, session); err != nil {
			return nil, err
		}

		logger.FromCtx(ctx).Info("user logged in",
			zap.Int("user_id", u.ID),
			zap.String("role", string(u.Role)),
		)
		return session, nil
	}

	logger.FromCtx(ctx).Info("login rejected", zap.String("email", email))
	return nil, ErrInvalidCredentials
}

// Register creates a customer account and logs it in. Any existing record
// with the same email rejects the registration.
func (s *service) Register(ctx context.Context, clientID, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.users.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrEmailExists
	}

	hash, err := user.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.CreateUser(ctx, user.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     user.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}

	session := NewSession(*created)
	if err := s.save(ctx, clientID, session); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user registered", zap.Int("user_id", created.ID))
	return session, nil
}

// Logout drops the session only. The cart survives.
func (s *service) Logout(ctx context.Context, clientID string) error {
	return s.store.Delete(ctx, clientID, state.KeySession)
}

// Current returns nil when there is no usable session.
func (s *service) Current(ctx context.Context, clientID string) (*Session, error) {
	data, err := s.store.Get(ctx, clientID, state.KeySession)
	if errors.Is(err, state.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil || session.ID == 0 {
		logger.FromCtx(ctx).Warn("discarding unreadable session", zap.Error(err))
		return nil, nil
	}
	return &session, nil
}

func (s *service) save(ctx context.Context, clientID string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, clientID, state.KeySession, data)
}
