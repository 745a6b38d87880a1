// Package services contains application services for the marketplace client.
// This file defines the authentication service: login, register, logout and
// the cached profile.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evmarket/internal/client/api"
	"github.com/dmitrijs2005/evmarket/internal/client/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and persist the session.
//   - Register: create a new account; does not log in.
//   - Logout: drop the local session.
//   - Profile: the cached user, if the session is still valid.
//   - RefreshProfile: overwrite the cached user with fresh data.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*session.User, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.Account, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*session.User, error)
	RefreshProfile(ctx context.Context, u session.User) error
}

// SessionStore is the part of session.Manager the service depends on.
type SessionStore interface {
	SaveSession(ctx context.Context, token string, u session.User) error
	SaveUser(ctx context.Context, u session.User) error
	RemoveToken(ctx context.Context) error
	CurrentUser(ctx context.Context) (*session.User, bool)
}

type authService struct {
	client   api.Client
	sessions SessionStore
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client api.Client, sessions SessionStore) AuthService {
	return &authService{client: client, sessions: sessions}
}

// Login posts the credentials, then stores the issued token together with
// the profile from the same response.
func (a *authService) Login(ctx context.Context, email, password string) (*session.User, error) {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	u := userFromLogin(resp)
	if err := a.sessions.SaveSession(ctx, resp.Token, u); err != nil {
		if errors.Is(err, session.ErrInvalidCredential) {
			return nil, fmt.Errorf("backend issued an unusable token: %w", err)
		}
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &u, nil
}

func (a *authService) Register(ctx context.Context, req api.RegisterRequest) (*api.Account, error) {
	return a.client.Register(ctx, req)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.RemoveToken(ctx)
}

// Profile returns session.ErrNoSession when nobody is logged in.
func (a *authService) Profile(ctx context.Context) (*session.User, error) {
	u, ok := a.sessions.CurrentUser(ctx)
	if !ok {
		return nil, session.ErrNoSession
	}
	return u, nil
}

func (a *authService) RefreshProfile(ctx context.Context, u session.User) error {
	return a.sessions.SaveUser(ctx, u)
}

func userFromLogin(r *api.LoginResponse) session.User {
	return session.User{
		UserID:     string(r.UserID),
		UserName:   r.UserName,
		UserEmail:  r.UserEmail,
		Phone:      r.Phone,
		Role:       r.Role,
		UserStatus: r.UserStatus,
	}
}
