package api

import "context"

// Client is the backend surface used by the auth service.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*Account, error)
}
