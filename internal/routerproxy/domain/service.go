package domain

import (
	"context"
	"errors"
)

// Credentials identify the RouterOS device a request proxies to. They are
// supplied per request and never persisted.
type Credentials struct {
	Address  string
	Username string
	Password string
}

// Secret is a PPP account on the router.
type Secret struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Service  string `json:"service"`
	Profile  string `json:"profile"`
	Comment  string `json:"comment,omitempty"`
	Disabled bool   `json:"disabled"`
}

// Profile is a PPP profile (rate limits, address pools).
type Profile struct {
	Name          string `json:"name"`
	LocalAddress  string `json:"local_address,omitempty"`
	RemoteAddress string `json:"remote_address,omitempty"`
	RateLimit     string `json:"rate_limit,omitempty"`
}

type AddSecretRequest struct {
	Name     string
	Password string
	Profile  string
	Service  string
	Comment  string
}

// Service proxies management calls to a RouterOS device. It shares nothing
// with the receivable engine; it lives here because the back office drives
// both.
type Service interface {
	Ping(ctx context.Context, creds Credentials) error
	ListSecrets(ctx context.Context, creds Credentials) ([]Secret, error)
	AddSecret(ctx context.Context, creds Credentials, req AddSecretRequest) error
	RemoveSecret(ctx context.Context, creds Credentials, name string) error
	SetSecretDisabled(ctx context.Context, creds Credentials, name string, disabled bool) error
	DisconnectActive(ctx context.Context, creds Credentials, name string) error
	ListProfiles(ctx context.Context, creds Credentials) ([]Profile, error)
}

var (
	ErrMissingCredentials = errors.New("missing_router_credentials")
	ErrSecretNameMissing  = errors.New("secret_name_required")
	ErrSecretNotFound     = errors.New("secret_not_found")
	ErrSessionNotFound    = errors.New("active_session_not_found")
	ErrRouterUnreachable  = errors.New("router_unreachable")
)
