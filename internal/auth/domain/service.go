package domain

import (
	"context"
	"errors"
)

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// VerifyToken resolves a bearer token to the authenticated user ID.
	VerifyToken(ctx context.Context, token string) (string, error)

	// ConfirmPassword re-checks the operator's password before privileged
	// mutations (deletes, transfers, discount changes).
	ConfirmPassword(ctx context.Context, userID string, password string) error
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrUserNotFound       = errors.New("user_not_found")
)
