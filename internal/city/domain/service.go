package domain

import (
	"context"
	"errors"
)

type CreateCityRequest struct {
	Name string
}

type Service interface {
	Create(ctx context.Context, req CreateCityRequest) (City, error)
	List(ctx context.Context) ([]City, error)
	GetByID(ctx context.Context, id string) (City, error)
	Rename(ctx context.Context, id string, name string) (City, error)

	// Delete removes the city and every customer assigned to it, in one
	// transaction. No customer may reference a missing city afterwards.
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidCityID   = errors.New("invalid_city_id")
	ErrCityNotFound    = errors.New("city_not_found")
	ErrCityNameTaken   = errors.New("city_name_taken")
	ErrCityNameMissing = errors.New("city_name_required")
)
