package domain

import (
	"context"
	"errors"
	"time"

	"github.com/wisphub/netdesk/internal/receivable"
	"github.com/wisphub/netdesk/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	CityID            string
	Name              string
	Phone             string
	Address           string
	SubscriptionValue int64
	StartDate         *time.Time
	SetupFeeTotal     int64
}

type UpdateCustomerRequest struct {
	Name              *string
	Phone             *string
	Address           *string
	SubscriptionValue *int64
	StartDate         *time.Time
}

type ListCustomerRequest struct {
	CityID    string
	Name      string
	Suspended *bool
	Page      pagination.Pagination
}

// SetMonthlyStatusRequest toggles one month's payment state. Amount is only
// meaningful for partial status.
type SetMonthlyStatusRequest struct {
	YearMonth string
	Status    receivable.Status
	Amount    int64
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) ([]Customer, pagination.PageInfo, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error

	// Transfer moves the customer to another existing city.
	Transfer(ctx context.Context, id string, cityID string) (Customer, error)

	SetMonthlyStatus(ctx context.Context, id string, req SetMonthlyStatusRequest) (Customer, error)

	// ApplyDiscount lowers the subscription value by amount, capped so the
	// value never goes negative. The cumulative discount is tracked so
	// RemoveDiscount can restore it.
	ApplyDiscount(ctx context.Context, id string, amount int64) (Customer, error)
	RemoveDiscount(ctx context.Context, id string) (Customer, error)

	Suspend(ctx context.Context, id string) (Customer, error)
	Resume(ctx context.Context, id string) (Customer, error)

	RecordSetupFeePayment(ctx context.Context, id string, amount int64) (Customer, error)
}

var (
	ErrInvalidCustomerID   = errors.New("invalid_customer_id")
	ErrCustomerNotFound    = errors.New("customer_not_found")
	ErrCustomerNameMissing = errors.New("customer_name_required")
	ErrInvalidCity         = errors.New("invalid_city")
	ErrCityNotFound        = errors.New("city_not_found")
	ErrNegativeAmount      = errors.New("negative_amount")
	ErrInvalidMonthKey     = errors.New("invalid_month_key")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrNoDiscount          = errors.New("no_discount_applied")
	ErrInvalidPageToken    = errors.New("invalid_page_token")
)
