package domain

import (
	"context"
	"errors"
	"time"
)

type GenerateInvoiceRequest struct {
	CustomerID string
	Year       int
	Month      time.Month
}

// Invoice is the rendered artifact for one customer and one billing month.
type Invoice struct {
	CustomerID string     `json:"customer_id"`
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	HTML       string     `json:"html"`
}

type Service interface {
	// Generate renders the invoice document for the requested period. The
	// document carries the reporting month's status and paid amount from
	// the receivable snapshot.
	Generate(ctx context.Context, req GenerateInvoiceRequest) (Invoice, error)
}

var (
	ErrInvalidCustomerID = errors.New("invalid_customer_id")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrInvalidPeriod     = errors.New("invalid_period")
)
