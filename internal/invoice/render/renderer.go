package render

import "time"

// RenderInput is the deterministic input used for invoice rendering.
type RenderInput struct {
	Company  CompanyView
	Customer CustomerView
	Period   PeriodView
	Charges  ChargesView
}

type CompanyView struct {
	Name         string
	FooterNotes  string
	PrimaryColor string
}

type CustomerView struct {
	Name    string
	Phone   string
	Address string
	City    string
}

type PeriodView struct {
	Year     int
	Month    time.Month
	IssuedAt time.Time
}

// ChargesView carries the receivable snapshot fields the invoice shows.
type ChargesView struct {
	SubscriptionValue int64
	Status            string
	MonthPaid         int64
	Outstanding       int64
	ArrearsMonths     int
	SetupFeeRemaining int64
	Currency          string
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
