package discount

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrInvertedWindow       = errors.New("start date must not be after end date")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	minPercentage = decimal.Zero
	maxPercentage = decimal.NewFromInt(100)
)

type Discount struct {
	id         uuid.UUID
	productID  uuid.UUID
	percentage decimal.Decimal
	startDate  time.Time
	endDate    time.Time
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewDiscount(
	id *uuid.UUID,
	productID uuid.UUID,
	percentage decimal.Decimal,
	startDate, endDate time.Time,
) (*Discount, error) {
	if percentage.LessThan(minPercentage) || percentage.GreaterThan(maxPercentage) {
		return nil, ErrPercentageOutOfRange
	}
	if toDate(startDate).After(toDate(endDate)) {
		return nil, ErrInvertedWindow
	}

	discountID := uuid.New()
	if id != nil {
		discountID = *id
	}

	return &Discount{
		id:         discountID,
		productID:  productID,
		percentage: percentage,
		startDate:  toDate(startDate),
		endDate:    toDate(endDate),
		status:     StatusActive,
	}, nil
}

func Reconstruct(
	id, productID uuid.UUID,
	percentage decimal.Decimal,
	startDate, endDate time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Discount {
	return &Discount{
		id:         id,
		productID:  productID,
		percentage: percentage,
		startDate:  toDate(startDate),
		endDate:    toDate(endDate),
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// IsVigentAt reports whether the discount applies on the calendar day of t:
// active status and t within [startDate, endDate], bounds inclusive.
func (d *Discount) IsVigentAt(t time.Time) bool {
	if d.status != StatusActive {
		return false
	}
	day := toDate(t)
	return !day.Before(d.startDate) && !day.After(d.endDate)
}

// Apply returns price reduced by the discount percentage, rounded half-up to
// two decimal places.
func (d *Discount) Apply(price decimal.Decimal) decimal.Decimal {
	return ApplyPercentage(price, d.percentage)
}

// ApplyPercentage computes price*(1-pct/100), rounded half-up to two decimal
// places. A zero percentage leaves the price unchanged.
func ApplyPercentage(price, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return price
	}
	factor := maxPercentage.Sub(pct).Div(maxPercentage)
	return price.Mul(factor).Round(2)
}

func (d *Discount) Deactivate() {
	d.status = StatusInactive
}

// Revise replaces the percentage and validity window, enforcing the same
// invariants as creation.
func (d *Discount) Revise(percentage decimal.Decimal, startDate, endDate time.Time) error {
	if percentage.LessThan(minPercentage) || percentage.GreaterThan(maxPercentage) {
		return ErrPercentageOutOfRange
	}
	if toDate(startDate).After(toDate(endDate)) {
		return ErrInvertedWindow
	}
	d.percentage = percentage
	d.startDate = toDate(startDate)
	d.endDate = toDate(endDate)
	return nil
}

func (d *Discount) ID() uuid.UUID               { return d.id }
func (d *Discount) ProductID() uuid.UUID        { return d.productID }
func (d *Discount) Percentage() decimal.Decimal { return d.percentage }
func (d *Discount) StartDate() time.Time        { return d.startDate }
func (d *Discount) EndDate() time.Time          { return d.endDate }
func (d *Discount) Status() Status              { return d.status }
func (d *Discount) CreatedAt() time.Time        { return d.createdAt }
func (d *Discount) UpdatedAt() time.Time        { return d.updatedAt }

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
