package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTerminalState     = errors.New("order is in a terminal state")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrNoLines           = errors.New("order has no lines")
	ErrLineNotMutable    = errors.New("order lines cannot change after payment")
)

type Order struct {
	id              uuid.UUID
	userID          *uuid.UUID
	state           State
	paymentMethod   string
	subtotal        decimal.Decimal
	discountApplied decimal.Decimal
	tax             decimal.Decimal
	total           decimal.Decimal
	createdBy       string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewOrder(userID uuid.UUID, paymentMethod, createdBy string) *Order {
	uid := userID
	return &Order{
		id:              uuid.New(),
		userID:          &uid,
		state:           StateRequested,
		paymentMethod:   paymentMethod,
		subtotal:        decimal.Zero,
		discountApplied: decimal.Zero,
		tax:             decimal.Zero,
		total:           decimal.Zero,
		createdBy:       createdBy,
	}
}

func Reconstruct(
	id uuid.UUID,
	userID *uuid.UUID,
	state State,
	paymentMethod string,
	subtotal, discountApplied, tax, total decimal.Decimal,
	createdBy string,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		userID:          userID,
		state:           state,
		paymentMethod:   paymentMethod,
		subtotal:        subtotal,
		discountApplied: discountApplied,
		tax:             tax,
		total:           total,
		createdBy:       createdBy,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Transition moves the order along the workflow edge table. Attempts from a
// terminal state fail with ErrTerminalState; edges outside the table fail
// with ErrIllegalTransition.
func (o *Order) Transition(next State) error {
	if o.state.IsTerminal() {
		return ErrTerminalState
	}
	if !o.state.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	o.state = next
	return nil
}

// Cancel force-transitions to cancelado from any non-terminal state.
// Cancellation never restores stock: stock is only decremented at
// sale-confirmation, which happens at or after payment.
func (o *Order) Cancel() error {
	if o.state.IsTerminal() {
		return ErrTerminalState
	}
	o.state = StateCanceled
	return nil
}

// RecomputeTotals rebuilds the monetary fields from the given lines:
// subtotal is the sum of line subtotals, the discount applied comes from the
// per-line discount snapshots, tax is subtotal times taxRate, and
// total = subtotal + tax - discountApplied. Must be invoked after any line
// mutation.
func (o *Order) RecomputeTotals(lines []Line, taxRate decimal.Decimal) {
	subtotal := decimal.Zero
	discountApplied := decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].Subtotal())
		discountApplied = discountApplied.Add(lines[i].DiscountAmount())
	}
	o.subtotal = subtotal
	o.discountApplied = discountApplied.Round(2)
	o.tax = subtotal.Mul(taxRate).Round(2)
	o.total = subtotal.Add(o.tax).Sub(o.discountApplied)
}

func (o *Order) IsActive() bool {
	return !o.state.IsTerminal()
}

func (o *Order) ID() uuid.UUID                    { return o.id }
func (o *Order) UserID() *uuid.UUID               { return o.userID }
func (o *Order) State() State                     { return o.state }
func (o *Order) PaymentMethod() string            { return o.paymentMethod }
func (o *Order) Subtotal() decimal.Decimal        { return o.subtotal }
func (o *Order) DiscountApplied() decimal.Decimal { return o.discountApplied }
func (o *Order) Tax() decimal.Decimal             { return o.tax }
func (o *Order) Total() decimal.Decimal           { return o.total }
func (o *Order) CreatedBy() string                { return o.createdBy }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
