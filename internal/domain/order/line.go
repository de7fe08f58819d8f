package order

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrNegativeUnitPrice   = errors.New("unit price cannot be negative")
)

var hundred = decimal.NewFromInt(100)

// DiscountSnapshot freezes the discount applied to a line at creation time,
// so later vigency changes never alter an existing order.
type DiscountSnapshot struct {
	ID         uuid.UUID
	Percentage decimal.Decimal
}

// Line is one product position of an order. The unit price is a snapshot of
// the product price when the line was created, not the live catalog price.
type Line struct {
	orderID         uuid.UUID
	productID       uuid.UUID
	quantity        int32
	unitPrice       decimal.Decimal
	subtotal        decimal.Decimal
	discountID      *uuid.UUID
	discountPercent decimal.Decimal
}

func NewLine(orderID, productID uuid.UUID, quantity int32, unitPrice decimal.Decimal, disc *DiscountSnapshot) (*Line, error) {
	if quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativeUnitPrice
	}

	l := &Line{
		orderID:         orderID,
		productID:       productID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		discountPercent: decimal.Zero,
	}
	if disc != nil {
		id := disc.ID
		l.discountID = &id
		l.discountPercent = disc.Percentage
	}
	l.refreshSubtotal()
	return l, nil
}

func ReconstructLine(
	orderID, productID uuid.UUID,
	quantity int32,
	unitPrice, subtotal decimal.Decimal,
	discountID *uuid.UUID,
	discountPercent decimal.Decimal,
) *Line {
	return &Line{
		orderID:         orderID,
		productID:       productID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		subtotal:        subtotal,
		discountID:      discountID,
		discountPercent: discountPercent,
	}
}

func (l *Line) SetQuantity(qty int32) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	l.quantity = qty
	l.refreshSubtotal()
	return nil
}

func (l *Line) SetUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativeUnitPrice
	}
	l.unitPrice = price
	l.refreshSubtotal()
	return nil
}

// DiscountAmount is the monetary effect of the snapshotted discount on this
// line; it feeds the order-level discountApplied total.
func (l *Line) DiscountAmount() decimal.Decimal {
	if l.discountID == nil {
		return decimal.Zero
	}
	return l.subtotal.Mul(l.discountPercent).Div(hundred).Round(2)
}

func (l *Line) refreshSubtotal() {
	l.subtotal = l.unitPrice.Mul(decimal.NewFromInt32(l.quantity))
}

func (l *Line) OrderID() uuid.UUID                { return l.orderID }
func (l *Line) ProductID() uuid.UUID              { return l.productID }
func (l *Line) Quantity() int32                   { return l.quantity }
func (l *Line) UnitPrice() decimal.Decimal        { return l.unitPrice }
func (l *Line) Subtotal() decimal.Decimal         { return l.subtotal }
func (l *Line) DiscountID() *uuid.UUID            { return l.discountID }
func (l *Line) DiscountPercent() decimal.Decimal  { return l.discountPercent }
