package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidKind   = errors.New("invalid invoice kind")
	ErrNegativeTotal = errors.New("invoice total cannot be negative")
)

type Kind string

const (
	KindInvoice Kind = "invoice"
	KindReceipt Kind = "receipt"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindInvoice, KindReceipt:
		return true
	default:
		return false
	}
}

func ParseKind(raw string) (Kind, error) {
	if raw == "" {
		return KindInvoice, nil
	}
	k := Kind(raw)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Invoice is the single financial document of a paid order. Its total is the
// order total captured at issuance time.
type Invoice struct {
	id       uuid.UUID
	orderID  uuid.UUID
	kind     Kind
	total    decimal.Decimal
	issuedAt time.Time
}

func NewInvoice(orderID uuid.UUID, kind Kind, total decimal.Decimal, issuedAt time.Time) (*Invoice, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if total.IsNegative() {
		return nil, ErrNegativeTotal
	}
	return &Invoice{
		id:       uuid.New(),
		orderID:  orderID,
		kind:     kind,
		total:    total,
		issuedAt: issuedAt,
	}, nil
}

func Reconstruct(id, orderID uuid.UUID, kind Kind, total decimal.Decimal, issuedAt time.Time) *Invoice {
	return &Invoice{
		id:       id,
		orderID:  orderID,
		kind:     kind,
		total:    total,
		issuedAt: issuedAt,
	}
}

func (i *Invoice) ID() uuid.UUID          { return i.id }
func (i *Invoice) OrderID() uuid.UUID     { return i.orderID }
func (i *Invoice) Kind() Kind             { return i.kind }
func (i *Invoice) Total() decimal.Decimal { return i.total }
func (i *Invoice) IssuedAt() time.Time    { return i.issuedAt }
