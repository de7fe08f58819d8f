package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNonPositiveQuantity = errors.New("quantity must be positive")

// Line is one (user, product) row of a temporary cart. Lines only live until
// checkout, removal or expiry.
type Line struct {
	userID    uuid.UUID
	productID uuid.UUID
	quantity  int32
	addedAt   time.Time
}

func NewLine(userID, productID uuid.UUID, quantity int32, addedAt time.Time) (*Line, error) {
	if quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	return &Line{
		userID:    userID,
		productID: productID,
		quantity:  quantity,
		addedAt:   addedAt,
	}, nil
}

func Reconstruct(userID, productID uuid.UUID, quantity int32, addedAt time.Time) *Line {
	return &Line{
		userID:    userID,
		productID: productID,
		quantity:  quantity,
		addedAt:   addedAt,
	}
}

func (l *Line) Increment(qty int32) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	l.quantity += qty
	return nil
}

func (l *Line) SetQuantity(qty int32) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	l.quantity = qty
	return nil
}

func (l *Line) UserID() uuid.UUID    { return l.userID }
func (l *Line) ProductID() uuid.UUID { return l.productID }
func (l *Line) Quantity() int32      { return l.quantity }
func (l *Line) AddedAt() time.Time   { return l.addedAt }
