package queries

import (
	"context"

	"minimarket-backoffice/internal/domain/discount"
	"minimarket-backoffice/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartQueries interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	reader CartReader
	clock  clock.Clock
}

func NewCartQueries(reader CartReader, clock clock.Clock) CartQueries {
	return &cartQueriesImpl{reader: reader, clock: clock}
}

// GetCart prices the cart for today: each line carries the catalog price and
// the price after the best vigent discount, rounded per unit before the
// quantity multiply. An empty cart is a valid view with zero totals.
func (q *cartQueriesImpl) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	lines, err := q.reader.FindLinesByUser(ctx, userID, q.clock.Now())
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	totalWithDiscounts := decimal.Zero
	for i := range lines {
		l := &lines[i]
		l.EffectiveUnitPrice = l.UnitPrice
		if l.DiscountPercent != nil {
			l.EffectiveUnitPrice = discount.ApplyPercentage(l.UnitPrice, *l.DiscountPercent)
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		l.LineTotal = l.UnitPrice.Mul(qty)
		l.EffectiveLineTotal = l.EffectiveUnitPrice.Mul(qty)

		total = total.Add(l.LineTotal)
		totalWithDiscounts = totalWithDiscounts.Add(l.EffectiveLineTotal)
	}

	return &CartView{
		UserID:             userID,
		Lines:              lines,
		Total:              total,
		TotalWithDiscounts: totalWithDiscounts,
	}, nil
}
