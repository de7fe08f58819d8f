package queries

import (
	"context"
	"time"

	"minimarket-backoffice/internal/domain/discount"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

type DiscountQueries interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]DiscountView, error)
	PriceWithDiscount(ctx context.Context, productID uuid.UUID) (*ProductView, error)
}

type discountQueriesImpl struct {
	discounts DiscountReader
	products  ProductReader
	clock     clock.Clock
}

func NewDiscountQueries(discounts DiscountReader, products ProductReader, clock clock.Clock) DiscountQueries {
	return &discountQueriesImpl{discounts: discounts, products: products, clock: clock}
}

// ListByProduct returns every discount registered for the product, flagging
// the ones vigent today.
func (q *discountQueriesImpl) ListByProduct(ctx context.Context, productID uuid.UUID) ([]DiscountView, error) {
	views, err := q.discounts.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	day := toDay(q.clock.Now())
	for i := range views {
		v := &views[i]
		v.Vigent = v.Status == string(discount.StatusActive) &&
			!day.Before(v.StartDate) && !day.After(v.EndDate)
	}
	return views, nil
}

// PriceWithDiscount resolves the product's price after the best vigent
// discount of the day, if any.
func (q *discountQueriesImpl) PriceWithDiscount(ctx context.Context, productID uuid.UUID) (*ProductView, error) {
	view, err := q.products.FindByID(ctx, productID, q.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "product not found")
		}
		return nil, err
	}
	view.EffectivePrice = view.Price
	if view.DiscountPercent != nil {
		view.EffectivePrice = discount.ApplyPercentage(view.Price, *view.DiscountPercent)
	}
	return view, nil
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
