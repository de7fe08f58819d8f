package queries

import (
	"context"

	"minimarket-backoffice/internal/domain/discount"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

type ProductQueries interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListProducts(ctx context.Context) ([]*ProductView, error)
}

type productQueriesImpl struct {
	reader ProductReader
	clock  clock.Clock
}

func NewProductQueries(reader ProductReader, clock clock.Clock) ProductQueries {
	return &productQueriesImpl{reader: reader, clock: clock}
}

func (q *productQueriesImpl) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	view, err := q.reader.FindByID(ctx, id, q.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "product not found")
		}
		return nil, err
	}
	applyEffectivePrice(view)
	return view, nil
}

func (q *productQueriesImpl) ListProducts(ctx context.Context) ([]*ProductView, error) {
	views, err := q.reader.FindAll(ctx, q.clock.Now())
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		applyEffectivePrice(v)
	}
	return views, nil
}

func applyEffectivePrice(v *ProductView) {
	v.EffectivePrice = v.Price
	if v.DiscountPercent != nil {
		v.EffectivePrice = discount.ApplyPercentage(v.Price, *v.DiscountPercent)
	}
}
