package queries

import (
	"context"

	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderListItem, error)
}

type orderQueriesImpl struct {
	reader OrderReader
}

func NewOrderQueries(reader OrderReader) OrderQueries {
	return &orderQueriesImpl{reader: reader}
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.reader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "order not found")
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderListItem, error) {
	return q.reader.FindByUser(ctx, userID)
}
