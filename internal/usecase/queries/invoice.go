package queries

import (
	"context"

	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

type InvoiceQueries interface {
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*InvoiceView, error)
}

type invoiceQueriesImpl struct {
	reader InvoiceReader
}

func NewInvoiceQueries(reader InvoiceReader) InvoiceQueries {
	return &invoiceQueriesImpl{reader: reader}
}

func (q *invoiceQueriesImpl) GetByOrder(ctx context.Context, orderID uuid.UUID) (*InvoiceView, error) {
	view, err := q.reader.FindByOrderID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "no document issued for this order")
		}
		return nil, err
	}
	return view, nil
}
