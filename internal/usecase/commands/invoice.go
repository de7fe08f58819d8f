package commands

import (
	"context"

	"minimarket-backoffice/internal/domain/invoice"
	"minimarket-backoffice/internal/domain/order"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/queries"
	"minimarket-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceCommands interface {
	IssueForOrder(ctx context.Context, orderID uuid.UUID, kind invoice.Kind) (*queries.InvoiceView, error)
}

type invoiceCommandsImpl struct {
	invoiceRepo InvoiceRepository
	orderRepo   OrderRepository
	pool        *pgxpool.Pool
	clock       clock.Clock
}

func NewInvoiceCommands(invoiceRepo InvoiceRepository, orderRepo OrderRepository, pool *pgxpool.Pool, clock clock.Clock) InvoiceCommands {
	return &invoiceCommandsImpl{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		pool:        pool,
		clock:       clock,
	}
}

// IssueForOrder emits the fiscal document for a paid or completed order,
// freezing the order total at issuance time. At most one document exists per
// order; the unique constraint on order_id turns a double issue into a
// conflict.
func (i *invoiceCommandsImpl) IssueForOrder(ctx context.Context, orderID uuid.UUID, kind invoice.Kind) (*queries.InvoiceView, error) {
	return shared.WithDefaultRetry(ctx, i.pool, func(tx db.DBTX) (*queries.InvoiceView, error) {
		ord, err := i.orderRepo.FindByID(ctx, tx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.E(errs.KindNotFound, "order not found")
			}
			return nil, err
		}
		if ord.State() != order.StatePaid && ord.State() != order.StateCompleted {
			return nil, errs.Ef(errs.KindInvalidState, "cannot issue a document for a %s order", ord.State())
		}

		inv, err := invoice.NewInvoice(orderID, kind, ord.Total(), i.clock.Now())
		if err != nil {
			return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid document")
		}
		if err := i.invoiceRepo.Create(ctx, tx, inv); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return nil, errs.E(errs.KindConflict, "order already has an issued document")
			}
			return nil, err
		}
		return &queries.InvoiceView{
			ID:       inv.ID(),
			OrderID:  inv.OrderID(),
			Kind:     string(inv.Kind()),
			Total:    inv.Total(),
			IssuedAt: inv.IssuedAt(),
		}, nil
	})
}
