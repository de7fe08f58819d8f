package readstore

import (
	"context"

	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type InvoiceReadStore struct {
	db db.DBTX
}

func NewInvoiceReadStore(dbtx db.DBTX) *InvoiceReadStore {
	return &InvoiceReadStore{db: dbtx}
}

func (r *InvoiceReadStore) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*queries.InvoiceView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, order_id, kind, total, issued_at
		FROM invoices
		WHERE order_id = $1
	`, pgconv.UUIDToPgtype(orderID))

	var (
		id       pgtype.UUID
		oid      pgtype.UUID
		kind     string
		total    pgtype.Numeric
		issuedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &oid, &kind, &total, &issuedAt); err != nil {
		return nil, infra.WrapRepoErr("failed to find invoice view", err)
	}

	totalDec, err := pgconv.DecimalFromPgtype(total)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid invoice total", err)
	}

	return &queries.InvoiceView{
		ID:       uuid.UUID(id.Bytes),
		OrderID:  uuid.UUID(oid.Bytes),
		Kind:     kind,
		Total:    totalDec,
		IssuedAt: pgconv.TimeFromPgtype(issuedAt),
	}, nil
}
