package repository

import (
	"context"

	"minimarket-backoffice/internal/domain/invoice"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type InvoiceRepository struct{}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{}
}

// Create persists the invoice. The unique constraint on order_id is the
// at-most-one-invoice-per-order guarantee; a duplicate surfaces as
// KindDuplicateKey.
func (r *InvoiceRepository) Create(ctx context.Context, dbtx db.DBTX, inv *invoice.Invoice) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO invoices (id, order_id, kind, total, issued_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		pgconv.UUIDToPgtype(inv.ID()),
		pgconv.UUIDToPgtype(inv.OrderID()),
		string(inv.Kind()),
		pgconv.DecimalToPgtype(inv.Total()),
		pgconv.TimeToPgtype(inv.IssuedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create invoice", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByOrderID(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID) (*invoice.Invoice, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, order_id, kind, total, issued_at
		FROM invoices
		WHERE order_id = $1
	`, pgconv.UUIDToPgtype(orderID))

	inv, err := scanInvoice(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find invoice", err)
	}
	return inv, nil
}

func scanInvoice(row interface{ Scan(dest ...any) error }) (*invoice.Invoice, error) {
	var (
		id       pgtype.UUID
		orderID  pgtype.UUID
		kind     string
		total    pgtype.Numeric
		issuedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &orderID, &kind, &total, &issuedAt); err != nil {
		return nil, err
	}
	totalDec, err := pgconv.DecimalFromPgtype(total)
	if err != nil {
		return nil, err
	}
	return invoice.Reconstruct(
		uuid.UUID(id.Bytes),
		uuid.UUID(orderID.Bytes),
		invoice.Kind(kind),
		totalDec,
		pgconv.TimeFromPgtype(issuedAt),
	), nil
}
