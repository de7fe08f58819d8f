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

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, state, payment_method, subtotal, discount_applied, tax, total, created_by, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, pgconv.UUIDToPgtype(id))

	view, err := scanOrderView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order view", err)
	}

	lines, err := r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Lines = lines
	return view, nil
}

func (r *OrderReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, state, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order views", err)
	}
	defer rows.Close()

	items := make([]queries.OrderListItem, 0, 16)
	for rows.Next() {
		var (
			id        pgtype.UUID
			state     string
			total     pgtype.Numeric
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(&id, &state, &total, &createdAt); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan order list row", scanErr)
		}
		totalDec, convErr := pgconv.DecimalFromPgtype(total)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid order total", convErr)
		}
		items = append(items, queries.OrderListItem{
			ID:        uuid.UUID(id.Bytes),
			State:     state,
			Total:     totalDec,
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order list rows", err)
	}
	return items, nil
}

func (r *OrderReadStore) findLines(ctx context.Context, orderID uuid.UUID) ([]queries.OrderLineView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ol.product_id, p.name, ol.quantity, ol.unit_price, ol.subtotal, ol.discount_id, ol.discount_percent
		FROM order_lines ol
		JOIN products p ON p.id = ol.product_id
		WHERE ol.order_id = $1
		ORDER BY p.name
	`, pgconv.UUIDToPgtype(orderID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read order line views", err)
	}
	defer rows.Close()

	lines := make([]queries.OrderLineView, 0, 8)
	for rows.Next() {
		var (
			productID       pgtype.UUID
			productName     string
			quantity        int32
			unitPrice       pgtype.Numeric
			subtotal        pgtype.Numeric
			discountID      pgtype.UUID
			discountPercent pgtype.Numeric
		)
		if scanErr := rows.Scan(&productID, &productName, &quantity, &unitPrice, &subtotal, &discountID, &discountPercent); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan order line view", scanErr)
		}
		unit, convErr := pgconv.DecimalFromPgtype(unitPrice)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid line unit price", convErr)
		}
		sub, convErr := pgconv.DecimalFromPgtype(subtotal)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid line subtotal", convErr)
		}
		pct, convErr := pgconv.DecimalFromPgtype(discountPercent)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid line discount percent", convErr)
		}
		lines = append(lines, queries.OrderLineView{
			ProductID:       uuid.UUID(productID.Bytes),
			ProductName:     productName,
			Quantity:        quantity,
			UnitPrice:       unit,
			Subtotal:        sub,
			DiscountID:      pgconv.UUIDPtrFromPgtype(discountID),
			DiscountPercent: pct,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order line views", err)
	}
	return lines, nil
}

func scanOrderView(row interface{ Scan(dest ...any) error }) (*queries.OrderView, error) {
	var (
		id              pgtype.UUID
		userID          pgtype.UUID
		state           string
		paymentMethod   string
		subtotal        pgtype.Numeric
		discountApplied pgtype.Numeric
		tax             pgtype.Numeric
		total           pgtype.Numeric
		createdBy       string
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)
	if err := row.Scan(&id, &userID, &state, &paymentMethod, &subtotal, &discountApplied, &tax, &total, &createdBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	sub, err := pgconv.DecimalFromPgtype(subtotal)
	if err != nil {
		return nil, err
	}
	disc, err := pgconv.DecimalFromPgtype(discountApplied)
	if err != nil {
		return nil, err
	}
	taxDec, err := pgconv.DecimalFromPgtype(tax)
	if err != nil {
		return nil, err
	}
	totalDec, err := pgconv.DecimalFromPgtype(total)
	if err != nil {
		return nil, err
	}

	return &queries.OrderView{
		ID:              uuid.UUID(id.Bytes),
		UserID:          pgconv.UUIDPtrFromPgtype(userID),
		State:           state,
		PaymentMethod:   paymentMethod,
		Subtotal:        sub,
		DiscountApplied: disc,
		Tax:             taxDec,
		Total:           totalDec,
		CreatedBy:       createdBy,
		CreatedAt:       pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:       pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
