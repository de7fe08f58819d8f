package repository

import (
	"context"

	"minimarket-backoffice/internal/domain/order"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, dbtx db.DBTX, o *order.Order, lines []order.Line) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO orders (id, user_id, state, payment_method, subtotal, discount_applied, tax, total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	`,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDPtrToPgtype(o.UserID()),
		string(o.State()),
		o.PaymentMethod(),
		pgconv.DecimalToPgtype(o.Subtotal()),
		pgconv.DecimalToPgtype(o.DiscountApplied()),
		pgconv.DecimalToPgtype(o.Tax()),
		pgconv.DecimalToPgtype(o.Total()),
		o.CreatedBy(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	for i := range lines {
		l := &lines[i]
		_, err := dbtx.Exec(ctx, `
			INSERT INTO order_lines (order_id, product_id, quantity, unit_price, subtotal, discount_id, discount_percent)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			pgconv.UUIDToPgtype(l.OrderID()),
			pgconv.UUIDToPgtype(l.ProductID()),
			l.Quantity(),
			pgconv.DecimalToPgtype(l.UnitPrice()),
			pgconv.DecimalToPgtype(l.Subtotal()),
			pgconv.UUIDPtrToPgtype(l.DiscountID()),
			pgconv.DecimalToPgtype(l.DiscountPercent()),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create order line", err)
		}
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*order.Order, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, user_id, state, payment_method, subtotal, discount_applied, tax, total, created_by, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, pgconv.UUIDToPgtype(id))

	o, err := scanOrder(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return o, nil
}

func (r *OrderRepository) FindLines(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID) ([]order.Line, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT order_id, product_id, quantity, unit_price, subtotal, discount_id, discount_percent
		FROM order_lines
		WHERE order_id = $1
		ORDER BY product_id
	`, pgconv.UUIDToPgtype(orderID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read order lines", err)
	}
	defer rows.Close()

	lines := make([]order.Line, 0, 8)
	for rows.Next() {
		var (
			oid             pgtype.UUID
			productID       pgtype.UUID
			quantity        int32
			unitPrice       pgtype.Numeric
			subtotal        pgtype.Numeric
			discountID      pgtype.UUID
			discountPercent pgtype.Numeric
		)
		if scanErr := rows.Scan(&oid, &productID, &quantity, &unitPrice, &subtotal, &discountID, &discountPercent); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", scanErr)
		}
		unit, convErr := pgconv.DecimalFromPgtype(unitPrice)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid unit price", convErr)
		}
		sub, convErr := pgconv.DecimalFromPgtype(subtotal)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid line subtotal", convErr)
		}
		pct, convErr := pgconv.DecimalFromPgtype(discountPercent)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid discount percent", convErr)
		}
		lines = append(lines, *order.ReconstructLine(
			uuid.UUID(oid.Bytes),
			uuid.UUID(productID.Bytes),
			quantity,
			unit,
			sub,
			pgconv.UUIDPtrFromPgtype(discountID),
			pct,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order lines", err)
	}
	return lines, nil
}

// FindActiveByUser returns the user's non-terminal order, or nil when the
// user has none.
func (r *OrderRepository) FindActiveByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*order.Order, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, user_id, state, payment_method, subtotal, discount_applied, tax, total, created_by, created_at, updated_at
		FROM orders
		WHERE user_id = $1 AND state NOT IN ('completado', 'cancelado')
	`, pgconv.UUIDToPgtype(userID))

	o, err := scanOrder(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find active order", err)
	}
	return o, nil
}

// UpdateStateCAS persists a transition only if the row still holds the state
// the caller read. A zero row count means a concurrent transition won.
func (r *OrderRepository) UpdateStateCAS(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to order.State) (int64, error) {
	tag, err := dbtx.Exec(ctx, `
		UPDATE orders SET state = $3, updated_at = now()
		WHERE id = $1 AND state = $2
	`, pgconv.UUIDToPgtype(id), string(from), string(to))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update order state", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepository) UpdateTotals(ctx context.Context, dbtx db.DBTX, o *order.Order) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE orders
		SET subtotal = $2, discount_applied = $3, tax = $4, total = $5, updated_at = now()
		WHERE id = $1
	`,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.DecimalToPgtype(o.Subtotal()),
		pgconv.DecimalToPgtype(o.DiscountApplied()),
		pgconv.DecimalToPgtype(o.Tax()),
		pgconv.DecimalToPgtype(o.Total()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order totals", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "order not found")
	}
	return nil
}

// UpdateLine rewrites a line's quantity, unit price and subtotal. Only
// callers that verified the order is not yet paid may use it.
func (r *OrderRepository) UpdateLine(ctx context.Context, dbtx db.DBTX, l *order.Line) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE order_lines
		SET quantity = $3, unit_price = $4, subtotal = $5
		WHERE order_id = $1 AND product_id = $2
	`,
		pgconv.UUIDToPgtype(l.OrderID()),
		pgconv.UUIDToPgtype(l.ProductID()),
		l.Quantity(),
		pgconv.DecimalToPgtype(l.UnitPrice()),
		pgconv.DecimalToPgtype(l.Subtotal()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order line", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "order line not found")
	}
	return nil
}

// FindByState lists every order in one workflow state, oldest update
// first, for the maintenance collaborator.
func (r *OrderRepository) FindByState(ctx context.Context, dbtx db.DBTX, state order.State) ([]*order.Order, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, user_id, state, payment_method, subtotal, discount_applied, tax, total, created_by, created_at, updated_at
		FROM orders
		WHERE state = $1
		ORDER BY updated_at
	`, string(state))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by state", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *OrderRepository) FindByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*order.Order, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, user_id, state, payment_method, subtotal, discount_applied, tax, total, created_by, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user orders", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, 16)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read orders", err)
	}
	return orders, nil
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*order.Order, error) {
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

	return order.Reconstruct(
		uuid.UUID(id.Bytes),
		pgconv.UUIDPtrFromPgtype(userID),
		order.State(state),
		paymentMethod,
		sub,
		disc,
		taxDec,
		totalDec,
		createdBy,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
