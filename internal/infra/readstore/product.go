package readstore

import (
	"context"
	"time"

	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

const productViewSelect = `
	SELECT p.id, p.name, p.price, p.stock, p.status, d.percentage, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN LATERAL (
		SELECT percentage
		FROM discounts
		WHERE product_id = p.id
		  AND status = 'active'
		  AND start_date <= $1
		  AND end_date >= $1
		ORDER BY percentage DESC
		LIMIT 1
	) d ON true
`

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID, day time.Time) (*queries.ProductView, error) {
	row := r.db.QueryRow(ctx, productViewSelect+` WHERE p.id = $2`, pgconv.DateToPgtype(day), pgconv.UUIDToPgtype(id))

	view, err := scanProductView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find product view", err)
	}
	return view, nil
}

func (r *ProductReadStore) FindAll(ctx context.Context, day time.Time) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, productViewSelect+` ORDER BY p.name`, pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list product views", err)
	}
	defer rows.Close()

	views := make([]*queries.ProductView, 0, 64)
	for rows.Next() {
		view, scanErr := scanProductView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan product view", scanErr)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read product views", err)
	}
	return views, nil
}

func scanProductView(row interface{ Scan(dest ...any) error }) (*queries.ProductView, error) {
	var (
		id              pgtype.UUID
		name            string
		price           pgtype.Numeric
		stock           int32
		status          string
		discountPercent pgtype.Numeric
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &price, &stock, &status, &discountPercent, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	priceDec, err := pgconv.DecimalFromPgtype(price)
	if err != nil {
		return nil, err
	}
	pct, err := pgconv.DecimalPtrFromPgtype(discountPercent)
	if err != nil {
		return nil, err
	}

	return &queries.ProductView{
		ID:              uuid.UUID(id.Bytes),
		Name:            name,
		Price:           priceDec,
		Stock:           stock,
		Status:          status,
		DiscountPercent: pct,
		CreatedAt:       pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:       pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
