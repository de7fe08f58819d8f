package repository

import (
	"context"
	"time"

	"minimarket-backoffice/internal/domain/discount"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DiscountRepository struct{}

func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{}
}

func (r *DiscountRepository) Create(ctx context.Context, dbtx db.DBTX, d *discount.Discount) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO discounts (id, product_id, percentage, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`,
		pgconv.UUIDToPgtype(d.ID()),
		pgconv.UUIDToPgtype(d.ProductID()),
		pgconv.DecimalToPgtype(d.Percentage()),
		pgconv.DateToPgtype(d.StartDate()),
		pgconv.DateToPgtype(d.EndDate()),
		string(d.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create discount", err)
	}
	return nil
}

func (r *DiscountRepository) Update(ctx context.Context, dbtx db.DBTX, d *discount.Discount) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE discounts
		SET percentage = $2, start_date = $3, end_date = $4, status = $5, updated_at = now()
		WHERE id = $1
	`,
		pgconv.UUIDToPgtype(d.ID()),
		pgconv.DecimalToPgtype(d.Percentage()),
		pgconv.DateToPgtype(d.StartDate()),
		pgconv.DateToPgtype(d.EndDate()),
		string(d.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update discount", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "discount not found")
	}
	return nil
}

func (r *DiscountRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*discount.Discount, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, product_id, percentage, start_date, end_date, status, created_at, updated_at
		FROM discounts
		WHERE id = $1
	`, pgconv.UUIDToPgtype(id))

	d, err := scanDiscount(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find discount", err)
	}
	return d, nil
}

// FindBestVigentForProduct resolves the highest-percentage discount that is
// active and whose window contains day. Ties are broken by whichever row the
// store returns first; callers must not depend on which tied discount wins.
func (r *DiscountRepository) FindBestVigentForProduct(ctx context.Context, dbtx db.DBTX, productID uuid.UUID, day time.Time) (*discount.Discount, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, product_id, percentage, start_date, end_date, status, created_at, updated_at
		FROM discounts
		WHERE product_id = $1
		  AND status = 'active'
		  AND start_date <= $2
		  AND end_date >= $2
		ORDER BY percentage DESC
		LIMIT 1
	`, pgconv.UUIDToPgtype(productID), pgconv.DateToPgtype(day))

	d, err := scanDiscount(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to resolve vigent discount", err)
	}
	return d, nil
}

func (r *DiscountRepository) FindByProduct(ctx context.Context, dbtx db.DBTX, productID uuid.UUID) ([]*discount.Discount, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, product_id, percentage, start_date, end_date, status, created_at, updated_at
		FROM discounts
		WHERE product_id = $1
		ORDER BY start_date DESC
	`, pgconv.UUIDToPgtype(productID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list discounts", err)
	}
	defer rows.Close()

	discounts := make([]*discount.Discount, 0, 8)
	for rows.Next() {
		d, scanErr := scanDiscount(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan discount", scanErr)
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read discounts", err)
	}
	return discounts, nil
}

func scanDiscount(row interface{ Scan(dest ...any) error }) (*discount.Discount, error) {
	var (
		id         pgtype.UUID
		productID  pgtype.UUID
		percentage pgtype.Numeric
		startDate  pgtype.Date
		endDate    pgtype.Date
		status     string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(&id, &productID, &percentage, &startDate, &endDate, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	pct, err := pgconv.DecimalFromPgtype(percentage)
	if err != nil {
		return nil, err
	}
	return discount.Reconstruct(
		uuid.UUID(id.Bytes),
		uuid.UUID(productID.Bytes),
		pct,
		pgconv.DateFromPgtype(startDate),
		pgconv.DateFromPgtype(endDate),
		discount.Status(status),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
