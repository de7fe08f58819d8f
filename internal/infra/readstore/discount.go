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

type DiscountReadStore struct {
	db db.DBTX
}

func NewDiscountReadStore(dbtx db.DBTX) *DiscountReadStore {
	return &DiscountReadStore{db: dbtx}
}

func (r *DiscountReadStore) FindByProduct(ctx context.Context, productID uuid.UUID) ([]queries.DiscountView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, percentage, start_date, end_date, status
		FROM discounts
		WHERE product_id = $1
		ORDER BY start_date DESC, percentage DESC
	`, pgconv.UUIDToPgtype(productID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list discount views", err)
	}
	defer rows.Close()

	views := make([]queries.DiscountView, 0, 8)
	for rows.Next() {
		var (
			id         pgtype.UUID
			pid        pgtype.UUID
			percentage pgtype.Numeric
			startDate  pgtype.Date
			endDate    pgtype.Date
			status     string
		)
		if err := rows.Scan(&id, &pid, &percentage, &startDate, &endDate, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount view", err)
		}
		pct, err := pgconv.DecimalFromPgtype(percentage)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid discount percentage", err)
		}
		views = append(views, queries.DiscountView{
			ID:         uuid.UUID(id.Bytes),
			ProductID:  uuid.UUID(pid.Bytes),
			Percentage: pct,
			StartDate:  pgconv.DateFromPgtype(startDate),
			EndDate:    pgconv.DateFromPgtype(endDate),
			Status:     status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read discount views", err)
	}
	return views, nil
}
