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

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{db: dbtx}
}

// FindLinesByUser joins each cart line with its product and the best vigent
// discount for the given day. Effective prices are computed by the caller so
// the rounding rule lives in one place.
func (r *CartReadStore) FindLinesByUser(ctx context.Context, userID uuid.UUID, day time.Time) ([]queries.CartLineView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cl.user_id, cl.product_id, p.name, cl.quantity, p.price, d.id, d.percentage, cl.added_at
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		LEFT JOIN LATERAL (
			SELECT id, percentage
			FROM discounts
			WHERE product_id = p.id
			  AND status = 'active'
			  AND start_date <= $2
			  AND end_date >= $2
			ORDER BY percentage DESC
			LIMIT 1
		) d ON true
		WHERE cl.user_id = $1
		ORDER BY cl.added_at
	`, pgconv.UUIDToPgtype(userID), pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read cart view", err)
	}
	defer rows.Close()

	views := make([]queries.CartLineView, 0, 16)
	for rows.Next() {
		var (
			uid             pgtype.UUID
			productID       pgtype.UUID
			productName     string
			quantity        int32
			price           pgtype.Numeric
			discountID      pgtype.UUID
			discountPercent pgtype.Numeric
			addedAt         pgtype.Timestamptz
		)
		if scanErr := rows.Scan(&uid, &productID, &productName, &quantity, &price, &discountID, &discountPercent, &addedAt); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan cart view row", scanErr)
		}

		unitPrice, convErr := pgconv.DecimalFromPgtype(price)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid product price", convErr)
		}
		pct, convErr := pgconv.DecimalPtrFromPgtype(discountPercent)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid discount percentage", convErr)
		}

		views = append(views, queries.CartLineView{
			UserID:          uuid.UUID(uid.Bytes),
			ProductID:       uuid.UUID(productID.Bytes),
			ProductName:     productName,
			Quantity:        quantity,
			UnitPrice:       unitPrice,
			DiscountID:      pgconv.UUIDPtrFromPgtype(discountID),
			DiscountPercent: pct,
			AddedAt:         pgconv.TimeFromPgtype(addedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart view rows", err)
	}
	return views, nil
}
