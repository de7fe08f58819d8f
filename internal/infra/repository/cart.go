package repository

import (
	"context"
	"time"

	"minimarket-backoffice/internal/domain/cart"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// UpsertIncrement inserts a new line or adds qty to an existing one in a
// single statement, and returns the resulting line.
func (r *CartRepository) UpsertIncrement(ctx context.Context, dbtx db.DBTX, userID, productID uuid.UUID, qty int32, addedAt time.Time) (*cart.Line, error) {
	row := dbtx.QueryRow(ctx, `
		INSERT INTO cart_lines (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
		RETURNING quantity, added_at
	`, pgconv.UUIDToPgtype(userID), pgconv.UUIDToPgtype(productID), qty, pgconv.TimeToPgtype(addedAt))

	var (
		quantity int32
		added    pgtype.Timestamptz
	)
	if err := row.Scan(&quantity, &added); err != nil {
		return nil, infra.WrapRepoErr("failed to upsert cart line", err)
	}
	return cart.Reconstruct(userID, productID, quantity, pgconv.TimeFromPgtype(added)), nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, dbtx db.DBTX, userID, productID uuid.UUID, qty int32) (*cart.Line, error) {
	row := dbtx.QueryRow(ctx, `
		UPDATE cart_lines SET quantity = $3
		WHERE user_id = $1 AND product_id = $2
		RETURNING quantity, added_at
	`, pgconv.UUIDToPgtype(userID), pgconv.UUIDToPgtype(productID), qty)

	var (
		quantity int32
		added    pgtype.Timestamptz
	)
	if err := row.Scan(&quantity, &added); err != nil {
		return nil, infra.WrapRepoErr("failed to update cart line quantity", err)
	}
	return cart.Reconstruct(userID, productID, quantity, pgconv.TimeFromPgtype(added)), nil
}

// Delete removes a single line. Returns the number of rows removed so the
// caller can distinguish missing lines; repeated deletes are harmless.
func (r *CartRepository) Delete(ctx context.Context, dbtx db.DBTX, userID, productID uuid.UUID) (int64, error) {
	tag, err := dbtx.Exec(ctx, `
		DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2
	`, pgconv.UUIDToPgtype(userID), pgconv.UUIDToPgtype(productID))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete cart line", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CartRepository) Clear(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, `
		DELETE FROM cart_lines WHERE user_id = $1
	`, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return infra.WrapRepoErr("failed to clear cart", err)
	}
	return nil
}

// PurgeProduct drops the product from every cart. Called when stock reaches
// zero after a sale.
func (r *CartRepository) PurgeProduct(ctx context.Context, dbtx db.DBTX, productID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, `
		DELETE FROM cart_lines WHERE product_id = $1
	`, pgconv.UUIDToPgtype(productID))
	if err != nil {
		return infra.WrapRepoErr("failed to purge product from carts", err)
	}
	return nil
}

func (r *CartRepository) FindByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*cart.Line, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT user_id, product_id, quantity, added_at
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY added_at
	`, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read cart", err)
	}
	defer rows.Close()

	return collectCartLines(rows)
}

// FindAllGroupedByUser returns every cart line keyed by owner, for the
// periodic maintenance collaborator.
func (r *CartRepository) FindAllGroupedByUser(ctx context.Context, dbtx db.DBTX) (map[uuid.UUID][]*cart.Line, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT user_id, product_id, quantity, added_at
		FROM cart_lines
		ORDER BY user_id, added_at
	`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read all carts", err)
	}
	defer rows.Close()

	lines, err := collectCartLines(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]*cart.Line)
	for _, l := range lines {
		grouped[l.UserID()] = append(grouped[l.UserID()], l)
	}
	return grouped, nil
}

func collectCartLines(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*cart.Line, error) {
	lines := make([]*cart.Line, 0, 16)
	for rows.Next() {
		var (
			userID    pgtype.UUID
			productID pgtype.UUID
			quantity  int32
			addedAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&userID, &productID, &quantity, &addedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart line", err)
		}
		lines = append(lines, cart.Reconstruct(
			uuid.UUID(userID.Bytes),
			uuid.UUID(productID.Bytes),
			quantity,
			pgconv.TimeFromPgtype(addedAt),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart lines", err)
	}
	return lines, nil
}
