package repository

import (
	"context"

	"minimarket-backoffice/internal/domain/product"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Create(ctx context.Context, dbtx db.DBTX, p *product.Product) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO products (id, name, price, stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
	`, pgconv.UUIDToPgtype(p.ID()), p.Name(), pgconv.DecimalToPgtype(p.Price()), p.Stock(), string(p.Status()))
	if err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, dbtx db.DBTX, p *product.Product) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE products
		SET name = $2, price = $3, stock = $4, status = $5, updated_at = now()
		WHERE id = $1
	`, pgconv.UUIDToPgtype(p.ID()), p.Name(), pgconv.DecimalToPgtype(p.Price()), p.Stock(), string(p.Status()))
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*product.Product, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, name, price, stock, status, created_at, updated_at
		FROM products
		WHERE id = $1
	`, pgconv.UUIDToPgtype(id))

	p, err := scanProduct(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, dbtx db.DBTX) ([]*product.Product, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, name, price, stock, status, created_at, updated_at
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	products := make([]*product.Product, 0, 64)
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan product", scanErr)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read products", err)
	}
	return products, nil
}

// StockByIDs returns the current on-hand quantity per product, without
// locking. Products that do not exist are absent from the map.
func (r *ProductRepository) StockByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]int32, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, stock FROM products WHERE id = ANY($1)
	`, uuidSliceToPg(ids))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read stock", err)
	}
	defer rows.Close()

	stocks := make(map[uuid.UUID]int32, len(ids))
	for rows.Next() {
		var id pgtype.UUID
		var stock int32
		if scanErr := rows.Scan(&id, &stock); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan stock row", scanErr)
		}
		stocks[uuid.UUID(id.Bytes)] = stock
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read stock rows", err)
	}
	return stocks, nil
}

// LockStockForUpdate takes row-level locks on the given products, ordered by
// id so concurrent multi-product sales never deadlock, and returns the locked
// on-hand quantities.
func (r *ProductRepository) LockStockForUpdate(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]int32, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, stock FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE
	`, uuidSliceToPg(ids))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock stock rows", err)
	}
	defer rows.Close()

	stocks := make(map[uuid.UUID]int32, len(ids))
	for rows.Next() {
		var id pgtype.UUID
		var stock int32
		if scanErr := rows.Scan(&id, &stock); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan locked stock row", scanErr)
		}
		stocks[uuid.UUID(id.Bytes)] = stock
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read locked stock rows", err)
	}
	return stocks, nil
}

// DecrementStock subtracts qty and returns the resulting quantity. The
// non-negative check constraint backs up the caller's re-validation.
func (r *ProductRepository) DecrementStock(ctx context.Context, dbtx db.DBTX, id uuid.UUID, qty int32) (int32, error) {
	var remaining int32
	err := dbtx.QueryRow(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1
		RETURNING stock
	`, pgconv.UUIDToPgtype(id), qty).Scan(&remaining)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to decrement stock", err)
	}
	return remaining, nil
}

func scanProduct(row interface{ Scan(dest ...any) error }) (*product.Product, error) {
	var (
		id        pgtype.UUID
		name      string
		price     pgtype.Numeric
		stock     int32
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &price, &stock, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	priceDec, err := pgconv.DecimalFromPgtype(price)
	if err != nil {
		return nil, err
	}
	return product.Reconstruct(
		uuid.UUID(id.Bytes),
		name,
		priceDec,
		stock,
		product.Status(status),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func uuidSliceToPg(ids []uuid.UUID) []pgtype.UUID {
	out := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		out[i] = pgconv.UUIDToPgtype(id)
	}
	return out
}
