package commands

import (
	"context"
	"time"

	"minimarket-backoffice/internal/domain/cart"
	"minimarket-backoffice/internal/domain/discount"
	"minimarket-backoffice/internal/domain/invoice"
	"minimarket-backoffice/internal/domain/order"
	"minimarket-backoffice/internal/domain/product"
	"minimarket-backoffice/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side persistence ports. Implementations live in infra/repository;
// every method takes the DBTX it must run on so one use case can span a
// single transaction.

type ProductRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, p *product.Product) error
	Update(ctx context.Context, dbtx db.DBTX, p *product.Product) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*product.Product, error)
	FindAll(ctx context.Context, dbtx db.DBTX) ([]*product.Product, error)
	StockByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]int32, error)
	LockStockForUpdate(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]int32, error)
	DecrementStock(ctx context.Context, dbtx db.DBTX, id uuid.UUID, qty int32) (int32, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, d *discount.Discount) error
	Update(ctx context.Context, dbtx db.DBTX, d *discount.Discount) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*discount.Discount, error)
	FindBestVigentForProduct(ctx context.Context, dbtx db.DBTX, productID uuid.UUID, day time.Time) (*discount.Discount, error)
	FindByProduct(ctx context.Context, dbtx db.DBTX, productID uuid.UUID) ([]*discount.Discount, error)
}

type CartRepository interface {
	UpsertIncrement(ctx context.Context, dbtx db.DBTX, userID, productID uuid.UUID, qty int32, addedAt time.Time) (*cart.Line, error)
	SetQuantity(ctx context.Context, dbtx db.DBTX, userID, productID uuid.UUID, qty int32) (*cart.Line, error)
	Delete(ctx context.Context, dbtx db.DBTX, userID, productID uuid.UUID) (int64, error)
	Clear(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
	PurgeProduct(ctx context.Context, dbtx db.DBTX, productID uuid.UUID) error
	FindByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*cart.Line, error)
	FindAllGroupedByUser(ctx context.Context, dbtx db.DBTX) (map[uuid.UUID][]*cart.Line, error)
}

type OrderRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, o *order.Order, lines []order.Line) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*order.Order, error)
	FindLines(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID) ([]order.Line, error)
	FindActiveByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*order.Order, error)
	UpdateStateCAS(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to order.State) (int64, error)
	UpdateTotals(ctx context.Context, dbtx db.DBTX, o *order.Order) error
	UpdateLine(ctx context.Context, dbtx db.DBTX, l *order.Line) error
	FindByState(ctx context.Context, dbtx db.DBTX, state order.State) ([]*order.Order, error)
	FindByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*order.Order, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, inv *invoice.Invoice) error
	FindByOrderID(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID) (*invoice.Invoice, error)
}

type UserRepository interface {
	ExistsByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (bool, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}
