package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read-side persistence ports. Implementations live in infra/readstore.
// Pricing views take the calendar day used to resolve vigent discounts.

type CartReader interface {
	FindLinesByUser(ctx context.Context, userID uuid.UUID, day time.Time) ([]CartLineView, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID, day time.Time) (*ProductView, error)
	FindAll(ctx context.Context, day time.Time) ([]*ProductView, error)
}

type OrderReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]OrderListItem, error)
}

type InvoiceReader interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*InvoiceView, error)
}

type DiscountReader interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]DiscountView, error)
}

type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}
