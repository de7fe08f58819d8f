package commands

import (
	"context"
	"time"

	"minimarket-backoffice/internal/domain/discount"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type CreateDiscountInput struct {
	ProductID  uuid.UUID
	Percentage decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
}

type UpdateDiscountInput struct {
	Percentage decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
}

type DiscountCommands interface {
	Create(ctx context.Context, input CreateDiscountInput) (*discount.Discount, error)
	Update(ctx context.Context, discountID uuid.UUID, input UpdateDiscountInput) (*discount.Discount, error)
	Deactivate(ctx context.Context, discountID uuid.UUID) error
}

type discountCommandsImpl struct {
	discountRepo DiscountRepository
	productRepo  ProductRepository
	pool         *pgxpool.Pool
	clock        clock.Clock
}

func NewDiscountCommands(discountRepo DiscountRepository, productRepo ProductRepository, pool *pgxpool.Pool, clock clock.Clock) DiscountCommands {
	return &discountCommandsImpl{
		discountRepo: discountRepo,
		productRepo:  productRepo,
		pool:         pool,
		clock:        clock,
	}
}

// Create registers a time-boxed percentage discount for a product. Windows
// for the same product are allowed to overlap; the highest percentage wins
// at pricing time.
func (d *discountCommandsImpl) Create(ctx context.Context, input CreateDiscountInput) (*discount.Discount, error) {
	if _, err := d.productRepo.FindByID(ctx, d.pool, input.ProductID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "product not found")
		}
		return nil, err
	}

	disc, err := discount.NewDiscount(nil, input.ProductID, input.Percentage, input.StartDate, input.EndDate)
	if err != nil {
		return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid discount")
	}

	if err := d.discountRepo.Create(ctx, d.pool, disc); err != nil {
		return nil, err
	}
	return disc, nil
}

// Update revises the percentage and validity window of an existing discount
// under the same validation as creation. Status is untouched; use Deactivate
// to retire a discount.
func (d *discountCommandsImpl) Update(ctx context.Context, discountID uuid.UUID, input UpdateDiscountInput) (*discount.Discount, error) {
	disc, err := d.discountRepo.FindByID(ctx, d.pool, discountID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "discount not found")
		}
		return nil, err
	}

	if err := disc.Revise(input.Percentage, input.StartDate, input.EndDate); err != nil {
		return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid discount")
	}

	if err := d.discountRepo.Update(ctx, d.pool, disc); err != nil {
		return nil, err
	}
	return disc, nil
}

// Deactivate retires a discount immediately regardless of its window.
// Already inactive discounts deactivate again without error.
func (d *discountCommandsImpl) Deactivate(ctx context.Context, discountID uuid.UUID) error {
	disc, err := d.discountRepo.FindByID(ctx, d.pool, discountID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.E(errs.KindNotFound, "discount not found")
		}
		return err
	}
	disc.Deactivate()
	return d.discountRepo.Update(ctx, d.pool, disc)
}
