package commands

import (
	"context"

	"minimarket-backoffice/internal/domain/cart"
	"minimarket-backoffice/internal/domain/product"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func decimalFromInt32(n int32) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

type CartCommands interface {
	AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, qty int32) (*queries.CartLineView, error)
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int32) (*queries.CartLineView, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	ListAllGroupedByUser(ctx context.Context) (map[uuid.UUID][]*cart.Line, error)
}

type cartCommandsImpl struct {
	cartRepo     CartRepository
	productRepo  ProductRepository
	discountRepo DiscountRepository
	userRepo     UserRepository
	pool         *pgxpool.Pool
	clock        clock.Clock
}

func NewCartCommands(
	cartRepo CartRepository,
	productRepo ProductRepository,
	discountRepo DiscountRepository,
	userRepo UserRepository,
	pool *pgxpool.Pool,
	clock clock.Clock,
) CartCommands {
	return &cartCommandsImpl{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		userRepo:     userRepo,
		pool:         pool,
		clock:        clock,
	}
}

// AddOrIncrement creates the (user, product) line or bumps its quantity.
// Stock is deliberately not checked here: shared inventory makes add-time
// checks stale by the time of checkout, where the real validation happens.
func (c *cartCommandsImpl) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, qty int32) (*queries.CartLineView, error) {
	if qty <= 0 {
		return nil, errs.E(errs.KindInvalidArgument, "quantity must be positive")
	}

	p, err := c.validateUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	line, err := c.cartRepo.UpsertIncrement(ctx, c.pool, userID, productID, qty, c.clock.Now())
	if err != nil {
		return nil, err
	}

	return c.lineView(ctx, line, p)
}

func (c *cartCommandsImpl) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int32) (*queries.CartLineView, error) {
	if qty <= 0 {
		return nil, errs.E(errs.KindInvalidArgument, "quantity must be positive")
	}

	p, err := c.productRepo.FindByID(ctx, c.pool, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "product not found")
		}
		return nil, err
	}

	line, err := c.cartRepo.SetQuantity(ctx, c.pool, userID, productID, qty)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "cart line not found")
		}
		return nil, err
	}

	return c.lineView(ctx, line, p)
}

func (c *cartCommandsImpl) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	removed, err := c.cartRepo.Delete(ctx, c.pool, userID, productID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return errs.E(errs.KindNotFound, "cart line not found")
	}
	return nil
}

// Clear empties the user's cart. Clearing an already empty cart is a no-op.
func (c *cartCommandsImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	return c.cartRepo.Clear(ctx, c.pool, userID)
}

// ListAllGroupedByUser hands every cart to the periodic maintenance
// collaborator, which decides what counts as abandoned.
func (c *cartCommandsImpl) ListAllGroupedByUser(ctx context.Context) (map[uuid.UUID][]*cart.Line, error) {
	return c.cartRepo.FindAllGroupedByUser(ctx, c.pool)
}

func (c *cartCommandsImpl) validateUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*product.Product, error) {
	exists, err := c.userRepo.ExistsByID(ctx, c.pool, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.E(errs.KindNotFound, "user not found")
	}

	p, err := c.productRepo.FindByID(ctx, c.pool, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "product not found")
		}
		return nil, err
	}
	if !p.IsActive() {
		return nil, errs.E(errs.KindInvalidState, "product is inactive")
	}
	return p, nil
}

func (c *cartCommandsImpl) lineView(ctx context.Context, line *cart.Line, p *product.Product) (*queries.CartLineView, error) {
	best, err := c.discountRepo.FindBestVigentForProduct(ctx, c.pool, p.ID(), c.clock.Now())
	if err != nil {
		return nil, err
	}

	view := &queries.CartLineView{
		UserID:             line.UserID(),
		ProductID:          line.ProductID(),
		ProductName:        p.Name(),
		Quantity:           line.Quantity(),
		UnitPrice:          p.Price(),
		EffectiveUnitPrice: p.Price(),
		AddedAt:            line.AddedAt(),
	}
	if best != nil {
		id := best.ID()
		pct := best.Percentage()
		view.DiscountID = &id
		view.DiscountPercent = &pct
		view.EffectiveUnitPrice = best.Apply(p.Price())
	}
	qty := decimalFromInt32(line.Quantity())
	view.LineTotal = view.UnitPrice.Mul(qty)
	view.EffectiveLineTotal = view.EffectiveUnitPrice.Mul(qty)
	return view, nil
}
