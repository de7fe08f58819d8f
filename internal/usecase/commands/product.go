package commands

import (
	"context"

	"minimarket-backoffice/internal/domain/product"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int32
}

type UpdateProductInput struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int32
}

type ProductCommands interface {
	Create(ctx context.Context, input CreateProductInput) (*product.Product, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*product.Product, error)
	Deactivate(ctx context.Context, productID uuid.UUID) error
	Activate(ctx context.Context, productID uuid.UUID) error
}

type productCommandsImpl struct {
	productRepo ProductRepository
	cartRepo    CartRepository
	pool        *pgxpool.Pool
}

func NewProductCommands(productRepo ProductRepository, cartRepo CartRepository, pool *pgxpool.Pool) ProductCommands {
	return &productCommandsImpl{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		pool:        pool,
	}
}

func (p *productCommandsImpl) Create(ctx context.Context, input CreateProductInput) (*product.Product, error) {
	prod, err := product.NewProduct(nil, input.Name, input.Price, input.Stock)
	if err != nil {
		return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid product")
	}
	if err := p.productRepo.Create(ctx, p.pool, prod); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.E(errs.KindConflict, "product name already exists")
		}
		return nil, err
	}
	return prod, nil
}

func (p *productCommandsImpl) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*product.Product, error) {
	prod, err := p.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := prod.Rename(*input.Name); err != nil {
			return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid product name")
		}
	}
	if input.Price != nil {
		if err := prod.ChangePrice(*input.Price); err != nil {
			return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid product price")
		}
	}
	if input.Stock != nil {
		if err := prod.ChangeStock(*input.Stock); err != nil {
			return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid product stock")
		}
	}

	if err := p.productRepo.Update(ctx, p.pool, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

// Deactivate retires a product from sale and drops it from every cart so no
// checkout can pick it up afterward.
func (p *productCommandsImpl) Deactivate(ctx context.Context, productID uuid.UUID) error {
	prod, err := p.findProduct(ctx, productID)
	if err != nil {
		return err
	}
	prod.Deactivate()
	if err := p.productRepo.Update(ctx, p.pool, prod); err != nil {
		return err
	}
	return p.cartRepo.PurgeProduct(ctx, p.pool, productID)
}

func (p *productCommandsImpl) Activate(ctx context.Context, productID uuid.UUID) error {
	prod, err := p.findProduct(ctx, productID)
	if err != nil {
		return err
	}
	prod.Activate()
	return p.productRepo.Update(ctx, p.pool, prod)
}

func (p *productCommandsImpl) findProduct(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	prod, err := p.productRepo.FindByID(ctx, p.pool, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "product not found")
		}
		return nil, err
	}
	return prod, nil
}
