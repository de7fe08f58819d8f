package commands

import (
	"context"
	"sort"

	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SaleLine is one (product, quantity) pair of a sale request.
type SaleLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

// Shortages maps each insufficient product to the stock actually available.
// An empty map means the whole batch can be satisfied.
type Shortages map[uuid.UUID]int32

type StockCommands interface {
	HasSufficientStock(ctx context.Context, productID uuid.UUID, qty int32) (bool, error)
	ValidateBatch(ctx context.Context, lines []SaleLine) (Shortages, error)
	ValidateCart(ctx context.Context, userID uuid.UUID) (Shortages, error)
	CommitSale(ctx context.Context, lines []SaleLine) error
}

type stockCommandsImpl struct {
	productRepo ProductRepository
	cartRepo    CartRepository
	pool        *pgxpool.Pool
}

func NewStockCommands(productRepo ProductRepository, cartRepo CartRepository, pool *pgxpool.Pool) StockCommands {
	return &stockCommandsImpl{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		pool:        pool,
	}
}

// HasSufficientStock answers whether qty units of the product can be sold.
// A missing product reads as "no", not as an error.
func (s *stockCommandsImpl) HasSufficientStock(ctx context.Context, productID uuid.UUID, qty int32) (bool, error) {
	stocks, err := s.productRepo.StockByIDs(ctx, s.pool, []uuid.UUID{productID})
	if err != nil {
		return false, err
	}
	available, ok := stocks[productID]
	if !ok {
		return false, nil
	}
	return qty <= available, nil
}

// ValidateBatch returns only the insufficient entries; duplicate lines for
// the same product are summed before checking.
func (s *stockCommandsImpl) ValidateBatch(ctx context.Context, lines []SaleLine) (Shortages, error) {
	if len(lines) == 0 {
		return Shortages{}, nil
	}

	wanted := aggregateQuantities(lines)
	ids := sortedProductIDs(wanted)

	stocks, err := s.productRepo.StockByIDs(ctx, s.pool, ids)
	if err != nil {
		return nil, err
	}

	return shortagesOf(wanted, stocks), nil
}

// ValidateCart runs the batch validation over a user's current cart lines.
func (s *stockCommandsImpl) ValidateCart(ctx context.Context, userID uuid.UUID) (Shortages, error) {
	cartLines, err := s.cartRepo.FindByUser(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]SaleLine, len(cartLines))
	for i, l := range cartLines {
		lines[i] = SaleLine{ProductID: l.ProductID(), Quantity: l.Quantity()}
	}
	return s.ValidateBatch(ctx, lines)
}

// CommitSale applies the decrement for every line, all or nothing. Product
// rows are locked in id order inside one transaction, every line is
// re-checked against the locked quantities before the first write, and any
// shortage aborts the whole batch with the shortages map attached. Products
// that reach zero stock are purged from every cart in the same transaction.
func (s *stockCommandsImpl) CommitSale(ctx context.Context, lines []SaleLine) error {
	if len(lines) == 0 {
		return errs.E(errs.KindInvalidArgument, "sale has no lines")
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return errs.Ef(errs.KindInvalidArgument, "non-positive quantity for product %s", l.ProductID)
		}
	}

	wanted := aggregateQuantities(lines)
	ids := sortedProductIDs(wanted)

	_, err := shared.WithDefaultRetry(ctx, s.pool, func(tx db.DBTX) (struct{}, error) {
		locked, err := s.productRepo.LockStockForUpdate(ctx, tx, ids)
		if err != nil {
			return struct{}{}, err
		}

		if short := shortagesOf(wanted, locked); len(short) > 0 {
			return struct{}{}, errs.WithDetails(errs.KindInsufficientStock, "insufficient stock", short)
		}

		for _, id := range ids {
			remaining, err := s.productRepo.DecrementStock(ctx, tx, id, wanted[id])
			if err != nil {
				return struct{}{}, err
			}
			if remaining == 0 {
				if err := s.cartRepo.PurgeProduct(ctx, tx, id); err != nil {
					return struct{}{}, err
				}
			}
		}
		return struct{}{}, nil
	})
	return err
}

func aggregateQuantities(lines []SaleLine) map[uuid.UUID]int32 {
	wanted := make(map[uuid.UUID]int32, len(lines))
	for _, l := range lines {
		wanted[l.ProductID] += l.Quantity
	}
	return wanted
}

func sortedProductIDs(wanted map[uuid.UUID]int32) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// shortagesOf compares requested quantities against available stock. A
// product absent from stocks does not exist and is reported with zero
// availability.
func shortagesOf(wanted map[uuid.UUID]int32, stocks map[uuid.UUID]int32) Shortages {
	short := make(Shortages)
	for id, qty := range wanted {
		available, ok := stocks[id]
		if !ok {
			short[id] = 0
			continue
		}
		if qty > available {
			short[id] = available
		}
	}
	return short
}
