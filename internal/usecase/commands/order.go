package commands

import (
	"context"
	"time"

	"minimarket-backoffice/internal/domain/order"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/infra/db"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/config"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/queries"
	"minimarket-backoffice/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const DefaultPaymentMethod = "efectivo"

type OrderCommands interface {
	Checkout(ctx context.Context, userID uuid.UUID, paymentMethod, createdBy string) (*queries.OrderView, error)
	Transition(ctx context.Context, orderID uuid.UUID, next order.State) (order.State, error)
	Cancel(ctx context.Context, orderID uuid.UUID) error
	UpdateLineQuantity(ctx context.Context, orderID, productID uuid.UUID, qty int32) (*queries.OrderView, error)
	ListByState(ctx context.Context, state order.State) ([]*order.Order, error)
}

type orderCommandsImpl struct {
	orderRepo    OrderRepository
	cartRepo     CartRepository
	productRepo  ProductRepository
	discountRepo DiscountRepository
	userRepo     UserRepository
	pool         *pgxpool.Pool
	clock        clock.Clock
	taxRate      decimal.Decimal
}

func NewOrderCommands(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	productRepo ProductRepository,
	discountRepo DiscountRepository,
	userRepo UserRepository,
	pool *pgxpool.Pool,
	clock clock.Clock,
	salesCfg config.SalesConfig,
) (OrderCommands, error) {
	taxRate, err := decimal.NewFromString(salesCfg.TaxRate)
	if err != nil {
		return nil, errs.Wrap(err, "invalid tax rate")
	}
	return &orderCommandsImpl{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		userRepo:     userRepo,
		pool:         pool,
		clock:        clock,
		taxRate:      taxRate,
	}, nil
}

// Checkout turns the user's cart into a new order in one transaction: the
// cart lines are validated against current stock, snapshotted with the
// catalog price and the best vigent discount of the day, totals are
// computed, and the cart is cleared. A user can hold at most one active
// order; the partial unique index on orders backstops the pre-check under
// concurrency.
func (o *orderCommandsImpl) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod, createdBy string) (*queries.OrderView, error) {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	exists, err := o.userRepo.ExistsByID(ctx, o.pool, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.E(errs.KindNotFound, "user not found")
	}

	now := o.clock.Now()
	view, err := shared.WithDefaultRetry(ctx, o.pool, func(tx db.DBTX) (*queries.OrderView, error) {
		return o.checkout(ctx, tx, userID, paymentMethod, createdBy, now)
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (o *orderCommandsImpl) checkout(ctx context.Context, tx db.DBTX, userID uuid.UUID, paymentMethod, createdBy string, now time.Time) (*queries.OrderView, error) {
	active, err := o.orderRepo.FindActiveByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, errs.E(errs.KindConflict, "user already has an active order")
	}

	cartLines, err := o.cartRepo.FindByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartLines) == 0 {
		return nil, errs.E(errs.KindInvalidArgument, "cart is empty")
	}

	ord := order.NewOrder(userID, paymentMethod, createdBy)
	lines := make([]order.Line, 0, len(cartLines))
	names := make(map[uuid.UUID]string, len(cartLines))
	wanted := make(map[uuid.UUID]int32, len(cartLines))
	stocks := make(map[uuid.UUID]int32, len(cartLines))
	for _, cl := range cartLines {
		p, err := o.productRepo.FindByID(ctx, tx, cl.ProductID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Ef(errs.KindInvalidState, "product %s no longer exists", cl.ProductID())
			}
			return nil, err
		}
		if !p.IsActive() {
			return nil, errs.Ef(errs.KindInvalidState, "product %s is inactive", p.Name())
		}
		names[p.ID()] = p.Name()
		wanted[p.ID()] += cl.Quantity()
		stocks[p.ID()] = p.Stock()

		var snapshot *order.DiscountSnapshot
		best, err := o.discountRepo.FindBestVigentForProduct(ctx, tx, p.ID(), now)
		if err != nil {
			return nil, err
		}
		if best != nil {
			snapshot = &order.DiscountSnapshot{ID: best.ID(), Percentage: best.Percentage()}
		}

		line, err := order.NewLine(ord.ID(), p.ID(), cl.Quantity(), p.Price(), snapshot)
		if err != nil {
			return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid cart line")
		}
		lines = append(lines, *line)
	}

	// Availability check against the catalog rows read in this transaction.
	// The decrement itself stays in CommitSale under row locks, so this only
	// keeps an unfulfillable cart from becoming an order.
	if short := shortagesOf(wanted, stocks); len(short) > 0 {
		return nil, errs.WithDetails(errs.KindInsufficientStock, "insufficient stock", short)
	}

	ord.RecomputeTotals(lines, o.taxRate)

	if err := o.orderRepo.Create(ctx, tx, ord, lines); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.E(errs.KindConflict, "user already has an active order")
		}
		return nil, err
	}
	if err := o.cartRepo.Clear(ctx, tx, userID); err != nil {
		return nil, err
	}
	return orderView(ord, lines, names), nil
}

// Transition advances the order to next after validating the edge against
// the workflow table, then persists it with a compare-and-set on the current
// state. A lost CAS means another worker moved the order first.
func (o *orderCommandsImpl) Transition(ctx context.Context, orderID uuid.UUID, next order.State) (order.State, error) {
	return shared.WithDefaultRetry(ctx, o.pool, func(tx db.DBTX) (order.State, error) {
		ord, err := o.findOrder(ctx, tx, orderID)
		if err != nil {
			return "", err
		}
		from := ord.State()
		if err := ord.Transition(next); err != nil {
			return "", transitionErr(err, from, next)
		}
		affected, err := o.orderRepo.UpdateStateCAS(ctx, tx, orderID, from, next)
		if err != nil {
			return "", err
		}
		if affected == 0 {
			return "", errs.E(errs.KindConflict, "order state changed concurrently")
		}
		return next, nil
	})
}

// Cancel moves the order to cancelado from any non-terminal state. Stock is
// never restored on cancellation.
func (o *orderCommandsImpl) Cancel(ctx context.Context, orderID uuid.UUID) error {
	_, err := shared.WithDefaultRetry(ctx, o.pool, func(tx db.DBTX) (struct{}, error) {
		ord, err := o.findOrder(ctx, tx, orderID)
		if err != nil {
			return struct{}{}, err
		}
		from := ord.State()
		if err := ord.Cancel(); err != nil {
			return struct{}{}, transitionErr(err, from, order.StateCanceled)
		}
		affected, err := o.orderRepo.UpdateStateCAS(ctx, tx, orderID, from, order.StateCanceled)
		if err != nil {
			return struct{}{}, err
		}
		if affected == 0 {
			return struct{}{}, errs.E(errs.KindConflict, "order state changed concurrently")
		}
		return struct{}{}, nil
	})
	return err
}

// UpdateLineQuantity changes a line's quantity and recomputes the order
// totals. Only allowed before payment (solicitado or pendiente_pago).
func (o *orderCommandsImpl) UpdateLineQuantity(ctx context.Context, orderID, productID uuid.UUID, qty int32) (*queries.OrderView, error) {
	if qty <= 0 {
		return nil, errs.E(errs.KindInvalidArgument, "quantity must be positive")
	}
	return shared.WithDefaultRetry(ctx, o.pool, func(tx db.DBTX) (*queries.OrderView, error) {
		ord, err := o.findOrder(ctx, tx, orderID)
		if err != nil {
			return nil, err
		}
		if ord.State() != order.StateRequested && ord.State() != order.StatePendingPayment {
			return nil, errs.E(errs.KindInvalidState, "order lines cannot change after payment")
		}

		lines, err := o.orderRepo.FindLines(ctx, tx, orderID)
		if err != nil {
			return nil, err
		}
		var target *order.Line
		for i := range lines {
			if lines[i].ProductID() == productID {
				target = &lines[i]
				break
			}
		}
		if target == nil {
			return nil, errs.E(errs.KindNotFound, "order line not found")
		}
		if err := target.SetQuantity(qty); err != nil {
			return nil, errs.WrapKind(err, errs.KindInvalidArgument, "invalid quantity")
		}
		if err := o.orderRepo.UpdateLine(ctx, tx, target); err != nil {
			return nil, err
		}

		ord.RecomputeTotals(lines, o.taxRate)
		if err := o.orderRepo.UpdateTotals(ctx, tx, ord); err != nil {
			return nil, err
		}
		return orderView(ord, lines, nil), nil
	})
}

// ListByState is the lookup the periodic maintenance collaborator uses to
// find candidates for cancellation; the staleness policy lives with the
// caller.
func (o *orderCommandsImpl) ListByState(ctx context.Context, state order.State) ([]*order.Order, error) {
	if !state.IsValid() {
		return nil, errs.Ef(errs.KindInvalidArgument, "unknown order state %q", state)
	}
	return o.orderRepo.FindByState(ctx, o.pool, state)
}

func (o *orderCommandsImpl) findOrder(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*order.Order, error) {
	ord, err := o.orderRepo.FindByID(ctx, tx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.E(errs.KindNotFound, "order not found")
		}
		return nil, err
	}
	return ord, nil
}

func transitionErr(err error, from, to order.State) error {
	switch {
	case errors.Is(err, order.ErrTerminalState):
		return errs.Ef(errs.KindInvalidState, "order is already %s", from)
	case errors.Is(err, order.ErrIllegalTransition):
		return errs.Ef(errs.KindInvalidArgument, "cannot move order from %s to %s", from, to)
	default:
		return err
	}
}

func orderView(ord *order.Order, lines []order.Line, names map[uuid.UUID]string) *queries.OrderView {
	lineViews := make([]queries.OrderLineView, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		lineViews = append(lineViews, queries.OrderLineView{
			ProductID:       l.ProductID(),
			ProductName:     names[l.ProductID()],
			Quantity:        l.Quantity(),
			UnitPrice:       l.UnitPrice(),
			Subtotal:        l.Subtotal(),
			DiscountID:      l.DiscountID(),
			DiscountPercent: l.DiscountPercent(),
		})
	}
	return &queries.OrderView{
		ID:              ord.ID(),
		UserID:          ord.UserID(),
		State:           ord.State().String(),
		PaymentMethod:   ord.PaymentMethod(),
		Subtotal:        ord.Subtotal(),
		DiscountApplied: ord.DiscountApplied(),
		Tax:             ord.Tax(),
		Total:           ord.Total(),
		CreatedBy:       ord.CreatedBy(),
		Lines:           lineViews,
		CreatedAt:       ord.CreatedAt(),
		UpdatedAt:       ord.UpdatedAt(),
	}
}
