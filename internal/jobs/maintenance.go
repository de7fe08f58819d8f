package jobs

import (
	"context"
	"log/slog"
	"time"

	"minimarket-backoffice/internal/domain/cart"
	"minimarket-backoffice/internal/domain/order"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/config"
	"minimarket-backoffice/internal/usecase/commands"

	"go.uber.org/fx"
)

// MaintenanceRunner sweeps abandoned carts and stale orders on a fixed
// interval, using only the public cart and order operations. Each sweep is
// independent; a failing sweep logs and waits for the next tick.
type MaintenanceRunner struct {
	cartCommands  commands.CartCommands
	orderCommands commands.OrderCommands
	clock         clock.Clock
	cfg           config.MaintenanceConfig

	cancel context.CancelFunc
	done   chan struct{}
}

func NewMaintenanceRunner(
	cartCommands commands.CartCommands,
	orderCommands commands.OrderCommands,
	clock clock.Clock,
	cfg config.MaintenanceConfig,
) *MaintenanceRunner {
	return &MaintenanceRunner{
		cartCommands:  cartCommands,
		orderCommands: orderCommands,
		clock:         clock,
		cfg:           cfg,
	}
}

func RegisterMaintenanceRunner(lc fx.Lifecycle, runner *MaintenanceRunner) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runner.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return runner.Stop(ctx)
		},
	})
}

func (r *MaintenanceRunner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()

		slog.Info("maintenance runner started",
			"interval", r.cfg.Interval,
			"cart_ttl", r.cfg.CartTTL,
			"stale_order_threshold", r.cfg.StaleOrderThreshold,
		)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep(ctx)
			}
		}
	}()
}

func (r *MaintenanceRunner) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *MaintenanceRunner) sweep(ctx context.Context) {
	r.expireCarts(ctx)
	r.cancelStaleOrders(ctx)
}

// A cart is abandoned when even its newest line predates the TTL cutoff.
func cartExpired(lines []*cart.Line, cutoff time.Time) bool {
	for _, l := range lines {
		if !l.AddedAt().Before(cutoff) {
			return false
		}
	}
	return len(lines) > 0
}

// expireCarts clears every abandoned cart. Failures are per-user: one bad
// cart does not stop the sweep.
func (r *MaintenanceRunner) expireCarts(ctx context.Context) {
	cutoff := r.clock.Now().Add(-r.cfg.CartTTL)

	carts, err := r.cartCommands.ListAllGroupedByUser(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list carts", "error", err)
		return
	}

	cleared := 0
	for userID, lines := range carts {
		if !cartExpired(lines, cutoff) {
			continue
		}
		if err := r.cartCommands.Clear(ctx, userID); err != nil {
			slog.WarnContext(ctx, "failed to clear expired cart", "user_id", userID, "error", err)
			continue
		}
		cleared++
	}
	if cleared > 0 {
		slog.InfoContext(ctx, "expired carts cleared", "count", cleared)
	}
}

// cancelStaleOrders cancels orders that sat in solicitado or pendiente_pago
// past the threshold. Cancellation goes through the regular operation, so a
// concurrently progressed order simply fails its transition and is skipped.
func (r *MaintenanceRunner) cancelStaleOrders(ctx context.Context) {
	cutoff := r.clock.Now().Add(-r.cfg.StaleOrderThreshold)

	canceled := 0
	for _, state := range []order.State{order.StateRequested, order.StatePendingPayment} {
		stale, err := r.orderCommands.ListByState(ctx, state)
		if err != nil {
			slog.ErrorContext(ctx, "failed to list orders", "state", state, "error", err)
			continue
		}
		for _, ord := range stale {
			if !ord.UpdatedAt().Before(cutoff) {
				continue
			}
			if err := r.orderCommands.Cancel(ctx, ord.ID()); err != nil {
				slog.WarnContext(ctx, "failed to cancel stale order", "order_id", ord.ID(), "error", err)
				continue
			}
			canceled++
		}
	}
	if canceled > 0 {
		slog.InfoContext(ctx, "stale orders canceled", "count", canceled)
	}
}
