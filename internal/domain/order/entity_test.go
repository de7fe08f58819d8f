//go:build unit

package order_test

import (
	"testing"

	"minimarket-backoffice/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, state order.State) *order.Order {
	t.Helper()
	o := order.NewOrder(uuid.New(), "efectivo", "cashier-1")
	switch state {
	case order.StateRequested:
	case order.StatePendingPayment:
		require.NoError(t, o.Transition(order.StatePendingPayment))
	case order.StatePaid:
		require.NoError(t, o.Transition(order.StatePendingPayment))
		require.NoError(t, o.Transition(order.StatePaid))
	case order.StateCompleted:
		require.NoError(t, o.Transition(order.StatePendingPayment))
		require.NoError(t, o.Transition(order.StatePaid))
		require.NoError(t, o.Transition(order.StateCompleted))
	case order.StateCanceled:
		require.NoError(t, o.Cancel())
	}
	return o
}

func TestOrder_Transition(t *testing.T) {
	t.Run("new order starts requested with zero totals", func(t *testing.T) {
		o := order.NewOrder(uuid.New(), "efectivo", "cashier-1")
		assert.Equal(t, order.StateRequested, o.State())
		assert.True(t, o.Subtotal().IsZero())
		assert.True(t, o.Total().IsZero())
		assert.True(t, o.IsActive())
	})

	cases := []struct {
		name  string
		from  order.State
		to    order.State
		errIs error
	}{
		{name: "requested to pending payment", from: order.StateRequested, to: order.StatePendingPayment},
		{name: "requested to canceled", from: order.StateRequested, to: order.StateCanceled},
		{name: "pending payment to paid", from: order.StatePendingPayment, to: order.StatePaid},
		{name: "pending payment to canceled", from: order.StatePendingPayment, to: order.StateCanceled},
		{name: "paid to completed", from: order.StatePaid, to: order.StateCompleted},
		{name: "paid to canceled", from: order.StatePaid, to: order.StateCanceled},
		{name: "requested cannot skip to paid", from: order.StateRequested, to: order.StatePaid, errIs: order.ErrIllegalTransition},
		{name: "requested cannot skip to completed", from: order.StateRequested, to: order.StateCompleted, errIs: order.ErrIllegalTransition},
		{name: "pending payment cannot go back to requested", from: order.StatePendingPayment, to: order.StateRequested, errIs: order.ErrIllegalTransition},
		{name: "paid cannot go back to pending payment", from: order.StatePaid, to: order.StatePendingPayment, errIs: order.ErrIllegalTransition},
		{name: "completed is terminal", from: order.StateCompleted, to: order.StateCanceled, errIs: order.ErrTerminalState},
		{name: "canceled is terminal", from: order.StateCanceled, to: order.StateRequested, errIs: order.ErrTerminalState},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := newTestOrder(t, c.from)
			err := o.Transition(c.to)
			if c.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, c.to, o.State())
			} else {
				require.ErrorIs(t, err, c.errIs)
				assert.Equal(t, c.from, o.State())
			}
		})
	}
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancel from any active state", func(t *testing.T) {
		for _, from := range []order.State{order.StateRequested, order.StatePendingPayment, order.StatePaid} {
			o := newTestOrder(t, from)
			require.NoError(t, o.Cancel())
			assert.Equal(t, order.StateCanceled, o.State())
			assert.False(t, o.IsActive())
		}
	})

	t.Run("cancel from terminal state fails", func(t *testing.T) {
		o := newTestOrder(t, order.StateCompleted)
		require.ErrorIs(t, o.Cancel(), order.ErrTerminalState)

		o = newTestOrder(t, order.StateCanceled)
		require.ErrorIs(t, o.Cancel(), order.ErrTerminalState)
	})
}

func TestState_IsTerminal(t *testing.T) {
	assert.False(t, order.StateRequested.IsTerminal())
	assert.False(t, order.StatePendingPayment.IsTerminal())
	assert.False(t, order.StatePaid.IsTerminal())
	assert.True(t, order.StateCompleted.IsTerminal())
	assert.True(t, order.StateCanceled.IsTerminal())
}

func TestParseState(t *testing.T) {
	s, err := order.ParseState("pendiente_pago")
	require.NoError(t, err)
	assert.Equal(t, order.StatePendingPayment, s)

	_, err = order.ParseState("enviado")
	require.Error(t, err)
}

func TestOrder_RecomputeTotals(t *testing.T) {
	taxRate := decimal.RequireFromString("0.19")

	t.Run("lines without discounts", func(t *testing.T) {
		o := order.NewOrder(uuid.New(), "efectivo", "cashier-1")
		l1, err := order.NewLine(o.ID(), uuid.New(), 2, decimal.RequireFromString("10.00"), nil)
		require.NoError(t, err)
		l2, err := order.NewLine(o.ID(), uuid.New(), 1, decimal.RequireFromString("5.50"), nil)
		require.NoError(t, err)

		o.RecomputeTotals([]order.Line{*l1, *l2}, taxRate)

		assert.True(t, o.Subtotal().Equal(decimal.RequireFromString("25.50")), "subtotal = %s", o.Subtotal())
		assert.True(t, o.DiscountApplied().IsZero())
		assert.True(t, o.Tax().Equal(decimal.RequireFromString("4.85")), "tax = %s", o.Tax())
		assert.True(t, o.Total().Equal(decimal.RequireFromString("30.35")), "total = %s", o.Total())
	})

	t.Run("line with discount snapshot", func(t *testing.T) {
		o := order.NewOrder(uuid.New(), "efectivo", "cashier-1")
		snap := &order.DiscountSnapshot{ID: uuid.New(), Percentage: decimal.NewFromInt(10)}
		l1, err := order.NewLine(o.ID(), uuid.New(), 2, decimal.RequireFromString("10.00"), snap)
		require.NoError(t, err)
		l2, err := order.NewLine(o.ID(), uuid.New(), 1, decimal.RequireFromString("5.50"), nil)
		require.NoError(t, err)

		o.RecomputeTotals([]order.Line{*l1, *l2}, taxRate)

		// subtotal keeps raw prices; the discount lands in discountApplied
		assert.True(t, o.Subtotal().Equal(decimal.RequireFromString("25.50")))
		assert.True(t, o.DiscountApplied().Equal(decimal.RequireFromString("2.00")), "discount = %s", o.DiscountApplied())
		assert.True(t, o.Tax().Equal(decimal.RequireFromString("4.85")))
		assert.True(t, o.Total().Equal(decimal.RequireFromString("28.35")), "total = %s", o.Total())
	})

	t.Run("no lines resets totals to zero", func(t *testing.T) {
		o := order.NewOrder(uuid.New(), "efectivo", "cashier-1")
		o.RecomputeTotals(nil, taxRate)
		assert.True(t, o.Subtotal().IsZero())
		assert.True(t, o.Total().IsZero())
	})
}

func TestLine(t *testing.T) {
	t.Run("subtotal follows quantity and price", func(t *testing.T) {
		l, err := order.NewLine(uuid.New(), uuid.New(), 3, decimal.RequireFromString("4.20"), nil)
		require.NoError(t, err)
		assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("12.60")))

		require.NoError(t, l.SetQuantity(5))
		assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("21.00")))
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		_, err := order.NewLine(uuid.New(), uuid.New(), 0, decimal.NewFromInt(1), nil)
		require.Error(t, err)

		l, err := order.NewLine(uuid.New(), uuid.New(), 1, decimal.NewFromInt(1), nil)
		require.NoError(t, err)
		require.Error(t, l.SetQuantity(-2))
	})

	t.Run("discount amount uses the percentage snapshot", func(t *testing.T) {
		snap := &order.DiscountSnapshot{ID: uuid.New(), Percentage: decimal.NewFromInt(15)}
		l, err := order.NewLine(uuid.New(), uuid.New(), 2, decimal.RequireFromString("9.99"), snap)
		require.NoError(t, err)

		// 19.98 * 15% = 2.997 -> 3.00
		assert.True(t, l.DiscountAmount().Equal(decimal.RequireFromString("3.00")), "discount = %s", l.DiscountAmount())
	})

	t.Run("no snapshot means no discount", func(t *testing.T) {
		l, err := order.NewLine(uuid.New(), uuid.New(), 2, decimal.RequireFromString("9.99"), nil)
		require.NoError(t, err)
		assert.True(t, l.DiscountAmount().IsZero())
	})
}
