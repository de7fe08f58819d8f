//go:build unit

package discount_test

import (
	"testing"
	"time"

	"minimarket-backoffice/internal/domain/discount"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDiscount(t *testing.T) {
	productID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		d, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(10), date(2026, 3, 1), date(2026, 3, 31))
		require.NoError(t, err)
		require.NotNil(t, d)

		assert.NotEqual(t, uuid.Nil, d.ID())
		assert.Equal(t, productID, d.ProductID())
		assert.Equal(t, discount.StatusActive, d.Status())
	})

	t.Run("percentage bounds", func(t *testing.T) {
		cases := []struct {
			name  string
			pct   decimal.Decimal
			errIs error
		}{
			{name: "zero percent is valid", pct: decimal.Zero},
			{name: "hundred percent is valid", pct: decimal.NewFromInt(100)},
			{name: "negative percent", pct: decimal.NewFromInt(-1), errIs: discount.ErrPercentageOutOfRange},
			{name: "above hundred", pct: decimal.NewFromFloat(100.01), errIs: discount.ErrPercentageOutOfRange},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				d, err := discount.NewDiscount(nil, productID, c.pct, date(2026, 3, 1), date(2026, 3, 31))
				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, d)
				} else {
					require.Nil(t, d)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		_, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(10), date(2026, 3, 31), date(2026, 3, 1))
		require.ErrorIs(t, err, discount.ErrInvertedWindow)
	})

	t.Run("single day window is valid", func(t *testing.T) {
		d, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(10), date(2026, 3, 15), date(2026, 3, 15))
		require.NoError(t, err)
		require.NotNil(t, d)
	})

	t.Run("window dates are normalized to calendar days", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
		end := time.Date(2026, 3, 31, 3, 0, 0, 0, time.UTC)
		d, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(10), start, end)
		require.NoError(t, err)

		assert.Equal(t, date(2026, 3, 1), d.StartDate())
		assert.Equal(t, date(2026, 3, 31), d.EndDate())
	})
}

func TestDiscount_IsVigentAt(t *testing.T) {
	productID := uuid.New()
	d, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(20), date(2026, 3, 10), date(2026, 3, 20))
	require.NoError(t, err)

	cases := []struct {
		name   string
		at     time.Time
		vigent bool
	}{
		{name: "day before the window", at: date(2026, 3, 9), vigent: false},
		{name: "first day inclusive", at: date(2026, 3, 10), vigent: true},
		{name: "first day late evening", at: time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), vigent: true},
		{name: "middle of the window", at: date(2026, 3, 15), vigent: true},
		{name: "last day inclusive", at: time.Date(2026, 3, 20, 23, 0, 0, 0, time.UTC), vigent: true},
		{name: "day after the window", at: date(2026, 3, 21), vigent: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.vigent, d.IsVigentAt(c.at))
		})
	}

	t.Run("inactive discount is never vigent", func(t *testing.T) {
		d2, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(20), date(2026, 3, 10), date(2026, 3, 20))
		require.NoError(t, err)
		d2.Deactivate()
		assert.False(t, d2.IsVigentAt(date(2026, 3, 15)))
	})
}

func TestDiscount_Revise(t *testing.T) {
	productID := uuid.New()
	newDiscount := func(t *testing.T) *discount.Discount {
		d, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(10), date(2026, 3, 1), date(2026, 3, 31))
		require.NoError(t, err)
		return d
	}

	t.Run("replaces percentage and window", func(t *testing.T) {
		d := newDiscount(t)
		err := d.Revise(decimal.NewFromInt(25), date(2026, 4, 1), date(2026, 4, 30))
		require.NoError(t, err)

		assert.True(t, d.Percentage().Equal(decimal.NewFromInt(25)))
		assert.Equal(t, date(2026, 4, 1), d.StartDate())
		assert.Equal(t, date(2026, 4, 30), d.EndDate())
	})

	t.Run("same validation as creation", func(t *testing.T) {
		d := newDiscount(t)
		require.ErrorIs(t,
			d.Revise(decimal.NewFromInt(101), date(2026, 4, 1), date(2026, 4, 30)),
			discount.ErrPercentageOutOfRange)
		require.ErrorIs(t,
			d.Revise(decimal.NewFromInt(25), date(2026, 4, 30), date(2026, 4, 1)),
			discount.ErrInvertedWindow)
	})

	t.Run("failed revision leaves the discount untouched", func(t *testing.T) {
		d := newDiscount(t)
		require.Error(t, d.Revise(decimal.NewFromInt(-5), date(2026, 4, 1), date(2026, 4, 30)))

		assert.True(t, d.Percentage().Equal(decimal.NewFromInt(10)))
		assert.Equal(t, date(2026, 3, 1), d.StartDate())
	})
}

func TestApplyPercentage(t *testing.T) {
	cases := []struct {
		name  string
		price string
		pct   string
		want  string
	}{
		{name: "round half up", price: "19.99", pct: "10", want: "17.99"},
		{name: "exact result", price: "5.00", pct: "15", want: "4.25"},
		{name: "odd percentage rounds", price: "3.50", pct: "33", want: "2.35"},
		{name: "zero percent returns price unchanged", price: "7.77", pct: "0", want: "7.77"},
		{name: "hundred percent is free", price: "12.00", pct: "100", want: "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			price := decimal.RequireFromString(c.price)
			pct := decimal.RequireFromString(c.pct)
			got := discount.ApplyPercentage(price, pct)
			assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
				"ApplyPercentage(%s, %s) = %s, want %s", c.price, c.pct, got, c.want)
		})
	}
}

func TestDiscount_Apply(t *testing.T) {
	productID := uuid.New()
	d, err := discount.NewDiscount(nil, productID, decimal.NewFromInt(25), date(2026, 3, 1), date(2026, 3, 31))
	require.NoError(t, err)

	got := d.Apply(decimal.RequireFromString("8.00"))
	assert.True(t, got.Equal(decimal.RequireFromString("6.00")))
}
