//go:build unit

package product_test

import (
	"testing"

	"minimarket-backoffice/internal/domain/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		p, err := product.NewProduct(nil, "Inca Kola 500ml", decimal.RequireFromString("3.50"), 24)
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.NotEqual(t, uuid.Nil, p.ID())
		assert.Equal(t, "Inca Kola 500ml", p.Name())
		assert.Equal(t, int32(24), p.Stock())
		assert.True(t, p.IsActive())
	})

	t.Run("explicit id is kept", func(t *testing.T) {
		id := uuid.New()
		p, err := product.NewProduct(&id, "Galletas", decimal.NewFromInt(2), 10)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID())
	})

	cases := []struct {
		name  string
		pname string
		price decimal.Decimal
		stock int32
		errIs error
	}{
		{name: "empty name", pname: "", price: decimal.NewFromInt(1), stock: 1, errIs: product.ErrEmptyName},
		{name: "negative price", pname: "x", price: decimal.NewFromInt(-1), stock: 1, errIs: product.ErrNegativePrice},
		{name: "negative stock", pname: "x", price: decimal.NewFromInt(1), stock: -1, errIs: product.ErrNegativeStock},
		{name: "zero stock is valid", pname: "x", price: decimal.NewFromInt(1), stock: 0},
		{name: "zero price is valid", pname: "x", price: decimal.Zero, stock: 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := product.NewProduct(nil, c.pname, c.price, c.stock)
			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, p)
			} else {
				require.Nil(t, p)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestProduct_HasSufficientStock(t *testing.T) {
	p, err := product.NewProduct(nil, "Arroz 1kg", decimal.NewFromInt(4), 5)
	require.NoError(t, err)

	assert.True(t, p.HasSufficientStock(5))
	assert.True(t, p.HasSufficientStock(1))
	assert.False(t, p.HasSufficientStock(6))
}

func TestProduct_StatusFlips(t *testing.T) {
	p, err := product.NewProduct(nil, "Leche", decimal.NewFromInt(5), 3)
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive())
	assert.Equal(t, product.StatusInactive, p.Status())

	p.Activate()
	assert.True(t, p.IsActive())
}

func TestProduct_Mutations(t *testing.T) {
	p, err := product.NewProduct(nil, "Pan", decimal.NewFromInt(1), 10)
	require.NoError(t, err)

	require.NoError(t, p.Rename("Pan integral"))
	assert.Equal(t, "Pan integral", p.Name())
	require.ErrorIs(t, p.Rename(""), product.ErrEmptyName)

	require.NoError(t, p.ChangePrice(decimal.RequireFromString("1.20")))
	require.ErrorIs(t, p.ChangePrice(decimal.NewFromInt(-1)), product.ErrNegativePrice)

	require.NoError(t, p.ChangeStock(0))
	require.ErrorIs(t, p.ChangeStock(-1), product.ErrNegativeStock)
}
