//go:build unit

package invoice_test

import (
	"testing"
	"time"

	"minimarket-backoffice/internal/domain/invoice"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    invoice.Kind
		wantErr bool
	}{
		{name: "empty defaults to invoice", raw: "", want: invoice.KindInvoice},
		{name: "invoice", raw: "invoice", want: invoice.KindInvoice},
		{name: "receipt", raw: "receipt", want: invoice.KindReceipt},
		{name: "unknown kind", raw: "boleta", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := invoice.ParseKind(c.raw)
			if c.wantErr {
				require.ErrorIs(t, err, invoice.ErrInvalidKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNewInvoice(t *testing.T) {
	orderID := uuid.New()
	issuedAt := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		inv, err := invoice.NewInvoice(orderID, invoice.KindReceipt, decimal.RequireFromString("41.35"), issuedAt)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, inv.ID())
		assert.Equal(t, orderID, inv.OrderID())
		assert.Equal(t, invoice.KindReceipt, inv.Kind())
		assert.True(t, inv.Total().Equal(decimal.RequireFromString("41.35")))
		assert.Equal(t, issuedAt, inv.IssuedAt())
	})

	t.Run("zero total is valid", func(t *testing.T) {
		_, err := invoice.NewInvoice(orderID, invoice.KindInvoice, decimal.Zero, issuedAt)
		require.NoError(t, err)
	})

	t.Run("negative total rejected", func(t *testing.T) {
		inv, err := invoice.NewInvoice(orderID, invoice.KindInvoice, decimal.NewFromInt(-1), issuedAt)
		require.Nil(t, inv)
		require.ErrorIs(t, err, invoice.ErrNegativeTotal)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		inv, err := invoice.NewInvoice(orderID, invoice.Kind("nota"), decimal.NewFromInt(1), issuedAt)
		require.Nil(t, inv)
		require.ErrorIs(t, err, invoice.ErrInvalidKind)
	})
}
