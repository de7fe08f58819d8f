//go:build unit

package cart_test

import (
	"testing"
	"time"

	"minimarket-backoffice/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	now := time.Now()

	cases := []struct {
		name     string
		quantity int32
		wantErr  bool
	}{
		{name: "positive quantity", quantity: 1},
		{name: "larger quantity", quantity: 12},
		{name: "zero quantity rejected", quantity: 0, wantErr: true},
		{name: "negative quantity rejected", quantity: -3, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			line, err := cart.NewLine(userID, productID, c.quantity, now)
			if c.wantErr {
				require.Nil(t, line)
				require.ErrorIs(t, err, cart.ErrNonPositiveQuantity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, line.UserID())
			assert.Equal(t, productID, line.ProductID())
			assert.Equal(t, c.quantity, line.Quantity())
		})
	}
}

func TestLine_Increment(t *testing.T) {
	line, err := cart.NewLine(uuid.New(), uuid.New(), 2, time.Now())
	require.NoError(t, err)

	require.NoError(t, line.Increment(3))
	assert.Equal(t, int32(5), line.Quantity())

	require.ErrorIs(t, line.Increment(0), cart.ErrNonPositiveQuantity)
	assert.Equal(t, int32(5), line.Quantity())
}

func TestLine_SetQuantity(t *testing.T) {
	line, err := cart.NewLine(uuid.New(), uuid.New(), 2, time.Now())
	require.NoError(t, err)

	require.NoError(t, line.SetQuantity(7))
	assert.Equal(t, int32(7), line.Quantity())

	require.ErrorIs(t, line.SetQuantity(-1), cart.ErrNonPositiveQuantity)
	assert.Equal(t, int32(7), line.Quantity())
}
