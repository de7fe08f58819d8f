//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"minimarket-backoffice/internal/domain/cart"
	"minimarket-backoffice/internal/usecase/commands"
	repomock "minimarket-backoffice/tests/mock/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stockCommandsFixture struct {
	productRepo *repomock.MockProductRepository
	cartRepo    *repomock.MockCartRepository
	commands    commands.StockCommands
}

func newStockCommandsFixture(t *testing.T) *stockCommandsFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &stockCommandsFixture{
		productRepo: repomock.NewMockProductRepository(ctrl),
		cartRepo:    repomock.NewMockCartRepository(ctrl),
	}
	f.commands = commands.NewStockCommands(f.productRepo, f.cartRepo, nil)
	return f
}

func TestStockCommands_HasSufficientStock(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	cases := []struct {
		name   string
		stocks map[uuid.UUID]int32
		qty    int32
		want   bool
	}{
		{name: "enough stock", stocks: map[uuid.UUID]int32{productID: 10}, qty: 10, want: true},
		{name: "not enough stock", stocks: map[uuid.UUID]int32{productID: 3}, qty: 4, want: false},
		{name: "missing product reads as no", stocks: map[uuid.UUID]int32{}, qty: 1, want: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newStockCommandsFixture(t)
			f.productRepo.EXPECT().StockByIDs(gomock.Any(), gomock.Any(), []uuid.UUID{productID}).
				Return(c.stocks, nil)

			got, err := f.commands.HasSufficientStock(ctx, productID, c.qty)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestStockCommands_ValidateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch has no shortages and skips the lookup", func(t *testing.T) {
		f := newStockCommandsFixture(t)

		short, err := f.commands.ValidateBatch(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, short)
	})

	t.Run("satisfiable batch returns an empty map", func(t *testing.T) {
		f := newStockCommandsFixture(t)
		productID := uuid.New()
		f.productRepo.EXPECT().StockByIDs(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(map[uuid.UUID]int32{productID: 5}, nil)

		short, err := f.commands.ValidateBatch(ctx, []commands.SaleLine{{ProductID: productID, Quantity: 5}})
		require.NoError(t, err)
		assert.Empty(t, short)
	})

	t.Run("duplicate lines for one product are summed before checking", func(t *testing.T) {
		f := newStockCommandsFixture(t)
		productID := uuid.New()
		f.productRepo.EXPECT().StockByIDs(gomock.Any(), gomock.Any(), []uuid.UUID{productID}).
			Return(map[uuid.UUID]int32{productID: 5}, nil)

		short, err := f.commands.ValidateBatch(ctx, []commands.SaleLine{
			{ProductID: productID, Quantity: 3},
			{ProductID: productID, Quantity: 3},
		})
		require.NoError(t, err)
		require.Len(t, short, 1)
		assert.Equal(t, int32(5), short[productID])
	})

	t.Run("only the insufficient products are reported", func(t *testing.T) {
		f := newStockCommandsFixture(t)
		okID := uuid.New()
		shortID := uuid.New()
		missingID := uuid.New()
		f.productRepo.EXPECT().StockByIDs(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(map[uuid.UUID]int32{okID: 10, shortID: 2}, nil)

		short, err := f.commands.ValidateBatch(ctx, []commands.SaleLine{
			{ProductID: okID, Quantity: 1},
			{ProductID: shortID, Quantity: 3},
			{ProductID: missingID, Quantity: 1},
		})
		require.NoError(t, err)
		want := commands.Shortages{shortID: 2, missingID: 0}
		assert.Empty(t, cmp.Diff(want, short))
	})
}

func TestStockCommands_ValidateCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	addedAt := time.Now()

	t.Run("validates the user's current cart lines", func(t *testing.T) {
		f := newStockCommandsFixture(t)
		productID := uuid.New()
		f.cartRepo.EXPECT().FindByUser(gomock.Any(), gomock.Any(), userID).
			Return([]*cart.Line{cart.Reconstruct(userID, productID, 4, addedAt)}, nil)
		f.productRepo.EXPECT().StockByIDs(gomock.Any(), gomock.Any(), []uuid.UUID{productID}).
			Return(map[uuid.UUID]int32{productID: 2}, nil)

		short, err := f.commands.ValidateCart(ctx, userID)
		require.NoError(t, err)
		require.Len(t, short, 1)
		assert.Equal(t, int32(2), short[productID])
	})

	t.Run("empty cart validates clean", func(t *testing.T) {
		f := newStockCommandsFixture(t)
		f.cartRepo.EXPECT().FindByUser(gomock.Any(), gomock.Any(), userID).Return(nil, nil)

		short, err := f.commands.ValidateCart(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, short)
	})
}

func TestStockCommands_CommitSale_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an empty sale", func(t *testing.T) {
		f := newStockCommandsFixture(t)

		err := f.commands.CommitSale(ctx, nil)
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantities before opening a transaction", func(t *testing.T) {
		f := newStockCommandsFixture(t)

		err := f.commands.CommitSale(ctx, []commands.SaleLine{{ProductID: uuid.New(), Quantity: 0}})
		require.Error(t, err)
	})
}
