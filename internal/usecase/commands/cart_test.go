//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"minimarket-backoffice/internal/domain/cart"
	"minimarket-backoffice/internal/domain/discount"
	"minimarket-backoffice/internal/domain/product"
	"minimarket-backoffice/internal/infra"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/commands"
	repomock "minimarket-backoffice/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type cartCommandsFixture struct {
	cartRepo     *repomock.MockCartRepository
	productRepo  *repomock.MockProductRepository
	discountRepo *repomock.MockDiscountRepository
	userRepo     *repomock.MockUserRepository
	commands     commands.CartCommands
}

// The pool is only handed through to the mocked repositories, so these tests
// run without a database.
func newCartCommandsFixture(t *testing.T) *cartCommandsFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &cartCommandsFixture{
		cartRepo:     repomock.NewMockCartRepository(ctrl),
		productRepo:  repomock.NewMockProductRepository(ctrl),
		discountRepo: repomock.NewMockDiscountRepository(ctrl),
		userRepo:     repomock.NewMockUserRepository(ctrl),
	}
	f.commands = commands.NewCartCommands(
		f.cartRepo, f.productRepo, f.discountRepo, f.userRepo, nil, clock.NewMockClock(fixedNow),
	)
	return f
}

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func activeProduct(t *testing.T, price string, stock int32) *product.Product {
	t.Helper()
	p, err := product.NewProduct(nil, "Yogurt 1L", decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func TestCartCommands_AddOrIncrement(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects non-positive quantity before touching storage", func(t *testing.T) {
		f := newCartCommandsFixture(t)

		_, err := f.commands.AddOrIncrement(ctx, userID, uuid.New(), 0)
		assert.True(t, errs.IsKind(err, errs.KindInvalidArgument))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		f.userRepo.EXPECT().ExistsByID(gomock.Any(), gomock.Any(), userID).Return(false, nil)

		_, err := f.commands.AddOrIncrement(ctx, userID, uuid.New(), 1)
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		productID := uuid.New()
		f.userRepo.EXPECT().ExistsByID(gomock.Any(), gomock.Any(), userID).Return(true, nil)
		f.productRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), productID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "product not found"))

		_, err := f.commands.AddOrIncrement(ctx, userID, productID, 1)
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})

	t.Run("inactive product cannot be added", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		p := activeProduct(t, "3.50", 10)
		p.Deactivate()
		f.userRepo.EXPECT().ExistsByID(gomock.Any(), gomock.Any(), userID).Return(true, nil)
		f.productRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), p.ID()).Return(p, nil)

		_, err := f.commands.AddOrIncrement(ctx, userID, p.ID(), 1)
		assert.True(t, errs.IsKind(err, errs.KindInvalidState))
	})

	t.Run("returns the line priced with the best vigent discount", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		p := activeProduct(t, "10.00", 10)
		line := cart.Reconstruct(userID, p.ID(), 3, fixedNow)
		d, err := discount.NewDiscount(nil, p.ID(), decimal.NewFromInt(10), fixedNow, fixedNow.Add(24*time.Hour))
		require.NoError(t, err)

		f.userRepo.EXPECT().ExistsByID(gomock.Any(), gomock.Any(), userID).Return(true, nil)
		f.productRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), p.ID()).Return(p, nil)
		f.cartRepo.EXPECT().UpsertIncrement(gomock.Any(), gomock.Any(), userID, p.ID(), int32(3), fixedNow).
			Return(line, nil)
		f.discountRepo.EXPECT().FindBestVigentForProduct(gomock.Any(), gomock.Any(), p.ID(), fixedNow).
			Return(d, nil)

		view, err := f.commands.AddOrIncrement(ctx, userID, p.ID(), 3)
		require.NoError(t, err)

		assert.Equal(t, int32(3), view.Quantity)
		assert.True(t, view.UnitPrice.Equal(decimal.RequireFromString("10.00")))
		assert.True(t, view.EffectiveUnitPrice.Equal(decimal.RequireFromString("9.00")))
		assert.True(t, view.LineTotal.Equal(decimal.RequireFromString("30.00")))
		assert.True(t, view.EffectiveLineTotal.Equal(decimal.RequireFromString("27.00")))
		require.NotNil(t, view.DiscountPercent)
		assert.True(t, view.DiscountPercent.Equal(decimal.NewFromInt(10)))
	})

	t.Run("line without a vigent discount keeps catalog price", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		p := activeProduct(t, "4.20", 10)
		line := cart.Reconstruct(userID, p.ID(), 2, fixedNow)

		f.userRepo.EXPECT().ExistsByID(gomock.Any(), gomock.Any(), userID).Return(true, nil)
		f.productRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), p.ID()).Return(p, nil)
		f.cartRepo.EXPECT().UpsertIncrement(gomock.Any(), gomock.Any(), userID, p.ID(), int32(2), fixedNow).
			Return(line, nil)
		f.discountRepo.EXPECT().FindBestVigentForProduct(gomock.Any(), gomock.Any(), p.ID(), fixedNow).
			Return(nil, nil)

		view, err := f.commands.AddOrIncrement(ctx, userID, p.ID(), 2)
		require.NoError(t, err)

		assert.Nil(t, view.DiscountID)
		assert.True(t, view.EffectiveUnitPrice.Equal(view.UnitPrice))
		assert.True(t, view.EffectiveLineTotal.Equal(decimal.RequireFromString("8.40")))
	})
}

func TestCartCommands_SetQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		f := newCartCommandsFixture(t)

		_, err := f.commands.SetQuantity(ctx, userID, uuid.New(), -1)
		assert.True(t, errs.IsKind(err, errs.KindInvalidArgument))
	})

	t.Run("missing line is not found", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		p := activeProduct(t, "2.00", 5)

		f.productRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), p.ID()).Return(p, nil)
		f.cartRepo.EXPECT().SetQuantity(gomock.Any(), gomock.Any(), userID, p.ID(), int32(4)).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "cart line not found"))

		_, err := f.commands.SetQuantity(ctx, userID, p.ID(), 4)
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}

func TestCartCommands_Remove(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("removing an absent line is not found", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		f.cartRepo.EXPECT().Delete(gomock.Any(), gomock.Any(), userID, productID).Return(int64(0), nil)

		err := f.commands.Remove(ctx, userID, productID)
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})

	t.Run("removes the line", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		f.cartRepo.EXPECT().Delete(gomock.Any(), gomock.Any(), userID, productID).Return(int64(1), nil)

		require.NoError(t, f.commands.Remove(ctx, userID, productID))
	})
}

func TestCartCommands_Clear(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("clearing an empty cart is a no-op", func(t *testing.T) {
		f := newCartCommandsFixture(t)
		f.cartRepo.EXPECT().Clear(gomock.Any(), gomock.Any(), userID).Return(nil)

		require.NoError(t, f.commands.Clear(ctx, userID))
	})
}
