//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"minimarket-backoffice/internal/domain/cart"
	"minimarket-backoffice/internal/domain/order"
	"minimarket-backoffice/internal/domain/product"
	"minimarket-backoffice/internal/pkg/clock"
	"minimarket-backoffice/internal/pkg/errs"
	repomock "minimarket-backoffice/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var checkoutNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

// The checkout body runs against mocked ports and a nil DBTX, so these tests
// cover the in-transaction decisions without a database.
type checkoutFixture struct {
	orderRepo    *repomock.MockOrderRepository
	cartRepo     *repomock.MockCartRepository
	productRepo  *repomock.MockProductRepository
	discountRepo *repomock.MockDiscountRepository
	commands     *orderCommandsImpl
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &checkoutFixture{
		orderRepo:    repomock.NewMockOrderRepository(ctrl),
		cartRepo:     repomock.NewMockCartRepository(ctrl),
		productRepo:  repomock.NewMockProductRepository(ctrl),
		discountRepo: repomock.NewMockDiscountRepository(ctrl),
	}
	f.commands = &orderCommandsImpl{
		orderRepo:    f.orderRepo,
		cartRepo:     f.cartRepo,
		productRepo:  f.productRepo,
		discountRepo: f.discountRepo,
		userRepo:     repomock.NewMockUserRepository(ctrl),
		clock:        clock.NewMockClock(checkoutNow),
		taxRate:      decimal.RequireFromString("0.19"),
	}
	return f
}

func stockedProduct(t *testing.T, id uuid.UUID, price string, stock int32) *product.Product {
	t.Helper()
	p, err := product.NewProduct(&id, "Cafe 250g", decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	userID := uuid.New()

	f.orderRepo.EXPECT().FindActiveByUser(gomock.Any(), gomock.Any(), userID).Return(nil, nil)
	f.cartRepo.EXPECT().FindByUser(gomock.Any(), gomock.Any(), userID).Return(nil, nil)

	view, err := f.commands.checkout(context.Background(), nil, userID, DefaultPaymentMethod, "cashier-1", checkoutNow)
	require.Error(t, err)
	require.Nil(t, view)

	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInvalidArgument, kind)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)
	userID := uuid.New()
	productID := uuid.New()

	f.orderRepo.EXPECT().FindActiveByUser(gomock.Any(), gomock.Any(), userID).Return(nil, nil)
	f.cartRepo.EXPECT().FindByUser(gomock.Any(), gomock.Any(), userID).
		Return([]*cart.Line{cart.Reconstruct(userID, productID, 10, checkoutNow)}, nil)
	f.productRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), productID).
		Return(stockedProduct(t, productID, "4.50", 5), nil)
	f.discountRepo.EXPECT().FindBestVigentForProduct(gomock.Any(), gomock.Any(), productID, checkoutNow).Return(nil, nil)

	// No Create and no Clear: the shortage aborts before any write.
	view, err := f.commands.checkout(context.Background(), nil, userID, DefaultPaymentMethod, "cashier-1", checkoutNow)
	require.Error(t, err)
	require.Nil(t, view)

	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInsufficientStock, kind)

	short, ok := errs.DetailsOf(err).(Shortages)
	require.True(t, ok)
	assert.Equal(t, Shortages{productID: 5}, short)
}

func TestCheckout_SnapshotsAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	userID := uuid.New()
	productID := uuid.New()

	f.orderRepo.EXPECT().FindActiveByUser(gomock.Any(), gomock.Any(), userID).Return(nil, nil)
	f.cartRepo.EXPECT().FindByUser(gomock.Any(), gomock.Any(), userID).
		Return([]*cart.Line{cart.Reconstruct(userID, productID, 2, checkoutNow)}, nil)
	f.productRepo.EXPECT().FindByID(gomock.Any(), gomock.Any(), productID).
		Return(stockedProduct(t, productID, "10.00", 5), nil)
	f.discountRepo.EXPECT().FindBestVigentForProduct(gomock.Any(), gomock.Any(), productID, checkoutNow).Return(nil, nil)
	f.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.cartRepo.EXPECT().Clear(gomock.Any(), gomock.Any(), userID).Return(nil)

	view, err := f.commands.checkout(context.Background(), nil, userID, DefaultPaymentMethod, "cashier-1", checkoutNow)
	require.NoError(t, err)
	require.NotNil(t, view)

	assert.Equal(t, order.StateRequested.String(), view.State)
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("20.00")), "subtotal %s", view.Subtotal)
	assert.True(t, view.Tax.Equal(decimal.RequireFromString("3.80")), "tax %s", view.Tax)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("23.80")), "total %s", view.Total)
}
