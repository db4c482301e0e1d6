package ordering

import (
	"context"
	"testing"

	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/party"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/cosechaencope/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderingFixture struct {
	checkout    *CheckoutService
	fulfillment *FulfillmentService
	clientRepo  *fakeClientRepo
	itemRepo    *fakeItemRepo
	cartRepo    *fakeCartRepo
	orderRepo   *fakeOrderRepo
	foRepo      *fakeFulfillmentRepo
	userID      uuid.UUID
	client      *party.Client
}

func newOrderingFixture(t *testing.T) *orderingFixture {
	t.Helper()
	clientRepo := newFakeClientRepo()
	itemRepo := newFakeItemRepo()
	cartRepo := newFakeCartRepo()
	orderRepo := newFakeOrderRepo()
	foRepo := newFakeFulfillmentRepo()

	userID := uuid.New()
	client, err := party.NewClient(userID, "Jorge Ruiz", "jorge@example.com")
	require.NoError(t, err)
	require.NoError(t, clientRepo.Save(context.Background(), client))

	scope := NewNoOpTransactionScope(cartRepo, itemRepo, clientRepo, orderRepo, foRepo)
	return &orderingFixture{
		checkout:    NewCheckoutService(scope),
		fulfillment: NewFulfillmentService(scope),
		clientRepo:  clientRepo,
		itemRepo:    itemRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		foRepo:      foRepo,
		userID:      userID,
		client:      client,
	}
}

func (f *orderingFixture) addItem(t *testing.T, name string, price float64, stock int, producerID uuid.UUID) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(name, decimal.NewFromFloat(price), stock, producerID, uuid.New())
	require.NoError(t, err)
	item.ClearDomainEvents()
	require.NoError(t, f.itemRepo.Save(context.Background(), item))
	return item
}

// fillCart puts items in the client's cart the way the cart service
// would: reserve stock, add the line, persist both.
func (f *orderingFixture) fillCart(t *testing.T, entries map[*catalog.Item]int) *shopping.Cart {
	t.Helper()
	ctx := context.Background()
	cart, err := f.cartRepo.GetOrCreateForClient(ctx, f.client.ID)
	require.NoError(t, err)

	for item, qty := range entries {
		stored, err := f.itemRepo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		require.NoError(t, stored.Reserve(qty))
		require.NoError(t, cart.AddItem(stored, qty))
		require.NoError(t, f.itemRepo.SaveWithLock(ctx, stored))
	}
	require.NoError(t, f.cartRepo.Save(ctx, cart))
	return cart
}

func (f *orderingFixture) stockOf(t *testing.T, itemID uuid.UUID) int {
	t.Helper()
	item, err := f.itemRepo.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Stock
}

func TestCheckoutSnapshotsCart(t *testing.T) {
	f := newOrderingFixture(t)
	item := f.addItem(t, "Tomates", 2.00, 10, uuid.New())
	f.fillCart(t, map[*catalog.Item]int{item: 3})

	order, err := f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, f.client.ID, order.ClientID)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 3, order.Lines[0].Quantity)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromFloat(6.00)))
	assert.True(t, order.TaxAmount.Equal(decimal.NewFromFloat(1.26)))
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(7.26)))
}

func TestCheckoutPreservesReservedStock(t *testing.T) {
	f := newOrderingFixture(t)
	item := f.addItem(t, "Miel", 6.00, 8, uuid.New())
	f.fillCart(t, map[*catalog.Item]int{item: 5})
	require.Equal(t, 3, f.stockOf(t, item.ID))

	_, err := f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	// checkout must not release the reservation back to the shelf
	assert.Equal(t, 3, f.stockOf(t, item.ID))
}

func TestCheckoutFinalizesCart(t *testing.T) {
	f := newOrderingFixture(t)
	item := f.addItem(t, "Pan", 1.50, 10, uuid.New())
	f.fillCart(t, map[*catalog.Item]int{item: 2})

	_, err := f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "cash"})
	require.NoError(t, err)

	cart, err := f.cartRepo.FindByClient(context.Background(), f.client.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.True(t, cart.Finalized)
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total.IsZero())
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderingFixture(t)
	_, err := f.cartRepo.GetOrCreateForClient(context.Background(), f.client.ID)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "card"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
}

func TestCheckoutNoCart(t *testing.T) {
	f := newOrderingFixture(t)

	_, err := f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "card"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCheckoutUnknownClient(t *testing.T) {
	f := newOrderingFixture(t)

	_, err := f.checkout.Checkout(context.Background(), uuid.New(), CheckoutRequest{PaymentMethod: "card"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestGetOrder(t *testing.T) {
	f := newOrderingFixture(t)
	item := f.addItem(t, "Uvas", 2.50, 10, uuid.New())
	f.fillCart(t, map[*catalog.Item]int{item: 2})

	placed, err := f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	got, err := f.checkout.GetOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
	assert.True(t, got.Total.Equal(placed.Total))

	_, err = f.checkout.GetOrder(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestListOrdersForClient(t *testing.T) {
	f := newOrderingFixture(t)
	item := f.addItem(t, "Peras", 1.80, 20, uuid.New())

	f.fillCart(t, map[*catalog.Item]int{item: 2})
	_, err := f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	f.fillCart(t, map[*catalog.Item]int{item: 1})
	_, err = f.checkout.Checkout(context.Background(), f.userID, CheckoutRequest{PaymentMethod: "cash"})
	require.NoError(t, err)

	orders, err := f.checkout.ListOrdersForClient(context.Background(), f.userID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
