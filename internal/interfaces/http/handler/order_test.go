package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	orderingapp "github.com/cosechaencope/backend/internal/application/ordering"
	shoppingapp "github.com/cosechaencope/backend/internal/application/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOrder(t *testing.T, data any) orderingapp.OrderResponse {
	t.Helper()
	var order orderingapp.OrderResponse
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &order))
	return order
}

func TestCheckoutCreatesOrder(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)
	item := env.seedItem(t, "Conservas", 6.00, 8)

	env.do(t, userID, http.MethodPost, "/cart/items",
		shoppingapp.AddToCartRequest{ItemID: item.ID, Quantity: 2})

	w := env.do(t, userID, http.MethodPost, "/orders",
		orderingapp.CheckoutRequest{PaymentMethod: "card"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	order := decodeOrder(t, resp.Data)
	assert.Equal(t, "PENDING", order.Status)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromFloat(12.00)))

	// Checkout consumes the cart
	cartW := env.do(t, userID, http.MethodGet, "/cart", nil)
	var cart shoppingapp.CartResponse
	cartResp := decodeResponse(t, cartW)
	raw, _ := json.Marshal(cartResp.Data)
	require.NoError(t, json.Unmarshal(raw, &cart))
	assert.Empty(t, cart.Lines)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)
	item := env.seedItem(t, "Castañas", 4.50, 3)

	// Add and remove the only line so a live but empty cart remains
	env.do(t, userID, http.MethodPost, "/cart/items",
		shoppingapp.AddToCartRequest{ItemID: item.ID, Quantity: 1})
	env.do(t, userID, http.MethodDelete, "/cart/items/"+item.ID.String(), nil)

	w := env.do(t, userID, http.MethodPost, "/orders",
		orderingapp.CheckoutRequest{PaymentMethod: "card"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_CART", resp.Error.Code)
}

func TestCheckoutWithoutCartNotFound(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)

	w := env.do(t, userID, http.MethodPost, "/orders",
		orderingapp.CheckoutRequest{PaymentMethod: "card"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderByID(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)
	item := env.seedItem(t, "Mermelada", 4.00, 5)

	env.do(t, userID, http.MethodPost, "/cart/items",
		shoppingapp.AddToCartRequest{ItemID: item.ID, Quantity: 1})
	placed := decodeOrder(t, decodeResponse(t,
		env.do(t, userID, http.MethodPost, "/orders", orderingapp.CheckoutRequest{PaymentMethod: "transfer"})).Data)

	w := env.do(t, userID, http.MethodGet, "/orders/"+placed.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	fetched := decodeOrder(t, decodeResponse(t, w).Data)
	assert.Equal(t, placed.ID, fetched.ID)
	assert.Equal(t, "transfer", fetched.PaymentMethod)
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, uuid.Nil, http.MethodGet, "/orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersForClient(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)
	item := env.seedItem(t, "Nueces", 7.00, 20)

	for i := 0; i < 2; i++ {
		env.do(t, userID, http.MethodPost, "/cart/items",
			shoppingapp.AddToCartRequest{ItemID: item.ID, Quantity: 1})
		env.do(t, userID, http.MethodPost, "/orders",
			orderingapp.CheckoutRequest{PaymentMethod: "card"})
	}

	w := env.do(t, userID, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	var orders []orderingapp.OrderResponse
	raw, _ := json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(raw, &orders))
	assert.Len(t, orders, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Page)
}

func TestGenerateFulfillments(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)
	itemA := env.seedItem(t, "Tomates", 2.50, 10)
	itemB := env.seedItem(t, "Lechugas", 1.80, 10)

	env.do(t, userID, http.MethodPost, "/cart/items",
		shoppingapp.AddToCartRequest{ItemID: itemA.ID, Quantity: 2})
	env.do(t, userID, http.MethodPost, "/cart/items",
		shoppingapp.AddToCartRequest{ItemID: itemB.ID, Quantity: 3})
	order := decodeOrder(t, decodeResponse(t,
		env.do(t, userID, http.MethodPost, "/orders", orderingapp.CheckoutRequest{PaymentMethod: "card"})).Data)

	w := env.do(t, uuid.Nil, http.MethodPost, "/orders/"+order.ID.String()+"/fulfillments", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var fos []orderingapp.FulfillmentOrderResponse
	resp := decodeResponse(t, w)
	raw, _ := json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(raw, &fos))
	// Each item came from a different producer
	assert.Len(t, fos, 2)

	// Second generation for the same order is rejected
	again := env.do(t, uuid.Nil, http.MethodPost, "/orders/"+order.ID.String()+"/fulfillments", nil)
	assert.Equal(t, http.StatusConflict, again.Code)
}

func TestUpdateFulfillmentStatus(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)
	item := env.seedItem(t, "Huevos", 3.20, 12)

	env.do(t, userID, http.MethodPost, "/cart/items",
		shoppingapp.AddToCartRequest{ItemID: item.ID, Quantity: 2})
	order := decodeOrder(t, decodeResponse(t,
		env.do(t, userID, http.MethodPost, "/orders", orderingapp.CheckoutRequest{PaymentMethod: "card"})).Data)

	var fos []orderingapp.FulfillmentOrderResponse
	genResp := decodeResponse(t, env.do(t, uuid.Nil, http.MethodPost, "/orders/"+order.ID.String()+"/fulfillments", nil))
	raw, _ := json.Marshal(genResp.Data)
	require.NoError(t, json.Unmarshal(raw, &fos))
	require.Len(t, fos, 1)

	w := env.do(t, uuid.Nil, http.MethodPatch, "/fulfillments/"+fos[0].ID.String()+"/status",
		orderingapp.UpdateFulfillmentStatusRequest{Status: "PROCESSING"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fo orderingapp.FulfillmentOrderResponse
	updResp := decodeResponse(t, w)
	raw, _ = json.Marshal(updResp.Data)
	require.NoError(t, json.Unmarshal(raw, &fo))
	assert.Equal(t, "PROCESSING", fo.Status)

	// Moving backwards is not allowed
	bad := env.do(t, uuid.Nil, http.MethodPatch, "/fulfillments/"+fos[0].ID.String()+"/status",
		orderingapp.UpdateFulfillmentStatusRequest{Status: "PENDING"})
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
}

func TestListFulfillmentsForProducer(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedClient(t)
	item := env.seedItem(t, "Calabazas", 2.00, 15)

	env.do(t, userID, http.MethodPost, "/cart/items",
		shoppingapp.AddToCartRequest{ItemID: item.ID, Quantity: 4})
	order := decodeOrder(t, decodeResponse(t,
		env.do(t, userID, http.MethodPost, "/orders", orderingapp.CheckoutRequest{PaymentMethod: "card"})).Data)
	env.do(t, uuid.Nil, http.MethodPost, "/orders/"+order.ID.String()+"/fulfillments", nil)

	w := env.do(t, uuid.Nil, http.MethodGet, "/producers/"+item.ProducerID.String()+"/fulfillments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fos []orderingapp.FulfillmentOrderResponse
	resp := decodeResponse(t, w)
	raw, _ := json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(raw, &fos))
	require.Len(t, fos, 1)
	assert.Equal(t, order.ID, fos[0].OrderID)
}
