package ordering

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/ordering"
	"github.com/cosechaencope/backend/internal/domain/party"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/cosechaencope/backend/internal/domain/shopping"
	"github.com/google/uuid"
)

// In-memory repositories for service tests. Reads return copies so
// unsaved mutations stay invisible, like a rolled-back transaction.

type fakeClientRepo struct {
	byUserID map[uuid.UUID]*party.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byUserID: make(map[uuid.UUID]*party.Client)}
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*party.Client, error) {
	for _, c := range r.byUserID {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*party.Client, error) {
	c, ok := r.byUserID[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) FindByEmail(_ context.Context, email string) (*party.Client, error) {
	for _, c := range r.byUserID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) FindAll(_ context.Context, _ shared.Filter) ([]party.Client, error) {
	out := make([]party.Client, 0, len(r.byUserID))
	for _, c := range r.byUserID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClientRepo) Save(_ context.Context, client *party.Client) error {
	cp := *client
	r.byUserID[client.UserID] = &cp
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	for userID, c := range r.byUserID {
		if c.ID == id {
			delete(r.byUserID, userID)
		}
	}
	return nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*catalog.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*catalog.Item)}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindByProducer(_ context.Context, producerID uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0)
	for _, item := range r.items {
		if item.ProducerID == producerID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindByCategory(_ context.Context, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0)
	for _, item := range r.items {
		if item.CategoryID == categoryID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeItemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeItemRepo) Save(_ context.Context, item *catalog.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) SaveWithLock(_ context.Context, item *catalog.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type fakeCartRepo struct {
	byClientID map[uuid.UUID]*shopping.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{byClientID: make(map[uuid.UUID]*shopping.Cart)}
}

func copyCart(cart *shopping.Cart) *shopping.Cart {
	cp := *cart
	cp.Lines = make([]shopping.CartLine, len(cart.Lines))
	copy(cp.Lines, cart.Lines)
	return &cp
}

func (r *fakeCartRepo) FindByID(_ context.Context, id uuid.UUID) (*shopping.Cart, error) {
	for _, cart := range r.byClientID {
		if cart.ID == id {
			return copyCart(cart), nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) FindByClient(_ context.Context, clientID uuid.UUID) (*shopping.Cart, error) {
	cart, ok := r.byClientID[clientID]
	if !ok {
		return nil, nil
	}
	return copyCart(cart), nil
}

func (r *fakeCartRepo) GetOrCreateForClient(_ context.Context, clientID uuid.UUID) (*shopping.Cart, error) {
	if cart, ok := r.byClientID[clientID]; ok {
		return copyCart(cart), nil
	}
	cart, err := shopping.NewCart(clientID)
	if err != nil {
		return nil, err
	}
	r.byClientID[clientID] = copyCart(cart)
	return cart, nil
}

func (r *fakeCartRepo) Save(_ context.Context, cart *shopping.Cart) error {
	r.byClientID[cart.ClientID] = copyCart(cart)
	return nil
}

func (r *fakeCartRepo) SaveWithLock(_ context.Context, cart *shopping.Cart) error {
	if stored, ok := r.byClientID[cart.ClientID]; ok && stored.Version != cart.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.byClientID[cart.ClientID] = copyCart(cart)
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	for clientID, cart := range r.byClientID {
		if cart.ID == id {
			delete(r.byClientID, clientID)
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*ordering.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*ordering.Order)}
}

func copyOrder(order *ordering.Order) *ordering.Order {
	cp := *order
	cp.Lines = make([]ordering.OrderLine, len(order.Lines))
	copy(cp.Lines, order.Lines)
	return &cp
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(order), nil
}

func (r *fakeOrderRepo) FindByClient(_ context.Context, clientID uuid.UUID, _ shared.Filter) ([]ordering.Order, error) {
	out := make([]ordering.Order, 0)
	for _, order := range r.orders {
		if order.ClientID == clientID {
			out = append(out, *copyOrder(order))
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *ordering.Order) error {
	r.orders[order.ID] = copyOrder(order)
	return nil
}

type fakeFulfillmentRepo struct {
	fos map[uuid.UUID]*ordering.FulfillmentOrder
}

func newFakeFulfillmentRepo() *fakeFulfillmentRepo {
	return &fakeFulfillmentRepo{fos: make(map[uuid.UUID]*ordering.FulfillmentOrder)}
}

func copyFulfillment(fo *ordering.FulfillmentOrder) *ordering.FulfillmentOrder {
	cp := *fo
	cp.Lines = make([]ordering.FulfillmentLine, len(fo.Lines))
	copy(cp.Lines, fo.Lines)
	return &cp
}

func (r *fakeFulfillmentRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.FulfillmentOrder, error) {
	fo, ok := r.fos[id]
	if !ok {
		return nil, nil
	}
	return copyFulfillment(fo), nil
}

func (r *fakeFulfillmentRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]ordering.FulfillmentOrder, error) {
	out := make([]ordering.FulfillmentOrder, 0)
	for _, fo := range r.fos {
		if fo.OrderID == orderID {
			out = append(out, *copyFulfillment(fo))
		}
	}
	return out, nil
}

func (r *fakeFulfillmentRepo) FindByProducer(_ context.Context, producerID uuid.UUID, _ shared.Filter) ([]ordering.FulfillmentOrder, error) {
	out := make([]ordering.FulfillmentOrder, 0)
	for _, fo := range r.fos {
		if fo.ProducerID == producerID {
			out = append(out, *copyFulfillment(fo))
		}
	}
	return out, nil
}

func (r *fakeFulfillmentRepo) ExistsForOrder(_ context.Context, orderID uuid.UUID) (bool, error) {
	for _, fo := range r.fos {
		if fo.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFulfillmentRepo) Save(_ context.Context, fo *ordering.FulfillmentOrder) error {
	r.fos[fo.ID] = copyFulfillment(fo)
	return nil
}

func (r *fakeFulfillmentRepo) SaveAll(_ context.Context, fos []*ordering.FulfillmentOrder) error {
	for _, fo := range fos {
		r.fos[fo.ID] = copyFulfillment(fo)
	}
	return nil
}
