package ordering

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository manages persistence for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
}

// FulfillmentOrderRepository manages persistence for fulfillment orders
type FulfillmentOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FulfillmentOrder, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]FulfillmentOrder, error)
	FindByProducer(ctx context.Context, producerID uuid.UUID, filter shared.Filter) ([]FulfillmentOrder, error)
	// ExistsForOrder reports whether any fulfillment order was already
	// generated for the given order.
	ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
	Save(ctx context.Context, fo *FulfillmentOrder) error
	SaveAll(ctx context.Context, fos []*FulfillmentOrder) error
}
