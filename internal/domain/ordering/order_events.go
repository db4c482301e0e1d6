package ordering

import (
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants for the ordering domain
const (
	EventTypeOrderPlaced              = "ordering.order.placed"
	EventTypeOrderStatusChanged       = "ordering.order.status_changed"
	EventTypeFulfillmentGenerated     = "ordering.fulfillment.generated"
	EventTypeFulfillmentStatusChanged = "ordering.fulfillment.status_changed"
)

// OrderPlacedEvent is emitted when checkout creates an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	ClientID  uuid.UUID       `json:"client_id"`
	LineCount int             `json:"line_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", order.ID),
		ClientID:        order.ClientID,
		LineCount:       len(order.Lines),
		Total:           order.Total,
	}
}

// OrderStatusChangedEvent is emitted on every order status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", order.ID),
		From:            from,
		To:              to,
	}
}

// FulfillmentGeneratedEvent is emitted when an order is split into fulfillment orders
type FulfillmentGeneratedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producer_id"`
	LineCount  int       `json:"line_count"`
}

// NewFulfillmentGeneratedEvent creates a new FulfillmentGeneratedEvent
func NewFulfillmentGeneratedEvent(fo *FulfillmentOrder) *FulfillmentGeneratedEvent {
	return &FulfillmentGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFulfillmentGenerated, "FulfillmentOrder", fo.ID),
		ProducerID:      fo.ProducerID,
		LineCount:       len(fo.Lines),
	}
}

// FulfillmentStatusChangedEvent is emitted on every fulfillment status transition
type FulfillmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producer_id"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
}

// NewFulfillmentStatusChangedEvent creates a new FulfillmentStatusChangedEvent
func NewFulfillmentStatusChangedEvent(fo *FulfillmentOrder, from, to Status) *FulfillmentStatusChangedEvent {
	return &FulfillmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFulfillmentStatusChanged, "FulfillmentOrder", fo.ID),
		ProducerID:      fo.ProducerID,
		From:            from,
		To:              to,
	}
}
