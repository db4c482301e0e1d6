package catalog

import (
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants for the catalog domain
const (
	EventTypeItemCreated   = "catalog.item.created"
	EventTypeStockReserved = "catalog.item.stock_reserved"
	EventTypeStockReleased = "catalog.item.stock_released"
)

// ItemCreatedEvent is emitted when a new item is published
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Stock      int             `json:"stock"`
	ProducerID uuid.UUID       `json:"producer_id"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(item *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, "Item", item.ID),
		Name:            item.Name,
		UnitPrice:       item.UnitPrice,
		Stock:           item.Stock,
		ProducerID:      item.ProducerID,
	}
}

// StockReservedEvent is emitted when stock is subtracted for a cart
type StockReservedEvent struct {
	shared.BaseDomainEvent
	Quantity  int `json:"quantity"`
	Remaining int `json:"remaining"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(item *Item, quantity int) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, "Item", item.ID),
		Quantity:        quantity,
		Remaining:       item.Stock,
	}
}

// StockReleasedEvent is emitted when reserved stock returns to the shelf
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	Quantity  int `json:"quantity"`
	Remaining int `json:"remaining"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(item *Item, quantity int) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, "Item", item.ID),
		Quantity:        quantity,
		Remaining:       item.Stock,
	}
}
