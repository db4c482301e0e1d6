package shopping

import (
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for the shopping domain
const (
	EventTypeItemAddedToCart = "shopping.cart.item_added"
	EventTypeCartCleared     = "shopping.cart.cleared"
	EventTypeCartFinalized   = "shopping.cart.finalized"
)

// ItemAddedToCartEvent is emitted when units of an item enter a cart
type ItemAddedToCartEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// NewItemAddedToCartEvent creates a new ItemAddedToCartEvent
func NewItemAddedToCartEvent(cart *Cart, itemID uuid.UUID, quantity int) *ItemAddedToCartEvent {
	return &ItemAddedToCartEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemAddedToCart, "Cart", cart.ID),
		ClientID:        cart.ClientID,
		ItemID:          itemID,
		Quantity:        quantity,
	}
}

// CartClearedEvent is emitted when a cart is emptied and its reservations released
type CartClearedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
}

// NewCartClearedEvent creates a new CartClearedEvent
func NewCartClearedEvent(cart *Cart) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, "Cart", cart.ID),
		ClientID:        cart.ClientID,
	}
}

// CartFinalizedEvent is emitted when a cart is closed by checkout
type CartFinalizedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
}

// NewCartFinalizedEvent creates a new CartFinalizedEvent
func NewCartFinalizedEvent(cart *Cart) *CartFinalizedEvent {
	return &CartFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartFinalized, "Cart", cart.ID),
		ClientID:        cart.ClientID,
	}
}
