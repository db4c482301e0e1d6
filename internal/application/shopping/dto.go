package shopping

import (
	"github.com/cosechaencope/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddToCartRequest represents a request to add units of an item to the cart
type AddToCartRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity"`
}

// SetShippingRequest represents a request to set the cart shipping cost
type SetShippingRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CartLineResponse represents a cart line in API responses
type CartLineResponse struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID           uuid.UUID          `json:"id"`
	ClientID     uuid.UUID          `json:"client_id"`
	Lines        []CartLineResponse `json:"lines"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	TaxAmount    decimal.Decimal    `json:"tax_amount"`
	ShippingCost decimal.Decimal    `json:"shipping_cost"`
	Total        decimal.Decimal    `json:"total"`
}

// ToCartResponse converts a cart aggregate to its response representation
func ToCartResponse(cart *shopping.Cart) CartResponse {
	lines := make([]CartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, CartLineResponse{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	return CartResponse{
		ID:           cart.ID,
		ClientID:     cart.ClientID,
		Lines:        lines,
		Subtotal:     cart.Subtotal,
		TaxAmount:    cart.TaxAmount,
		ShippingCost: cart.ShippingCost,
		Total:        cart.Total,
	}
}
