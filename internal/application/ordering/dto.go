package ordering

import (
	"time"

	"github.com/cosechaencope/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest represents a request to turn the live cart into an order
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,min=1,max=50"`
}

// UpdateFulfillmentStatusRequest represents a fulfillment status transition
type UpdateFulfillmentStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	Observations string `json:"observations" binding:"max=1000"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	ClientID      uuid.UUID           `json:"client_id"`
	PlacedAt      time.Time           `json:"placed_at"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	Lines         []OrderLineResponse `json:"lines"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	ShippingCost  decimal.Decimal     `json:"shipping_cost"`
	Total         decimal.Decimal     `json:"total"`
}

// ToOrderResponse converts an order aggregate to its response representation
func ToOrderResponse(order *ordering.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	return OrderResponse{
		ID:            order.ID,
		ClientID:      order.ClientID,
		PlacedAt:      order.PlacedAt,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status.String(),
		Lines:         lines,
		Subtotal:      order.Subtotal,
		TaxAmount:     order.TaxAmount,
		ShippingCost:  order.ShippingCost,
		Total:         order.Total,
	}
}

// FulfillmentLineResponse represents a fulfillment line in API responses
type FulfillmentLineResponse struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// FulfillmentOrderResponse represents a fulfillment order in API responses
type FulfillmentOrderResponse struct {
	ID           uuid.UUID                 `json:"id"`
	OrderID      uuid.UUID                 `json:"order_id"`
	ProducerID   uuid.UUID                 `json:"producer_id"`
	Status       string                    `json:"status"`
	Observations string                    `json:"observations,omitempty"`
	Lines        []FulfillmentLineResponse `json:"lines"`
	Total        decimal.Decimal           `json:"total"`
	CreatedAt    time.Time                 `json:"created_at"`
}

// ToFulfillmentOrderResponse converts a fulfillment order to its response representation
func ToFulfillmentOrderResponse(fo *ordering.FulfillmentOrder) FulfillmentOrderResponse {
	lines := make([]FulfillmentLineResponse, 0, len(fo.Lines))
	for _, line := range fo.Lines {
		lines = append(lines, FulfillmentLineResponse{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	return FulfillmentOrderResponse{
		ID:           fo.ID,
		OrderID:      fo.OrderID,
		ProducerID:   fo.ProducerID,
		Status:       fo.Status.String(),
		Observations: fo.Observations,
		Lines:        lines,
		Total:        fo.Total,
		CreatedAt:    fo.CreatedAt,
	}
}
