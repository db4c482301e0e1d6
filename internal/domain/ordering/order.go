package ordering

import (
	"fmt"
	"time"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/cosechaencope/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is an immutable snapshot of a cart line at checkout time
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// Order is the aggregate root for a placed order. Lines and totals are
// copied from the cart at checkout and never change afterwards; only
// the status moves.
type Order struct {
	shared.BaseAggregateRoot
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PlacedAt      time.Time       `gorm:"not null"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	Status        Status          `gorm:"type:varchar(20);not null"`
	Lines         []OrderLine     `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ShippingCost  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderFromCart snapshots a cart into a new pending order.
// Call this before finalizing the cart: the cart's lines and totals are
// copied as they stand.
func NewOrderFromCart(cart *shopping.Cart, paymentMethod string) (*Order, error) {
	if cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment method is required")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          cart.ClientID,
		PlacedAt:          time.Now(),
		PaymentMethod:     paymentMethod,
		Status:            StatusPending,
		Lines:             make([]OrderLine, 0, len(cart.Lines)),
		Subtotal:          cart.Subtotal,
		TaxAmount:         cart.TaxAmount,
		ShippingCost:      cart.ShippingCost,
		Total:             cart.Total,
	}

	for _, cl := range cart.Lines {
		order.Lines = append(order.Lines, OrderLine{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    order.ID,
			ItemID:     cl.ItemID,
			ItemName:   cl.ItemName,
			Quantity:   cl.Quantity,
			UnitPrice:  cl.UnitPrice,
			LineTotal:  cl.LineTotal,
		})
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// UpdateStatus moves the order along the status state machine
func (o *Order) UpdateStatus(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}
