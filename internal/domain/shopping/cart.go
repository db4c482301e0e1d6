package shopping

import (
	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate is the VAT rate applied to the cart subtotal
var TaxRate = decimal.NewFromFloat(0.21)

// CartLine is one item entry inside a cart
type CartLine struct {
	shared.BaseEntity
	CartID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CartLine) TableName() string {
	return "cart_lines"
}

// Cart is the aggregate root for a client's live shopping cart.
// There is exactly one cart row per client; after checkout the row is
// finalized in place and reset on its next use. Every unit held in a
// line has already been reserved against the item's stock.
type Cart struct {
	shared.BaseAggregateRoot
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Lines        []CartLine      `gorm:"foreignKey:CartID;references:ID"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Finalized    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a client
func NewCart(clientID uuid.UUID) (*Cart, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Lines:             make([]CartLine, 0),
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		ShippingCost:      decimal.Zero,
		Total:             decimal.Zero,
	}, nil
}

// AddItem adds quantity units of the item to the cart.
// The line's unit price is refreshed from the item on every call, so a
// price change reaches the cart on its next mutation. The caller is
// responsible for reserving the same quantity against the item's stock.
func (c *Cart) AddItem(item *catalog.Item, quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if c.Finalized {
		c.reset()
	}

	for idx := range c.Lines {
		if c.Lines[idx].ItemID == item.ID {
			c.Lines[idx].Quantity += quantity
			c.Lines[idx].ItemName = item.Name
			c.Lines[idx].UnitPrice = item.UnitPrice
			c.touch(idx)
			c.recalculateTotals()
			c.bump()
			c.AddDomainEvent(NewItemAddedToCartEvent(c, item.ID, quantity))
			return nil
		}
	}

	line := CartLine{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ItemID:     item.ID,
		ItemName:   item.Name,
		Quantity:   quantity,
		UnitPrice:  item.UnitPrice,
	}
	c.Lines = append(c.Lines, line)
	c.touch(len(c.Lines) - 1)
	c.recalculateTotals()
	c.bump()
	c.AddDomainEvent(NewItemAddedToCartEvent(c, item.ID, quantity))

	return nil
}

// DecrementItem removes one unit of the item from the cart.
// A line at quantity 1 disappears. The caller releases exactly one unit
// back to the item's stock.
func (c *Cart) DecrementItem(item *catalog.Item) error {
	for idx := range c.Lines {
		if c.Lines[idx].ItemID != item.ID {
			continue
		}
		if c.Lines[idx].Quantity <= 1 {
			c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		} else {
			c.Lines[idx].Quantity--
			c.Lines[idx].ItemName = item.Name
			c.Lines[idx].UnitPrice = item.UnitPrice
			c.touch(idx)
		}
		c.recalculateTotals()
		c.bump()
		return nil
	}

	return shared.NewDomainError("NOT_FOUND", "Item is not in the cart")
}

// QuantityOf returns how many units of the item the cart currently holds
func (c *Cart) QuantityOf(itemID uuid.UUID) int {
	for idx := range c.Lines {
		if c.Lines[idx].ItemID == itemID {
			return c.Lines[idx].Quantity
		}
	}
	return 0
}

// Clear empties the cart and returns the quantity held per item so the
// caller can release each reservation back to stock.
func (c *Cart) Clear() map[uuid.UUID]int {
	released := make(map[uuid.UUID]int, len(c.Lines))
	for idx := range c.Lines {
		released[c.Lines[idx].ItemID] += c.Lines[idx].Quantity
	}

	c.Lines = make([]CartLine, 0)
	c.recalculateTotals()
	c.bump()
	c.AddDomainEvent(NewCartClearedEvent(c))

	return released
}

// Finalize closes the cart after checkout. Lines are dropped WITHOUT
// releasing stock: the reserved units now belong to the order.
func (c *Cart) Finalize() error {
	if c.IsEmpty() {
		return shared.ErrEmptyCart
	}

	c.Lines = make([]CartLine, 0)
	c.ShippingCost = decimal.Zero
	c.recalculateTotals()
	c.Finalized = true
	c.bump()
	c.AddDomainEvent(NewCartFinalizedEvent(c))

	return nil
}

// SetShippingCost sets the externally priced shipping cost
func (c *Cart) SetShippingCost(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Shipping cost cannot be negative")
	}

	c.ShippingCost = amount
	c.recalculateTotals()
	c.bump()

	return nil
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// reset reopens a finalized cart for reuse
func (c *Cart) reset() {
	c.Lines = make([]CartLine, 0)
	c.ShippingCost = decimal.Zero
	c.Finalized = false
	c.recalculateTotals()
}

// touch refreshes a line's total and timestamp after a mutation
func (c *Cart) touch(idx int) {
	line := &c.Lines[idx]
	line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	line.Touch()
}

// recalculateTotals is the single place cart totals are computed.
// Subtotal is the sum of line totals, tax is TaxRate of the subtotal,
// total adds shipping on top.
func (c *Cart) recalculateTotals() {
	subtotal := decimal.Zero
	for idx := range c.Lines {
		c.Lines[idx].LineTotal = c.Lines[idx].UnitPrice.Mul(decimal.NewFromInt(int64(c.Lines[idx].Quantity)))
		subtotal = subtotal.Add(c.Lines[idx].LineTotal)
	}

	c.Subtotal = subtotal
	c.TaxAmount = subtotal.Mul(TaxRate).Round(2)
	c.Total = c.Subtotal.Add(c.TaxAmount).Add(c.ShippingCost)
}

// bump advances the optimistic-lock version after a mutation.
// Every public mutation bumps exactly once, so a save can predicate
// its UPDATE on the version the cart was loaded at.
func (c *Cart) bump() {
	c.Touch()
	c.IncrementVersion()
}
