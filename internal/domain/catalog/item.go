package catalog

import (
	"fmt"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/cosechaencope/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a marketplace listing published by a producer.
// It is the aggregate root for catalog and stock operations: the Stock
// field is the single authoritative count, and every unit sitting in a
// live cart has already been subtracted from it.
type Item struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	ProducerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(name string, unitPrice decimal.Decimal, stock int, producerID, categoryID uuid.UUID) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}
	if producerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCER", "Producer ID cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		UnitPrice:         unitPrice,
		Stock:             stock,
		ProducerID:        producerID,
		CategoryID:        categoryID,
		Active:            true,
	}
	item.AddDomainEvent(NewItemCreatedEvent(item))

	return item, nil
}

// Reserve subtracts quantity from stock for units entering a cart.
// The stock never goes negative; a short reservation fails atomically.
func (i *Item) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if i.Stock < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Requested %d units of %q but only %d available", quantity, i.Name, i.Stock))
	}

	i.Stock -= quantity
	i.Touch()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockReservedEvent(i, quantity))

	return nil
}

// Release returns quantity to stock when units leave a cart without being sold
func (i *Item) Release(quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}

	i.Stock += quantity
	i.Touch()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockReleasedEvent(i, quantity))

	return nil
}

// AdjustStock replaces the stock count with an actual counted value
func (i *Item) AdjustStock(actual int) error {
	if actual < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}

	i.Stock = actual
	i.Touch()
	i.IncrementVersion()

	return nil
}

// SetPrice updates the unit price. Carts holding this item pick up
// the new price on their next mutation, not retroactively.
func (i *Item) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.UnitPrice = price
	i.Touch()
	i.IncrementVersion()

	return nil
}

// Rename updates the item name and description
func (i *Item) Rename(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}

	i.Name = name
	i.Description = description
	i.Touch()
	i.IncrementVersion()

	return nil
}

// Deactivate removes the item from sale without deleting it
func (i *Item) Deactivate() {
	i.Active = false
	i.Touch()
	i.IncrementVersion()
}

// Activate puts the item back on sale
func (i *Item) Activate() {
	i.Active = true
	i.Touch()
	i.IncrementVersion()
}

// CanFulfill returns true if the available stock covers the requested quantity
func (i *Item) CanFulfill(quantity int) bool {
	return i.Stock >= quantity
}

// UnitPriceMoney returns the unit price as a Money value object
func (i *Item) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(i.UnitPrice)
}
