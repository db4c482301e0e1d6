package ordering

import (
	"fmt"
	"time"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FulfillmentLine is the portion of one order line assigned to a producer
type FulfillmentLine struct {
	shared.BaseEntity
	FulfillmentOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID             uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName           string          `gorm:"type:varchar(200);not null"`
	Quantity           int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (FulfillmentLine) TableName() string {
	return "fulfillment_lines"
}

// FulfillmentOrder is the slice of a client order that one producer has
// to fulfill. Exactly one exists per (order, producer) pair.
type FulfillmentOrder struct {
	shared.BaseAggregateRoot
	OrderID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_fulfillment_order_producer,priority:1"`
	ProducerID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_fulfillment_order_producer,priority:2;index"`
	Status       Status            `gorm:"type:varchar(20);not null"`
	Observations string            `gorm:"type:text"`
	Lines        []FulfillmentLine `gorm:"foreignKey:FulfillmentOrderID;references:ID"`
	Total        decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (FulfillmentOrder) TableName() string {
	return "fulfillment_orders"
}

// NewFulfillmentOrder creates an empty fulfillment order for a producer
func NewFulfillmentOrder(orderID, producerID uuid.UUID) (*FulfillmentOrder, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if producerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCER", "Producer ID cannot be empty")
	}

	return &FulfillmentOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		ProducerID:        producerID,
		Status:            StatusPending,
		Lines:             make([]FulfillmentLine, 0),
		Total:             decimal.Zero,
	}, nil
}

// AddLine appends a line and keeps the total in sync
func (f *FulfillmentOrder) AddLine(itemID uuid.UUID, itemName string, quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	f.Lines = append(f.Lines, FulfillmentLine{
		BaseEntity:         shared.NewBaseEntity(),
		FulfillmentOrderID: f.ID,
		ItemID:             itemID,
		ItemName:           itemName,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		LineTotal:          lineTotal,
	})
	f.Total = f.Total.Add(lineTotal)
	f.UpdatedAt = time.Now()

	return nil
}

// UpdateStatus moves the fulfillment order along the status state machine
func (f *FulfillmentOrder) UpdateStatus(target Status, observations string) error {
	if !f.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition fulfillment order from %s to %s", f.Status, target))
	}

	from := f.Status
	f.Status = target
	if observations != "" {
		f.Observations = observations
	}
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	f.AddDomainEvent(NewFulfillmentStatusChangedEvent(f, from, target))

	return nil
}

// Pricer resolves the unit price a producer is paid for an order line.
// The default keeps the consumer-facing unit price.
type Pricer func(line OrderLine, producerID uuid.UUID) decimal.Decimal

// DefaultPricer passes the order line's unit price through unchanged
func DefaultPricer(line OrderLine, _ uuid.UUID) decimal.Decimal {
	return line.UnitPrice
}

// SplitOrderByProducer partitions an order's lines into one fulfillment
// order per producer, in order of first appearance. producerOf maps
// each line's item to its owning producer; every item must be present.
// Every order line lands in exactly one fulfillment order.
func SplitOrderByProducer(order *Order, producerOf map[uuid.UUID]uuid.UUID, pricer Pricer) ([]*FulfillmentOrder, error) {
	if pricer == nil {
		pricer = DefaultPricer
	}

	result := make([]*FulfillmentOrder, 0)
	byProducer := make(map[uuid.UUID]*FulfillmentOrder)

	for _, line := range order.Lines {
		producerID, ok := producerOf[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("No producer known for item %s", line.ItemID))
		}

		fo, ok := byProducer[producerID]
		if !ok {
			var err error
			fo, err = NewFulfillmentOrder(order.ID, producerID)
			if err != nil {
				return nil, err
			}
			byProducer[producerID] = fo
			result = append(result, fo)
		}

		if err := fo.AddLine(line.ItemID, line.ItemName, line.Quantity, pricer(line, producerID)); err != nil {
			return nil, err
		}
	}

	return result, nil
}
