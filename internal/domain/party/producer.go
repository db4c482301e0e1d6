package party

import (
	"time"

	"github.com/cosechaencope/backend/internal/domain/shared"
)

// Producer is a seller whose items are listed on the marketplace.
// Each producer receives its own fulfillment order when a client order
// contains its items.
type Producer struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Producer) TableName() string {
	return "producers"
}

// NewProducer creates a new producer
func NewProducer(name, email string) (*Producer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Producer name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Producer email cannot be empty")
	}

	return &Producer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
	}, nil
}

// UpdateContact updates the producer contact details
func (p *Producer) UpdateContact(phone, address string) {
	p.Phone = phone
	p.Address = address
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
