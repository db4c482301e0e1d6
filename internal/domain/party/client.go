package party

import (
	"time"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is a buyer on the marketplace. UserID links the client to its
// authentication account (1:1); the account itself lives elsewhere.
type Client struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name            string    `gorm:"type:varchar(200);not null"`
	Email           string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone           string    `gorm:"type:varchar(50)"`
	ShippingAddress string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(userID uuid.UUID, name, email string) (*Client, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Client email cannot be empty")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Name:              name,
		Email:             email,
	}, nil
}

// UpdateContact updates the client contact details
func (c *Client) UpdateContact(phone, shippingAddress string) {
	c.Phone = phone
	c.ShippingAddress = shippingAddress
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
