package party

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository manages persistence for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProducerRepository manages persistence for producers
type ProducerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Producer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Producer, error)
	FindByEmail(ctx context.Context, email string) (*Producer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Producer, error)
	Save(ctx context.Context, producer *Producer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
