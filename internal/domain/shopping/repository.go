package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository manages persistence for carts
type CartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) (*Cart, error)
	// GetOrCreateForClient returns the client's cart, creating it when
	// absent. The implementation must be race-free: concurrent calls for
	// the same client resolve to the same cart row.
	GetOrCreateForClient(ctx context.Context, clientID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	// SaveWithLock persists the cart only when its stored version matches
	// the version the cart was loaded at, returning ErrConcurrencyConflict
	// otherwise. All cart mutations go through this path.
	SaveWithLock(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
}
