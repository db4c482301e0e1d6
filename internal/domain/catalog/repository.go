package catalog

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository manages persistence for catalog items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	FindByProducer(ctx context.Context, producerID uuid.UUID, filter shared.Filter) ([]Item, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *Item) error
	// SaveWithLock persists the item only if its version has not changed
	// since it was loaded. Returns a concurrency conflict error otherwise.
	SaveWithLock(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository manages persistence for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
