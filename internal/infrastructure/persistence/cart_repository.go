package persistence

import (
	"context"
	"errors"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/cosechaencope/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID, lines included
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).Preload("Lines").First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// FindByClient finds the client's cart, lines included
func (r *GormCartRepository) FindByClient(ctx context.Context, clientID uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).Preload("Lines").First(&cart, "client_id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateForClient returns the client's cart, creating it when absent.
// The insert relies on the unique index on client_id so concurrent calls
// for the same client resolve to the same row.
func (r *GormCartRepository) GetOrCreateForClient(ctx context.Context, clientID uuid.UUID) (*shopping.Cart, error) {
	cart, err := shopping.NewCart(clientID)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Omit("Lines").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoNothing: true,
		}).
		Create(cart).Error; err != nil {
		return nil, err
	}

	return r.FindByClient(ctx, clientID)
}

// Save persists the cart and replaces its lines with the current set.
// Removing a line from the aggregate must remove the row as well, so the
// stored lines are rewritten inside a transaction.
func (r *GormCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(cart).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&shopping.CartLine{}).Error; err != nil {
			return err
		}

		if len(cart.Lines) == 0 {
			return nil
		}
		for i := range cart.Lines {
			cart.Lines[i].CartID = cart.ID
		}
		return tx.Create(&cart.Lines).Error
	})
}

// SaveWithLock persists the cart using optimistic locking. The UPDATE is
// predicated on the version the cart was loaded at; zero rows affected
// means another transaction committed first and the caller must reload
// and retry. Lines are rewritten in the same transaction so a stale cart
// can never overwrite a newer line set.
func (r *GormCartRepository) SaveWithLock(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(cart).
			Where("id = ? AND version = ?", cart.ID, cart.Version-1).
			Updates(map[string]interface{}{
				"subtotal":      cart.Subtotal,
				"tax_amount":    cart.TaxAmount,
				"shipping_cost": cart.ShippingCost,
				"total":         cart.Total,
				"finalized":     cart.Finalized,
				"version":       cart.Version,
				"updated_at":    cart.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&shopping.CartLine{}).Error; err != nil {
			return err
		}

		if len(cart.Lines) == 0 {
			return nil
		}
		for i := range cart.Lines {
			cart.Lines[i].CartID = cart.ID
		}
		return tx.Create(&cart.Lines).Error
	})
}

// Delete deletes a cart and its lines
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&shopping.CartLine{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&shopping.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormCartRepository implements CartRepository
var _ shopping.CartRepository = (*GormCartRepository)(nil)
