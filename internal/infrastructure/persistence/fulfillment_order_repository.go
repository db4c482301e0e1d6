package persistence

import (
	"context"
	"errors"

	"github.com/cosechaencope/backend/internal/domain/ordering"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFulfillmentOrderRepository implements FulfillmentOrderRepository using GORM
type GormFulfillmentOrderRepository struct {
	db *gorm.DB
}

// NewGormFulfillmentOrderRepository creates a new GormFulfillmentOrderRepository
func NewGormFulfillmentOrderRepository(db *gorm.DB) *GormFulfillmentOrderRepository {
	return &GormFulfillmentOrderRepository{db: db}
}

// FindByID finds a fulfillment order by its ID, lines included
func (r *GormFulfillmentOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.FulfillmentOrder, error) {
	var fo ordering.FulfillmentOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&fo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fo, nil
}

// FindByOrder finds all fulfillment orders generated for an order
func (r *GormFulfillmentOrderRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.FulfillmentOrder, error) {
	var fos []ordering.FulfillmentOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&fos).Error; err != nil {
		return nil, err
	}
	return fos, nil
}

// FindByProducer finds all fulfillment orders assigned to a producer
func (r *GormFulfillmentOrderRepository) FindByProducer(ctx context.Context, producerID uuid.UUID, filter shared.Filter) ([]ordering.FulfillmentOrder, error) {
	var fos []ordering.FulfillmentOrder
	query := r.db.WithContext(ctx).Model(&ordering.FulfillmentOrder{}).
		Preload("Lines").
		Where("producer_id = ?", producerID)
	if err := applyFilter(query, filter, FulfillmentOrderSortFields).Find(&fos).Error; err != nil {
		return nil, err
	}
	return fos, nil
}

// ExistsForOrder reports whether any fulfillment order was already generated for the order
func (r *GormFulfillmentOrderRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.FulfillmentOrder{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a fulfillment order and its lines
func (r *GormFulfillmentOrderRepository) Save(ctx context.Context, fo *ordering.FulfillmentOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveInTx(tx, fo)
	})
}

// SaveAll persists a batch of fulfillment orders atomically. The unique
// index on (order_id, producer_id) makes a concurrent duplicate generation
// fail with ALREADY_EXISTS instead of writing a second split.
func (r *GormFulfillmentOrderRepository) SaveAll(ctx context.Context, fos []*ordering.FulfillmentOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, fo := range fos {
			if err := r.saveInTx(tx, fo); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormFulfillmentOrderRepository) saveInTx(tx *gorm.DB, fo *ordering.FulfillmentOrder) error {
	if err := tx.Omit("Lines").Save(fo).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}

	if err := tx.Where("fulfillment_order_id = ?", fo.ID).Delete(&ordering.FulfillmentLine{}).Error; err != nil {
		return err
	}
	if len(fo.Lines) == 0 {
		return nil
	}
	for i := range fo.Lines {
		fo.Lines[i].FulfillmentOrderID = fo.ID
	}
	return tx.Create(&fo.Lines).Error
}

// Ensure GormFulfillmentOrderRepository implements FulfillmentOrderRepository
var _ ordering.FulfillmentOrderRepository = (*GormFulfillmentOrderRepository)(nil)
