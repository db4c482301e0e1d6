package persistence

import (
	"context"
	"errors"

	"github.com/cosechaencope/backend/internal/domain/party"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProducerRepository implements ProducerRepository using GORM
type GormProducerRepository struct {
	db *gorm.DB
}

// NewGormProducerRepository creates a new GormProducerRepository
func NewGormProducerRepository(db *gorm.DB) *GormProducerRepository {
	return &GormProducerRepository{db: db}
}

// FindByID finds a producer by its ID
func (r *GormProducerRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Producer, error) {
	var producer party.Producer
	if err := r.db.WithContext(ctx).First(&producer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &producer, nil
}

// FindByIDs finds all producers matching the given IDs
func (r *GormProducerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]party.Producer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var producers []party.Producer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&producers).Error; err != nil {
		return nil, err
	}
	return producers, nil
}

// FindByEmail finds a producer by email
func (r *GormProducerRepository) FindByEmail(ctx context.Context, email string) (*party.Producer, error) {
	var producer party.Producer
	if err := r.db.WithContext(ctx).First(&producer, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &producer, nil
}

// FindAll finds all producers matching the filter
func (r *GormProducerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]party.Producer, error) {
	var producers []party.Producer
	query := r.db.WithContext(ctx).Model(&party.Producer{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if err := applyFilter(query, filter, CommonSortFields).Find(&producers).Error; err != nil {
		return nil, err
	}
	return producers, nil
}

// Save creates or updates a producer
func (r *GormProducerRepository) Save(ctx context.Context, producer *party.Producer) error {
	return r.db.WithContext(ctx).Save(producer).Error
}

// Delete deletes a producer
func (r *GormProducerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&party.Producer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProducerRepository implements ProducerRepository
var _ party.ProducerRepository = (*GormProducerRepository)(nil)
