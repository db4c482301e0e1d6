package catalog

import (
	"time"

	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to publish a new item
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	ProducerID  uuid.UUID       `json:"producer_id" binding:"required"`
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
}

// UpdateItemRequest represents a request to update an item's listing
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// AdjustStockRequest represents a stock count correction
type AdjustStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// ItemListFilter represents filter options for item lists
type ItemListFilter struct {
	CategoryID *uuid.UUID `form:"category_id"`
	ProducerID *uuid.UUID `form:"producer_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
	Price        valueobject.Money `json:"price"`
	Stock        int               `json:"stock"`
	ProducerID   uuid.UUID         `json:"producer_id"`
	CategoryID   uuid.UUID         `json:"category_id"`
	Active       bool              `json:"active"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ToItemResponse converts an item aggregate to its response representation
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		Price:       item.UnitPriceMoney(),
		Stock:       item.Stock,
		ProducerID:  item.ProducerID,
		CategoryID:  item.CategoryID,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse converts a category to its response representation
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}
