package catalog

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemCache caches item reads. Lookups that miss fall through to the
// repository; saves invalidate.
type ItemCache interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Item, bool)
	Set(ctx context.Context, item *catalog.Item)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// ItemService handles catalog item operations. Stock changes flow
// through Reserve/Release in the cart and checkout services; this
// service only covers listing management and count corrections.
type ItemService struct {
	itemRepo     catalog.ItemRepository
	categoryRepo catalog.CategoryRepository
	cache        ItemCache
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, categoryRepo catalog.CategoryRepository) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// SetCache enables the read-through item cache
func (s *ItemService) SetCache(cache ItemCache) {
	s.cache = cache
}

// Create publishes a new item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
	}

	item, err := catalog.NewItem(req.Name, req.UnitPrice, req.Stock, req.ProducerID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		item.Description = req.Description
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Get retrieves an item, serving cached copies when available
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	if s.cache != nil {
		if item, ok := s.cache.Get(ctx, id); ok {
			response := ToItemResponse(item)
			return &response, nil
		}
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Item not found")
	}

	if s.cache != nil {
		s.cache.Set(ctx, item)
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List returns items matching the filter
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search

	var items []catalog.Item
	var err error
	switch {
	case filter.CategoryID != nil:
		items, err = s.itemRepo.FindByCategory(ctx, *filter.CategoryID, f)
	case filter.ProducerID != nil:
		items, err = s.itemRepo.FindByProducer(ctx, *filter.ProducerID, f)
	default:
		items, err = s.itemRepo.FindAll(ctx, f)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, ToItemResponse(&items[idx]))
	}
	return responses, nil
}

// Update changes an item's listing details
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Item not found")
	}

	if req.Name != nil {
		description := item.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := item.Rename(*req.Name, description); err != nil {
			return nil, err
		}
	} else if req.Description != nil {
		if err := item.Rename(item.Name, *req.Description); err != nil {
			return nil, err
		}
	}
	if req.UnitPrice != nil {
		if err := item.SetPrice(*req.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	response := ToItemResponse(item)
	return &response, nil
}

// AdjustStock corrects the stock count after a physical recount
func (s *ItemService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Item not found")
	}

	if err := item.AdjustStock(req.Stock); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	response := ToItemResponse(item)
	return &response, nil
}

// CreateCategory creates a category with a unique name
func (s *ItemService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	existing, err := s.categoryRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetCategory retrieves a category by ID
func (s *ItemService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories returns all categories
func (s *ItemService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		responses = append(responses, ToCategoryResponse(&categories[idx]))
	}
	return responses, nil
}
