package catalog

import (
	"context"
	"testing"

	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubItemRepo struct {
	items map[uuid.UUID]*catalog.Item
	reads int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*catalog.Item)}
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	r.reads++
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *stubItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubItemRepo) FindByProducer(_ context.Context, producerID uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0)
	for _, item := range r.items {
		if item.ProducerID == producerID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubItemRepo) FindByCategory(_ context.Context, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0)
	for _, item := range r.items {
		if item.CategoryID == categoryID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubItemRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubItemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubItemRepo) Save(_ context.Context, item *catalog.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubItemRepo) SaveWithLock(_ context.Context, item *catalog.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*catalog.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*catalog.Category)}
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *category
	return &cp, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*catalog.Category, error) {
	for _, category := range r.categories {
		if category.Name == name {
			cp := *category
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Category, error) {
	out := make([]catalog.Category, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, *category)
	}
	return out, nil
}

func (r *stubCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

type stubCache struct {
	entries       map[uuid.UUID]*catalog.Item
	invalidations int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[uuid.UUID]*catalog.Item)}
}

func (c *stubCache) Get(_ context.Context, id uuid.UUID) (*catalog.Item, bool) {
	item, ok := c.entries[id]
	return item, ok
}

func (c *stubCache) Set(_ context.Context, item *catalog.Item) {
	c.entries[item.ID] = item
}

func (c *stubCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.invalidations++
	delete(c.entries, id)
}

func newItemServiceFixture(t *testing.T) (*ItemService, *stubItemRepo, *stubCategoryRepo, *catalog.Category) {
	t.Helper()
	itemRepo := newStubItemRepo()
	categoryRepo := newStubCategoryRepo()
	category, err := catalog.NewCategory("Verduras", "")
	require.NoError(t, err)
	require.NoError(t, categoryRepo.Save(context.Background(), category))
	return NewItemService(itemRepo, categoryRepo), itemRepo, categoryRepo, category
}

func TestCreateItem(t *testing.T) {
	service, _, _, category := newItemServiceFixture(t)

	item, err := service.Create(context.Background(), CreateItemRequest{
		Name:       "Acelgas",
		UnitPrice:  decimal.NewFromFloat(1.80),
		Stock:      15,
		ProducerID: uuid.New(),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acelgas", item.Name)
	assert.Equal(t, 15, item.Stock)
	assert.True(t, item.Active)
}

func TestCreateItemUnknownCategory(t *testing.T) {
	service, _, _, _ := newItemServiceFixture(t)

	_, err := service.Create(context.Background(), CreateItemRequest{
		Name:       "Acelgas",
		UnitPrice:  decimal.NewFromFloat(1.80),
		Stock:      15,
		ProducerID: uuid.New(),
		CategoryID: uuid.New(),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestGetItemUsesCache(t *testing.T) {
	service, itemRepo, _, category := newItemServiceFixture(t)
	cache := newStubCache()
	service.SetCache(cache)

	created, err := service.Create(context.Background(), CreateItemRequest{
		Name:       "Espinacas",
		UnitPrice:  decimal.NewFromFloat(2.10),
		Stock:      5,
		ProducerID: uuid.New(),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	readsAfterMiss := itemRepo.reads

	_, err = service.Get(context.Background(), created.ID)
	require.NoError(t, err)

	// second read served from cache
	assert.Equal(t, readsAfterMiss, itemRepo.reads)
}

func TestUpdateItemInvalidatesCache(t *testing.T) {
	service, _, _, category := newItemServiceFixture(t)
	cache := newStubCache()
	service.SetCache(cache)

	created, err := service.Create(context.Background(), CreateItemRequest{
		Name:       "Brócoli",
		UnitPrice:  decimal.NewFromFloat(2.50),
		Stock:      5,
		ProducerID: uuid.New(),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), created.ID)
	require.NoError(t, err)

	newPrice := decimal.NewFromFloat(2.90)
	updated, err := service.Update(context.Background(), created.ID, UpdateItemRequest{UnitPrice: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(newPrice))
	assert.Equal(t, 1, cache.invalidations)

	fresh, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, fresh.UnitPrice.Equal(newPrice))
}

func TestAdjustStock(t *testing.T) {
	service, _, _, category := newItemServiceFixture(t)

	created, err := service.Create(context.Background(), CreateItemRequest{
		Name:       "Zanahorias",
		UnitPrice:  decimal.NewFromFloat(1.00),
		Stock:      10,
		ProducerID: uuid.New(),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	adjusted, err := service.AdjustStock(context.Background(), created.ID, AdjustStockRequest{Stock: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, adjusted.Stock)
}

func TestCreateCategoryUniqueName(t *testing.T) {
	service, _, _, _ := newItemServiceFixture(t)

	_, err := service.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Frutas"})
	require.NoError(t, err)

	_, err = service.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Frutas"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestListCategories(t *testing.T) {
	service, _, _, _ := newItemServiceFixture(t)

	categories, err := service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
