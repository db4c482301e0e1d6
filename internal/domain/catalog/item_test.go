package catalog

import (
	"errors"
	"testing"

	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, stock int) *Item {
	t.Helper()
	item, err := NewItem("Tomates de temporada", decimal.NewFromFloat(2.50), stock, uuid.New(), uuid.New())
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func TestNewItem(t *testing.T) {
	producerID := uuid.New()
	categoryID := uuid.New()

	item, err := NewItem("Miel de romero", decimal.NewFromFloat(6.80), 12, producerID, categoryID)
	require.NoError(t, err)

	assert.Equal(t, "Miel de romero", item.Name)
	assert.Equal(t, 12, item.Stock)
	assert.Equal(t, producerID, item.ProducerID)
	assert.True(t, item.Active)
	assert.Equal(t, 1, item.Version)
	assert.Len(t, item.GetDomainEvents(), 1)
}

func TestNewItemValidation(t *testing.T) {
	_, err := NewItem("", decimal.NewFromInt(1), 1, uuid.New(), uuid.New())
	assert.Error(t, err)

	_, err = NewItem("Queso", decimal.NewFromInt(-1), 1, uuid.New(), uuid.New())
	assert.Error(t, err)

	_, err = NewItem("Queso", decimal.NewFromInt(1), -1, uuid.New(), uuid.New())
	assert.Error(t, err)

	_, err = NewItem("Queso", decimal.NewFromInt(1), 1, uuid.Nil, uuid.New())
	assert.Error(t, err)
}

func TestItemReserve(t *testing.T) {
	item := newTestItem(t, 10)

	err := item.Reserve(4)
	require.NoError(t, err)

	assert.Equal(t, 6, item.Stock)
	assert.Equal(t, 2, item.Version)
	assert.Len(t, item.GetDomainEvents(), 1)
}

func TestItemReserveInsufficientStock(t *testing.T) {
	item := newTestItem(t, 3)

	err := item.Reserve(5)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	// failed reservation leaves stock untouched
	assert.Equal(t, 3, item.Stock)
	assert.Equal(t, 1, item.Version)
}

func TestItemReserveExactStock(t *testing.T) {
	item := newTestItem(t, 5)

	err := item.Reserve(5)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Stock)

	err = item.Reserve(1)
	assert.Error(t, err)
}

func TestItemReserveInvalidQuantity(t *testing.T) {
	item := newTestItem(t, 5)

	assert.ErrorIs(t, item.Reserve(0), shared.ErrInvalidQuantity)
	assert.ErrorIs(t, item.Reserve(-2), shared.ErrInvalidQuantity)
	assert.Equal(t, 5, item.Stock)
}

func TestItemRelease(t *testing.T) {
	item := newTestItem(t, 2)

	err := item.Release(3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Stock)
	assert.Len(t, item.GetDomainEvents(), 1)
}

func TestItemReleaseInvalidQuantity(t *testing.T) {
	item := newTestItem(t, 2)

	assert.ErrorIs(t, item.Release(0), shared.ErrInvalidQuantity)
	assert.Equal(t, 2, item.Stock)
}

func TestItemReserveReleaseRoundTrip(t *testing.T) {
	item := newTestItem(t, 8)

	require.NoError(t, item.Reserve(8))
	require.NoError(t, item.Release(8))

	assert.Equal(t, 8, item.Stock)
}

func TestItemSetPrice(t *testing.T) {
	item := newTestItem(t, 1)

	err := item.SetPrice(decimal.NewFromFloat(3.10))
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(3.10)))

	err = item.SetPrice(decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestItemCanFulfill(t *testing.T) {
	item := newTestItem(t, 4)

	assert.True(t, item.CanFulfill(4))
	assert.True(t, item.CanFulfill(1))
	assert.False(t, item.CanFulfill(5))
}
