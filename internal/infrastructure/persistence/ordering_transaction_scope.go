package persistence

import (
	"context"

	appordering "github.com/cosechaencope/backend/internal/application/ordering"
	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/ordering"
	"github.com/cosechaencope/backend/internal/domain/party"
	"github.com/cosechaencope/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormOrderingTransactionScope implements the checkout and fulfillment
// services' TransactionScope using GORM transactions.
type GormOrderingTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderingTransactionScope creates a new GormOrderingTransactionScope.
func NewGormOrderingTransactionScope(db *gorm.DB) *GormOrderingTransactionScope {
	return &GormOrderingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormOrderingTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderingTxRepositories{tx: tx})
	})
}

// orderingTxRepositories provides the checkout repositories scoped to one
// transaction.
type orderingTxRepositories struct {
	tx *gorm.DB
}

// CartRepo returns the cart repository scoped to the current transaction.
func (r *orderingTxRepositories) CartRepo() shopping.CartRepository {
	return NewGormCartRepository(r.tx)
}

// ItemRepo returns the item repository scoped to the current transaction.
func (r *orderingTxRepositories) ItemRepo() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// ClientRepo returns the client repository scoped to the current transaction.
func (r *orderingTxRepositories) ClientRepo() party.ClientRepository {
	return NewGormClientRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *orderingTxRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// FulfillmentRepo returns the fulfillment order repository scoped to the current transaction.
func (r *orderingTxRepositories) FulfillmentRepo() ordering.FulfillmentOrderRepository {
	return NewGormFulfillmentOrderRepository(r.tx)
}

var _ appordering.TransactionScope = (*GormOrderingTransactionScope)(nil)
var _ appordering.TransactionalRepositories = (*orderingTxRepositories)(nil)
