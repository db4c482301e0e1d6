package persistence

import (
	"context"

	appshopping "github.com/cosechaencope/backend/internal/application/shopping"
	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/party"
	"github.com/cosechaencope/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormShoppingTransactionScope implements the cart service's TransactionScope
// using GORM transactions.
type GormShoppingTransactionScope struct {
	db *gorm.DB
}

// NewGormShoppingTransactionScope creates a new GormShoppingTransactionScope.
func NewGormShoppingTransactionScope(db *gorm.DB) *GormShoppingTransactionScope {
	return &GormShoppingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormShoppingTransactionScope) Execute(ctx context.Context, fn func(repos appshopping.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&shoppingTxRepositories{tx: tx})
	})
}

// shoppingTxRepositories provides the cart mutation repositories scoped to
// one transaction.
type shoppingTxRepositories struct {
	tx *gorm.DB
}

// CartRepo returns the cart repository scoped to the current transaction.
func (r *shoppingTxRepositories) CartRepo() shopping.CartRepository {
	return NewGormCartRepository(r.tx)
}

// ItemRepo returns the item repository scoped to the current transaction.
func (r *shoppingTxRepositories) ItemRepo() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// ClientRepo returns the client repository scoped to the current transaction.
func (r *shoppingTxRepositories) ClientRepo() party.ClientRepository {
	return NewGormClientRepository(r.tx)
}

var _ appshopping.TransactionScope = (*GormShoppingTransactionScope)(nil)
var _ appshopping.TransactionalRepositories = (*shoppingTxRepositories)(nil)
