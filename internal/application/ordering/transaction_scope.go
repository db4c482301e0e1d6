package ordering

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/ordering"
	"github.com/cosechaencope/backend/internal/domain/party"
	"github.com/cosechaencope/backend/internal/domain/shopping"
)

// TransactionScope provides transactional access to the repositories
// checkout and fulfillment generation touch.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction. Checkout writes the order and finalizes
// the cart atomically; fulfillment generation writes every fulfillment
// order of one client order atomically.
type TransactionalRepositories interface {
	CartRepo() shopping.CartRepository
	ItemRepo() catalog.ItemRepository
	ClientRepo() party.ClientRepository
	OrderRepo() ordering.OrderRepository
	FulfillmentRepo() ordering.FulfillmentOrderRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with in-memory repositories.
type NoOpTransactionScope struct {
	cartRepo        shopping.CartRepository
	itemRepo        catalog.ItemRepository
	clientRepo      party.ClientRepository
	orderRepo       ordering.OrderRepository
	fulfillmentRepo ordering.FulfillmentOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	cartRepo shopping.CartRepository,
	itemRepo catalog.ItemRepository,
	clientRepo party.ClientRepository,
	orderRepo ordering.OrderRepository,
	fulfillmentRepo ordering.FulfillmentOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		cartRepo:        cartRepo,
		itemRepo:        itemRepo,
		clientRepo:      clientRepo,
		orderRepo:       orderRepo,
		fulfillmentRepo: fulfillmentRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CartRepo returns the cart repository.
func (s *NoOpTransactionScope) CartRepo() shopping.CartRepository {
	return s.cartRepo
}

// ItemRepo returns the item repository.
func (s *NoOpTransactionScope) ItemRepo() catalog.ItemRepository {
	return s.itemRepo
}

// ClientRepo returns the client repository.
func (s *NoOpTransactionScope) ClientRepo() party.ClientRepository {
	return s.clientRepo
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() ordering.OrderRepository {
	return s.orderRepo
}

// FulfillmentRepo returns the fulfillment order repository.
func (s *NoOpTransactionScope) FulfillmentRepo() ordering.FulfillmentOrderRepository {
	return s.fulfillmentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
