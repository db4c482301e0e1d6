package shopping

import (
	"context"
	"errors"

	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/domain/shared"
	domainshopping "github.com/cosechaencope/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxReservationRetries bounds how often a cart mutation is retried
// when the item stock write loses an optimistic locking race.
const maxReservationRetries = 3

// CartService handles all mutations of a client's live cart.
// Every operation runs in a single database transaction; both the stock
// write and the cart write use optimistic locking and are retried on
// version conflicts.
type CartService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewCartService creates a new CartService
func NewCartService(scope TransactionScope) *CartService {
	return &CartService{scope: scope}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AddToCart adds quantity units of an item to the client's cart,
// reserving the same quantity against the item's stock.
func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req AddToCartRequest) (*CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var response *CartResponse
	err := s.withRetry(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if client == nil {
			return shared.NewDomainError("NOT_FOUND", "Client not found")
		}

		cart, err := repos.CartRepo().GetOrCreateForClient(ctx, client.ID)
		if err != nil {
			return err
		}

		item, err := repos.ItemRepo().FindByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return shared.NewDomainError("NOT_FOUND", "Item not found")
		}

		if !item.CanFulfill(req.Quantity) {
			return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
				"Cannot add %d more units of %q: %d already in cart, %d available",
				req.Quantity, item.Name, cart.QuantityOf(item.ID), item.Stock)
		}

		if err := item.Reserve(req.Quantity); err != nil {
			return err
		}
		if err := cart.AddItem(item, req.Quantity); err != nil {
			return err
		}

		if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
			return err
		}
		if err := repos.CartRepo().SaveWithLock(ctx, cart); err != nil {
			return err
		}

		s.publishEvents(ctx, item, cart)

		r := ToCartResponse(cart)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// DecrementItem removes one unit of the item from the cart and releases
// that unit back to the item's stock. A line at quantity 1 disappears.
func (s *CartService) DecrementItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	var response *CartResponse
	err := s.withRetry(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if client == nil {
			return shared.NewDomainError("NOT_FOUND", "Client not found")
		}

		cart, err := repos.CartRepo().FindByClient(ctx, client.ID)
		if err != nil {
			return err
		}
		if cart == nil || cart.Finalized {
			return shared.NewDomainError("NOT_FOUND", "No live cart for client")
		}

		item, err := repos.ItemRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return shared.NewDomainError("NOT_FOUND", "Item not found")
		}

		if err := cart.DecrementItem(item); err != nil {
			return err
		}
		if err := item.Release(1); err != nil {
			return err
		}

		if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
			return err
		}
		if err := repos.CartRepo().SaveWithLock(ctx, cart); err != nil {
			return err
		}

		s.publishEvents(ctx, item, cart)

		r := ToCartResponse(cart)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ViewCart returns the client's live cart, creating an empty one when
// the client has none yet.
func (s *CartService) ViewCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	var response *CartResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if client == nil {
			return shared.NewDomainError("NOT_FOUND", "Client not found")
		}

		cart, err := repos.CartRepo().GetOrCreateForClient(ctx, client.ID)
		if err != nil {
			return err
		}

		r := ToCartResponse(cart)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ClearCart empties the cart, releasing every reserved unit back to
// stock. Clearing an absent or empty cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	var response *CartResponse
	err := s.withRetry(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if client == nil {
			return shared.NewDomainError("NOT_FOUND", "Client not found")
		}

		cart, err := repos.CartRepo().FindByClient(ctx, client.ID)
		if err != nil {
			return err
		}
		if cart == nil || cart.IsEmpty() {
			response = emptyResponse(cart, client.ID)
			return nil
		}

		released := cart.Clear()
		for itemID, quantity := range released {
			item, err := repos.ItemRepo().FindByID(ctx, itemID)
			if err != nil {
				return err
			}
			if item == nil {
				// item deleted while in a cart; nothing to release to
				continue
			}
			if err := item.Release(quantity); err != nil {
				return err
			}
			if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
				return err
			}
		}

		if err := repos.CartRepo().SaveWithLock(ctx, cart); err != nil {
			return err
		}

		s.publishCartEvents(ctx, cart)

		r := ToCartResponse(cart)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// SetShipping sets the externally priced shipping cost on the cart
func (s *CartService) SetShipping(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*CartResponse, error) {
	var response *CartResponse
	err := s.withRetry(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if client == nil {
			return shared.NewDomainError("NOT_FOUND", "Client not found")
		}

		cart, err := repos.CartRepo().GetOrCreateForClient(ctx, client.ID)
		if err != nil {
			return err
		}

		if err := cart.SetShippingCost(amount); err != nil {
			return err
		}
		if err := repos.CartRepo().SaveWithLock(ctx, cart); err != nil {
			return err
		}

		r := ToCartResponse(cart)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// withRetry re-runs the transactional function when the stock or cart
// write lost an optimistic locking race. The function re-reads its
// aggregates on every attempt. Other errors surface immediately.
func (s *CartService) withRetry(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	var err error
	for attempt := 0; attempt < maxReservationRetries; attempt++ {
		err = s.scope.Execute(ctx, fn)
		if err == nil || !isConcurrencyConflict(err) {
			return err
		}
	}
	return err
}

func isConcurrencyConflict(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == shared.ErrConcurrencyConflict.Code
}

func (s *CartService) publishEvents(ctx context.Context, item *catalog.Item, cart *domainshopping.Cart) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range item.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	item.ClearDomainEvents()
	s.publishCartEvents(ctx, cart)
}

func (s *CartService) publishCartEvents(ctx context.Context, cart *domainshopping.Cart) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range cart.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	cart.ClearDomainEvents()
}

func emptyResponse(cart *domainshopping.Cart, clientID uuid.UUID) *CartResponse {
	if cart != nil {
		r := ToCartResponse(cart)
		return &r
	}
	return &CartResponse{
		ClientID:     clientID,
		Lines:        []CartLineResponse{},
		Subtotal:     decimal.Zero,
		TaxAmount:    decimal.Zero,
		ShippingCost: decimal.Zero,
		Total:        decimal.Zero,
	}
}
