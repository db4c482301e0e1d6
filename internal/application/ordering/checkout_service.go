package ordering

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/ordering"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CheckoutService turns a client's live cart into an immutable order.
// The cart is finalized without releasing stock: the reserved units
// move from the cart to the order.
type CheckoutService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(scope TransactionScope) *CheckoutService {
	return &CheckoutService{scope: scope}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout snapshots the client's cart into a new pending order and
// finalizes the cart, all in one transaction.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
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

		order, err := ordering.NewOrderFromCart(cart, req.PaymentMethod)
		if err != nil {
			return err
		}

		// the order keeps the reserved stock; the cart gives it up
		if err := cart.Finalize(); err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.CartRepo().SaveWithLock(ctx, cart); err != nil {
			return err
		}

		if s.eventPublisher != nil {
			for _, event := range order.GetDomainEvents() {
				_ = s.eventPublisher.Publish(ctx, event)
			}
			order.ClearDomainEvents()
			for _, event := range cart.GetDomainEvents() {
				_ = s.eventPublisher.Publish(ctx, event)
			}
			cart.ClearDomainEvents()
		}

		r := ToOrderResponse(order)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetOrder retrieves an order by ID
func (s *CheckoutService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Order not found")
		}

		r := ToOrderResponse(order)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListOrdersForClient returns the orders placed by the client linked to
// the given user account, newest first.
func (s *CheckoutService) ListOrdersForClient(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if client == nil {
			return shared.NewDomainError("NOT_FOUND", "Client not found")
		}

		orders, err := repos.OrderRepo().FindByClient(ctx, client.ID, filter)
		if err != nil {
			return err
		}

		responses = make([]OrderResponse, 0, len(orders))
		for idx := range orders {
			responses = append(responses, ToOrderResponse(&orders[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}
