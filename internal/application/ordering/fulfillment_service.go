package ordering

import (
	"context"

	"github.com/cosechaencope/backend/internal/domain/ordering"
	"github.com/cosechaencope/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FulfillmentService splits placed orders into per-producer fulfillment
// orders and manages their lifecycle.
type FulfillmentService struct {
	scope          TransactionScope
	pricer         ordering.Pricer
	eventPublisher shared.EventPublisher
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(scope TransactionScope) *FulfillmentService {
	return &FulfillmentService{
		scope:  scope,
		pricer: ordering.DefaultPricer,
	}
}

// SetPricer overrides how producer-facing unit prices are resolved
func (s *FulfillmentService) SetPricer(pricer ordering.Pricer) {
	if pricer != nil {
		s.pricer = pricer
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *FulfillmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GenerateForOrder partitions the order's lines by producer into one
// fulfillment order per producer. Generation is idempotent: a second
// call for the same order is rejected.
func (s *FulfillmentService) GenerateForOrder(ctx context.Context, orderID uuid.UUID) ([]FulfillmentOrderResponse, error) {
	var responses []FulfillmentOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Order not found")
		}

		exists, err := repos.FulfillmentRepo().ExistsForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Fulfillment orders already generated for this order")
		}

		producerOf, err := s.resolveProducers(ctx, repos, order)
		if err != nil {
			return err
		}

		fos, err := ordering.SplitOrderByProducer(order, producerOf, s.pricer)
		if err != nil {
			return err
		}

		if len(fos) > 0 {
			if err := repos.FulfillmentRepo().SaveAll(ctx, fos); err != nil {
				return err
			}
		}

		responses = make([]FulfillmentOrderResponse, 0, len(fos))
		for _, fo := range fos {
			if s.eventPublisher != nil {
				_ = s.eventPublisher.Publish(ctx, ordering.NewFulfillmentGeneratedEvent(fo))
			}
			responses = append(responses, ToFulfillmentOrderResponse(fo))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// UpdateStatus moves a fulfillment order along the status state machine
func (s *FulfillmentService) UpdateStatus(ctx context.Context, fulfillmentOrderID uuid.UUID, req UpdateFulfillmentStatusRequest) (*FulfillmentOrderResponse, error) {
	target, err := ordering.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var response *FulfillmentOrderResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		fo, err := repos.FulfillmentRepo().FindByID(ctx, fulfillmentOrderID)
		if err != nil {
			return err
		}
		if fo == nil {
			return shared.NewDomainError("NOT_FOUND", "Fulfillment order not found")
		}

		if err := fo.UpdateStatus(target, req.Observations); err != nil {
			return err
		}
		if err := repos.FulfillmentRepo().Save(ctx, fo); err != nil {
			return err
		}

		if s.eventPublisher != nil {
			for _, event := range fo.GetDomainEvents() {
				_ = s.eventPublisher.Publish(ctx, event)
			}
			fo.ClearDomainEvents()
		}

		r := ToFulfillmentOrderResponse(fo)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListForProducer returns the fulfillment orders assigned to a producer
func (s *FulfillmentService) ListForProducer(ctx context.Context, producerID uuid.UUID, filter shared.Filter) ([]FulfillmentOrderResponse, error) {
	var responses []FulfillmentOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		fos, err := repos.FulfillmentRepo().FindByProducer(ctx, producerID, filter)
		if err != nil {
			return err
		}

		responses = make([]FulfillmentOrderResponse, 0, len(fos))
		for idx := range fos {
			responses = append(responses, ToFulfillmentOrderResponse(&fos[idx]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// resolveProducers maps every item in the order to its owning producer
func (s *FulfillmentService) resolveProducers(ctx context.Context, repos TransactionalRepositories, order *ordering.Order) (map[uuid.UUID]uuid.UUID, error) {
	itemIDs := make([]uuid.UUID, 0, len(order.Lines))
	seen := make(map[uuid.UUID]bool, len(order.Lines))
	for _, line := range order.Lines {
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			itemIDs = append(itemIDs, line.ItemID)
		}
	}

	items, err := repos.ItemRepo().FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	producerOf := make(map[uuid.UUID]uuid.UUID, len(items))
	for idx := range items {
		producerOf[items[idx].ID] = items[idx].ProducerID
	}
	return producerOf, nil
}
