package orders

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
	"storefront/internal/specification"

	"go.uber.org/zap"
)

// Service owns the order workflows. Every operation runs in its own unit of
// work obtained from the factory.
type Service struct {
	newUnit repository.UnitOfWorkFactory
	baskets repository.BasketStore
	events  repository.EventPublisher
	logger  *zap.Logger
}

func NewService(newUnit repository.UnitOfWorkFactory, baskets repository.BasketStore, events repository.EventPublisher, logger *zap.Logger) *Service {
	return &Service{newUnit: newUnit, baskets: baskets, events: events, logger: logger}
}

// CreateOrder turns a basket into a persisted order. Everything is resolved
// before anything is staged: a missing basket, product or delivery method
// aborts with no effects. The basket is deleted only after a confirmed
// commit; if that commit reports zero rows the basket survives so the user
// can retry.
func (s *Service) CreateOrder(ctx context.Context, buyerEmail string, deliveryMethodID int64, basketID string, shipTo model.Address) (*model.Order, error) {
	basket, err := s.baskets.Get(ctx, basketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get basket: %w", err)
	}
	if basket == nil {
		s.logger.Info("Basket not found", zap.String("basket_id", basketID))
		return nil, model.ErrBasketNotFound
	}

	uow := s.newUnit()
	defer func() {
		if err := uow.Close(); err != nil {
			s.logger.Error("Failed to close unit of work", zap.Error(err))
		}
	}()

	items := make([]model.OrderItem, 0, len(basket.Items))
	for _, line := range basket.Items {
		product, err := uow.Products().GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %d: %w", line.ProductID, err)
		}
		if product == nil {
			s.logger.Warn("Basket references missing product",
				zap.String("basket_id", basketID), zap.Int64("product_id", line.ProductID))
			return nil, fmt.Errorf("%w: id %d", model.ErrProductNotFound, line.ProductID)
		}
		items = append(items, model.OrderItem{
			ItemOrdered: model.ProductItemOrdered{
				ProductID:   product.ID,
				ProductName: product.Name,
				PictureURL:  product.PictureURL,
			},
			Price:    product.Price,
			Quantity: line.Quantity,
		})
	}

	deliveryMethod, err := uow.DeliveryMethods().GetByID(ctx, deliveryMethodID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve delivery method: %w", err)
	}
	if deliveryMethod == nil {
		return nil, fmt.Errorf("%w: id %d", model.ErrDeliveryMethodNotFound, deliveryMethodID)
	}

	order, err := model.NewOrder(buyerEmail, shipTo, items, deliveryMethod.ID, model.SubtotalOf(items))
	if err != nil {
		return nil, err
	}
	uow.Orders().Add(order)

	affected, err := uow.Complete(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to complete order transaction: %w", err)
	}
	if affected <= 0 {
		s.logger.Warn("Order commit affected no rows, keeping basket",
			zap.String("basket_id", basketID), zap.String("buyer_email", buyerEmail))
		return nil, model.ErrNothingCommitted
	}

	// Past this point the order exists; basket cleanup is best effort.
	basketDeleted := true
	if err := s.baskets.Delete(ctx, basketID); err != nil {
		basketDeleted = false
		s.logger.Error("Failed to delete basket after order commit",
			zap.Error(err), zap.String("basket_id", basketID), zap.Int64("order_id", order.ID))
	}

	event := model.OrderCreatedEvent{
		OrderID:       order.ID,
		BuyerEmail:    order.BuyerEmail,
		BasketID:      basketID,
		Subtotal:      order.Subtotal,
		BasketDeleted: basketDeleted,
		CreatedAt:     order.CreatedAt,
	}
	if err := s.events.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish order created event",
			zap.Error(err), zap.Int64("order_id", order.ID))
	}

	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("buyer_email", order.BuyerEmail),
		zap.Float64("subtotal", order.Subtotal))
	return order, nil
}

func (s *Service) GetOrdersForUser(ctx context.Context, buyerEmail string) ([]*model.Order, error) {
	uow := s.newUnit()
	defer func() {
		if err := uow.Close(); err != nil {
			s.logger.Error("Failed to close unit of work", zap.Error(err))
		}
	}()

	orders, err := uow.Orders().List(ctx, specification.OrdersForBuyer(buyerEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id int64, buyerEmail string) (*model.Order, error) {
	uow := s.newUnit()
	defer func() {
		if err := uow.Close(); err != nil {
			s.logger.Error("Failed to close unit of work", zap.Error(err))
		}
	}()

	order, err := uow.Orders().First(ctx, specification.OrderForBuyer(id, buyerEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) GetDeliveryMethods(ctx context.Context) ([]*model.DeliveryMethod, error) {
	uow := s.newUnit()
	defer func() {
		if err := uow.Close(); err != nil {
			s.logger.Error("Failed to close unit of work", zap.Error(err))
		}
	}()

	methods, err := uow.DeliveryMethods().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery methods: %w", err)
	}
	return methods, nil
}
