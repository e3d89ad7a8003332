package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pancakehouse/backend/internal/logging"
	"github.com/pancakehouse/backend/internal/models"
	"github.com/pancakehouse/backend/internal/repo"
)

type OrderService struct {
	Users   *repo.UserRepo
	Catalog *repo.CatalogRepo
	Orders  *repo.OrderRepo
}

type OrderItemInput struct {
	PancakeID  uint   `json:"pancake_id"`
	SizeID     *uint  `json:"size_id"`
	Quantity   int    `json:"quantity"`
	ToppingIDs []uint `json:"topping_ids"`
}

type CreateOrderInput struct {
	UserID uint             `json:"user_id"`
	Items  []OrderItemInput `json:"items"`
	Notes  *string          `json:"notes"`
}

// CreateOrder validates every referenced catalog row, snapshots prices and
// persists the whole order in one transaction. Any validation failure
// happens before the first write.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create_order")

	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	exists, err := s.Users.Exists(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d does not exist", ErrValidation, in.UserID)
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))

	for i := range in.Items {
		item := &in.Items[i]
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}

		pancake, err := s.Catalog.GetPancake(ctx, item.PancakeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pancake %d does not exist", ErrValidation, item.PancakeID)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if !pancake.IsAvailable {
			return nil, fmt.Errorf("%w: pancake %d is not available", ErrValidation, item.PancakeID)
		}

		var size *models.Size
		if item.SizeID != nil {
			size, err = s.Catalog.GetSize(ctx, *item.SizeID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: size %d does not exist", ErrValidation, *item.SizeID)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStorage, err)
			}
			if size.PancakeID != item.PancakeID {
				return nil, fmt.Errorf("%w: size %d does not belong to pancake %d", ErrValidation, *item.SizeID, item.PancakeID)
			}
		}

		snapshots := make([]models.OrderItemTopping, 0, len(item.ToppingIDs))
		toppingPrices := make([]decimal.Decimal, 0, len(item.ToppingIDs))
		for _, tid := range item.ToppingIDs {
			topping, err := s.Catalog.GetTopping(ctx, tid)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: topping %d does not exist", ErrValidation, tid)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStorage, err)
			}
			if !topping.IsAvailable {
				return nil, fmt.Errorf("%w: topping %d is not available", ErrValidation, tid)
			}
			snapshots = append(snapshots, models.OrderItemTopping{
				ToppingID:    topping.ID,
				ToppingPrice: topping.Price,
			})
			toppingPrices = append(toppingPrices, topping.Price)
		}

		unitPrice := UnitPrice(pancake, size)
		total = total.Add(LineTotal(unitPrice, uint(item.Quantity), toppingPrices))

		items = append(items, models.OrderItem{
			PancakeID: item.PancakeID,
			SizeID:    item.SizeID,
			Quantity:  uint(item.Quantity),
			UnitPrice: unitPrice,
			Toppings:  snapshots,
		})
	}

	order := &models.Order{
		UserID:      in.UserID,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		Notes:       in.Notes,
		Items:       items,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		l.Error("create_order_error", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	l.Info("order_created", "order_id", order.ID, "user_id", order.UserID, "total", order.TotalAmount)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Orders.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.Orders.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.Orders.ListAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return orders, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status")

	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Orders.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if !CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.Orders.UpdateStatus(ctx, order, status); err != nil {
		l.Error("update_status_error", "order_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	l.Info("order_status_changed", "order_id", id, "status", status)
	return order, nil
}
