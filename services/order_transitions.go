package services

import (
	"errors"
	"fmt"

	"dashboard/entity"

	"gorm.io/gorm"
)

var orderTransitions = map[string][]string{
	entity.OrderPending:    {entity.OrderPreparing, entity.OrderCancelled},
	entity.OrderPreparing:  {entity.OrderDelivering, entity.OrderCancelled},
	entity.OrderDelivering: {entity.OrderCompleted},
}

func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order along the lifecycle. The update is guarded on
// the current status; losing a race returns ErrConflict.
func (s *OrderService) UpdateStatus(orderID uint, to string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(to) {
		return nil, invalid("unknown order status %q", to)
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var o entity.Order
		if err := tx.Select("id, status").First(&o, orderID).Error; err != nil {
			return wrapDB(fmt.Sprintf("order %d", orderID), err)
		}
		if !CanTransition(o.Status, to) {
			return fmt.Errorf("%s -> %s: %w", o.Status, to, ErrInvalidTransition)
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return s.Detail(orderID)
}
