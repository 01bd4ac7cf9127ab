package repository

import (
	"context"
	"errors"
	"time"

	"caelis-storefront/internal/model"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("repository: record not found")
	ErrDuplicate = errors.New("repository: duplicate key")
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	// MarkPaid moves a created order to paid and records the payment id.
	// Returns false without error when the order is unknown or already
	// terminal, so both reconciliation paths can race safely.
	MarkPaid(ctx context.Context, orderID, paymentID string) (bool, error)
	// MarkFailed moves a created order to failed. Same race semantics.
	MarkFailed(ctx context.Context, orderID string) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *orderRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where("order_id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID, paymentID string) (bool, error) {
	// status guard is the compare-and-set: the row lock serializes
	// concurrent writers, losers see zero rows affected
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusPaid,
			"payment_id": paymentID,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) MarkFailed(ctx context.Context, orderID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusFailed,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
