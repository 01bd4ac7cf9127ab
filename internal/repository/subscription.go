package repository

import (
	"context"
	"errors"

	"caelis-storefront/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, email string) error
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{db: db}
}

func (r *subscriptionRepoImpl) Create(ctx context.Context, email string) error {
	err := r.db.WithContext(ctx).Create(&model.Subscription{Email: email}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
