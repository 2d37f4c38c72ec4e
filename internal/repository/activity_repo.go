package repository

import (
	"context"

	"crm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository is append-only: activities are never updated or removed.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	return GetDB(ctx, r.db).Create(activity).Error
}

func (r *activityRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Activity, error) {
	activities := make([]model.Activity, 0)
	err := GetDB(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
