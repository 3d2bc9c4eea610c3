package repository

import (
	"context"
	"errors"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	repo "github.com/IcaroDrumond17/onhappy/internal/repository"

	"gorm.io/gorm"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// 未読が先、各グループ内は新しい順。
func (r *NotificationGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Notification, error) {
	var items []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed asc").
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Notification{}, err
	}
	return items, nil
}

func (r *NotificationGormRepository) FindByID(ctx context.Context, notificationID int64) (model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).Where("id = ?", notificationID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Notification{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (r *NotificationGormRepository) MarkViewed(ctx context.Context, notificationID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", notificationID).
		Update("viewed", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
