package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByID(id uuid.UUID) (*model.Notification, error)
	// FindByUser returns a user's notifications plus the broadcast ones
	// that have no target user.
	FindByUser(userID uuid.UUID) ([]model.Notification, error)
	CountUnread(userID uuid.UUID) (int64, error)
	Update(notification *model.Notification) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepo) FindByID(id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	err := r.db.First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) FindByUser(userID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("(user_id = ? OR user_id IS NULL) AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) Update(notification *model.Notification) error {
	return r.db.Save(notification).Error
}
