package service

import (
	"errors"
	"fmt"
	"log"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService interface {
	Create(typ model.NotificationType, message string, userID *uuid.UUID) (*model.Notification, error)
	// NotifyLowStock records a LOW_STOCK alert for the inventory's
	// product. Failures are logged and swallowed; a missing alert never
	// fails the mutation that triggered it.
	NotifyLowStock(inv *model.Inventory)
	GetUserNotifications(userID uuid.UUID) ([]model.Notification, error)
	GetUnreadCount(userID uuid.UUID) (int64, error)
	MarkAsRead(id uuid.UUID) (*model.Notification, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	wsHub            *ws.Hub
}

func NewNotificationService(repo repository.NotificationRepository, hub *ws.Hub) NotificationService {
	return &notificationService{notificationRepo: repo, wsHub: hub}
}

func (s *notificationService) Create(typ model.NotificationType, message string, userID *uuid.UUID) (*model.Notification, error) {
	notification, err := model.NewNotification(typ, message, userID)
	if err != nil {
		return nil, err
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, model.NewPersistenceError("notification.create", err)
	}
	return notification, nil
}

func (s *notificationService) NotifyLowStock(inv *model.Inventory) {
	message := fmt.Sprintf("Product %s is low on stock. Current: %d", inv.ProductID, inv.CurrentStock)
	notification, err := s.Create(model.NotificationLowStock, message, nil)
	if err != nil {
		log.Printf("Warning: failed to create low-stock notification for product %s: %v", inv.ProductID, err)
		return
	}
	s.wsHub.BroadcastEvent("low_stock", map[string]interface{}{
		"notification_id": notification.ID,
		"product_id":      inv.ProductID,
		"current_stock":   inv.CurrentStock,
		"threshold":       inv.ReorderThreshold,
		"message":         message,
	})
}

func (s *notificationService) GetUserNotifications(userID uuid.UUID) ([]model.Notification, error) {
	notifications, err := s.notificationRepo.FindByUser(userID)
	if err != nil {
		return nil, model.NewPersistenceError("notification.findByUser", err)
	}
	return notifications, nil
}

func (s *notificationService) GetUnreadCount(userID uuid.UUID) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, model.NewPersistenceError("notification.countUnread", err)
	}
	return count, nil
}

// MarkAsRead flips the read flag. Marking an already-read notification is
// a no-op, not an error.
func (s *notificationService) MarkAsRead(id uuid.UUID) (*model.Notification, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("notification", id.String())
		}
		return nil, model.NewPersistenceError("notification.findByID", err)
	}

	if notification.Read {
		return notification, nil
	}

	notification.MarkAsRead()
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, model.NewPersistenceError("notification.update", err)
	}
	return notification, nil
}
