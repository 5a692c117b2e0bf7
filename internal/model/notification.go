package model

import "github.com/google/uuid"

// NotificationType enumerates the stock alert categories.
type NotificationType string

const (
	NotificationLowStock     NotificationType = "LOW_STOCK"
	NotificationOutOfStock   NotificationType = "OUT_OF_STOCK"
	NotificationReorderAlert NotificationType = "REORDER_ALERT"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLowStock, NotificationOutOfStock, NotificationReorderAlert:
		return true
	}
	return false
}

// Notification is a fire-and-forget record created as a side effect of
// inventory mutation. Read is one-way: once true it can never be unset.
type Notification struct {
	BaseModel
	Type    NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message string           `gorm:"type:text;not null" json:"message"`
	UserID  *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Read    bool             `gorm:"not null;default:false" json:"read"`
}

// NewNotification builds an unread notification.
func NewNotification(typ NotificationType, message string, userID *uuid.UUID) (*Notification, error) {
	if !typ.Valid() {
		return nil, NewValidationError("unknown notification type '%s'", typ)
	}
	if message == "" {
		return nil, NewValidationError("notification message is required")
	}
	return &Notification{
		Type:    typ,
		Message: message,
		UserID:  userID,
		Read:    false,
	}, nil
}

// MarkAsRead flips the read flag. Idempotent: marking an already-read
// notification again is a no-op, not an error.
func (n *Notification) MarkAsRead() {
	n.Read = true
}
