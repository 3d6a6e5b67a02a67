package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/wicaksana/hr-workflow/internal/account"
	notificationDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/notification"
	"github.com/wicaksana/hr-workflow/internal/notification"
	"gorm.io/gorm"
)

// NotificationRepository implements the notification.Repository interface using GORM
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	dm := &notificationDatamodel.Notification{
		UserID:      int64(n.UserID),
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Read:        false,
		RequestKind: n.RequestKind,
		RequestID:   n.RequestID,
		DedupeKey:   uuid.NewString(),
		CreatedAt:   time.Now(),
	}

	if err := r.db.Create(dm).Error; err != nil {
		return err
	}

	n.ID = dm.ID
	n.CreatedAt = dm.CreatedAt
	return nil
}

func (r *NotificationRepository) Delete(id int64) error {
	return r.db.Delete(&notificationDatamodel.Notification{}, id).Error
}

func (r *NotificationRepository) ListByUser(userID account.ID, limit, offset int) ([]*notification.Notification, error) {
	var dms []*notificationDatamodel.Notification
	err := r.db.Where("user_id = ?", int64(userID)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return notification.FromDataModelSlice(dms), nil
}

func (r *NotificationRepository) MarkRead(id int64, userID account.ID) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("id = ? AND user_id = ?", id, int64(userID)).
		Update("read", true).Error
}
