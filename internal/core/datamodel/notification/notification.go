package notification

import "time"

type Notification struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Type        string    `gorm:"column:type;not null"`
	Title       string    `gorm:"column:title;not null"`
	Message     string    `gorm:"column:message;not null"`
	Read        bool      `gorm:"column:read;default:false"`
	RequestKind *string   `gorm:"column:request_kind"`
	RequestID   *int64    `gorm:"column:request_id"`
	DedupeKey   string    `gorm:"column:dedupe_key;uniqueIndex"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Notification) TableName() string {
	return "notifications"
}
