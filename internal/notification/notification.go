package notification

import (
	"time"

	"github.com/wicaksana/hr-workflow/internal/account"
	notificationDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/notification"
)

// Notification types emitted by the workflow engine.
const (
	TypeRequestSubmitted = "request_submitted"
	TypeRequestDecided   = "request_decided"
)

// Notification is one inbox record. UserID is an account identifier;
// the account.ID type keeps employee record ids out of this field.
type Notification struct {
	ID          int64      `json:"id"`
	UserID      account.ID `json:"user_id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Read        bool       `json:"read"`
	RequestKind *string    `json:"request_kind,omitempty"`
	RequestID   *int64     `json:"request_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RequestRef points a notification back at the request that caused it.
type RequestRef struct {
	Kind string
	ID   int64
}

func FromDataModel(n *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:          n.ID,
		UserID:      account.ID(n.UserID),
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		RequestKind: n.RequestKind,
		RequestID:   n.RequestID,
		CreatedAt:   n.CreatedAt,
	}
}

func FromDataModelSlice(dms []*notificationDatamodel.Notification) []*Notification {
	result := make([]*Notification, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
