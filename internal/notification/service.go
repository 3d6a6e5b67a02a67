package notification

import (
	"log/slog"

	"github.com/wicaksana/hr-workflow/internal/account"
)

// Repository defines the data access methods for notifications.
type Repository interface {
	Create(n *Notification) error
	Delete(id int64) error
	ListByUser(userID account.ID, limit, offset int) ([]*Notification, error)
	MarkRead(id int64, userID account.ID) error
}

// Service is the notification dispatcher. Creation is the whole job:
// delivery and read tracking belong to the inbox UI.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Notify creates one inbox record addressed to an account. The id and
// created timestamp are filled in by the store; the created id is
// returned so callers can compensate if a later write fails.
func (s *Service) Notify(userID account.ID, notifType, title, message string, ref *RequestRef) (int64, error) {
	n := &Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if ref != nil {
		kind := ref.Kind
		id := ref.ID
		n.RequestKind = &kind
		n.RequestID = &id
	}

	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create notification",
			"error", err,
			"user_id", userID,
			"type", notifType)
		return 0, err
	}

	s.logger.Info("notification created",
		"notification_id", n.ID,
		"user_id", userID,
		"type", notifType)
	return n.ID, nil
}

// Revoke removes a notification created earlier in a multi-write
// operation that had to be compensated.
func (s *Service) Revoke(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to revoke notification", "error", err, "notification_id", id)
		return err
	}
	return nil
}

// Inbox returns the newest notifications for an account.
func (s *Service) Inbox(userID account.ID, limit, offset int) ([]*Notification, error) {
	return s.repo.ListByUser(userID, limit, offset)
}

// MarkRead flips the read flag; scoped to the owning account.
func (s *Service) MarkRead(id int64, userID account.ID) error {
	return s.repo.MarkRead(id, userID)
}
