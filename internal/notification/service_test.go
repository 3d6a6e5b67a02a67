package notification_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wicaksana/hr-workflow/internal/account"
	"github.com/wicaksana/hr-workflow/internal/notification"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

// Mock repository for testing
type mockNotificationRepository struct {
	notifications map[int64]*notification.Notification
	nextID        int64
	createError   error
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{
		notifications: make(map[int64]*notification.Notification),
		nextID:        1,
	}
}

func (m *mockNotificationRepository) Create(n *notification.Notification) error {
	if m.createError != nil {
		return m.createError
	}
	n.ID = m.nextID
	m.nextID++
	copy := *n
	m.notifications[n.ID] = &copy
	return nil
}

func (m *mockNotificationRepository) Delete(id int64) error {
	delete(m.notifications, id)
	return nil
}

func (m *mockNotificationRepository) ListByUser(userID account.ID, limit, offset int) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) MarkRead(id int64, userID account.ID) error {
	n, exists := m.notifications[id]
	if !exists || n.UserID != userID {
		return errors.New("notification not found")
	}
	n.Read = true
	return nil
}

var _ = Describe("NotificationService", func() {
	var (
		svc      *notification.Service
		mockRepo *mockNotificationRepository
	)

	BeforeEach(func() {
		mockRepo = newMockNotificationRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = notification.NewService(mockRepo, logger)
	})

	Describe("Notify", func() {
		It("should create an inbox record and return its id", func() {
			id, err := svc.Notify(100, notification.TypeRequestSubmitted, "New leave request", "Details", &notification.RequestRef{Kind: "leave", ID: 7})

			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))

			stored := mockRepo.notifications[id]
			Expect(stored.UserID).To(Equal(account.ID(100)))
			Expect(*stored.RequestKind).To(Equal("leave"))
			Expect(*stored.RequestID).To(Equal(int64(7)))
			Expect(stored.Read).To(BeFalse())
		})

		It("should allow a nil request reference", func() {
			id, err := svc.Notify(100, notification.TypeRequestDecided, "Decided", "Details", nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.notifications[id].RequestKind).To(BeNil())
		})

		It("should surface repository errors", func() {
			mockRepo.createError = errors.New("db down")

			_, err := svc.Notify(100, notification.TypeRequestSubmitted, "t", "m", nil)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Revoke", func() {
		It("should remove the record", func() {
			id, err := svc.Notify(100, notification.TypeRequestSubmitted, "t", "m", nil)
			Expect(err).ToNot(HaveOccurred())

			Expect(svc.Revoke(id)).To(Succeed())
			Expect(mockRepo.notifications).To(BeEmpty())
		})
	})

	Describe("MarkRead", func() {
		It("should only mark the owning account's notification", func() {
			id, err := svc.Notify(100, notification.TypeRequestSubmitted, "t", "m", nil)
			Expect(err).ToNot(HaveOccurred())

			Expect(svc.MarkRead(id, 999)).ToNot(Succeed())
			Expect(svc.MarkRead(id, 100)).To(Succeed())
			Expect(mockRepo.notifications[id].Read).To(BeTrue())
		})
	})

	Describe("Inbox", func() {
		It("should return only the account's notifications", func() {
			_, err := svc.Notify(100, notification.TypeRequestSubmitted, "t", "m", nil)
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Notify(200, notification.TypeRequestSubmitted, "t", "m", nil)
			Expect(err).ToNot(HaveOccurred())

			inbox, err := svc.Inbox(100, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(inbox).To(HaveLen(1))
		})
	})
})
