package balance_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wicaksana/hr-workflow/internal/balance"
	"github.com/wicaksana/hr-workflow/internal/org"
)

func TestBalanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Balance Service Suite")
}

type balanceKey struct {
	employeeID org.EmployeeID
	leaveType  string
}

// Mock repository for testing
type mockBalanceRepository struct {
	balances   map[balanceKey]*balance.LeaveBalance
	nextID     int64
	applyError error
}

func newMockBalanceRepository() *mockBalanceRepository {
	return &mockBalanceRepository{
		balances: make(map[balanceKey]*balance.LeaveBalance),
		nextID:   1,
	}
}

func (m *mockBalanceRepository) Get(employeeID org.EmployeeID, leaveType string) (*balance.LeaveBalance, error) {
	b, exists := m.balances[balanceKey{employeeID, leaveType}]
	if !exists {
		return nil, nil
	}
	return b, nil
}

func (m *mockBalanceRepository) ListByEmployee(employeeID org.EmployeeID) ([]*balance.LeaveBalance, error) {
	var out []*balance.LeaveBalance
	for key, b := range m.balances {
		if key.employeeID == employeeID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBalanceRepository) ApplyDelta(employeeID org.EmployeeID, leaveType string, deltaDays int) error {
	if m.applyError != nil {
		return m.applyError
	}
	key := balanceKey{employeeID, leaveType}
	b, exists := m.balances[key]
	if !exists {
		b = &balance.LeaveBalance{ID: m.nextID, EmployeeID: employeeID, LeaveType: leaveType}
		m.nextID++
		m.balances[key] = b
	}
	b.RemainingDays += deltaDays
	return nil
}

var _ = Describe("BalanceService", func() {
	var (
		svc      *balance.Service
		mockRepo *mockBalanceRepository
	)

	BeforeEach(func() {
		mockRepo = newMockBalanceRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = balance.NewService(mockRepo, logger)
	})

	Describe("Adjust", func() {
		It("should apply signed adjustments cumulatively", func() {
			Expect(svc.Adjust(1, "annual", 20)).To(Succeed())
			Expect(svc.Adjust(1, "annual", -3)).To(Succeed())

			remaining, err := svc.Remaining(1, "annual")
			Expect(err).ToNot(HaveOccurred())
			Expect(remaining).To(Equal(17))
		})

		It("should allow the balance to go negative", func() {
			Expect(svc.Adjust(1, "annual", -5)).To(Succeed())

			remaining, err := svc.Remaining(1, "annual")
			Expect(err).ToNot(HaveOccurred())
			Expect(remaining).To(Equal(-5))
		})

		It("should track categories independently", func() {
			Expect(svc.Adjust(1, "annual", 20)).To(Succeed())
			Expect(svc.Adjust(1, "sick", 10)).To(Succeed())
			Expect(svc.Adjust(1, "sick", -2)).To(Succeed())

			annual, _ := svc.Remaining(1, "annual")
			sick, _ := svc.Remaining(1, "sick")
			Expect(annual).To(Equal(20))
			Expect(sick).To(Equal(8))
		})

		It("should surface repository errors", func() {
			mockRepo.applyError = errors.New("db down")

			Expect(svc.Adjust(1, "annual", -1)).ToNot(Succeed())
		})
	})

	Describe("Remaining", func() {
		It("should report zero for an employee with no row", func() {
			remaining, err := svc.Remaining(42, "annual")

			Expect(err).ToNot(HaveOccurred())
			Expect(remaining).To(BeZero())
		})
	})

	Describe("ListByEmployee", func() {
		It("should return only the employee's balances", func() {
			Expect(svc.Adjust(1, "annual", 20)).To(Succeed())
			Expect(svc.Adjust(1, "sick", 10)).To(Succeed())
			Expect(svc.Adjust(2, "annual", 20)).To(Succeed())

			balances, err := svc.ListByEmployee(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(balances).To(HaveLen(2))
		})
	})
})
