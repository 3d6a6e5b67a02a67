package balance

import (
	"log/slog"

	"github.com/wicaksana/hr-workflow/internal/org"
)

// Repository defines the data access methods for leave balances.
type Repository interface {
	Get(employeeID org.EmployeeID, leaveType string) (*LeaveBalance, error)
	ListByEmployee(employeeID org.EmployeeID) ([]*LeaveBalance, error)
	// ApplyDelta adds deltaDays to the row, creating it at zero first if
	// it does not exist yet.
	ApplyDelta(employeeID org.EmployeeID, leaveType string, deltaDays int) error
}

// Service is the leave balance ledger.
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

// Adjust applies a signed day adjustment. No lower bound is enforced;
// an employee can go negative.
func (s *Service) Adjust(employeeID org.EmployeeID, leaveType string, deltaDays int) error {
	if err := s.repo.ApplyDelta(employeeID, leaveType, deltaDays); err != nil {
		s.logger.Error("balance adjustment failed",
			"error", err,
			"employee_id", employeeID,
			"leave_type", leaveType,
			"delta_days", deltaDays)
		return err
	}

	s.logger.Info("leave balance adjusted",
		"employee_id", employeeID,
		"leave_type", leaveType,
		"delta_days", deltaDays)
	return nil
}

// Remaining reports the current balance, zero if no row exists yet.
func (s *Service) Remaining(employeeID org.EmployeeID, leaveType string) (int, error) {
	b, err := s.repo.Get(employeeID, leaveType)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, nil
	}
	return b.RemainingDays, nil
}

// ListByEmployee returns every category balance the employee holds.
func (s *Service) ListByEmployee(employeeID org.EmployeeID) ([]*LeaveBalance, error) {
	return s.repo.ListByEmployee(employeeID)
}
