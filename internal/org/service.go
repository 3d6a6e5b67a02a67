package org

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wicaksana/hr-workflow/internal"
	"github.com/wicaksana/hr-workflow/internal/core/events"
)

// Repository defines the employee and department directory access the
// org workflows need.
type Repository interface {
	GetEmployee(id EmployeeID) (*Employee, error)
	GetEmployeeByEmail(email string) (*Employee, error)
	GetDepartment(id DepartmentID) (*Department, error)
	// DepartmentsManagedBy returns every department whose manager_id is
	// the given employee. The headship invariant allows at most one.
	DepartmentsManagedBy(id EmployeeID) ([]*Department, error)
	EmployeesByDepartment(id DepartmentID) ([]*Employee, error)
	UpdateEmployee(e *Employee) error
	UpdateDepartment(d *Department) error
}

// TxRepository additionally runs a function against a repository bound
// to a single database transaction. Every multi-record write in this
// package goes through InTx so a failed write never leaves a department
// pointing at a head whose role was not updated.
type TxRepository interface {
	Repository
	InTx(fn func(Repository) error) error
}

// Service implements headship succession and employee transfer.
type Service struct {
	repo   TxRepository
	bus    events.Publisher
	logger *slog.Logger
}

func NewService(repo TxRepository, bus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ResolveDeparture decides the headship outcome for an employee leaving
// their department and applies the structural updates in one transaction.
func (s *Service) ResolveDeparture(ctx context.Context, employeeID EmployeeID) (*Departure, error) {
	var departure *Departure

	err := s.repo.InTx(func(r Repository) error {
		emp, err := r.GetEmployee(employeeID)
		if err != nil {
			return err
		}

		d, err := s.resolveDeparture(r, emp)
		if err != nil {
			return err
		}
		departure = d
		return nil
	})
	if err != nil {
		s.logger.Error("succession resolution failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.publishSuccessionEvents(ctx, employeeID, departure)
	return departure, nil
}

// resolveDeparture runs inside an open transaction. The departing
// employee is always demoted to member; the department either promotes
// its deputy or goes headless.
func (s *Service) resolveDeparture(r Repository, emp *Employee) (*Departure, error) {
	managed, err := r.DepartmentsManagedBy(emp.ID)
	if err != nil {
		return nil, err
	}

	if len(managed) == 0 {
		// A departing deputy leaves no succession to run, but the
		// department must not keep pointing at them as successor.
		if emp.Role == RoleDeputy && emp.DepartmentID != nil {
			if err := s.clearDeputyPointer(r, emp); err != nil {
				return nil, err
			}
		}
		return &Departure{WasHead: false, Action: ActionNone}, nil
	}

	if len(managed) > 1 {
		// Structural invariant broken upstream; refuse to guess which
		// department to touch.
		s.logger.Error("employee heads multiple departments",
			"employee_id", emp.ID,
			"department_count", len(managed))
		return nil, internal.ErrHeadshipConflict
	}

	dept := managed[0]
	deptID := dept.ID
	departure := &Departure{WasHead: true, DepartmentID: &deptID}

	if dept.DeputyManagerID != nil {
		deputyID := *dept.DeputyManagerID

		deputy, err := r.GetEmployee(deputyID)
		if err != nil {
			return nil, fmt.Errorf("load deputy %d: %w", deputyID, err)
		}

		dept.ManagerID = &deputyID
		dept.DeputyManagerID = nil
		dept.UpdatedAt = time.Now()
		if err := r.UpdateDepartment(dept); err != nil {
			return nil, err
		}

		deputy.Role = RoleHead
		deputy.UpdatedAt = time.Now()
		if err := r.UpdateEmployee(deputy); err != nil {
			return nil, err
		}

		emp.Demote()
		if err := r.UpdateEmployee(emp); err != nil {
			return nil, err
		}

		departure.Action = ActionPromotedDeputy
		departure.PromotedDeputyID = &deputyID

		s.logger.Info("deputy promoted to department head",
			"department_id", dept.ID,
			"departed_head_id", emp.ID,
			"promoted_deputy_id", deputyID)
		return departure, nil
	}

	// No deputy: the department goes headless. Legitimate terminal
	// state, surfaced as a warning to the caller.
	dept.ManagerID = nil
	dept.UpdatedAt = time.Now()
	if err := r.UpdateDepartment(dept); err != nil {
		return nil, err
	}

	emp.Demote()
	if err := r.UpdateEmployee(emp); err != nil {
		return nil, err
	}

	departure.Action = ActionClearedHead

	s.logger.Warn("department left without a head",
		"department_id", dept.ID,
		"departed_head_id", emp.ID)
	return departure, nil
}

func (s *Service) clearDeputyPointer(r Repository, emp *Employee) error {
	dept, err := r.GetDepartment(*emp.DepartmentID)
	if err != nil {
		return err
	}
	if dept.DeputyManagerID == nil || *dept.DeputyManagerID != emp.ID {
		return nil
	}
	dept.DeputyManagerID = nil
	dept.UpdatedAt = time.Now()
	return r.UpdateDepartment(dept)
}

// Transfer moves an employee into a new department. Succession runs
// first; the employee then lands in the destination as a plain member
// regardless of any role they held. Transferring into the current
// department is a permitted no-op move that still runs succession.
func (s *Service) Transfer(ctx context.Context, employeeID EmployeeID, newDepartmentID DepartmentID) (*TransferResult, error) {
	var result *TransferResult

	err := s.repo.InTx(func(r Repository) error {
		emp, err := r.GetEmployee(employeeID)
		if err != nil {
			return err
		}

		// Destination must exist before any structural change is made.
		if _, err := r.GetDepartment(newDepartmentID); err != nil {
			return err
		}

		departure, err := s.resolveDeparture(r, emp)
		if err != nil {
			return err
		}

		destID := newDepartmentID
		emp.DepartmentID = &destID
		emp.Demote()
		if err := r.UpdateEmployee(emp); err != nil {
			return err
		}

		result = &TransferResult{
			EmployeeID:   employeeID,
			DepartmentID: newDepartmentID,
			Succession:   *departure,
		}
		if departure.Action == ActionClearedHead && departure.DepartmentID != nil {
			result.Warning = fmt.Sprintf("department %d has no head assigned; appoint a new head manually", *departure.DepartmentID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("transfer failed", "error", err,
			"employee_id", employeeID,
			"new_department_id", newDepartmentID)
		return nil, err
	}

	s.logger.Info("employee transferred",
		"employee_id", employeeID,
		"new_department_id", newDepartmentID,
		"succession_action", result.Succession.Action)

	s.publishSuccessionEvents(ctx, employeeID, &result.Succession)
	if s.bus != nil {
		fromDept := int64(0)
		if result.Succession.DepartmentID != nil {
			fromDept = int64(*result.Succession.DepartmentID)
		}
		_ = s.bus.Publish(ctx, events.NewEmployeeTransferred(int64(employeeID), fromDept, int64(newDepartmentID)))
	}

	return result, nil
}

// GetDepartment exposes department state to the REST layer.
func (s *Service) GetDepartment(id DepartmentID) (*Department, error) {
	return s.repo.GetDepartment(id)
}

// GetEmployee exposes employee state to the REST layer.
func (s *Service) GetEmployee(id EmployeeID) (*Employee, error) {
	return s.repo.GetEmployee(id)
}

// GetEmployeeByEmail bridges account emails to employee records.
func (s *Service) GetEmployeeByEmail(email string) (*Employee, error) {
	return s.repo.GetEmployeeByEmail(email)
}

// ListDepartmentMembers returns everyone currently assigned to the
// department.
func (s *Service) ListDepartmentMembers(id DepartmentID) ([]*Employee, error) {
	if _, err := s.repo.GetDepartment(id); err != nil {
		return nil, err
	}
	return s.repo.EmployeesByDepartment(id)
}

func (s *Service) publishSuccessionEvents(ctx context.Context, departedID EmployeeID, d *Departure) {
	if s.bus == nil || d == nil || d.DepartmentID == nil {
		return
	}
	switch d.Action {
	case ActionPromotedDeputy:
		if d.PromotedDeputyID != nil {
			_ = s.bus.Publish(ctx, events.NewDeputyPromoted(int64(*d.DepartmentID), int64(departedID), int64(*d.PromotedDeputyID)))
		}
	case ActionClearedHead:
		_ = s.bus.Publish(ctx, events.NewDepartmentHeadless(int64(*d.DepartmentID), int64(departedID)))
	}
}
