package request

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wicaksana/hr-workflow/internal"
	"github.com/wicaksana/hr-workflow/internal/account"
	"github.com/wicaksana/hr-workflow/internal/core/events"
	"github.com/wicaksana/hr-workflow/internal/notification"
	"github.com/wicaksana/hr-workflow/internal/org"
)

// Repository defines the data access methods for leave and expense
// requests.
type Repository interface {
	Create(req *Request) error
	GetByID(kind Kind, id int64) (*Request, error)
	ListByEmployee(kind Kind, employeeID org.EmployeeID, limit, offset int) ([]*Request, error)
	ListByDepartment(kind Kind, departmentID org.DepartmentID, limit, offset int) ([]*Request, error)
	// UpdateDecision persists the decision fields, guarded on the row
	// still being pending. Returns internal.ErrRequestAlreadyDecided
	// when another decision won the race.
	UpdateDecision(req *Request) error
	// RevertDecision puts a just-decided request back to pending,
	// clearing the decision fields. Used only as compensation when a
	// follow-up write fails.
	RevertDecision(kind Kind, id int64) error
	SetNotified(kind Kind, id int64) error
}

// Ledger is the leave balance collaborator.
type Ledger interface {
	Adjust(employeeID org.EmployeeID, leaveType string, deltaDays int) error
}

// Notifier is the notification dispatcher collaborator.
type Notifier interface {
	Notify(userID account.ID, notifType, title, message string, ref *notification.RequestRef) (int64, error)
	Revoke(id int64) error
}

// Directory resolves employee and department records.
type Directory interface {
	GetEmployee(id org.EmployeeID) (*org.Employee, error)
	GetEmployeeByEmail(email string) (*org.Employee, error)
	GetDepartment(id org.DepartmentID) (*org.Department, error)
}

// Accounts bridges employee emails to account identifiers. Account ids
// are the only valid notification addressees.
type Accounts interface {
	GetByEmail(email string) (*account.Account, error)
}

// Decider identifies the manager taking a decision.
type Decider struct {
	AccountID account.ID
	Email     string
	IsManager bool
}

// Service owns the pending -> approved/rejected lifecycle for leave and
// expense requests.
type Service struct {
	repo      Repository
	ledger    Ledger
	notifier  Notifier
	directory Directory
	accounts  Accounts
	bus       events.Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, ledger Ledger, notifier Notifier, directory Directory, accounts Accounts, bus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		notifier:  notifier,
		directory: directory,
		accounts:  accounts,
		bus:       bus,
		logger:    logger,
	}
}

// SubmitLeave creates a pending leave request. The requested days are
// reserved against the employee's balance at submission time; neither
// approval nor rejection adjusts the balance again. If persisting the
// request fails after the reservation, the reservation is restored.
func (s *Service) SubmitLeave(ctx context.Context, employeeID org.EmployeeID, dto SubmitLeaveDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("leave request validation failed", "error", err, "employee_id", employeeID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	emp, err := s.directory.GetEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if emp.DepartmentID == nil {
		return nil, internal.NewValidationError("employee is not assigned to a department", internal.ErrCodeValidationFailed)
	}

	start, end := dto.Dates()
	duration := InclusiveDays(start, end)

	if err := s.ledger.Adjust(employeeID, dto.LeaveType, -duration); err != nil {
		return nil, err
	}

	now := time.Now()
	req := &Request{
		Kind:         KindLeave,
		EmployeeID:   employeeID,
		DepartmentID: *emp.DepartmentID,
		Status:       StatusPending,
		LeaveType:    dto.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       dto.Reason,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to persist leave request, restoring reserved days",
			"error", err,
			"employee_id", employeeID,
			"duration_days", duration)
		if restoreErr := s.ledger.Adjust(employeeID, dto.LeaveType, duration); restoreErr != nil {
			s.logger.Error("balance restore failed after create failure",
				"error", restoreErr,
				"employee_id", employeeID)
		}
		return nil, err
	}

	s.logger.Info("leave request submitted",
		"request_id", req.ID,
		"employee_id", employeeID,
		"leave_type", dto.LeaveType,
		"duration_days", duration)

	s.notifyDepartmentHead(req, emp)
	s.publishSubmitted(ctx, req)

	return req, nil
}

// SubmitExpense creates a pending expense request. Expenses carry no
// balance accounting.
func (s *Service) SubmitExpense(ctx context.Context, employeeID org.EmployeeID, dto SubmitExpenseDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense request validation failed", "error", err, "employee_id", employeeID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	emp, err := s.directory.GetEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if emp.DepartmentID == nil {
		return nil, internal.NewValidationError("employee is not assigned to a department", internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	req := &Request{
		Kind:         KindExpense,
		EmployeeID:   employeeID,
		DepartmentID: *emp.DepartmentID,
		Status:       StatusPending,
		Category:     dto.Category,
		Amount:       dto.Amount,
		Currency:     dto.Currency,
		Description:  dto.Description,
		ReceiptURL:   dto.ReceiptURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to persist expense request", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("expense request submitted",
		"request_id", req.ID,
		"employee_id", employeeID,
		"category", dto.Category,
		"amount", dto.Amount.StringFixed(2),
		"currency", dto.Currency)

	s.notifyDepartmentHead(req, emp)
	s.publishSubmitted(ctx, req)

	return req, nil
}

// notifyDepartmentHead addresses the head's account, if the department
// has a head and the head has a linked account. A department without a
// head is a valid state: submission succeeds with no notification. A
// failed notification write leaves the notified flag false so the inbox
// entry can be recreated later; the submission itself stands.
func (s *Service) notifyDepartmentHead(req *Request, emp *org.Employee) {
	dept, err := s.directory.GetDepartment(req.DepartmentID)
	if err != nil {
		s.logger.Error("failed to load department for notification", "error", err, "department_id", req.DepartmentID)
		return
	}

	if dept.ManagerID == nil {
		s.logger.Warn("department has no head, skipping submission notification",
			"department_id", dept.ID,
			"request_id", req.ID)
		return
	}

	head, err := s.directory.GetEmployee(*dept.ManagerID)
	if err != nil {
		s.logger.Error("failed to load department head", "error", err, "manager_id", *dept.ManagerID)
		return
	}

	acct, err := s.accounts.GetByEmail(head.Email)
	if err != nil {
		s.logger.Warn("department head has no linked account, skipping submission notification",
			"manager_id", head.ID,
			"request_id", req.ID)
		return
	}

	title := fmt.Sprintf("New %s request from %s", req.Kind, emp.Name)
	message := fmt.Sprintf("%s submitted a %s awaiting your decision.", emp.Name, req.Summary())
	ref := &notification.RequestRef{Kind: string(req.Kind), ID: req.ID}

	if _, err := s.notifier.Notify(acct.ID, notification.TypeRequestSubmitted, title, message, ref); err != nil {
		s.logger.Error("failed to notify department head", "error", err, "request_id", req.ID)
		return
	}

	if err := s.repo.SetNotified(req.Kind, req.ID); err != nil {
		s.logger.Error("failed to flag request as notified", "error", err, "request_id", req.ID)
		return
	}
	req.Notified = true
}

// Decide applies a manager's approval or rejection. The caller must
// hold the manager role and belong to the request's department; the
// submitting employee must have a linked account to receive the
// decision notification. A request already in a terminal state is
// rejected with a conflict.
func (s *Service) Decide(ctx context.Context, kind Kind, requestID int64, decision Decision, note *string, decider Decider) (*Request, error) {
	if !kind.Valid() {
		return nil, internal.NewValidationError("unknown request kind", internal.ErrCodeValidationFailed)
	}
	if !decision.Valid() {
		return nil, internal.NewValidationError("decision must be approved or rejected", internal.ErrCodeValidationFailed)
	}
	if !decider.IsManager {
		s.logger.Warn("decision denied: caller is not a manager",
			"request_id", requestID,
			"account_id", decider.AccountID)
		return nil, internal.ErrManagerRequired
	}

	req, err := s.repo.GetByID(kind, requestID)
	if err != nil {
		return nil, err
	}

	if !req.CanBeDecided() {
		s.logger.Warn("decision denied: request already decided",
			"request_id", requestID,
			"status", req.Status)
		return nil, internal.ErrRequestAlreadyDecided
	}

	// A manager may only decide requests routed to their department.
	deciderEmp, err := s.directory.GetEmployeeByEmail(decider.Email)
	if err != nil {
		return nil, internal.ErrManagerRequired
	}
	if deciderEmp.DepartmentID == nil || *deciderEmp.DepartmentID != req.DepartmentID {
		s.logger.Warn("decision denied: manager outside request department",
			"request_id", requestID,
			"account_id", decider.AccountID,
			"request_department_id", req.DepartmentID)
		return nil, internal.ErrManagerRequired
	}

	emp, err := s.directory.GetEmployee(req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// The decision notification is addressed to the employee's account,
	// resolved through the account directory. No account, no decision.
	acct, err := s.accounts.GetByEmail(emp.Email)
	if err != nil {
		s.logger.Error("cannot decide request: employee has no linked account",
			"request_id", requestID,
			"employee_id", emp.ID)
		return nil, internal.ErrAccountNotFound
	}

	now := time.Now()
	deciderID := decider.AccountID
	req.Status = Status(decision)
	req.ApproverNote = note
	req.ApprovedBy = &deciderID
	req.ApprovedAt = &now
	req.StatusText = fmt.Sprintf("%s by %s on %s", decision, decider.Email, now.Format("2006-01-02"))
	req.UpdatedAt = now

	if err := s.repo.UpdateDecision(req); err != nil {
		s.logger.Error("failed to persist decision", "error", err, "request_id", requestID)
		return nil, err
	}

	// Leave days were already reserved at submission; approval does not
	// touch the balance again, and rejection does not restore it.

	title := fmt.Sprintf("Your %s request was %s", kind, decision)
	message := fmt.Sprintf("Your %s was %s.", req.Summary(), decision)
	if note != nil && *note != "" {
		message = fmt.Sprintf("%s Note: %s", message, *note)
	}
	ref := &notification.RequestRef{Kind: string(kind), ID: req.ID}

	if _, err := s.notifier.Notify(acct.ID, notification.TypeRequestDecided, title, message, ref); err != nil {
		s.logger.Error("failed to notify employee of decision, reverting decision",
			"error", err,
			"request_id", requestID)
		if revertErr := s.repo.RevertDecision(kind, requestID); revertErr != nil {
			s.logger.Error("decision revert failed", "error", revertErr, "request_id", requestID)
		}
		return nil, err
	}

	if err := s.repo.SetNotified(kind, req.ID); err != nil {
		s.logger.Error("failed to flag request as notified", "error", err, "request_id", req.ID)
	} else {
		req.Notified = true
	}

	s.logger.Info("request decided",
		"request_id", requestID,
		"kind", kind,
		"decision", decision,
		"decided_by", decider.AccountID)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewRequestDecided(string(kind), req.ID, string(decision), decider.Email))
	}

	return req, nil
}

// EmployeeByEmail resolves the caller's own employee record when a
// submission does not name one.
func (s *Service) EmployeeByEmail(email string) (*org.Employee, error) {
	return s.directory.GetEmployeeByEmail(email)
}

// GetByID loads one request.
func (s *Service) GetByID(kind Kind, id int64) (*Request, error) {
	return s.repo.GetByID(kind, id)
}

// ListByEmployee returns an employee's requests, newest first.
func (s *Service) ListByEmployee(kind Kind, employeeID org.EmployeeID, limit, offset int) ([]*Request, error) {
	return s.repo.ListByEmployee(kind, employeeID, limit, offset)
}

// ListByDepartment returns a department's requests, newest first. Used
// by managers to review their queue.
func (s *Service) ListByDepartment(kind Kind, departmentID org.DepartmentID, limit, offset int) ([]*Request, error) {
	return s.repo.ListByDepartment(kind, departmentID, limit, offset)
}

func (s *Service) publishSubmitted(ctx context.Context, req *Request) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, events.NewRequestSubmitted(string(req.Kind), req.ID, int64(req.EmployeeID), int64(req.DepartmentID)))
}
