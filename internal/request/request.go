package request

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wicaksana/hr-workflow/internal/account"
	requestDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/request"
	"github.com/wicaksana/hr-workflow/internal/org"
)

// Kind selects one of the two request flavors. Leave and expense
// requests share the same lifecycle and differ only in payload.
type Kind string

const (
	KindLeave   Kind = "leave"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindLeave || k == KindExpense
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// Request is the unified view over leave and expense requests. The
// payload section used depends on Kind; persistence keeps them in
// separate tables.
type Request struct {
	ID           int64            `json:"id"`
	Kind         Kind             `json:"kind"`
	EmployeeID   org.EmployeeID   `json:"employee_id"`
	DepartmentID org.DepartmentID `json:"department_id"`
	Status       Status           `json:"status"`
	StatusText   string           `json:"status_text,omitempty"`
	ApproverNote *string          `json:"approver_note,omitempty"`
	ApprovedBy   *account.ID      `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time       `json:"approved_at,omitempty"`
	Notified     bool             `json:"notified"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Leave payload.
	LeaveType string    `json:"leave_type,omitempty"`
	StartDate time.Time `json:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty"`
	Reason    string    `json:"reason,omitempty"`

	// Expense payload.
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	Description string          `json:"description,omitempty"`
	ReceiptURL  *string         `json:"receipt_url,omitempty"`
}

// CanBeDecided reports whether the request is still pending. Approved
// and rejected are terminal; nothing transitions out of them.
func (r *Request) CanBeDecided() bool {
	return r.Status == StatusPending
}

// DurationDays is the leave length in days, inclusive of both
// endpoints: a request from 2024-03-01 to 2024-03-03 spans 3 days.
func (r *Request) DurationDays() int {
	return InclusiveDays(r.StartDate, r.EndDate)
}

func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Summary is the human-readable payload line used in notifications.
func (r *Request) Summary() string {
	switch r.Kind {
	case KindLeave:
		return fmt.Sprintf("%s leave from %s to %s (%d days)",
			r.LeaveType,
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			r.DurationDays())
	case KindExpense:
		return fmt.Sprintf("%s expense of %s %s", r.Category, r.Amount.StringFixed(2), r.Currency)
	}
	return ""
}

func LeaveFromDataModel(dm *requestDatamodel.LeaveRequest) *Request {
	r := &Request{
		ID:           dm.ID,
		Kind:         KindLeave,
		EmployeeID:   org.EmployeeID(dm.EmployeeID),
		DepartmentID: org.DepartmentID(dm.DepartmentID),
		Status:       Status(dm.Status),
		StatusText:   dm.StatusText,
		ApproverNote: dm.ApproverNote,
		ApprovedAt:   dm.ApprovedAt,
		Notified:     dm.Notified,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
		LeaveType:    dm.LeaveType,
		StartDate:    dm.StartDate,
		EndDate:      dm.EndDate,
		Reason:       dm.Reason,
	}
	if dm.ApprovedBy != nil {
		id := account.ID(*dm.ApprovedBy)
		r.ApprovedBy = &id
	}
	return r
}

func LeaveToDataModel(r *Request) *requestDatamodel.LeaveRequest {
	dm := &requestDatamodel.LeaveRequest{
		ID:           r.ID,
		EmployeeID:   int64(r.EmployeeID),
		DepartmentID: int64(r.DepartmentID),
		LeaveType:    r.LeaveType,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Reason:       r.Reason,
		Status:       string(r.Status),
		StatusText:   r.StatusText,
		ApproverNote: r.ApproverNote,
		ApprovedAt:   r.ApprovedAt,
		Notified:     r.Notified,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ApprovedBy != nil {
		id := int64(*r.ApprovedBy)
		dm.ApprovedBy = &id
	}
	return dm
}

func ExpenseFromDataModel(dm *requestDatamodel.ExpenseRequest) *Request {
	r := &Request{
		ID:           dm.ID,
		Kind:         KindExpense,
		EmployeeID:   org.EmployeeID(dm.EmployeeID),
		DepartmentID: org.DepartmentID(dm.DepartmentID),
		Status:       Status(dm.Status),
		StatusText:   dm.StatusText,
		ApproverNote: dm.ApproverNote,
		ApprovedAt:   dm.ApprovedAt,
		Notified:     dm.Notified,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
		Category:     dm.Category,
		Amount:       dm.Amount,
		Currency:     dm.Currency,
		Description:  dm.Description,
		ReceiptURL:   dm.ReceiptURL,
	}
	if dm.ApprovedBy != nil {
		id := account.ID(*dm.ApprovedBy)
		r.ApprovedBy = &id
	}
	return r
}

func ExpenseToDataModel(r *Request) *requestDatamodel.ExpenseRequest {
	dm := &requestDatamodel.ExpenseRequest{
		ID:           r.ID,
		EmployeeID:   int64(r.EmployeeID),
		DepartmentID: int64(r.DepartmentID),
		Category:     r.Category,
		Amount:       r.Amount,
		Currency:     r.Currency,
		Description:  r.Description,
		ReceiptURL:   r.ReceiptURL,
		Status:       string(r.Status),
		StatusText:   r.StatusText,
		ApproverNote: r.ApproverNote,
		ApprovedAt:   r.ApprovedAt,
		Notified:     r.Notified,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ApprovedBy != nil {
		id := int64(*r.ApprovedBy)
		dm.ApprovedBy = &id
	}
	return dm
}
