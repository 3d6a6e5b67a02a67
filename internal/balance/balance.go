package balance

import (
	"time"

	balanceDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/balance"
	"github.com/wicaksana/hr-workflow/internal/org"
)

// LeaveBalance is the remaining-days counter for one employee and one
// leave category. Negative balances are allowed: the ledger is
// informational accounting, not an admission gate.
type LeaveBalance struct {
	ID            int64          `json:"id"`
	EmployeeID    org.EmployeeID `json:"employee_id"`
	LeaveType     string         `json:"leave_type"`
	RemainingDays int            `json:"remaining_days"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func FromDataModel(b *balanceDatamodel.LeaveBalance) *LeaveBalance {
	return &LeaveBalance{
		ID:            b.ID,
		EmployeeID:    org.EmployeeID(b.EmployeeID),
		LeaveType:     b.LeaveType,
		RemainingDays: b.RemainingDays,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
