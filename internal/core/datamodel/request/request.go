package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaveRequest struct {
	ID           int64      `gorm:"primaryKey"`
	EmployeeID   int64      `gorm:"column:employee_id;not null;index"`
	DepartmentID int64      `gorm:"column:department_id;not null;index"`
	LeaveType    string     `gorm:"column:leave_type;not null"`
	StartDate    time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate      time.Time  `gorm:"column:end_date;type:date;not null"`
	Reason       string     `gorm:"column:reason"`
	Status       string     `gorm:"column:status;default:pending;not null"`
	StatusText   string     `gorm:"column:status_text"`
	ApproverNote *string    `gorm:"column:approver_note"`
	ApprovedBy   *int64     `gorm:"column:approved_by"`
	ApprovedAt   *time.Time `gorm:"column:approved_at"`
	Notified     bool       `gorm:"column:notified;default:false"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type ExpenseRequest struct {
	ID           int64           `gorm:"primaryKey"`
	EmployeeID   int64           `gorm:"column:employee_id;not null;index"`
	DepartmentID int64           `gorm:"column:department_id;not null;index"`
	Category     string          `gorm:"column:category;not null"`
	Amount       decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Currency     string          `gorm:"column:currency;not null"`
	Description  string          `gorm:"column:description"`
	ReceiptURL   *string         `gorm:"column:receipt_url"`
	Status       string          `gorm:"column:status;default:pending;not null"`
	StatusText   string          `gorm:"column:status_text"`
	ApproverNote *string         `gorm:"column:approver_note"`
	ApprovedBy   *int64          `gorm:"column:approved_by"`
	ApprovedAt   *time.Time      `gorm:"column:approved_at"`
	Notified     bool            `gorm:"column:notified;default:false"`
	CreatedAt    time.Time       `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;default:now()"`
}

func (ExpenseRequest) TableName() string {
	return "expense_requests"
}
