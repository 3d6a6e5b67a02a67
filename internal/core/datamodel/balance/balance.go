package balance

import "time"

type LeaveBalance struct {
	ID            int64     `gorm:"primaryKey"`
	EmployeeID    int64     `gorm:"column:employee_id;not null;uniqueIndex:idx_balance_employee_type"`
	LeaveType     string    `gorm:"column:leave_type;not null;uniqueIndex:idx_balance_employee_type"`
	RemainingDays int       `gorm:"column:remaining_days;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}
