package request

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// SubmitLeaveDTO is the payload for submitting a leave request. An HR
// actor may submit on another employee's behalf via EmployeeID;
// otherwise the submitter's own employee record is used.
type SubmitLeaveDTO struct {
	EmployeeID *int64 `json:"employee_id,omitempty"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (dto SubmitLeaveDTO) Validate() error {
	if dto.LeaveType == "" {
		return errors.New("leave_type is required")
	}
	start, err := time.Parse(dateLayout, dto.StartDate)
	if err != nil {
		return errors.New("start_date must be a date in YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, dto.EndDate)
	if err != nil {
		return errors.New("end_date must be a date in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}

// Dates returns the parsed endpoints; Validate must have passed.
func (dto SubmitLeaveDTO) Dates() (time.Time, time.Time) {
	start, _ := time.Parse(dateLayout, dto.StartDate)
	end, _ := time.Parse(dateLayout, dto.EndDate)
	return start, end
}

// SubmitExpenseDTO is the payload for submitting an expense request.
type SubmitExpenseDTO struct {
	EmployeeID  *int64          `json:"employee_id,omitempty"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	ReceiptURL  *string         `json:"receipt_url,omitempty"`
}

func (dto SubmitExpenseDTO) Validate() error {
	if dto.Category == "" {
		return errors.New("category is required")
	}
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be positive")
	}
	if len(strings.TrimSpace(dto.Currency)) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	return nil
}

// DecideDTO carries the manager's optional note alongside the decision
// taken from the route.
type DecideDTO struct {
	Note *string `json:"note,omitempty"`
}
