package postgres

import (
	"errors"
	"time"

	"github.com/wicaksana/hr-workflow/internal/balance"
	balanceDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/balance"
	"github.com/wicaksana/hr-workflow/internal/org"
	"gorm.io/gorm"
)

// BalanceRepository implements the balance.Repository interface using GORM
type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) balance.Repository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) Get(employeeID org.EmployeeID, leaveType string) (*balance.LeaveBalance, error) {
	var dm balanceDatamodel.LeaveBalance
	err := r.db.Where("employee_id = ? AND leave_type = ?", int64(employeeID), leaveType).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return balance.FromDataModel(&dm), nil
}

func (r *BalanceRepository) ListByEmployee(employeeID org.EmployeeID) ([]*balance.LeaveBalance, error) {
	var dms []*balanceDatamodel.LeaveBalance
	err := r.db.Where("employee_id = ?", int64(employeeID)).
		Order("leave_type ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}

	balances := make([]*balance.LeaveBalance, len(dms))
	for i, dm := range dms {
		balances[i] = balance.FromDataModel(dm)
	}
	return balances, nil
}

func (r *BalanceRepository) ApplyDelta(employeeID org.EmployeeID, leaveType string, deltaDays int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var dm balanceDatamodel.LeaveBalance
		err := tx.Where("employee_id = ? AND leave_type = ?", int64(employeeID), leaveType).First(&dm).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dm = balanceDatamodel.LeaveBalance{
				EmployeeID:    int64(employeeID),
				LeaveType:     leaveType,
				RemainingDays: 0,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}
			if err := tx.Create(&dm).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return tx.Model(&balanceDatamodel.LeaveBalance{}).
			Where("id = ?", dm.ID).
			Updates(map[string]interface{}{
				"remaining_days": gorm.Expr("remaining_days + ?", deltaDays),
				"updated_at":     time.Now(),
			}).Error
	})
}
