package postgres

import (
	"errors"
	"time"

	"github.com/wicaksana/hr-workflow/internal"
	orgDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/org"
	"github.com/wicaksana/hr-workflow/internal/org"
	"gorm.io/gorm"
)

// OrgRepository implements org.TxRepository using GORM. InTx hands the
// service a repository bound to the transaction so succession and
// transfer writes commit or roll back as a unit.
type OrgRepository struct {
	db *gorm.DB
}

func NewOrgRepository(db *gorm.DB) org.TxRepository {
	return &OrgRepository{db: db}
}

func (r *OrgRepository) InTx(fn func(org.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&OrgRepository{db: tx})
	})
}

func (r *OrgRepository) GetEmployee(id org.EmployeeID) (*org.Employee, error) {
	var dm orgDatamodel.Employee
	err := r.db.Where("id = ?", int64(id)).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return org.EmployeeFromDataModel(&dm), nil
}

func (r *OrgRepository) GetEmployeeByEmail(email string) (*org.Employee, error) {
	var dm orgDatamodel.Employee
	err := r.db.Where("email = ?", email).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return org.EmployeeFromDataModel(&dm), nil
}

func (r *OrgRepository) GetDepartment(id org.DepartmentID) (*org.Department, error) {
	var dm orgDatamodel.Department
	err := r.db.Where("id = ?", int64(id)).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, err
	}
	return org.DepartmentFromDataModel(&dm), nil
}

func (r *OrgRepository) DepartmentsManagedBy(id org.EmployeeID) ([]*org.Department, error) {
	var dms []*orgDatamodel.Department
	err := r.db.Where("manager_id = ?", int64(id)).Find(&dms).Error
	if err != nil {
		return nil, err
	}

	departments := make([]*org.Department, len(dms))
	for i, dm := range dms {
		departments[i] = org.DepartmentFromDataModel(dm)
	}
	return departments, nil
}

func (r *OrgRepository) EmployeesByDepartment(id org.DepartmentID) ([]*org.Employee, error) {
	var dms []*orgDatamodel.Employee
	err := r.db.Where("department_id = ?", int64(id)).
		Order("name ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}

	employees := make([]*org.Employee, len(dms))
	for i, dm := range dms {
		employees[i] = org.EmployeeFromDataModel(dm)
	}
	return employees, nil
}

func (r *OrgRepository) UpdateEmployee(e *org.Employee) error {
	dm := org.EmployeeToDataModel(e)
	dm.UpdatedAt = time.Now()
	// Save with a map so nil department_id and role demotions are
	// written, not skipped as zero values.
	return r.db.Model(&orgDatamodel.Employee{}).
		Where("id = ?", dm.ID).
		Updates(map[string]interface{}{
			"department_id": dm.DepartmentID,
			"role":          dm.Role,
			"updated_at":    dm.UpdatedAt,
		}).Error
}

func (r *OrgRepository) UpdateDepartment(d *org.Department) error {
	dm := org.DepartmentToDataModel(d)
	dm.UpdatedAt = time.Now()
	return r.db.Model(&orgDatamodel.Department{}).
		Where("id = ?", dm.ID).
		Updates(map[string]interface{}{
			"manager_id":        dm.ManagerID,
			"deputy_manager_id": dm.DeputyManagerID,
			"updated_at":        dm.UpdatedAt,
		}).Error
}
