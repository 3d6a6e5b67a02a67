package org

import (
	"time"

	orgDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/org"
)

// EmployeeID identifies an employee business record. It is not an
// account identifier; see the account package.
type EmployeeID int64

type DepartmentID int64

// Role is the employee's position inside their department. The source
// system tracked three independent booleans; a single tagged value makes
// "at most one of deputy/head" impossible to violate.
type Role string

const (
	RoleMember Role = "member"
	RoleDeputy Role = "deputy"
	RoleHead   Role = "head"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleDeputy, RoleHead:
		return true
	}
	return false
}

type Employee struct {
	ID           EmployeeID    `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	DepartmentID *DepartmentID `json:"department_id,omitempty"`
	Role         Role          `json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (e *Employee) IsHead() bool {
	return e.Role == RoleHead
}

// Demote strips any headship or deputy standing. A transferred employee
// always lands as a plain member of the destination department.
func (e *Employee) Demote() {
	e.Role = RoleMember
	e.UpdatedAt = time.Now()
}

type Department struct {
	ID              DepartmentID `json:"id"`
	Name            string       `json:"name"`
	ManagerID       *EmployeeID  `json:"manager_id,omitempty"`
	DeputyManagerID *EmployeeID  `json:"deputy_manager_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Headless reports whether the department currently has no manager.
// This is a valid state, not an error.
func (d *Department) Headless() bool {
	return d.ManagerID == nil
}

// SuccessionAction describes what the resolver did for a departing head.
type SuccessionAction string

const (
	ActionPromotedDeputy SuccessionAction = "promoted-deputy"
	ActionClearedHead    SuccessionAction = "cleared-head"
	ActionNone           SuccessionAction = "none"
)

// Departure is the outcome of resolving an employee's departure from
// their department.
type Departure struct {
	WasHead          bool             `json:"was_head"`
	DepartmentID     *DepartmentID    `json:"department_id,omitempty"`
	Action           SuccessionAction `json:"action"`
	PromotedDeputyID *EmployeeID      `json:"promoted_deputy_id,omitempty"`
}

// TransferResult is returned to the caller of Transfer. Warning carries
// the headless notice; it never turns the transfer into a failure.
type TransferResult struct {
	EmployeeID   EmployeeID   `json:"employee_id"`
	DepartmentID DepartmentID `json:"department_id"`
	Succession   Departure    `json:"succession"`
	Warning      string       `json:"warning,omitempty"`
}

func EmployeeFromDataModel(e *orgDatamodel.Employee) *Employee {
	emp := &Employee{
		ID:        EmployeeID(e.ID),
		Name:      e.Name,
		Email:     e.Email,
		Role:      Role(e.Role),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.DepartmentID != nil {
		id := DepartmentID(*e.DepartmentID)
		emp.DepartmentID = &id
	}
	return emp
}

func EmployeeToDataModel(e *Employee) *orgDatamodel.Employee {
	dm := &orgDatamodel.Employee{
		ID:        int64(e.ID),
		Name:      e.Name,
		Email:     e.Email,
		Role:      string(e.Role),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.DepartmentID != nil {
		id := int64(*e.DepartmentID)
		dm.DepartmentID = &id
	}
	return dm
}

func DepartmentFromDataModel(d *orgDatamodel.Department) *Department {
	dept := &Department{
		ID:        DepartmentID(d.ID),
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.ManagerID != nil {
		id := EmployeeID(*d.ManagerID)
		dept.ManagerID = &id
	}
	if d.DeputyManagerID != nil {
		id := EmployeeID(*d.DeputyManagerID)
		dept.DeputyManagerID = &id
	}
	return dept
}

func DepartmentToDataModel(d *Department) *orgDatamodel.Department {
	dm := &orgDatamodel.Department{
		ID:        int64(d.ID),
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.ManagerID != nil {
		id := int64(*d.ManagerID)
		dm.ManagerID = &id
	}
	if d.DeputyManagerID != nil {
		id := int64(*d.DeputyManagerID)
		dm.DeputyManagerID = &id
	}
	return dm
}
