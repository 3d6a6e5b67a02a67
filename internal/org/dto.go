package org

import "errors"

// TransferEmployeeDTO is the request payload for moving an employee to
// another department.
type TransferEmployeeDTO struct {
	NewDepartmentID int64 `json:"new_department_id"`
}

func (dto TransferEmployeeDTO) Validate() error {
	if dto.NewDepartmentID <= 0 {
		return errors.New("new_department_id is required")
	}
	return nil
}
