package postgres

import (
	"errors"
	"time"

	"github.com/wicaksana/hr-workflow/internal"
	requestDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/request"
	"github.com/wicaksana/hr-workflow/internal/org"
	"github.com/wicaksana/hr-workflow/internal/request"
	"gorm.io/gorm"
)

// RequestRepository implements the request.Repository interface using
// GORM. Leave and expense requests live in separate tables selected by
// the kind argument.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) request.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *request.Request) error {
	switch req.Kind {
	case request.KindLeave:
		dm := request.LeaveToDataModel(req)
		if err := r.db.Create(dm).Error; err != nil {
			return err
		}
		req.ID = dm.ID
		return nil
	case request.KindExpense:
		dm := request.ExpenseToDataModel(req)
		if err := r.db.Create(dm).Error; err != nil {
			return err
		}
		req.ID = dm.ID
		return nil
	}
	return errors.New("unknown request kind")
}

func (r *RequestRepository) GetByID(kind request.Kind, id int64) (*request.Request, error) {
	switch kind {
	case request.KindLeave:
		var dm requestDatamodel.LeaveRequest
		if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
			return nil, notFound(err)
		}
		return request.LeaveFromDataModel(&dm), nil
	case request.KindExpense:
		var dm requestDatamodel.ExpenseRequest
		if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
			return nil, notFound(err)
		}
		return request.ExpenseFromDataModel(&dm), nil
	}
	return nil, errors.New("unknown request kind")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.ErrRequestNotFound
	}
	return err
}

func (r *RequestRepository) ListByEmployee(kind request.Kind, employeeID org.EmployeeID, limit, offset int) ([]*request.Request, error) {
	return r.list(kind, "employee_id = ?", int64(employeeID), limit, offset)
}

func (r *RequestRepository) ListByDepartment(kind request.Kind, departmentID org.DepartmentID, limit, offset int) ([]*request.Request, error) {
	return r.list(kind, "department_id = ?", int64(departmentID), limit, offset)
}

func (r *RequestRepository) list(kind request.Kind, where string, arg int64, limit, offset int) ([]*request.Request, error) {
	switch kind {
	case request.KindLeave:
		var dms []*requestDatamodel.LeaveRequest
		err := r.db.Where(where, arg).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&dms).Error
		if err != nil {
			return nil, err
		}
		result := make([]*request.Request, len(dms))
		for i, dm := range dms {
			result[i] = request.LeaveFromDataModel(dm)
		}
		return result, nil
	case request.KindExpense:
		var dms []*requestDatamodel.ExpenseRequest
		err := r.db.Where(where, arg).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&dms).Error
		if err != nil {
			return nil, err
		}
		result := make([]*request.Request, len(dms))
		for i, dm := range dms {
			result[i] = request.ExpenseFromDataModel(dm)
		}
		return result, nil
	}
	return nil, errors.New("unknown request kind")
}

// UpdateDecision writes the decision fields guarded on the row still
// being pending, closing the race between two managers deciding the
// same request.
func (r *RequestRepository) UpdateDecision(req *request.Request) error {
	updates := map[string]interface{}{
		"status":        string(req.Status),
		"status_text":   req.StatusText,
		"approver_note": req.ApproverNote,
		"approved_at":   req.ApprovedAt,
		"updated_at":    time.Now(),
	}
	if req.ApprovedBy != nil {
		updates["approved_by"] = int64(*req.ApprovedBy)
	}

	tx := r.model(req.Kind).
		Where("id = ? AND status = ?", req.ID, string(request.StatusPending)).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return internal.ErrRequestAlreadyDecided
	}
	return nil
}

func (r *RequestRepository) RevertDecision(kind request.Kind, id int64) error {
	return r.model(kind).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        string(request.StatusPending),
			"status_text":   "",
			"approver_note": nil,
			"approved_by":   nil,
			"approved_at":   nil,
			"updated_at":    time.Now(),
		}).Error
}

func (r *RequestRepository) SetNotified(kind request.Kind, id int64) error {
	return r.model(kind).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"notified":   true,
			"updated_at": time.Now(),
		}).Error
}

func (r *RequestRepository) model(kind request.Kind) *gorm.DB {
	if kind == request.KindLeave {
		return r.db.Model(&requestDatamodel.LeaveRequest{})
	}
	return r.db.Model(&requestDatamodel.ExpenseRequest{})
}
