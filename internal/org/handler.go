package org

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/wicaksana/hr-workflow/internal/transport"
)

type ServiceAPI interface {
	Transfer(ctx context.Context, employeeID EmployeeID, newDepartmentID DepartmentID) (*TransferResult, error)
	ResolveDeparture(ctx context.Context, employeeID EmployeeID) (*Departure, error)
	GetEmployee(id EmployeeID) (*Employee, error)
	GetDepartment(id DepartmentID) (*Department, error)
	ListDepartmentMembers(id DepartmentID) ([]*Employee, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

func (h *Handler) TransferEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto TransferEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("TransferEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.Transfer(r.Context(), EmployeeID(employeeID), DepartmentID(dto.NewDepartmentID))
	if err != nil {
		h.Logger.Error("TransferEmployee: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("TransferEmployee: transfer completed",
		"employee_id", employeeID,
		"new_department_id", dto.NewDepartmentID,
		"succession_action", result.Succession.Action)

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	emp, err := h.Service.GetEmployee(EmployeeID(employeeID))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}

	dept, err := h.Service.GetDepartment(DepartmentID(departmentID))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := map[string]interface{}{
		"department": dept,
		"headless":   dept.Headless(),
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListDepartmentMembers(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}

	members, err := h.Service.ListDepartmentMembers(DepartmentID(departmentID))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": members})
}
