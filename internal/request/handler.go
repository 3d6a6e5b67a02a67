package request

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/wicaksana/hr-workflow/internal/auth"
	"github.com/wicaksana/hr-workflow/internal/org"
	"github.com/wicaksana/hr-workflow/internal/transport"
)

type ServiceAPI interface {
	SubmitLeave(ctx context.Context, employeeID org.EmployeeID, dto SubmitLeaveDTO) (*Request, error)
	SubmitExpense(ctx context.Context, employeeID org.EmployeeID, dto SubmitExpenseDTO) (*Request, error)
	Decide(ctx context.Context, kind Kind, requestID int64, decision Decision, note *string, decider Decider) (*Request, error)
	GetByID(kind Kind, id int64) (*Request, error)
	ListByEmployee(kind Kind, employeeID org.EmployeeID, limit, offset int) ([]*Request, error)
	ListByDepartment(kind Kind, departmentID org.DepartmentID, limit, offset int) ([]*Request, error)
	EmployeeByEmail(email string) (*org.Employee, error)
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

func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employeeID, err := h.resolveEmployeeID(actor, dto.EmployeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	req, err := h.Service.SubmitLeave(r.Context(), employeeID, dto)
	if err != nil {
		h.Logger.Error("SubmitLeave: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) SubmitExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employeeID, err := h.resolveEmployeeID(actor, dto.EmployeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	req, err := h.Service.SubmitExpense(r.Context(), employeeID, dto)
	if err != nil {
		h.Logger.Error("SubmitExpense: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, req)
}

// resolveEmployeeID picks the explicitly named employee (HR submitting
// on someone's behalf) or falls back to the caller's own record.
func (h *Handler) resolveEmployeeID(actor *auth.Actor, explicit *int64) (org.EmployeeID, error) {
	if explicit != nil {
		return org.EmployeeID(*explicit), nil
	}
	emp, err := h.Service.EmployeeByEmail(actor.Email)
	if err != nil {
		return 0, err
	}
	return emp.ID, nil
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, KindLeave, DecisionApproved)
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, KindLeave, DecisionRejected)
}

func (h *Handler) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, KindExpense, DecisionApproved)
}

func (h *Handler) RejectExpense(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, KindExpense, DecisionRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, kind Kind, decision Decision) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var dto DecideDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	decider := Decider{
		AccountID: actor.AccountID,
		Email:     actor.Email,
		IsManager: actor.IsManager,
	}

	req, err := h.Service.Decide(r.Context(), kind, requestID, decision, dto.Note, decider)
	if err != nil {
		h.Logger.Error("decide: service error",
			"error", err,
			"kind", kind,
			"request_id", requestID,
			"decision", decision)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("decide: request decided",
		"kind", kind,
		"request_id", requestID,
		"decision", decision,
		"account_id", actor.AccountID)

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) ListLeave(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, KindLeave)
}

func (h *Handler) ListExpense(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, KindExpense)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, kind Kind) {
	if _, ok := auth.ActorFromContext(r.Context()); !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	var (
		requests []*Request
		err      error
	)
	switch {
	case r.URL.Query().Get("employee_id") != "":
		id, parseErr := strconv.ParseInt(r.URL.Query().Get("employee_id"), 10, 64)
		if parseErr != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid employee_id")
			return
		}
		requests, err = h.Service.ListByEmployee(kind, org.EmployeeID(id), limit, offset)
	case r.URL.Query().Get("department_id") != "":
		id, parseErr := strconv.ParseInt(r.URL.Query().Get("department_id"), 10, 64)
		if parseErr != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid department_id")
			return
		}
		requests, err = h.Service.ListByDepartment(kind, org.DepartmentID(id), limit, offset)
	default:
		h.WriteError(w, http.StatusBadRequest, "employee_id or department_id query parameter is required")
		return
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, KindLeave)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, KindExpense)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, kind Kind) {
	if _, ok := auth.ActorFromContext(r.Context()); !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	req, err := h.Service.GetByID(kind, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}
