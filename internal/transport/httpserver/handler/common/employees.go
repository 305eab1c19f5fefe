package common

import (
	"errors"
	"net/http"

	employeedomain "shiftboard-go/internal/domain/employee"
	groupdomain "shiftboard-go/internal/domain/group"
	"shiftboard-go/internal/transport/httpserver/middleware"
)

type createEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,max=20"`
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"omitempty,email,max=150"`
}

type employeeResponse struct {
	ID           int64   `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
}

// ListEmployees shows the people sharing a group with the caller. Admins also
// see employees without an account, so they can be scheduled.
func (h *Handlers) ListEmployees(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	memberships, err := h.Groups.MyGroups(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("employees.list: load memberships failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	var scope employeedomain.Scope
	for _, membership := range memberships {
		scope.GroupIDs = append(scope.GroupIDs, membership.GroupID)
		if membership.Role == groupdomain.RoleAdmin {
			scope.IncludeUnlinked = true
		}
	}

	employees, err := h.Employees.List(r.Context(), scope)
	if err != nil {
		h.log.InternalError("employees.list: list employees failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]employeeResponse, 0, len(employees))
	for i := range employees {
		response = append(response, toEmployeeResponse(&employees[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.Employees.Create(r.Context(), employeedomain.CreateInput{
		Code:  req.EmployeeCode,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, employeedomain.ErrCodeTaken):
			h.log.BusinessError("employees.create: code taken", err, "code", req.EmployeeCode)
			writeError(w, http.StatusConflict, "employee_code_taken", "employee code already exists")
		case errors.Is(err, employeedomain.ErrCodeRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("employees.create: create employee failed", err, "code", req.EmployeeCode)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeResponse(result))
}

func toEmployeeResponse(employee *employeedomain.Employee) employeeResponse {
	return employeeResponse{
		ID:           employee.ID,
		EmployeeCode: employee.EmployeeCode,
		Name:         employee.Name,
		Email:        employee.Email,
	}
}
