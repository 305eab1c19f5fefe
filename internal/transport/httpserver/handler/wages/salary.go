package wages

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	employeedomain "shiftboard-go/internal/domain/employee"
	groupdomain "shiftboard-go/internal/domain/group"
	userdomain "shiftboard-go/internal/domain/user"
	wagedomain "shiftboard-go/internal/domain/wage"
	"shiftboard-go/internal/report"
	"shiftboard-go/internal/transport/httpserver/middleware"
)

const noShiftsMessage = "No shifts found for this month"

type salaryEstimateResponse struct {
	EmployeeID      int64   `json:"employee_id"`
	Month           string  `json:"month"`
	ShiftCount      int     `json:"shift_count"`
	TotalHours      float64 `json:"total_hours"`
	EstimatedSalary float64 `json:"estimated_salary"`
}

func (h *Handlers) SalaryEstimate(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseIDParam(r, "employeeId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid employee id")
		return
	}
	month, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if _, err := h.Employees.Get(r.Context(), employeeID); err != nil {
		if errors.Is(err, employeedomain.ErrEmployeeNotFound) {
			h.log.BusinessError("salary.estimate: employee not found", err, "employee_id", employeeID)
			writeError(w, http.StatusNotFound, "employee_not_found", "employee not found")
			return
		}
		h.log.InternalError("salary.estimate: get employee failed", err, "employee_id", employeeID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	allowed, err := h.canViewSalary(r, user.ID, employeeID)
	if err != nil {
		h.log.InternalError("salary.estimate: access check failed", err, "user_id", user.ID, "employee_id", employeeID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if !allowed {
		h.log.BusinessError("salary.estimate: access denied", errors.New("forbidden"), "user_id", user.ID, "employee_id", employeeID)
		writeError(w, http.StatusForbidden, "forbidden", "not allowed to view this salary")
		return
	}

	estimate, err := h.Wages.EstimateSalary(r.Context(), employeeID, month)
	if err != nil {
		h.log.InternalError("salary.estimate: estimate failed", err, "employee_id", employeeID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if estimate.NoShifts {
		writeMessage(w, http.StatusOK, noShiftsMessage)
		return
	}

	writeJSON(w, http.StatusOK, salaryEstimateResponse{
		EmployeeID:      estimate.EmployeeID,
		Month:           estimate.Month,
		ShiftCount:      estimate.ShiftCount,
		TotalHours:      estimate.TotalHours,
		EstimatedSalary: estimate.TotalSalary,
	})
}

func (h *Handlers) SalaryReport(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}
	month, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	group, err := h.Groups.GetGroup(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, groupdomain.ErrGroupNotFound) {
			h.log.BusinessError("salary.report: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("salary.report: get group failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result, err := h.Wages.GroupReport(r.Context(), user.ID, groupID, month)
	if err != nil {
		if errors.Is(err, wagedomain.ErrNotGroupAdmin) {
			h.log.BusinessError("salary.report: not group admin", err, "user_id", user.ID, "group_id", groupID)
			writeError(w, http.StatusForbidden, "forbidden", "admin permission required for this group")
			return
		}
		h.log.InternalError("salary.report: build report failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteSalaryXLSX(&buf, group.Name, result); err != nil {
		h.log.InternalError("salary.report: render xlsx failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(group.Code, result.Month)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// canViewSalary allows the employee themselves and admins of a group the
// employee's account belongs to. Employees without an account are visible to
// any group admin.
func (h *Handlers) canViewSalary(r *http.Request, userID, employeeID int64) (bool, error) {
	ctx := r.Context()

	owner, err := h.Users.GetByEmployee(ctx, employeeID)
	switch {
	case err == nil:
		if owner.ID == userID {
			return true, nil
		}
		return h.Groups.SharesAdminGroup(ctx, userID, owner.ID)
	case !errors.Is(err, userdomain.ErrUserNotFound):
		return false, err
	}

	memberships, err := h.Groups.MyGroups(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, membership := range memberships {
		if membership.Role == groupdomain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}
