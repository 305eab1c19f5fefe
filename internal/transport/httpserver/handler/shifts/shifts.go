package shifts

import (
	"errors"
	"net/http"

	shiftdomain "shiftboard-go/internal/domain/shift"
	userdomain "shiftboard-go/internal/domain/user"
	"shiftboard-go/internal/transport/httpserver/middleware"
)

type createShiftRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required,gt=0"`
	GroupID    int64  `json:"group_id" validate:"required,gt=0"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
}

type createShiftResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type shiftResponse struct {
	ID            int64   `json:"id"`
	EmployeeID    int64   `json:"employee_id"`
	EmployeeName  *string `json:"employee_name"`
	GroupID       int64   `json:"group_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
}

func (h *Handlers) ListShifts(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseListFilter(w, r)
	if !ok {
		return
	}
	employeeID, err := parseInt64Query(r.URL.Query().Get("employee_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid employee_id")
		return
	}
	filter.EmployeeID = employeeID

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Shifts.ListGroupShifts(r.Context(), user.ID, filter)
	if err != nil {
		if errors.Is(err, shiftdomain.ErrNotGroupMember) {
			h.log.BusinessError("shifts.list: not a member", err, "user_id", user.ID)
			writeError(w, http.StatusForbidden, "forbidden", "not a member of this group")
			return
		}
		h.log.InternalError("shifts.list: list shifts failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	h.writeShifts(w, r, "shifts.list", items)
}

// MyShifts lists the caller's own shifts.
func (h *Handlers) MyShifts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	filter, ok := h.parseListFilter(w, r)
	if !ok {
		return
	}

	employee, err := h.Users.EmployeeForUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("shifts.my: user not found", err, "user_id", user.ID)
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		h.log.InternalError("shifts.my: resolve employee failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	filter.EmployeeID = &employee.ID

	items, err := h.Shifts.ListShifts(r.Context(), filter)
	if err != nil {
		h.log.InternalError("shifts.my: list shifts failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	h.writeShifts(w, r, "shifts.my", items)
}

func (h *Handlers) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req createShiftRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Shifts.CreateShift(r.Context(), shiftdomain.CreateShiftInput{
		ActorUserID: user.ID,
		EmployeeID:  req.EmployeeID,
		GroupID:     req.GroupID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, shiftdomain.ErrInvalidTime), errors.Is(err, shiftdomain.ErrInvalidTimeRange):
			h.log.BusinessError("shifts.create: invalid time", err, "user_id", user.ID)
			writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
		case errors.Is(err, shiftdomain.ErrGroupNotFound):
			h.log.BusinessError("shifts.create: group not found", err, "group_id", req.GroupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, shiftdomain.ErrNotGroupAdmin):
			h.log.BusinessError("shifts.create: not group admin", err, "user_id", user.ID, "group_id", req.GroupID)
			writeError(w, http.StatusForbidden, "forbidden", "admin permission required for this group")
		case errors.Is(err, shiftdomain.ErrEmployeeNotFound):
			h.log.BusinessError("shifts.create: employee not found", err, "employee_id", req.EmployeeID)
			writeError(w, http.StatusNotFound, "employee_not_found", "employee not found")
		case errors.Is(err, shiftdomain.ErrShiftConflict):
			h.log.BusinessError("shifts.create: duplicate shift", err, "employee_id", req.EmployeeID)
			writeError(w, http.StatusConflict, "shift_conflict", "shift already exists for this employee and time")
		default:
			h.log.InternalError("shifts.create: create shift failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createShiftResponse{Message: "Shift created successfully", ID: result.ID})
}

func (h *Handlers) parseListFilter(w http.ResponseWriter, r *http.Request) (shiftdomain.ListFilter, bool) {
	query := r.URL.Query()

	groupID, err := parseInt64Query(query.Get("group_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group_id")
		return shiftdomain.ListFilter{}, false
	}
	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from must be YYYY-MM-DD")
		return shiftdomain.ListFilter{}, false
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must be YYYY-MM-DD")
		return shiftdomain.ListFilter{}, false
	}
	if from != nil && to != nil && to.Before(*from) {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must not be before from")
		return shiftdomain.ListFilter{}, false
	}

	return shiftdomain.ListFilter{GroupID: groupID, From: from, To: to}, true
}

func (h *Handlers) writeShifts(w http.ResponseWriter, r *http.Request, op string, items []shiftdomain.Shift) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.EmployeeID)
	}
	employees, err := h.Employees.GetMany(r.Context(), ids)
	if err != nil {
		h.log.InternalError(op+": load employees failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]shiftResponse, 0, len(items))
	for _, item := range items {
		entry := toShiftResponse(item)
		if employee, ok := employees[item.EmployeeID]; ok {
			name := employee.Name
			entry.EmployeeName = &name
		}
		response = append(response, entry)
	}
	writeJSON(w, http.StatusOK, response)
}

func toShiftResponse(shift shiftdomain.Shift) shiftResponse {
	return shiftResponse{
		ID:            shift.ID,
		EmployeeID:    shift.EmployeeID,
		GroupID:       shift.GroupID,
		Date:          formatDate(shift.Date),
		StartTime:     shift.StartTime,
		EndTime:       shift.EndTime,
		DurationHours: shift.DurationHours(),
	}
}
