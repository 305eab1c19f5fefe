package shifts

import (
	"errors"
	"net/http"
	"time"

	shiftdomain "shiftboard-go/internal/domain/shift"
	userdomain "shiftboard-go/internal/domain/user"
	"shiftboard-go/internal/transport/httpserver/middleware"
)

type createRequestRequest struct {
	GroupID     int64  `json:"group_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

type requestResponse struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type submitResponseRequest struct {
	PreferredDate  *string `json:"preferred_date"`
	PreferredStart *string `json:"preferred_start"`
	PreferredEnd   *string `json:"preferred_end"`
	Comment        string  `json:"comment" validate:"max=255"`
}

type responseResponse struct {
	ID             int64     `json:"id"`
	RequestID      int64     `json:"request_id"`
	EmployeeID     int64     `json:"employee_id"`
	PreferredDate  *string   `json:"preferred_date"`
	PreferredStart *string   `json:"preferred_start"`
	PreferredEnd   *string   `json:"preferred_end"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

type approveResponse struct {
	Message    string `json:"message"`
	ShiftID    int64  `json:"shift_id"`
	EmployeeID int64  `json:"employee_id"`
}

func (h *Handlers) ListRequests(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseInt64Query(r.URL.Query().Get("group_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group_id")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	requests, err := h.Shifts.ListRequests(r.Context(), user.ID, groupID)
	if err != nil {
		if errors.Is(err, shiftdomain.ErrNotGroupMember) {
			h.log.BusinessError("shift_requests.list: not a member", err, "user_id", user.ID)
			writeError(w, http.StatusForbidden, "forbidden", "not a member of this group")
			return
		}
		h.log.InternalError("shift_requests.list: list requests failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]requestResponse, 0, len(requests))
	for i := range requests {
		response = append(response, toRequestResponse(&requests[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Shifts.CreateRequest(r.Context(), shiftdomain.CreateRequestInput{
		ActorUserID: user.ID,
		GroupID:     req.GroupID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, shiftdomain.ErrGroupNotFound):
			h.log.BusinessError("shift_requests.create: group not found", err, "group_id", req.GroupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, shiftdomain.ErrNotGroupAdmin):
			h.log.BusinessError("shift_requests.create: not group admin", err, "user_id", user.ID, "group_id", req.GroupID)
			writeError(w, http.StatusForbidden, "forbidden", "admin permission required for this group")
		case errors.Is(err, shiftdomain.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		default:
			h.log.InternalError("shift_requests.create: create request failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toRequestResponse(result))
}

func (h *Handlers) ListResponses(w http.ResponseWriter, r *http.Request) {
	requestID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	responses, err := h.Shifts.ListResponses(r.Context(), user.ID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, shiftdomain.ErrRequestNotFound):
			h.log.BusinessError("shift_responses.list: request not found", err, "request_id", requestID)
			writeError(w, http.StatusNotFound, "request_not_found", "shift request not found")
			return
		case errors.Is(err, shiftdomain.ErrNotGroupMember):
			h.log.BusinessError("shift_responses.list: not a member", err, "user_id", user.ID, "request_id", requestID)
			writeError(w, http.StatusForbidden, "forbidden", "not a member of this group")
			return
		}
		h.log.InternalError("shift_responses.list: list responses failed", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]responseResponse, 0, len(responses))
	for i := range responses {
		response = append(response, toResponseResponse(&responses[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

// SubmitResponse records the caller's preference for a shift request.
func (h *Handlers) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	requestID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	var req submitResponseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var preferredDate *time.Time
	if req.PreferredDate != nil {
		preferredDate, err = parseDateParam(*req.PreferredDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "preferred_date must be YYYY-MM-DD")
			return
		}
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	employee, err := h.Users.EmployeeForUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		h.log.InternalError("shift_responses.submit: resolve employee failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result, err := h.Shifts.SubmitResponse(r.Context(), shiftdomain.SubmitResponseInput{
		ActorUserID:    user.ID,
		EmployeeID:     employee.ID,
		RequestID:      requestID,
		PreferredDate:  preferredDate,
		PreferredStart: emptyToNil(req.PreferredStart),
		PreferredEnd:   emptyToNil(req.PreferredEnd),
		Comment:        req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, shiftdomain.ErrRequestNotFound):
			h.log.BusinessError("shift_responses.submit: request not found", err, "request_id", requestID)
			writeError(w, http.StatusNotFound, "request_not_found", "shift request not found")
		case errors.Is(err, shiftdomain.ErrNotGroupMember):
			h.log.BusinessError("shift_responses.submit: not a member", err, "user_id", user.ID, "request_id", requestID)
			writeError(w, http.StatusForbidden, "forbidden", "not a member of this group")
		case errors.Is(err, shiftdomain.ErrInvalidTime), errors.Is(err, shiftdomain.ErrInvalidTimeRange):
			h.log.BusinessError("shift_responses.submit: invalid time", err, "user_id", user.ID)
			writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
		default:
			h.log.InternalError("shift_responses.submit: submit failed", err, "user_id", user.ID, "request_id", requestID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toResponseResponse(result))
}

// Approve turns a response into a shift. A duplicate shift is reported as a
// 400 like other unusable responses.
func (h *Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	responseID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid response id")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Shifts.Approve(r.Context(), user.ID, responseID)
	if err != nil {
		switch {
		case errors.Is(err, shiftdomain.ErrResponseNotFound), errors.Is(err, shiftdomain.ErrRequestNotFound):
			h.log.BusinessError("shift_responses.approve: not found", err, "response_id", responseID)
			writeError(w, http.StatusNotFound, "response_not_found", "shift response not found")
		case errors.Is(err, shiftdomain.ErrNotGroupAdmin):
			h.log.BusinessError("shift_responses.approve: not group admin", err, "user_id", user.ID, "response_id", responseID)
			writeError(w, http.StatusForbidden, "forbidden", "admin permission required for this group")
		case errors.Is(err, shiftdomain.ErrResponseIncomplete):
			h.log.BusinessError("shift_responses.approve: incomplete response", err, "response_id", responseID)
			writeError(w, http.StatusBadRequest, "missing_fields", "missing preferred date or time")
		case errors.Is(err, shiftdomain.ErrShiftConflict):
			h.log.BusinessError("shift_responses.approve: duplicate shift", err, "response_id", responseID)
			writeError(w, http.StatusBadRequest, "shift_conflict", "shift already exists for this employee and time")
		default:
			h.log.InternalError("shift_responses.approve: approve failed", err, "user_id", user.ID, "response_id", responseID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	h.log.Info("shift_responses.approve: shift created", "response_id", responseID, "shift_id", result.ID)
	writeJSON(w, http.StatusCreated, approveResponse{
		Message:    "Shift approved",
		ShiftID:    result.ID,
		EmployeeID: result.EmployeeID,
	})
}

func toRequestResponse(request *shiftdomain.Request) requestResponse {
	return requestResponse{
		ID:          request.ID,
		GroupID:     request.GroupID,
		Title:       request.Title,
		Description: request.Description,
		CreatedBy:   request.CreatedBy,
		CreatedAt:   request.CreatedAt,
	}
}

func toResponseResponse(response *shiftdomain.Response) responseResponse {
	result := responseResponse{
		ID:             response.ID,
		RequestID:      response.RequestID,
		EmployeeID:     response.EmployeeID,
		PreferredStart: response.PreferredStart,
		PreferredEnd:   response.PreferredEnd,
		Comment:        response.Comment,
		CreatedAt:      response.CreatedAt,
	}
	if response.PreferredDate != nil {
		date := formatDate(*response.PreferredDate)
		result.PreferredDate = &date
	}
	return result
}

func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
