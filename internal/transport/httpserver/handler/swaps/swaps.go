package swaps

import (
	"errors"
	"net/http"
	"time"

	swapdomain "shiftboard-go/internal/domain/swap"
	userdomain "shiftboard-go/internal/domain/user"
	"shiftboard-go/internal/transport/httpserver/middleware"
)

type createSwapRequest struct {
	ShiftID int64  `json:"shift_id" validate:"required,gt=0"`
	Reason  string `json:"reason" validate:"max=255"`
}

type createSwapResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type setStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=approved rejected"`
	NewEmployeeID *int64 `json:"new_employee_id" validate:"omitempty,gt=0"`
}

type setStatusResponse struct {
	SwapID        int64  `json:"swap_id"`
	Status        string `json:"status"`
	NewEmployeeID *int64 `json:"new_employee_id,omitempty"`
}

type swapResponse struct {
	ID            int64      `json:"id"`
	ShiftID       int64      `json:"shift_id"`
	RequesterID   int64      `json:"requester_id"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	NewEmployeeID *int64     `json:"new_employee_id"`
	ResolvedBy    *string    `json:"resolved_by"`
	ResolvedAt    *time.Time `json:"resolved_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type historyResponse struct {
	ID            int64     `json:"id"`
	ShiftID       int64     `json:"shift_id"`
	OldEmployeeID int64     `json:"old_employee_id"`
	NewEmployeeID int64     `json:"new_employee_id"`
	ChangedBy     string    `json:"changed_by"`
	ChangedAt     time.Time `json:"changed_at"`
}

func (h *Handlers) ListSwaps(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	status := r.URL.Query().Get("status")
	swaps, err := h.Swaps.ListSwaps(r.Context(), user.ID, status)
	if err != nil {
		if errors.Is(err, swapdomain.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "invalid_status", "status must be pending, approved or rejected")
			return
		}
		h.log.InternalError("shift_swaps.list: list swaps failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]swapResponse, 0, len(swaps))
	for i := range swaps {
		response = append(response, toSwapResponse(&swaps[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

// CreateSwap asks for the caller's own shift to be handed to someone else.
func (h *Handlers) CreateSwap(w http.ResponseWriter, r *http.Request) {
	var req createSwapRequest
	if !decodeAndValidate(w, r, &req) {
		return
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
		h.log.InternalError("shift_swaps.create: resolve employee failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result, err := h.Swaps.CreateSwap(r.Context(), swapdomain.CreateInput{
		RequesterID: employee.ID,
		ShiftID:     req.ShiftID,
		Reason:      req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, swapdomain.ErrShiftNotFound):
			h.log.BusinessError("shift_swaps.create: shift not found", err, "shift_id", req.ShiftID)
			writeError(w, http.StatusNotFound, "shift_not_found", "shift not found")
		case errors.Is(err, swapdomain.ErrNotShiftOwner):
			h.log.BusinessError("shift_swaps.create: not shift owner", err, "employee_id", employee.ID, "shift_id", req.ShiftID)
			writeError(w, http.StatusForbidden, "forbidden", "only the current shift holder can request a swap")
		case errors.Is(err, swapdomain.ErrSwapPending):
			h.log.BusinessError("shift_swaps.create: swap already pending", err, "shift_id", req.ShiftID)
			writeError(w, http.StatusConflict, "swap_pending", "a swap for this shift is already pending")
		default:
			h.log.InternalError("shift_swaps.create: create swap failed", err, "shift_id", req.ShiftID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createSwapResponse{ID: result.ID, Status: result.Status})
}

func (h *Handlers) SetSwapStatus(w http.ResponseWriter, r *http.Request) {
	swapID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid swap id")
		return
	}

	var req setStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Swaps.SetSwapStatus(r.Context(), swapdomain.SetStatusInput{
		ActorUserID:   user.ID,
		ActorName:     user.Email,
		SwapID:        swapID,
		Status:        req.Status,
		NewEmployeeID: req.NewEmployeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, swapdomain.ErrInvalidStatus), errors.Is(err, swapdomain.ErrNewEmployeeRequired), errors.Is(err, swapdomain.ErrSameEmployee):
			h.log.BusinessError("shift_swaps.set_status: invalid input", err, "swap_id", swapID)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, swapdomain.ErrSwapNotFound):
			h.log.BusinessError("shift_swaps.set_status: swap not found", err, "swap_id", swapID)
			writeError(w, http.StatusNotFound, "swap_not_found", "shift swap not found")
		case errors.Is(err, swapdomain.ErrShiftNotFound):
			h.log.BusinessError("shift_swaps.set_status: shift not found", err, "swap_id", swapID)
			writeError(w, http.StatusNotFound, "shift_not_found", "shift not found")
		case errors.Is(err, swapdomain.ErrEmployeeNotFound):
			h.log.BusinessError("shift_swaps.set_status: employee not found", err, "swap_id", swapID)
			writeError(w, http.StatusNotFound, "employee_not_found", "employee not found")
		case errors.Is(err, swapdomain.ErrNotGroupAdmin):
			h.log.BusinessError("shift_swaps.set_status: not group admin", err, "user_id", user.ID, "swap_id", swapID)
			writeError(w, http.StatusForbidden, "forbidden", "admin permission required for this group")
		case errors.Is(err, swapdomain.ErrSwapResolved):
			h.log.BusinessError("shift_swaps.set_status: already resolved", err, "swap_id", swapID)
			writeError(w, http.StatusConflict, "swap_resolved", "shift swap already resolved")
		case errors.Is(err, swapdomain.ErrShiftConflict):
			h.log.BusinessError("shift_swaps.set_status: shift conflict", err, "swap_id", swapID)
			writeError(w, http.StatusConflict, "shift_conflict", "new employee already has an identical shift")
		default:
			h.log.InternalError("shift_swaps.set_status: update failed", err, "user_id", user.ID, "swap_id", swapID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	h.log.Info("shift_swaps.set_status: swap resolved", "swap_id", swapID, "status", result.Status)
	writeJSON(w, http.StatusOK, setStatusResponse{
		SwapID:        result.ID,
		Status:        result.Status,
		NewEmployeeID: result.NewEmployeeID,
	})
}

func (h *Handlers) ShiftHistory(w http.ResponseWriter, r *http.Request) {
	shiftID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid shift id")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	entries, err := h.Swaps.ShiftHistory(r.Context(), user.ID, shiftID)
	if err != nil {
		switch {
		case errors.Is(err, swapdomain.ErrShiftNotFound):
			h.log.BusinessError("shifts.history: shift not found", err, "shift_id", shiftID)
			writeError(w, http.StatusNotFound, "shift_not_found", "shift not found")
			return
		case errors.Is(err, swapdomain.ErrNotGroupMember):
			h.log.BusinessError("shifts.history: not a member", err, "user_id", user.ID, "shift_id", shiftID)
			writeError(w, http.StatusForbidden, "forbidden", "not a member of this group")
			return
		}
		h.log.InternalError("shifts.history: list history failed", err, "shift_id", shiftID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]historyResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, historyResponse{
			ID:            entry.ID,
			ShiftID:       entry.ShiftID,
			OldEmployeeID: entry.OldEmployeeID,
			NewEmployeeID: entry.NewEmployeeID,
			ChangedBy:     entry.ChangedBy,
			ChangedAt:     entry.ChangedAt,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func toSwapResponse(swap *swapdomain.Swap) swapResponse {
	return swapResponse{
		ID:            swap.ID,
		ShiftID:       swap.ShiftID,
		RequesterID:   swap.RequesterID,
		Reason:        swap.Reason,
		Status:        swap.Status,
		NewEmployeeID: swap.NewEmployeeID,
		ResolvedBy:    swap.ResolvedBy,
		ResolvedAt:    swap.ResolvedAt,
		CreatedAt:     swap.CreatedAt,
	}
}
