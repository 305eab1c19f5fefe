package wages

import (
	"errors"
	"net/http"
	"time"

	groupdomain "shiftboard-go/internal/domain/group"
	wagedomain "shiftboard-go/internal/domain/wage"
	"shiftboard-go/internal/transport/httpserver/middleware"
)

type createRateRequest struct {
	GroupID       int64   `json:"group_id" validate:"required,gt=0"`
	HourlyRate    float64 `json:"hourly_rate" validate:"gte=0"`
	EffectiveFrom string  `json:"effective_from" validate:"required"`
	EffectiveTo   *string `json:"effective_to"`
	Note          string  `json:"note" validate:"max=255"`
}

type rateResponse struct {
	ID            int64     `json:"id"`
	GroupID       int64     `json:"group_id"`
	HourlyRate    float64   `json:"hourly_rate"`
	Note          string    `json:"note"`
	EffectiveFrom string    `json:"effective_from"`
	EffectiveTo   *string   `json:"effective_to"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handlers) ListRates(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if _, err := h.Groups.GetGroup(r.Context(), groupID); err != nil {
		if errors.Is(err, groupdomain.ErrGroupNotFound) {
			h.log.BusinessError("wage_rates.list: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("wage_rates.list: get group failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	member, err := h.Groups.IsMember(r.Context(), user.ID, groupID)
	if err != nil {
		h.log.InternalError("wage_rates.list: membership check failed", err, "user_id", user.ID, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if !member {
		h.log.BusinessError("wage_rates.list: not a member", groupdomain.ErrMembershipNotFound, "user_id", user.ID, "group_id", groupID)
		writeError(w, http.StatusForbidden, "forbidden", "not a member of this group")
		return
	}

	rates, err := h.Wages.ListRates(r.Context(), groupID)
	if err != nil {
		h.log.InternalError("wage_rates.list: list rates failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]rateResponse, 0, len(rates))
	for i := range rates {
		response = append(response, toRateResponse(&rates[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateRate(w http.ResponseWriter, r *http.Request) {
	var req createRateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	effectiveFrom, err := parseDateRequired(req.EffectiveFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "effective_from must be YYYY-MM-DD")
		return
	}
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		effectiveTo, err = parseDateParam(*req.EffectiveTo)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "effective_to must be YYYY-MM-DD")
			return
		}
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Wages.CreateRate(r.Context(), wagedomain.CreateRateInput{
		ActorUserID:   user.ID,
		GroupID:       req.GroupID,
		HourlyRate:    req.HourlyRate,
		Note:          req.Note,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, wagedomain.ErrGroupNotFound):
			h.log.BusinessError("wage_rates.create: group not found", err, "group_id", req.GroupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, wagedomain.ErrNotGroupAdmin):
			h.log.BusinessError("wage_rates.create: not group admin", err, "user_id", user.ID, "group_id", req.GroupID)
			writeError(w, http.StatusForbidden, "forbidden", "admin permission required for this group")
		case errors.Is(err, wagedomain.ErrInvalidRate), errors.Is(err, wagedomain.ErrInvalidRange):
			h.log.BusinessError("wage_rates.create: invalid rate", err, "group_id", req.GroupID)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, wagedomain.ErrDuplicateEffectiveFrom):
			h.log.BusinessError("wage_rates.create: duplicate effective_from", err, "group_id", req.GroupID, "effective_from", req.EffectiveFrom)
			writeError(w, http.StatusConflict, "duplicate_effective_from", "a wage rate with this effective_from already exists")
		default:
			h.log.InternalError("wage_rates.create: create rate failed", err, "user_id", user.ID, "group_id", req.GroupID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toRateResponse(result))
}

func toRateResponse(rate *wagedomain.WageRate) rateResponse {
	response := rateResponse{
		ID:            rate.ID,
		GroupID:       rate.GroupID,
		HourlyRate:    rate.HourlyRate,
		Note:          rate.Note,
		EffectiveFrom: formatDate(rate.EffectiveFrom),
		CreatedAt:     rate.CreatedAt,
	}
	if rate.EffectiveTo != nil {
		to := formatDate(*rate.EffectiveTo)
		response.EffectiveTo = &to
	}
	return response
}
