package common

import (
	"errors"
	"net/http"
	"time"

	groupdomain "shiftboard-go/internal/domain/group"
	"shiftboard-go/internal/transport/httpserver/middleware"
)

type createGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Code        string `json:"code" validate:"omitempty,alphanum,max=20"`
}

type joinGroupRequest struct {
	Code string `json:"code" validate:"required"`
}

type groupResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	MemberCount *int64 `json:"member_count,omitempty"`
}

type myGroupResponse struct {
	GroupID   int64     `json:"group_id"`
	GroupName string    `json:"group_name"`
	GroupCode string    `json:"group_code"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.ListGroups(r.Context())
	if err != nil {
		h.log.InternalError("groups.list: list groups failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]groupResponse, 0, len(groups))
	for _, item := range groups {
		count := item.MemberCount
		response = append(response, groupResponse{
			ID:          item.ID,
			Name:        item.Name,
			Code:        item.Code,
			Description: item.Description,
			MemberCount: &count,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Groups.CreateGroup(r.Context(), groupdomain.CreateInput{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrGroupCodeTaken):
			h.log.BusinessError("groups.create: code taken", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusConflict, "group_code_taken", "group code already exists")
		case errors.Is(err, groupdomain.ErrNameRequired):
			h.log.BusinessError("groups.create: name required", err, "user_id", user.ID)
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		default:
			h.log.InternalError("groups.create: create group failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(result))
}

func (h *Handlers) JoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Groups.JoinGroup(r.Context(), user.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrGroupCodeNotFound):
			h.log.BusinessError("groups.join: group code not found", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, groupdomain.ErrAlreadyMember):
			h.log.BusinessError("groups.join: already a member", err, "user_id", user.ID)
			writeError(w, http.StatusConflict, "already_member", "already a member of this group")
		case errors.Is(err, groupdomain.ErrCodeRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		default:
			h.log.InternalError("groups.join: join group failed", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(result))
}

func (h *Handlers) MyGroups(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	memberships, err := h.Groups.MyGroups(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("groups.my: list memberships failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]myGroupResponse, 0, len(memberships))
	for _, item := range memberships {
		response = append(response, myGroupResponse{
			GroupID:   item.Group.ID,
			GroupName: item.Group.Name,
			GroupCode: item.Group.Code,
			Role:      item.Role,
			JoinedAt:  item.JoinedAt,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func toGroupResponse(group *groupdomain.Group) groupResponse {
	return groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Code:        group.Code,
		Description: group.Description,
	}
}
