package common

import (
	"errors"
	"net/http"
	"time"

	groupdomain "shiftboard-go/internal/domain/group"
	userdomain "shiftboard-go/internal/domain/user"
	"shiftboard-go/internal/transport/httpserver/middleware"
	authtoken "shiftboard-go/pkg/token"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=employee admin"`
}

type registerResponse struct {
	Message    string `json:"message"`
	UserID     int64  `json:"user_id"`
	EmployeeID int64  `json:"employee_id"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	GroupCode   *string   `json:"group_code"`
	Role        string    `json:"role"`
}

type authMeResponse struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	GroupCode    string  `json:"group_code,omitempty"`
	EmployeeID   *int64  `json:"employee_id"`
	EmployeeName *string `json:"employee_name"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, employee, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("auth.register: email taken", err, "email", req.Email)
			writeError(w, http.StatusConflict, "email_taken", "email already exists")
		case errors.Is(err, userdomain.ErrCredentialsMissing), errors.Is(err, userdomain.ErrInvalidRole):
			h.log.BusinessError("auth.register: invalid input", err, "email", req.Email)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("auth.register: register failed", err, "email", req.Email)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message:    "User registered",
		UserID:     account.ID,
		EmployeeID: employee.ID,
	})
}

// Login issues an access token. The caller's first group membership, when
// present, decides the role and group_code claims.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err, "email", req.Email)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		h.log.InternalError("auth.login: login failed", err, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	role := account.Role
	var groupCode *string
	membership, err := h.Groups.PrimaryMembership(r.Context(), account.ID)
	switch {
	case err == nil:
		role = membership.Role
		code := membership.Group.Code
		groupCode = &code
	case !errors.Is(err, groupdomain.ErrMembershipNotFound):
		h.log.InternalError("auth.login: load membership failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	claims := authtoken.Claims{UserID: account.ID, Email: account.Email, Role: role}
	if groupCode != nil {
		claims.GroupCode = *groupCode
	}
	signed, expiresAt, err := h.Tokens.Issue(claims)
	if err != nil {
		h.log.InternalError("auth.login: issue token failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.log.Info("auth.login: user logged in", "user_id", account.ID)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		GroupCode:   groupCode,
		Role:        role,
	})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	employee, err := h.Users.EmployeeForUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("auth.me: user not found", err, "user_id", user.ID)
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		h.log.InternalError("auth.me: resolve employee failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, authMeResponse{
		ID:           user.ID,
		Email:        user.Email,
		Role:         user.Role,
		GroupCode:    user.GroupCode,
		EmployeeID:   &employee.ID,
		EmployeeName: &employee.Name,
	})
}
