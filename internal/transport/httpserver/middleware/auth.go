package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	authtoken "shiftboard-go/pkg/token"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

// User is the authenticated caller as carried by the access token.
type User struct {
	ID        int64
	Email     string
	Role      string
	GroupCode string
}

type JWTAuth struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTAuth(secret string) *JWTAuth {
	return &JWTAuth{tokenAuth: jwtauth.New("HS256", []byte(secret), nil)}
}

// Middleware verifies the bearer token and stores the caller in the context.
// Missing, malformed or expired tokens are answered with 401.
func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return jwtauth.Verifier(a.tokenAuth)(a.authenticate(next))
}

func (a *JWTAuth) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			unauthorized(w)
			return
		}

		parsed, err := authtoken.FromMap(claims)
		if err != nil {
			unauthorized(w)
			return
		}

		user := User{
			ID:        parsed.UserID,
			Email:     parsed.Email,
			Role:      parsed.Role,
			GroupCode: parsed.GroupCode,
		}
		ctx := WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == 0 {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
