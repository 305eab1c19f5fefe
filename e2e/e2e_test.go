//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"gorm.io/gorm"

	"shiftboard-go/internal/app"
	"shiftboard-go/internal/config"
	"shiftboard-go/internal/db"
	"shiftboard-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	cfg := config.Config{
		HTTPPort:    "8080",
		Env:         "test",
		CORSOrigins: []string{"*"},
		DB:          config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			JWTSecret: "e2e-secret-at-least-16",
			TokenTTL:  time.Hour,
		},
		Cache: config.CacheConfig{Backend: config.CacheBackendNone},
	}

	log := logger.NewNop()
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if _, err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	router, err := app.NewRouter(cfg, dbConn, nil, log)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		`TRUNCATE TABLE shift_histories, shift_swaps, wage_rates, shift_responses, shift_requests, shifts,
		group_memberships, "groups", users, employees RESTART IDENTITY CASCADE`,
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type registerResponse struct {
	UserID     int64 `json:"user_id"`
	EmployeeID int64 `json:"employee_id"`
}

type loginResponse struct {
	AccessToken string  `json:"access_token"`
	GroupCode   *string `json:"group_code"`
	Role        string  `json:"role"`
}

type groupResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

type salaryResponse struct {
	ShiftCount      int     `json:"shift_count"`
	TotalHours      float64 `json:"total_hours"`
	EstimatedSalary float64 `json:"estimated_salary"`
}

func signUp(t *testing.T, client *http.Client, baseURL, email string) (string, int64) {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/register", "", map[string]string{
		"email":    email,
		"password": "password1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var registered registerResponse
	if err := json.Unmarshal(body, &registered); err != nil {
		t.Fatalf("decode register: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPost, baseURL+"/login", "", map[string]string{
		"email":    email,
		"password": "password1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var login loginResponse
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return login.AccessToken, registered.EmployeeID
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.StatusCode, string(body))
	}
	var errResp errorEnvelope
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	token, _ := signUp(t, client, env.server.URL, "ana@example.com")
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2EApproveAndSalaryFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL

	adminToken, adminEmployee := signUp(t, client, base, "admin@example.com")
	workerToken, workerEmployee := signUp(t, client, base, "worker@example.com")

	resp, body := requestJSON(t, client, http.MethodPost, base+"/groups", adminToken, map[string]string{"name": "Cafe"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var group groupResponse
	if err := json.Unmarshal(body, &group); err != nil {
		t.Fatalf("decode group: %v", err)
	}
	if group.Code == "" {
		t.Fatalf("expected generated group code")
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/groups/join", workerToken, map[string]string{"code": group.Code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/groups/join", workerToken, map[string]string{"code": group.Code})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.StatusCode, string(body))
	}

	for _, rate := range []map[string]interface{}{
		{"group_id": group.ID, "hourly_rate": 1000, "effective_from": "2025-01-01"},
		{"group_id": group.ID, "hourly_rate": 1200, "effective_from": "2025-06-01"},
	} {
		resp, body = requestJSON(t, client, http.MethodPost, base+"/wage_rates", adminToken, rate)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
		}
	}

	for _, shift := range []map[string]interface{}{
		{"employee_id": workerEmployee, "group_id": group.ID, "date": "2025-03-15", "start_time": "09:00", "end_time": "11:00"},
		{"employee_id": workerEmployee, "group_id": group.ID, "date": "2025-07-01", "start_time": "09:00", "end_time": "12:00"},
	} {
		resp, body = requestJSON(t, client, http.MethodPost, base+"/shifts", adminToken, shift)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
		}
	}

	cases := []struct {
		month  string
		salary float64
	}{
		{"2025-03", 2000},
		{"2025-07", 3600},
	}
	for _, tc := range cases {
		resp, body = requestJSON(t, client, http.MethodGet, fmt.Sprintf("%s/salary_estimate/%d?month=%s", base, workerEmployee, tc.month), workerToken, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
		}
		var estimate salaryResponse
		if err := json.Unmarshal(body, &estimate); err != nil {
			t.Fatalf("decode salary: %v", err)
		}
		if estimate.EstimatedSalary != tc.salary {
			t.Fatalf("expected salary %v for %s, got %v", tc.salary, tc.month, estimate.EstimatedSalary)
		}
	}

	resp, body = requestJSON(t, client, http.MethodGet, fmt.Sprintf("%s/salary_estimate/%d?month=2025-07", base, adminEmployee), workerToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.StatusCode, string(body))
	}
}
