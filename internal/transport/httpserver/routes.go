package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"shiftboard-go/internal/config"
	"shiftboard-go/internal/transport/httpserver/handler"
	authmw "shiftboard-go/internal/transport/httpserver/middleware"
	"shiftboard-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(log.Slog().Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Get("/health", handlers.Common.Health)
	r.Post("/register", handlers.Common.Register)
	r.Post("/login", handlers.Common.Login)

	auth := authmw.NewJWTAuth(cfg.Auth.JWTSecret)
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/auth/me", handlers.Common.AuthMe)

		r.Get("/groups", handlers.Common.ListGroups)
		r.Post("/groups", handlers.Common.CreateGroup)
		r.Post("/groups/join", handlers.Common.JoinGroup)
		r.Get("/groups/my", handlers.Common.MyGroups)
		r.Get("/groups/{id}/wage_rates", handlers.Wages.ListRates)
		r.Get("/groups/{id}/salary_report", handlers.Wages.SalaryReport)

		r.Get("/employees", handlers.Common.ListEmployees)
		r.Post("/employees", handlers.Common.CreateEmployee)

		r.Get("/shifts", handlers.Shifts.ListShifts)
		r.Post("/shifts", handlers.Shifts.CreateShift)
		r.Get("/my_shifts", handlers.Shifts.MyShifts)
		r.Get("/shifts/{id}/history", handlers.Swaps.ShiftHistory)

		r.Get("/shift_requests", handlers.Shifts.ListRequests)
		r.Post("/shift_requests", handlers.Shifts.CreateRequest)
		r.Get("/shift_requests/{id}/responses", handlers.Shifts.ListResponses)
		r.Post("/shift_requests/{id}/responses", handlers.Shifts.SubmitResponse)
		r.Post("/shift_responses/{id}/approve", handlers.Shifts.Approve)

		r.Post("/wage_rates", handlers.Wages.CreateRate)
		r.Get("/salary_estimate/{employeeId}", handlers.Wages.SalaryEstimate)

		r.Get("/shift_swaps", handlers.Swaps.ListSwaps)
		r.Post("/shift_swaps", handlers.Swaps.CreateSwap)
		r.Patch("/shift_swaps/{id}", handlers.Swaps.SetSwapStatus)
	})

	return r
}
