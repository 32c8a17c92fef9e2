package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/quantohr/payroll-backend-go/internal/config"
	"github.com/quantohr/payroll-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	cfg *config.Config,
	tokenAuth *jwtauth.JWTAuth,
	calendarHandler CalendarHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/calendar/working-days", calendarHandler.WorkingDays)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Apply)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.Get)
					r.Put("/", leaveHandler.Update)
					r.Delete("/", leaveHandler.Delete)
					r.Post("/approve", leaveHandler.Approve)
					r.Post("/reject", leaveHandler.Reject)
				})
			})

			r.Route("/leave-balances", func(r chi.Router) {
				r.Get("/", leaveHandler.ListBalances)
				r.Post("/adjust", leaveHandler.AdjustBalance)
				r.Post("/initialize-year", leaveHandler.InitializeYear)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/process", payrollHandler.Process)
				r.Route("/runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRun)
						r.Post("/finalize", payrollHandler.Finalize)
						r.Delete("/", payrollHandler.DeleteRun)
					})
				})
			})
		})
	})

	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
