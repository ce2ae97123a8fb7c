package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/vacation-planner-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	ManagerRoleID  string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	vacationHandler VacationHandler,
	employeeHandler EmployeeHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	requireManager := middleware.RequireManager(cfg.ManagerRoleID)

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource cannot send headers; the stream checks its own token.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(chiMiddleware.AllowContentEncoding("application/json"))

			r.Route("/vacations", func(r chi.Router) {
				r.Post("/", vacationHandler.CreateRequest)
				r.Get("/my", vacationHandler.GetMyRequests)
				r.Get("/{id}", vacationHandler.GetRequest)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(requireManager)
					r.Get("/", vacationHandler.ListRequests)
					r.Put("/{id}/status", vacationHandler.UpdateStatus)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", employeeHandler.GetMe)
				r.With(requireManager).Post("/update-vacation-days", employeeHandler.UpdateVacationDays)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/read", notificationHandler.MarkAsRead)
				r.Get("/stream-token", notificationHandler.GetSSEToken)
			})
		})
	})
	return r
}
