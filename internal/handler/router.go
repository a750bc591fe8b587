package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/taskboardhq/taskboard-api/internal/config"
	"github.com/taskboardhq/taskboard-api/internal/httpjson"
	"github.com/taskboardhq/taskboard-api/internal/middleware"
	"github.com/taskboardhq/taskboard-api/shared/auth"
)

// NewRouter wires every endpoint. Board and task groups sit entirely behind
// the bearer-token guard; auth endpoints are public except the user lookup.
func NewRouter(
	cfg *config.Config,
	logger *zerolog.Logger,
	jwtAuth auth.JWTAuthenticator,
	authHandler *AuthHandler,
	passwordResetHandler *PasswordResetHandler,
	boardHandler *BoardHandler,
	taskHandler *TaskHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger, cfg.IsDevelopment()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	requireAuth := middleware.RequireAuth(jwtAuth)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, struct {
			Message   string            `json:"message"`
			Version   string            `json:"version"`
			Endpoints map[string]string `json:"endpoints"`
		}{
			Message: "Taskboard API is running",
			Version: "2.0.0",
			Endpoints: map[string]string{
				"users":  "/user",
				"boards": "/board",
				"tasks":  "/task",
				"auth":   "/auth",
			},
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/verify-email/{token}", authHandler.VerifyEmail)
		r.Post("/resend-verification", authHandler.ResendVerification)

		r.With(requireAuth).Get("/getuser", authHandler.GetUser)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/forgot-password", passwordResetHandler.ForgotPassword)
		r.Post("/reset-password", passwordResetHandler.ResetPassword)
	})

	r.Route("/board", func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/", boardHandler.CreateBoard)
		r.Get("/", boardHandler.ListBoards)
		r.Get("/{id}", boardHandler.GetBoard)
		r.Put("/{id}", boardHandler.UpdateBoard)
		r.Delete("/{id}", boardHandler.DeleteBoard)
	})

	r.Route("/task", func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
		r.Patch("/{id}/toggle", taskHandler.ToggleTaskCompletion)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Error(w, http.StatusNotFound, "Route not found")
	})

	return r
}
