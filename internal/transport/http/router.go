package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"devconnector/internal/handler"
	"devconnector/internal/service"
	authmw "devconnector/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	UserHandler    *handler.UserHandler
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	PostHandler    *handler.PostHandler
	AuthService    *service.AuthService
	UserService    *service.UserService
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	requireAuth := authmw.AuthMiddleware(cfg.AuthService, cfg.UserService)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API Running"))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", cfg.UserHandler.Register)
		r.With(requireAuth).Delete("/", cfg.UserHandler.DeleteAccount)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", cfg.AuthHandler.Login)
		r.With(requireAuth).Get("/", cfg.AuthHandler.Me)
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", cfg.ProfileHandler.GetAll)
		r.Get("/user/{user_id}", cfg.ProfileHandler.GetByUserID)
		r.Get("/github/{username}", cfg.ProfileHandler.GetGithubRepos)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/me", cfg.ProfileHandler.GetMe)
			r.Post("/", cfg.ProfileHandler.Upsert)
			r.Delete("/", cfg.ProfileHandler.Delete)

			// Clients use both verbs for these
			r.Put("/experience", cfg.ProfileHandler.AddExperience)
			r.Post("/experience", cfg.ProfileHandler.AddExperience)
			r.Delete("/experience/{exp_id}", cfg.ProfileHandler.DeleteExperience)

			r.Put("/education", cfg.ProfileHandler.AddEducation)
			r.Post("/education", cfg.ProfileHandler.AddEducation)
			r.Delete("/education/{edu_id}", cfg.ProfileHandler.DeleteEducation)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", cfg.PostHandler.GetAll)
		r.Get("/{post_id}", cfg.PostHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/", cfg.PostHandler.Create)
			r.Delete("/{post_id}", cfg.PostHandler.Delete)
			r.Put("/like/{post_id}", cfg.PostHandler.ToggleLike)
			r.Post("/comment/{post_id}", cfg.PostHandler.AddComment)
			r.Delete("/comment/{post_id}/{comment_id}", cfg.PostHandler.DeleteComment)
		})
	})

	return r
}
