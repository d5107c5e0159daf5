package routes

import (
	"net/http"

	"github.com/Dosada05/league-api/events"
	"github.com/Dosada05/league-api/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

// SetupRoutes wires the route table. Everything except register/login sits
// behind the authenticate middleware.
func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	hub *events.Hub,
	authenticate func(http.Handler) http.Handler,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/logout", authHandler.Logout)
		r.Get("/user", authHandler.CurrentUser)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.List)
			r.Post("/", playerHandler.Create)
			r.Get("/{id}", playerHandler.GetByID)
			r.Put("/{id}", playerHandler.Update)
			r.Patch("/{id}", playerHandler.Update)
			r.Delete("/{id}", playerHandler.Delete)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
			r.Get("/{id}", teamHandler.GetByID)
			r.Put("/{id}", teamHandler.Update)
			r.Patch("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
			r.Post("/{id}/logo", teamHandler.UploadLogo)
		})

		r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			events.ServeWS(hub, w, r)
		})
	})
}
