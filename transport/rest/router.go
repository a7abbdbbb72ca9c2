package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

const basePath = "/tic_tac_toe/v1"

// NewRouter mounts the game API under basePath. User and game creation go through createLimiter.
func NewRouter(logger *slog.Logger, gameUseCase gameUseCase, allowedOrigins []string, createLimiter *IPRateLimiter) http.Handler {
	h := newHandlers(logger, gameUseCase)

	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Route(basePath, func(api chi.Router) {
		api.With(createLimiter.Middleware).Post("/user", h.CreateUser)
		api.Get("/user/games", h.GetUserGames)

		api.With(createLimiter.Middleware).Post("/game", h.NewGame)
		api.Get("/game/{id}", h.GetGame)
		api.Put("/game/{id}", h.MakeMove)
		api.Put("/game/{id}/cancel", h.CancelGame)
		api.Get("/game/{id}/history", h.GetGameHistory)

		api.Get("/rankings", h.GetUserRankings)
	})

	r.Post("/crons/send_reminder", h.SendReminders)

	return r
}
