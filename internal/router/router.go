package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gymlog-backend/internal/config"
	"gymlog-backend/internal/handlers"
	"gymlog-backend/internal/middleware"
)

// New wires the HTTP surface. chatMode picks which chat handler serves
// POST /chat.
func New(chatHandler *handlers.ChatHandler, chatMode string, maxBodyBytes int64) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS())

	r.Get("/health", handlers.Health)
	r.Get("/", handlers.Root)

	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBodySize(maxBodyBytes))

		if chatMode == config.ModeText {
			r.Post("/chat", chatHandler.Reply)
		} else {
			r.Post("/chat", chatHandler.Rows)
		}
	})

	return r
}
