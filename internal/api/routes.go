package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   s.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders:   []string{"Content-Type", profileHeader, "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           600,
		}).Handler)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/qualities", s.handleQualities)

		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles/{id}", s.handleGetProfile)
		r.Delete("/profiles/{id}", s.handleDeleteProfile)

		r.Group(func(r chi.Router) {
			r.Use(s.profileMiddleware)

			r.Get("/decks", s.handleListDecks)
			r.Post("/decks", s.handleCreateDeck)
			r.Get("/decks/{id}", s.handleGetDeck)
			r.Delete("/decks/{id}", s.handleDeleteDeck)
			r.Post("/decks/{id}/import", s.handleImportDeck)

			r.Get("/flashcards", s.handleListFlashcards)
			r.Post("/flashcards", s.handleCreateFlashcard)
			r.Get("/flashcards/{id}", s.handleGetFlashcard)
			r.Delete("/flashcards/{id}", s.handleDeleteFlashcard)
			r.Get("/flashcards/{id}/history", s.handleFlashcardHistory)
			r.With(s.rateLimitMiddleware).Post("/flashcards/{id}/review", s.handleReviewFlashcard)

			r.Post("/sessions", s.handleStartSession)
			r.Get("/stats", s.handleStats)
		})
	})
	return r
}
