package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/dilvane/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "method not allowed",
			Status:  http.StatusMethodNotAllowed,
		})
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignUp)
		r.Post("/auth/signin", s.handleSignIn)
		r.Post("/auth/signout", s.handleSignOut)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)

			r.Get("/user/settings", s.handleGetSettings)
			r.Put("/user/settings", s.handleUpdateSettings)

			r.Get("/vocabulary", s.handleListVocabulary)
			r.Post("/vocabulary", s.handleAddVocabulary)
			r.Delete("/vocabulary", s.handleDeleteVocabulary)

			r.Get("/notes", s.handleListNotes)
			r.Post("/notes", s.handleAddNote)
			r.Delete("/notes", s.handleDeleteNote)

			r.Get("/progress", s.handleProgress)

			r.Get("/lesson", s.handleCurrentLesson)
			r.Delete("/lesson", s.handleAbandonLesson)
			r.Get("/lesson/history", s.handleLessonHistory)
			r.Post("/lesson/generate", s.handleGenerateLesson)
			r.Post("/lesson/answer", s.handleAnswer)
			r.Post("/lesson/continue", s.handleContinue)
			r.Post("/lesson/check", s.handleCheck)
			r.Post("/lesson/complete", s.handleCompleteLesson)
		})
	})

	return r
}
