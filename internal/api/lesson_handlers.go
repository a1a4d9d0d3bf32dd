package api

import (
	"net/http"

	"github.com/vytor/dilvane/internal/models"
)

type answerRequest struct {
	Answer string `json:"answer"`
}

type checkRequest struct {
	Exercise models.ExerciseWire `json:"exercise"`
	Answer   string              `json:"answer"`
}

func (s *Server) handleGenerateLesson(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	view, err := s.Lessons.Start(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleCurrentLesson(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	view, err := s.Lessons.Current(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	fb, err := s.Lessons.Answer(r.Context(), user.ID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fb)
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	step, err := s.Lessons.Continue(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, step)
}

func (s *Server) handleAbandonLesson(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.Lessons.Abandon(r.Context(), user.ID); err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Lessons.Check(r.Context(), req.Exercise, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req models.LessonCompletionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	resp, err := s.Lessons.CompleteLesson(r.Context(), user.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}
