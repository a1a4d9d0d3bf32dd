package api

import "net/http"

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	overview, err := s.Progress.Overview(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleLessonHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	history, err := s.Progress.History(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}
