package api

import (
	"net/http"
)

type addWordRequest struct {
	Turkish     string `json:"turkish"`
	Translation string `json:"translation"`
	// English is accepted as an alias of Translation.
	English string `json:"english"`
}

type addNoteRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleListVocabulary(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	words, err := s.Vocabulary.ListWords(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}

func (s *Server) handleAddVocabulary(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req addWordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	translation := req.Translation
	if translation == "" {
		translation = req.English
	}

	word, err := s.Vocabulary.AddWord(r.Context(), user.ID, req.Turkish, translation)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, word)
}

func (s *Server) handleDeleteVocabulary(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := queryID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Vocabulary.DeleteWord(r.Context(), user.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	notes, err := s.Vocabulary.ListNotes(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, notes)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req addNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.Vocabulary.AddNote(r.Context(), user.ID, req.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := queryID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Vocabulary.DeleteNote(r.Context(), user.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r)
}
