package api

import (
	"net/http"

	"github.com/vytor/dilvane/internal/models"
)

type settingsResponse struct {
	Success bool `json:"success,omitempty"`
	models.Settings
	Languages  []models.Language  `json:"languages,omitempty"`
	CEFRLevels []models.CEFRLevel `json:"cefr_levels,omitempty"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	settings, err := s.Users.GetSettings(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, settingsResponse{
		Settings:   *settings,
		Languages:  models.SupportedLanguages,
		CEFRLevels: models.CEFRLevels,
	})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req models.Settings
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	settings, err := s.Users.UpdateSettings(r.Context(), user.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, settingsResponse{Success: true, Settings: *settings})
}
