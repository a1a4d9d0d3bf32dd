package api

import (
	"net/http"
	"strings"

	"github.com/vytor/dilvane/internal/errors"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userResponse struct {
	User *models.User `json:"user"`
}

func (req credentialsRequest) validate() error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return errors.NewBadRequestError("email and password are required")
	}
	return nil
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, r, err)
		return
	}

	user, session, err := s.Auth.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setSessionCookie(w, session, s.CookieSecure)
	writeJSON(w, r, http.StatusCreated, userResponse{User: user})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, r, err)
		return
	}

	user, session, err := s.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setSessionCookie(w, session, s.CookieSecure)
	writeJSON(w, r, http.StatusOK, userResponse{User: user})
}

// handleSignOut always clears the cookie, even when the session is already gone.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.Auth.SignOut(r.Context(), cookie.Value); err != nil {
			handleError(w, r, err)
			return
		}
	} else {
		logger.FromContext(r.Context()).Debug("sign out without session cookie")
	}

	clearSessionCookie(w, s.CookieSecure)
	writeSuccess(w, r)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, userResponse{User: userFromContext(r.Context())})
}
