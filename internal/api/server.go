package api

import (
	"database/sql"

	"github.com/vytor/dilvane/internal/services"
)

type Server struct {
	DB         *sql.DB
	Auth       services.AuthService
	Users      services.UserService
	Vocabulary services.VocabularyService
	Progress   services.ProgressService
	Lessons    services.LessonService

	CookieSecure bool
}
