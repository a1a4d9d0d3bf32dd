package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
	"github.com/vytor/dilvane/internal/repository/sqlite"
	"github.com/vytor/dilvane/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	users    repository.UserRepository
	sessions repository.SessionRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.users = sqlite.NewUserRepository(s.db)
	s.sessions = sqlite.NewSessionRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.users.Insert(ctx, models.User{
		Email:          "ayse@example.com",
		Name:           "Ayşe",
		PasswordHash:   "hash",
		NativeLanguage: "German",
		CEFRLevel:      "B1",
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	u, err := s.users.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(u)
	s.Assert().Equal("ayse@example.com", u.Email)
	s.Assert().Equal("Ayşe", u.Name)
	s.Assert().Equal("German", u.NativeLanguage)
	s.Assert().Equal("B1", u.CEFRLevel)
	s.Assert().False(u.CreatedAt.IsZero())

	byEmail, err := s.users.GetByEmail(ctx, "ayse@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)
	s.Assert().Equal(id, byEmail.ID)
}

func (s *UserRepositorySuite) TestGetMissing() {
	ctx := context.Background()

	u, err := s.users.Get(ctx, 999)
	s.Assert().NoError(err)
	s.Assert().Nil(u)

	u, err = s.users.GetByEmail(ctx, "nobody@example.com")
	s.Assert().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestDuplicateEmail() {
	ctx := context.Background()
	u := models.User{Email: "dup@example.com", PasswordHash: "hash", NativeLanguage: "English", CEFRLevel: "A1"}

	_, err := s.users.Insert(ctx, u)
	s.Require().NoError(err)

	_, err = s.users.Insert(ctx, u)
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *UserRepositorySuite) TestUpdateSettings() {
	ctx := context.Background()
	id := testutil.CreateUser(s.T(), s.db, "settings@example.com")

	err := s.users.UpdateSettings(ctx, id, models.Settings{NativeLanguage: "Spanish", CEFRLevel: "C1"})
	s.Require().NoError(err)

	u, err := s.users.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("Spanish", u.NativeLanguage)
	s.Assert().Equal("C1", u.CEFRLevel)
}

func (s *UserRepositorySuite) TestSessions() {
	ctx := context.Background()
	userID := testutil.CreateUser(s.T(), s.db, "session@example.com")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.sessions.Insert(ctx, models.Session{Token: "live", UserID: userID, ExpiresAt: now.Add(time.Hour)}))
	s.Require().NoError(s.sessions.Insert(ctx, models.Session{Token: "old", UserID: userID, ExpiresAt: now.Add(-time.Hour)}))

	got, err := s.sessions.Get(ctx, "live")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(userID, got.UserID)
	s.Assert().True(got.ExpiresAt.Equal(now.Add(time.Hour)))

	n, err := s.sessions.DeleteExpired(ctx, now)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), n)

	got, err = s.sessions.Get(ctx, "old")
	s.Require().NoError(err)
	s.Assert().Nil(got)

	s.Require().NoError(s.sessions.Delete(ctx, "live"))
	got, err = s.sessions.Get(ctx, "live")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
