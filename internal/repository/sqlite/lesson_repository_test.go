package sqlite_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
	"github.com/vytor/dilvane/internal/repository/sqlite"
	"github.com/vytor/dilvane/internal/testutil"
)

type LessonRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	lessons  repository.LessonRepository
	progress repository.ProgressRepository
	vocab    repository.VocabularyRepository
	userID   int64
	day      time.Time
}

func (s *LessonRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.lessons = sqlite.NewLessonRepository(s.db)
	s.progress = sqlite.NewProgressRepository(s.db)
	s.vocab = sqlite.NewVocabularyRepository(s.db)
	s.userID = testutil.CreateUser(s.T(), s.db, "learner@example.com")
	s.day = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
}

func (s *LessonRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *LessonRepositorySuite) complete(correct, total int, at time.Time, updates ...models.VocabularyUpdate) *models.LessonCompletionResponse {
	resp, err := s.lessons.Complete(context.Background(), s.userID, models.LessonCompletionRequest{
		TotalQuestions:    total,
		CorrectAnswers:    correct,
		Exercises:         []models.LessonAttempt{{Question: "kedi", UserAnswer: "cat", CorrectAnswer: "cat", IsCorrect: true}},
		VocabularyUpdates: updates,
	}, at)
	s.Require().NoError(err)
	return resp
}

func (s *LessonRepositorySuite) TestFirstLesson() {
	resp := s.complete(6, 8, s.day)
	s.Assert().True(resp.Success)
	s.Assert().Equal(64, resp.XPEarned)
	s.Assert().Equal(1, resp.NewStreak)

	p, err := s.progress.Get(context.Background(), s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(1, p.CurrentStreak)
	s.Assert().Equal(1, p.LongestStreak)
	s.Assert().Equal(1, p.TotalLessons)
	s.Assert().Equal(64, p.XPPoints)
	s.Assert().Equal(1, p.Level)
	s.Require().NotNil(p.LastLessonDate)
	s.Assert().Equal("2024-03-10", p.LastLessonDate.Format("2006-01-02"))
}

func (s *LessonRepositorySuite) TestStreakRules() {
	s.Assert().Equal(1, s.complete(8, 8, s.day).NewStreak)
	s.Assert().Equal(1, s.complete(8, 8, s.day.Add(5*time.Hour)).NewStreak, "same day keeps the streak")
	s.Assert().Equal(2, s.complete(8, 8, s.day.AddDate(0, 0, 1)).NewStreak, "next day extends it")
	s.Assert().Equal(3, s.complete(8, 8, s.day.AddDate(0, 0, 2)).NewStreak)
	s.Assert().Equal(1, s.complete(8, 8, s.day.AddDate(0, 0, 5)).NewStreak, "a gap resets it")

	p, err := s.progress.Get(context.Background(), s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(1, p.CurrentStreak)
	s.Assert().Equal(3, p.LongestStreak)
	s.Assert().Equal(5, p.TotalLessons)
	s.Assert().Equal(400, p.XPPoints)
	s.Assert().Equal(5, p.Level)
}

func (s *LessonRepositorySuite) TestProgressCreatedBeforeFirstLesson() {
	// A vocabulary add creates the row with no lesson date.
	_, err := s.vocab.Insert(context.Background(), models.VocabularyItem{UserID: s.userID, Turkish: "su", Translation: "water"})
	s.Require().NoError(err)

	s.Assert().Equal(1, s.complete(1, 1, s.day).NewStreak)

	p, err := s.progress.Get(context.Background(), s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(1, p.TotalWordsLearned)
	s.Assert().Equal(1, p.LongestStreak)
}

func (s *LessonRepositorySuite) TestMasteryUpdates() {
	ctx := context.Background()
	kedi, err := s.vocab.Insert(ctx, models.VocabularyItem{UserID: s.userID, Turkish: "kedi", Translation: "cat", MasteryLevel: 5})
	s.Require().NoError(err)
	_, err = s.vocab.Insert(ctx, models.VocabularyItem{UserID: s.userID, Turkish: "Şehir", Translation: "city", MasteryLevel: 0})
	s.Require().NoError(err)

	s.complete(1, 3, s.day,
		models.VocabularyUpdate{Word: "KEDI", IsCorrect: true},
		models.VocabularyUpdate{Word: "şehir", IsCorrect: false},
		models.VocabularyUpdate{Word: "köpek", IsCorrect: true},
		models.VocabularyUpdate{Word: "kedi", IsCorrect: false},
	)

	words, err := s.vocab.List(ctx, models.VocabularyFilter{UserID: s.userID})
	s.Require().NoError(err)
	byWord := map[string]models.VocabularyItem{}
	for _, w := range words {
		byWord[w.Turkish] = w
	}

	cat := byWord["kedi"]
	s.Assert().Equal(kedi, cat.ID)
	s.Assert().Equal(4, cat.MasteryLevel, "clamped at 5 then lowered once")
	s.Assert().Equal(2, cat.TimesPracticed)
	s.Assert().Equal(1, cat.TimesCorrect)
	s.Require().NotNil(cat.LastPracticedAt)
	s.Assert().True(cat.LastPracticedAt.Equal(s.day))

	city := byWord["Şehir"]
	s.Assert().Equal(0, city.MasteryLevel)
	s.Assert().Equal(1, city.TimesPracticed)
	s.Assert().Equal(0, city.TimesCorrect)
}

func (s *LessonRepositorySuite) TestMasteryUpdatesEveryDuplicate() {
	ctx := context.Background()
	first, err := s.vocab.Insert(ctx, models.VocabularyItem{UserID: s.userID, Turkish: "kedi", Translation: "cat"})
	s.Require().NoError(err)
	second, err := s.vocab.Insert(ctx, models.VocabularyItem{UserID: s.userID, Turkish: "Kedi", Translation: "kitty", MasteryLevel: 2})
	s.Require().NoError(err)

	s.complete(1, 1, s.day, models.VocabularyUpdate{Word: "kedi", IsCorrect: true})

	words, err := s.vocab.List(ctx, models.VocabularyFilter{UserID: s.userID})
	s.Require().NoError(err)
	s.Require().Len(words, 2)
	byID := map[int64]models.VocabularyItem{}
	for _, w := range words {
		byID[w.ID] = w
	}

	s.Assert().Equal(1, byID[first].MasteryLevel)
	s.Assert().Equal(3, byID[second].MasteryLevel)
	for _, id := range []int64{first, second} {
		s.Assert().Equal(1, byID[id].TimesPracticed)
		s.Assert().Equal(1, byID[id].TimesCorrect)
		s.Require().NotNil(byID[id].LastPracticedAt)
		s.Assert().True(byID[id].LastPracticedAt.Equal(s.day))
	}
}

func (s *LessonRepositorySuite) TestHistory() {
	ctx := context.Background()
	s.complete(2, 8, s.day)
	s.complete(7, 8, s.day.Add(time.Hour))

	history, err := s.lessons.History(ctx, s.userID, 10)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Assert().Equal(7, history[0].CorrectAnswers)
	s.Assert().Equal(8, history[0].TotalQuestions)
	s.Require().Len(history[0].Exercises, 1)
	s.Assert().Equal("kedi", history[0].Exercises[0].Question)
	s.Assert().True(history[0].Exercises[0].IsCorrect)

	limited, err := s.lessons.History(ctx, s.userID, 1)
	s.Require().NoError(err)
	s.Assert().Len(limited, 1)
}

func (s *LessonRepositorySuite) TestFailedCompletionLeavesNoTrace() {
	ctx := context.Background()

	_, err := s.lessons.Complete(ctx, 9999, models.LessonCompletionRequest{TotalQuestions: 1, CorrectAnswers: 1}, s.day)
	s.Require().Error(err)

	var count int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lesson_history`).Scan(&count))
	s.Assert().Zero(count)
}

func (s *LessonRepositorySuite) TestConcurrentCompletionsDoNotLoseUpdates() {
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.lessons.Complete(context.Background(), s.userID,
				models.LessonCompletionRequest{TotalQuestions: 8, CorrectAnswers: 8}, s.day)
			s.Assert().NoError(err)
		}()
	}
	wg.Wait()

	p, err := s.progress.Get(context.Background(), s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(10, p.TotalLessons)
	s.Assert().Equal(800, p.XPPoints)
	s.Assert().Equal(9, p.Level)
	s.Assert().Equal(1, p.CurrentStreak)
}

func TestLessonRepositorySuite(t *testing.T) {
	suite.Run(t, new(LessonRepositorySuite))
}
