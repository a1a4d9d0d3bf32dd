package lesson

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vytor/dilvane/internal/grading"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/progress"
)

type State int

const (
	AwaitingAnswer State = iota
	Graded
	Complete
)

func (s State) String() string {
	switch s {
	case AwaitingAnswer:
		return "awaiting_answer"
	case Graded:
		return "graded"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	ErrNoExercises       = errors.New("lesson has no exercises")
	ErrEmptyAnswer       = errors.New("answer is empty")
	ErrInvalidTransition = errors.New("invalid lesson transition")
)

// Completer persists a finished lesson and reports what it earned.
type Completer interface {
	CompleteLesson(ctx context.Context, userID int64, req models.LessonCompletionRequest) (*models.LessonCompletionResponse, error)
}

// Feedback is the outcome of one submitted answer.
type Feedback struct {
	Index      int                  `json:"index"`
	Attempt    models.LessonAttempt `json:"attempt"`
	Similarity float64              `json:"similarity"`
	IsLast     bool                 `json:"is_last"`
}

// Summary is what the learner sees once the lesson ends. Persisted is false
// when the values were computed locally because saving failed.
type Summary struct {
	Total     int                    `json:"total_questions"`
	Correct   int                    `json:"correct_answers"`
	XPEarned  int                    `json:"xp_earned"`
	NewStreak int                    `json:"new_streak"`
	Attempts  []models.LessonAttempt `json:"exercises"`
	Persisted bool                   `json:"persisted"`
}

// View is a read-only snapshot for clients.
type View struct {
	ID       string              `json:"id"`
	State    string              `json:"state"`
	Index    int                 `json:"index"`
	Total    int                 `json:"total"`
	Exercise models.ExerciseWire `json:"exercise"`
	Feedback *Feedback           `json:"feedback,omitempty"`
}

// Session walks a learner through a fixed sequence of exercises:
// AwaitingAnswer(i) -> Graded(i) -> AwaitingAnswer(i+1) ... -> Complete.
// There is no way back and no skipping.
type Session struct {
	ID     string
	UserID int64

	mu         sync.Mutex
	exercises  []models.Exercise
	vocabulary []string
	baseline   *models.UserProgress
	index      int
	state      State
	attempts   []models.LessonAttempt
	updates    []models.VocabularyUpdate
	feedback   *Feedback
	touchedAt  atomic.Int64 // unix nanos, read without mu
	now        func() time.Time
}

type Option func(*Session)

// WithBaseline supplies the progress used for the offline summary.
func WithBaseline(p *models.UserProgress) Option {
	return func(s *Session) {
		if p != nil {
			cp := *p
			s.baseline = &cp
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession starts a lesson. vocabulary is the learner's word list used to
// attribute exercises to words.
func NewSession(id string, userID int64, exercises []models.Exercise, vocabulary []models.VocabularyItem, opts ...Option) (*Session, error) {
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}
	s := &Session{
		ID:        id,
		UserID:    userID,
		exercises: append([]models.Exercise(nil), exercises...),
		now:       time.Now,
	}
	for _, w := range vocabulary {
		s.vocabulary = append(s.vocabulary, w.Turkish)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.touch()
	return s, nil
}

func (s *Session) Len() int { return len(s.exercises) }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index is the position of the current exercise.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// TouchedAt never waits on mu, so it stays cheap while a lesson is saving.
func (s *Session) TouchedAt() time.Time {
	return time.Unix(0, s.touchedAt.Load())
}

func (s *Session) touch() { s.touchedAt.Store(s.now().UnixNano()) }

// View hides the expected answer until the current exercise is graded.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex := models.ToWire(s.exercises[s.index])
	if s.state == AwaitingAnswer {
		ex.Answer = ""
		ex.CorrectOrder = nil
	}
	return View{
		ID:       s.ID,
		State:    s.state.String(),
		Index:    s.index,
		Total:    len(s.exercises),
		Exercise: ex,
		Feedback: s.feedback,
	}
}

// Submit grades answer against the current exercise.
func (s *Session) Submit(answer string) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != AwaitingAnswer {
		return Feedback{}, fmt.Errorf("%w: submit while %s", ErrInvalidTransition, s.state)
	}
	if strings.TrimSpace(answer) == "" {
		return Feedback{}, ErrEmptyAnswer
	}

	ex := s.exercises[s.index]
	result, attempt := grading.GradeExercise(ex, answer)
	s.attempts = append(s.attempts, attempt)

	for _, word := range s.vocabulary {
		if grading.ReferencesWord(ex, word) {
			s.updates = append(s.updates, models.VocabularyUpdate{Word: word, IsCorrect: attempt.IsCorrect})
			break
		}
	}

	fb := Feedback{
		Index:      s.index,
		Attempt:    attempt,
		Similarity: result.Similarity,
		IsLast:     s.index == len(s.exercises)-1,
	}
	s.feedback = &fb
	s.state = Graded
	s.touch()
	return fb, nil
}

// Continue moves to the next exercise. On the last one, use Finish.
func (s *Session) Continue() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Graded {
		return fmt.Errorf("%w: continue while %s", ErrInvalidTransition, s.state)
	}
	if s.index == len(s.exercises)-1 {
		return fmt.Errorf("%w: continue past the last exercise", ErrInvalidTransition)
	}
	s.index++
	s.state = AwaitingAnswer
	s.feedback = nil
	s.touch()
	return nil
}

// Request builds the completion payload from the attempts so far.
func (s *Session) Request() models.LessonCompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestLocked()
}

func (s *Session) requestLocked() models.LessonCompletionRequest {
	correct := 0
	for _, a := range s.attempts {
		if a.IsCorrect {
			correct++
		}
	}
	return models.LessonCompletionRequest{
		TotalQuestions:    len(s.exercises),
		CorrectAnswers:    correct,
		Exercises:         append([]models.LessonAttempt(nil), s.attempts...),
		VocabularyUpdates: append([]models.VocabularyUpdate(nil), s.updates...),
	}
}

// Finish completes a lesson whose last exercise has been graded. When the
// completer fails the session stays finishable, and the returned summary is
// computed locally with Persisted=false alongside the error.
func (s *Session) Finish(ctx context.Context, c Completer) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Graded || s.index != len(s.exercises)-1 {
		return Summary{}, fmt.Errorf("%w: finish while %s at %d/%d", ErrInvalidTransition, s.state, s.index+1, len(s.exercises))
	}

	req := s.requestLocked()
	summary := Summary{
		Total:    req.TotalQuestions,
		Correct:  req.CorrectAnswers,
		Attempts: req.Exercises,
	}

	resp, err := c.CompleteLesson(ctx, s.UserID, req)
	if err != nil {
		xp, next := progress.ApplyLessonCompletion(s.baseline, req.CorrectAnswers, req.TotalQuestions, s.now())
		summary.XPEarned = xp
		summary.NewStreak = next.CurrentStreak
		return summary, err
	}

	summary.XPEarned = resp.XPEarned
	summary.NewStreak = resp.NewStreak
	summary.Persisted = true
	s.state = Complete
	s.feedback = nil
	s.touch()
	return summary, nil
}
