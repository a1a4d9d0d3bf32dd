package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/dilvane/internal/errors"
	"github.com/vytor/dilvane/internal/generator"
	"github.com/vytor/dilvane/internal/grading"
	"github.com/vytor/dilvane/internal/lesson"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository"
)

// LessonGenerator produces the exercises of a new lesson.
type LessonGenerator interface {
	Generate(ctx context.Context, in generator.Input) ([]models.Exercise, error)
}

// CheckResult is the outcome of grading a single answer outside a lesson.
type CheckResult struct {
	Verdict    grading.Verdict      `json:"verdict"`
	Similarity float64              `json:"similarity"`
	Attempt    models.LessonAttempt `json:"attempt"`
}

// Step is what advancing a lesson produced: the next exercise, or the summary
// once the last one was finished.
type Step struct {
	Lesson  *lesson.View    `json:"lesson,omitempty"`
	Summary *lesson.Summary `json:"summary,omitempty"`
	// Warning is set when the summary could not be saved.
	Warning string `json:"warning,omitempty"`
}

// LessonService runs generated lessons and records completed ones
type LessonService interface {
	Start(ctx context.Context, userID int64) (*lesson.View, error)
	Current(ctx context.Context, userID int64) (*lesson.View, error)
	Answer(ctx context.Context, userID int64, answer string) (*lesson.Feedback, error)
	Continue(ctx context.Context, userID int64) (*Step, error)
	Abandon(ctx context.Context, userID int64) error
	Check(ctx context.Context, exercise models.ExerciseWire, answer string) (*CheckResult, error)
	CompleteLesson(ctx context.Context, userID int64, req models.LessonCompletionRequest) (*models.LessonCompletionResponse, error)
	EvictIdle(ctx context.Context) int
}

type LessonConfig struct {
	LessonSize int
}

type lessonService struct {
	users     repository.UserRepository
	words     repository.VocabularyRepository
	notes     repository.NoteRepository
	progress  repository.ProgressRepository
	lessons   repository.LessonRepository
	generator LessonGenerator
	store     *lesson.Store
	config    LessonConfig
	now       func() time.Time
}

type LessonDeps struct {
	Users     repository.UserRepository
	Words     repository.VocabularyRepository
	Notes     repository.NoteRepository
	Progress  repository.ProgressRepository
	Lessons   repository.LessonRepository
	Generator LessonGenerator
	Store     *lesson.Store
}

// NewLessonService creates a new LessonService
func NewLessonService(deps LessonDeps, cfg LessonConfig) LessonService {
	if cfg.LessonSize <= 0 {
		cfg.LessonSize = 8
	}
	return &lessonService{
		users:     deps.Users,
		words:     deps.Words,
		notes:     deps.Notes,
		progress:  deps.Progress,
		lessons:   deps.Lessons,
		generator: deps.Generator,
		store:     deps.Store,
		config:    cfg,
		now:       time.Now,
	}
}

func (s *lessonService) Start(ctx context.Context, userID int64) (*lesson.View, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting lesson: user_id=%d", userID)

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	words, err := s.words.List(ctx, models.VocabularyFilter{UserID: userID, PracticeOrder: true, Limit: generator.MaxVocabulary})
	if err != nil {
		log.Error("failed to load vocabulary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(words) == 0 {
		return nil, errors.NewValidationError("vocabulary", "no vocabulary found, add some words first")
	}

	notes, err := s.notes.List(ctx, userID, generator.MaxNotes)
	if err != nil {
		log.Error("failed to load notes: %v", err)
		return nil, errors.NewInternalError(err)
	}

	baseline, err := s.progress.Get(ctx, userID)
	if err != nil {
		log.Warn("starting lesson without progress baseline: %v", err)
	}

	exercises, err := s.generator.Generate(ctx, generator.Input{
		NativeLanguage: user.NativeLanguage,
		CEFRLevel:      user.CEFRLevel,
		Vocabulary:     words,
		Notes:          notes,
		Count:          s.config.LessonSize,
	})
	if err != nil {
		if stderrors.Is(err, generator.ErrNoVocabulary) {
			return nil, errors.NewValidationError("vocabulary", "no vocabulary found, add some words first")
		}
		log.Error("lesson generation failed: %v", err)
		return nil, errors.NewUnavailableError("failed to generate lesson, please try again", err)
	}

	session, err := lesson.NewSession(uuid.NewString(), userID, exercises, words, lesson.WithBaseline(baseline))
	if err != nil {
		log.Error("generator returned an empty lesson")
		return nil, errors.NewUnavailableError("failed to generate lesson, please try again", err)
	}
	if replaced := s.store.Start(session); replaced {
		log.Info("previous lesson discarded: user_id=%d", userID)
	}

	log.Info("lesson started: user_id=%d, id=%s, exercises=%d", userID, session.ID, session.Len())
	view := session.View()
	return &view, nil
}

func (s *lessonService) active(userID int64) (*lesson.Session, error) {
	session, ok := s.store.Get(userID)
	if !ok {
		return nil, errors.NewNotFoundError("lesson", "active")
	}
	return session, nil
}

func transitionError(err error) error {
	switch {
	case stderrors.Is(err, lesson.ErrEmptyAnswer):
		return errors.NewValidationError("answer", "cannot be empty")
	case stderrors.Is(err, lesson.ErrInvalidTransition):
		return errors.NewConflictError(err.Error())
	default:
		return errors.NewInternalError(err)
	}
}

func (s *lessonService) Current(ctx context.Context, userID int64) (*lesson.View, error) {
	session, err := s.active(userID)
	if err != nil {
		return nil, err
	}
	view := session.View()
	return &view, nil
}

func (s *lessonService) Answer(ctx context.Context, userID int64, answer string) (*lesson.Feedback, error) {
	session, err := s.active(userID)
	if err != nil {
		return nil, err
	}

	fb, err := session.Submit(answer)
	if err != nil {
		return nil, transitionError(err)
	}
	logger.FromContext(ctx).Debug("answer graded: lesson=%s, index=%d, verdict=%s", session.ID, fb.Index, fb.Attempt.Verdict)
	return &fb, nil
}

func (s *lessonService) Continue(ctx context.Context, userID int64) (*Step, error) {
	log := logger.FromContext(ctx)

	session, err := s.active(userID)
	if err != nil {
		return nil, err
	}

	if session.State() == lesson.Graded && session.Index() == session.Len()-1 {
		summary, err := session.Finish(ctx, s)
		if stderrors.Is(err, lesson.ErrInvalidTransition) {
			return nil, transitionError(err)
		}
		if err != nil {
			log.Error("failed to save lesson %s, showing local summary: %v", session.ID, err)
			return &Step{Summary: &summary, Warning: "your progress could not be saved, please try again"}, nil
		}
		s.store.Release(userID, session.ID)
		return &Step{Summary: &summary}, nil
	}

	if err := session.Continue(); err != nil {
		return nil, transitionError(err)
	}
	view := session.View()
	return &Step{Lesson: &view}, nil
}

func (s *lessonService) Abandon(ctx context.Context, userID int64) error {
	if !s.store.Abandon(userID) {
		return errors.NewNotFoundError("lesson", "active")
	}
	logger.FromContext(ctx).Info("lesson abandoned: user_id=%d", userID)
	return nil
}

func (s *lessonService) Check(ctx context.Context, wire models.ExerciseWire, answer string) (*CheckResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}
	ex, err := wire.Decode()
	if err != nil {
		return nil, errors.NewValidationError("exercise", err.Error())
	}

	result, attempt := grading.GradeExercise(ex, answer)
	return &CheckResult{Verdict: result.Verdict, Similarity: result.Similarity, Attempt: attempt}, nil
}

func (s *lessonService) CompleteLesson(ctx context.Context, userID int64, req models.LessonCompletionRequest) (*models.LessonCompletionResponse, error) {
	log := logger.FromContext(ctx)

	if req.TotalQuestions <= 0 {
		return nil, errors.NewValidationError("totalQuestions", "must be positive")
	}
	if req.CorrectAnswers < 0 || req.CorrectAnswers > req.TotalQuestions {
		return nil, errors.NewValidationError("correctAnswers", "must be between 0 and totalQuestions")
	}

	resp, err := s.lessons.Complete(ctx, userID, req, s.now())
	if err != nil {
		log.Error("failed to complete lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return resp, nil
}

func (s *lessonService) EvictIdle(ctx context.Context) int {
	n := s.store.EvictIdle()
	if n > 0 {
		logger.FromContext(ctx).Info("evicted %d idle lessons", n)
	}
	return n
}
