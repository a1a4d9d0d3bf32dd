package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vytor/dilvane/internal/llm"
	"github.com/vytor/dilvane/internal/logger"
	"github.com/vytor/dilvane/internal/models"
)

var ErrNoVocabulary = errors.New("no vocabulary to build a lesson from")

type Config struct {
	LessonSize  int
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		LessonSize:  8,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Input is everything a lesson is tailored to. Vocabulary is expected weakest
// first and Notes newest first; both are truncated to the prompt limits.
type Input struct {
	NativeLanguage string
	CEFRLevel      string
	Vocabulary     []models.VocabularyItem
	Notes          []models.Note
	Count          int
}

type Generator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *Generator {
	if cfg.LessonSize <= 0 {
		cfg.LessonSize = DefaultConfig().LessonSize
	}
	return &Generator{provider: provider, config: cfg}
}

type lessonOutput struct {
	Exercises []models.ExerciseWire `json:"exercises"`
}

// Generate asks the model for a lesson and returns the exercises that decode
// into a valid kind. Malformed exercises are dropped; a lesson with none left
// is an invalid response.
func (g *Generator) Generate(ctx context.Context, in Input) ([]models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("generator")

	if len(in.Vocabulary) == 0 {
		return nil, ErrNoVocabulary
	}
	if in.NativeLanguage == "" {
		in.NativeLanguage = models.DefaultNativeLanguage
	}
	if in.CEFRLevel == "" {
		in.CEFRLevel = models.DefaultCEFRLevel
	}
	if in.Count <= 0 {
		in.Count = g.config.LessonSize
	}

	req := llm.Request{
		System:      buildSystemPrompt(in.NativeLanguage),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      LessonSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	log.Info("Generating lesson: language=%s, level=%s, words=%d, model=%s",
		in.NativeLanguage, in.CEFRLevel, min(len(in.Vocabulary), MaxVocabulary), g.provider.ModelID())

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate lesson: %w", err)
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	exercises := make([]models.Exercise, 0, len(out.Exercises))
	for i, w := range out.Exercises {
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		ex, err := w.Decode()
		if err != nil {
			log.Warn("Dropping exercise %d: %v", i, err)
			continue
		}
		exercises = append(exercises, ex)
		if len(exercises) == in.Count {
			break
		}
	}

	if len(exercises) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("no usable exercises")}
	}
	if len(exercises) < in.Count {
		log.Warn("Lesson is short: got %d of %d exercises", len(exercises), in.Count)
	}

	log.Info("Generated lesson with %d exercises (tokens=%d)", len(exercises), resp.Usage.TotalTokens)
	return exercises, nil
}
