package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ExerciseType string

const (
	ExerciseTranslateToNative  ExerciseType = "translate-to-native"
	ExerciseTranslateToTurkish ExerciseType = "translate-to-turkish"
	ExerciseWordBank           ExerciseType = "word-bank"
	ExerciseSentenceArrange    ExerciseType = "sentence-arrange"
	ExerciseMultipleChoice     ExerciseType = "multiple-choice"
	ExerciseFillBlank          ExerciseType = "fill-blank"
	ExerciseListening          ExerciseType = "listening-comprehension"
)

// ExerciseTypes lists every kind in the order the generator is told about them.
var ExerciseTypes = []ExerciseType{
	ExerciseTranslateToNative,
	ExerciseTranslateToTurkish,
	ExerciseWordBank,
	ExerciseSentenceArrange,
	ExerciseMultipleChoice,
	ExerciseFillBlank,
	ExerciseListening,
}

type WordDetail struct {
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// Exercise is one generated question. The concrete types below are the only
// implementations; switch on them to handle a kind.
type Exercise interface {
	Kind() ExerciseType
	Common() ExerciseBase
	validate() error
}

// ExerciseBase holds the fields every kind carries.
type ExerciseBase struct {
	ID          string
	Question    string
	Answer      string
	Hint        string
	Context     string
	WordDetails []WordDetail
}

func (b ExerciseBase) Common() ExerciseBase { return b }

func (b ExerciseBase) validate() error {
	if strings.TrimSpace(b.Question) == "" {
		return fmt.Errorf("exercise %q: question is empty", b.ID)
	}
	if strings.TrimSpace(b.Answer) == "" {
		return fmt.Errorf("exercise %q: answer is empty", b.ID)
	}
	return nil
}

type TranslateToNative struct{ ExerciseBase }

func (TranslateToNative) Kind() ExerciseType { return ExerciseTranslateToNative }

type TranslateToTurkish struct{ ExerciseBase }

func (TranslateToTurkish) Kind() ExerciseType { return ExerciseTranslateToTurkish }

type WordBank struct {
	ExerciseBase
	Bank         []string
	CorrectOrder []string
}

func (WordBank) Kind() ExerciseType { return ExerciseWordBank }

func (e WordBank) validate() error {
	if err := e.ExerciseBase.validate(); err != nil {
		return err
	}
	return validateOrdering(e.ID, e.Bank, e.CorrectOrder)
}

type SentenceArrange struct {
	ExerciseBase
	Bank         []string
	CorrectOrder []string
}

func (SentenceArrange) Kind() ExerciseType { return ExerciseSentenceArrange }

func (e SentenceArrange) validate() error {
	if err := e.ExerciseBase.validate(); err != nil {
		return err
	}
	return validateOrdering(e.ID, e.Bank, e.CorrectOrder)
}

type MultipleChoice struct {
	ExerciseBase
	Options []string
}

func (MultipleChoice) Kind() ExerciseType { return ExerciseMultipleChoice }

func (e MultipleChoice) validate() error {
	if err := e.ExerciseBase.validate(); err != nil {
		return err
	}
	if len(e.Options) < 2 {
		return fmt.Errorf("exercise %q: multiple-choice needs at least 2 options", e.ID)
	}
	return nil
}

// FillBlank options are optional; without them the learner types the word.
type FillBlank struct {
	ExerciseBase
	Options []string
}

func (FillBlank) Kind() ExerciseType { return ExerciseFillBlank }

type ListeningComprehension struct{ ExerciseBase }

func (ListeningComprehension) Kind() ExerciseType { return ExerciseListening }

func validateOrdering(id string, bank, order []string) error {
	if len(bank) == 0 {
		return fmt.Errorf("exercise %q: word bank is empty", id)
	}
	available := make(map[string]int, len(bank))
	for _, w := range bank {
		available[w]++
	}
	for _, w := range order {
		if available[w] == 0 {
			return fmt.Errorf("exercise %q: %q is not in the word bank", id, w)
		}
		available[w]--
	}
	return nil
}

// ExerciseWire is the flat JSON shape exchanged with clients and the generator.
type ExerciseWire struct {
	ID           string       `json:"id"`
	Type         ExerciseType `json:"type"`
	Question     string       `json:"question"`
	Answer       string       `json:"answer"`
	Options      []string     `json:"options,omitempty"`
	WordBank     []string     `json:"wordBank,omitempty"`
	CorrectOrder []string     `json:"correctOrder,omitempty"`
	Hint         string       `json:"hint,omitempty"`
	Context      string       `json:"context,omitempty"`
	WordDetails  []WordDetail `json:"wordDetails,omitempty"`
}

// Decode converts the wire shape into its typed exercise and validates it.
func (w ExerciseWire) Decode() (Exercise, error) {
	base := ExerciseBase{
		ID:          w.ID,
		Question:    w.Question,
		Answer:      w.Answer,
		Hint:        w.Hint,
		Context:     w.Context,
		WordDetails: w.WordDetails,
	}

	var ex Exercise
	switch w.Type {
	case ExerciseTranslateToNative:
		ex = TranslateToNative{base}
	case ExerciseTranslateToTurkish:
		ex = TranslateToTurkish{base}
	case ExerciseWordBank:
		ex = WordBank{ExerciseBase: base, Bank: w.WordBank, CorrectOrder: orderOrFields(w.CorrectOrder, w.Answer)}
	case ExerciseSentenceArrange:
		ex = SentenceArrange{ExerciseBase: base, Bank: w.WordBank, CorrectOrder: orderOrFields(w.CorrectOrder, w.Answer)}
	case ExerciseMultipleChoice:
		ex = MultipleChoice{ExerciseBase: base, Options: w.Options}
	case ExerciseFillBlank:
		ex = FillBlank{ExerciseBase: base, Options: w.Options}
	case ExerciseListening:
		ex = ListeningComprehension{base}
	default:
		return nil, fmt.Errorf("exercise %q: unknown type %q", w.ID, w.Type)
	}

	if err := ex.validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

func orderOrFields(order []string, answer string) []string {
	if len(order) > 0 {
		return order
	}
	return strings.Fields(answer)
}

// ToWire flattens a typed exercise.
func ToWire(ex Exercise) ExerciseWire {
	b := ex.Common()
	w := ExerciseWire{
		ID:          b.ID,
		Type:        ex.Kind(),
		Question:    b.Question,
		Answer:      b.Answer,
		Hint:        b.Hint,
		Context:     b.Context,
		WordDetails: b.WordDetails,
	}
	switch e := ex.(type) {
	case TranslateToNative, TranslateToTurkish, ListeningComprehension:
	case WordBank:
		w.WordBank = e.Bank
		w.CorrectOrder = e.CorrectOrder
	case SentenceArrange:
		w.WordBank = e.Bank
		w.CorrectOrder = e.CorrectOrder
	case MultipleChoice:
		w.Options = e.Options
	case FillBlank:
		w.Options = e.Options
	}
	return w
}

// Exercises marshals as a JSON array of wire exercises.
type Exercises []Exercise

func (xs Exercises) MarshalJSON() ([]byte, error) {
	wire := make([]ExerciseWire, len(xs))
	for i, ex := range xs {
		wire[i] = ToWire(ex)
	}
	return json.Marshal(wire)
}

func (xs *Exercises) UnmarshalJSON(data []byte) error {
	var wire []ExerciseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(Exercises, 0, len(wire))
	for _, w := range wire {
		ex, err := w.Decode()
		if err != nil {
			return err
		}
		out = append(out, ex)
	}
	*xs = out
	return nil
}
